// Package dots is the HTTP client for the DOTS integration layer, the service
// that fronts the hotel's PMS. All calls are JSON POSTs against a configured
// base URL; "ows" endpoints carry a full authentication envelope, "local"
// endpoints wrap their payload in a RequestObject.
package dots

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"guestdesk/config"

	"go.uber.org/zap"
)

// ErrorKind classifies a failed integration call.
type ErrorKind int

const (
	// KindSetup: the request could not be constructed or sent at all.
	KindSetup ErrorKind = iota
	// KindTransport: no response reached us.
	KindTransport
	// KindApplication: the server responded with a non-success status or a
	// result flag indicating failure.
	KindApplication
	// KindDataShape: the response decoded but lacked an expected list/field.
	KindDataShape
)

func (k ErrorKind) String() string {
	switch k {
	case KindSetup:
		return "setup"
	case KindTransport:
		return "transport"
	case KindApplication:
		return "application"
	case KindDataShape:
		return "data-shape"
	}
	return "unknown"
}

// Error is a classified integration failure.
type Error struct {
	Kind     ErrorKind
	Endpoint string
	Status   int
	Err      error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("dots %s: %s failure (status %d): %v", e.Endpoint, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("dots %s: %s failure: %v", e.Endpoint, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the classification of err, or KindSetup if err is not a
// *Error.
func KindOf(err error) ErrorKind {
	if de, ok := err.(*Error); ok {
		return de.Kind
	}
	return KindSetup
}

// Client issues calls against the DOTS integration layer. It is safe for
// concurrent use.
type Client struct {
	cfg    *config.Config
	http   *http.Client
	logger *zap.Logger
}

func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// envelope is the authentication/context block every "ows" request carries.
type envelope struct {
	HotelDomain           string `json:"hotelDomain"`
	KioskID               string `json:"kioskID"`
	Username              string `json:"username"`
	Password              string `json:"password"`
	SystemType            string `json:"systemType"`
	Language              string `json:"language"`
	LegNumber             string `json:"legNumber"`
	ChainCode             string `json:"chainCode"`
	DestinationEntityID   string `json:"destinationEntityID"`
	DestinationSystemType string `json:"destinationSystemType"`
}

func (c *Client) envelope() envelope {
	return envelope{
		HotelDomain:           c.cfg.HotelDomain,
		KioskID:               c.cfg.KioskID,
		Username:              c.cfg.Username,
		Password:              c.cfg.Password,
		SystemType:            c.cfg.SystemType,
		Language:              c.cfg.Language,
		LegNumber:             c.cfg.LegNumber,
		ChainCode:             c.cfg.ChainCode,
		DestinationEntityID:   c.cfg.DestinationEntityID,
		DestinationSystemType: c.cfg.DestinationSystemType,
	}
}

// localRequest is the wrapper the "local" endpoints expect.
type localRequest struct {
	RequestObject any   `json:"RequestObject"`
	SyncFromCloud *bool `json:"SyncFromCloud"`
}

// post sends body to path and decodes the response into out (out may be nil
// for fire-and-forget acks). Failures come back as *Error.
func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return &Error{Kind: KindSetup, Endpoint: path, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.DotsURL+path, &buf)
	if err != nil {
		return &Error{Kind: KindSetup, Endpoint: path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{
			Kind:     KindApplication,
			Endpoint: path,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Kind: KindDataShape, Endpoint: path, Err: err}
		}
	}
	return nil
}

func syncFromCloud(v bool) *bool { return &v }
