// Package scanner is the client for the document-scanner hardware service.
package scanner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"guestdesk/config"
	"guestdesk/models"

	"go.uber.org/zap"
)

// Client triggers scans against the scanning service.
type Client struct {
	cfg    *config.Config
	http   *http.Client
	logger *zap.Logger
}

func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		cfg: cfg,
		// Scans are slow: the hardware has to capture and OCR the document.
		http:   &http.Client{Timeout: 60 * time.Second},
		logger: logger,
	}
}

// ScanDocument triggers a scan and returns the extracted fields. A non-success
// result from the scanner comes back as an error; the caller leaves its record
// untouched in that case.
func (c *Client) ScanDocument(ctx context.Context) (*models.ScannedDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.ScanningURL+"/api/IDScan/ScanDocument", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build scan request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scan request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scanner returned status %s", resp.Status)
	}

	var result models.ScanResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode scan response: %w", err)
	}
	if !result.Result {
		c.logger.Warn("scan rejected by scanner service", zap.String("error", result.ErrorMessage))
		return nil, fmt.Errorf("scan failed: %s", result.ErrorMessage)
	}
	return &result.ScannedDocument, nil
}
