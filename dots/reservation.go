package dots

import (
	"context"
	"fmt"

	"guestdesk/models"

	"go.uber.org/zap"
)

type reservationResponse struct {
	Result       bool                 `json:"result"`
	ResponseData []models.Reservation `json:"responseData"`
}

// FetchReservation retrieves a reservation by its durable ReservationNameID.
func (c *Client) FetchReservation(ctx context.Context, reservationNameID string) (*models.Reservation, error) {
	const path = "/api/ows/FetchReservation"

	body := struct {
		envelope
		FetchBookingRequest struct {
			ReservationNameID string `json:"ReservationNameID"`
		} `json:"FetchBookingRequest"`
	}{envelope: c.envelope()}
	body.FetchBookingRequest.ReservationNameID = reservationNameID

	var resp reservationResponse
	if err := c.post(ctx, path, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.ResponseData) == 0 {
		return nil, &Error{Kind: KindDataShape, Endpoint: path, Err: fmt.Errorf("empty responseData")}
	}
	return &resp.ResponseData[0], nil
}

// FetchReservationByRefNumber retrieves a reservation by its reference number.
func (c *Client) FetchReservationByRefNumber(ctx context.Context, refNumber string) (*models.Reservation, error) {
	const path = "/api/local/FetchReservationDetailsByRefNumber"

	body := localRequest{
		RequestObject: struct {
			ReferenceNumber string  `json:"ReferenceNumber"`
			ArrivalDate     *string `json:"ArrivalDate"`
		}{ReferenceNumber: refNumber},
	}

	var resp reservationResponse
	if err := c.post(ctx, path, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.ResponseData) == 0 {
		return nil, &Error{Kind: KindDataShape, Endpoint: path, Err: fmt.Errorf("empty responseData")}
	}
	return &resp.ResponseData[0], nil
}

// PushReservationDetails writes a full reservation payload back to the PMS.
// The reservation must be the last-fetched snapshot with only the kiosk's
// explicit overrides applied, so no PMS field gets silently dropped.
func (c *Client) PushReservationDetails(ctx context.Context, reservation *models.Reservation, sync bool) error {
	const path = "/api/local/PushReservationDetails"

	body := localRequest{
		RequestObject: []*models.Reservation{reservation},
		SyncFromCloud: syncFromCloud(sync),
	}

	var resp struct {
		Result bool `json:"result"`
	}
	if err := c.post(ctx, path, body, &resp); err != nil {
		return err
	}
	if !resp.Result {
		return &Error{Kind: KindApplication, Endpoint: path, Err: fmt.Errorf("push rejected by integration layer")}
	}
	return nil
}

// CreateGuestRequest carries the minimal identity fields needed to create an
// accompanying guest profile on an existing reservation.
type CreateGuestRequest struct {
	ReservationNumber string `json:"ReservationNumber"`
	Gender            string `json:"Gender"`
	FirstName         string `json:"FirstName"`
	MiddleName        string `json:"MiddleName"`
	LastName          string `json:"LastName"`
	DocumentType      string `json:"DocumentType"`
}

// CreateAccompanyingGuest creates a new accompanying guest profile and returns
// the new PMS profile ID. An empty ID with a nil error means the call went
// through but the response carried no identifier; callers fall back to any
// identifier they already hold. The endpoint path preserves the integration
// layer's own spelling.
func (c *Client) CreateAccompanyingGuest(ctx context.Context, req CreateGuestRequest) (string, error) {
	const path = "/api/ows/CreateAccompanyingGuset"

	body := struct {
		envelope
		CreateAccompanyingProfileRequest CreateGuestRequest `json:"CreateAccompanyingProfileRequest"`
	}{envelope: c.envelope(), CreateAccompanyingProfileRequest: req}

	var resp struct {
		Result       bool `json:"result"`
		ResponseData struct {
			PmsProfileID string `json:"PmsProfileID"`
		} `json:"responseData"`
	}
	if err := c.post(ctx, path, body, &resp); err != nil {
		return "", err
	}
	if !resp.Result {
		c.logger.Warn("create accompanying guest returned no profile ID", zap.String("endpoint", path))
		return "", nil
	}
	return resp.ResponseData.PmsProfileID, nil
}
