package dots

import (
	"context"
	"fmt"

	"guestdesk/models"
)

// ProfileUpdate is the field set shared by the UpdatePassport and UpdateName
// endpoints. The two remote services own different slices of the guest
// profile, so the same data goes to both; the only difference is which
// document-type code each side expects. The payload key preserves the
// integration layer's own spelling ("UpdateProileRequest").
type ProfileUpdate struct {
	Addresses      any    `json:"addresses"`
	ProfileID      string `json:"profileID"`
	Emails         any    `json:"emails"`
	Phones         any    `json:"phones"`
	DOB            string `json:"dob"`
	Gender         string `json:"gender"`
	Nationality    string `json:"nationality"`
	IssueCountry   string `json:"issueCountry"`
	DocumentNumber string `json:"documentNumber"`
	DocumentType   string `json:"documentType"`
	IssueDate      string `json:"issueDate"`
	ExpiryDate     string `json:"expiryDate"`
}

type profileUpdateRequest struct {
	envelope
	UpdateProfileRequest ProfileUpdate `json:"UpdateProileRequest"`
}

// UpdatePassport pushes document detail fields for a profile. DocumentType
// must already be translated to the PMS's own code.
func (c *Client) UpdatePassport(ctx context.Context, update ProfileUpdate) error {
	return c.post(ctx, "/api/ows/UpdatePassport",
		profileUpdateRequest{envelope: c.envelope(), UpdateProfileRequest: update}, nil)
}

// UpdateName pushes name and demographic fields for a profile. DocumentType
// here is the kiosk's local code, untranslated.
func (c *Client) UpdateName(ctx context.Context, update ProfileUpdate) error {
	return c.post(ctx, "/api/ows/UpdateName",
		profileUpdateRequest{envelope: c.envelope(), UpdateProfileRequest: update}, nil)
}

// DocumentDetails carries the images and document fields pushed to the
// dedicated document-image endpoint.
type DocumentDetails struct {
	ReservationNameID    string  `json:"ReservationNameID"`
	ProfileID            string  `json:"ProfileID"`
	DocumentNumber       string  `json:"DocumentNumber"`
	ExpiryDate           string  `json:"ExpiryDate"`
	IssueDate            string  `json:"IssueDate"`
	DocumentImage1       string  `json:"DocumentImage1"`
	DocumentImage2       string  `json:"DocumentImage2"`
	DocumentImage3       *string `json:"DocumentImage3"`
	FaceImage            string  `json:"FaceImage"`
	CloudProfileDetailID string  `json:"CloudProfileDetailID"`
	DocumentTypeCode     string  `json:"DocumentTypeCode"`
	IssueCountry         string  `json:"IssueCountry"`
}

// PushDocumentDetails stores the captured document images against a profile.
func (c *Client) PushDocumentDetails(ctx context.Context, details DocumentDetails) error {
	body := localRequest{RequestObject: []DocumentDetails{details}}
	return c.post(ctx, "/api/local/PushDocumentDetails", body, nil)
}

type profileKey struct {
	ReservationNameID string `json:"ReservationNameID"`
	ProfileID         string `json:"ProfileID"`
}

// FetchProfileDocument retrieves the stored document images and fields for a
// profile, or nil when the PMS holds none.
func (c *Client) FetchProfileDocument(ctx context.Context, profileID, reservationNameID string) (*models.ProfileDocument, error) {
	const path = "/api/local/FetchProfileDocumentImageByProfileID"

	body := localRequest{RequestObject: profileKey{ReservationNameID: reservationNameID, ProfileID: profileID}}

	var resp struct {
		ResponseData []models.ProfileDocument `json:"responseData"`
	}
	if err := c.post(ctx, path, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.ResponseData) == 0 {
		return nil, nil
	}
	return &resp.ResponseData[0], nil
}

// FetchProfileInformation retrieves the check-in/check-out flags for a
// (reservation, profile) pair.
func (c *Client) FetchProfileInformation(ctx context.Context, profileID, reservationNameID string) (*models.CheckStatus, error) {
	const path = "/api/local/FetchProfileInformationProfileId"

	body := localRequest{RequestObject: profileKey{ReservationNameID: reservationNameID, ProfileID: profileID}}

	var resp struct {
		ResponseData []models.CheckStatus `json:"responseData"`
	}
	if err := c.post(ctx, path, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.ResponseData) == 0 {
		return nil, &Error{Kind: KindDataShape, Endpoint: path, Err: fmt.Errorf("empty responseData")}
	}
	return &resp.ResponseData[0], nil
}

// UpdateGuestReserveStatus issues a check-in or check-out for a profile.
// Exactly one of checkin/checkout is set (the other stays null on the wire).
func (c *Client) UpdateGuestReserveStatus(ctx context.Context, profileID, reservationNameID string, checkin, checkout *int) error {
	body := localRequest{
		RequestObject: struct {
			ReservationNameID string `json:"ReservationNameID"`
			ProfileID         string `json:"ProfileID"`
			Checkin           *int   `json:"Checkin"`
			Checkout          *int   `json:"Checkout"`
		}{
			ReservationNameID: reservationNameID,
			ProfileID:         profileID,
			Checkin:           checkin,
			Checkout:          checkout,
		},
	}
	return c.post(ctx, "/api/local/UpdateGuestReserveStatus", body, nil)
}
