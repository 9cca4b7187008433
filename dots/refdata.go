package dots

import (
	"context"

	"guestdesk/models"
)

// GetNationalityList retrieves the nationality code/name reference list.
func (c *Client) GetNationalityList(ctx context.Context) ([]models.Country, error) {
	env := c.envelope()
	// This endpoint takes no leg number.
	env.LegNumber = ""

	var resp struct {
		ResponseData []models.Country `json:"responseData"`
	}
	if err := c.post(ctx, "/api/ows/GetNationalityList", env, &resp); err != nil {
		return nil, err
	}
	return resp.ResponseData, nil
}

// FetchDocumentTypeMaster retrieves the kiosk-to-PMS document code mapping.
func (c *Client) FetchDocumentTypeMaster(ctx context.Context) ([]models.DocumentTypeMapping, error) {
	var resp struct {
		ResponseData []models.DocumentTypeMapping `json:"responseData"`
	}
	if err := c.post(ctx, "/api/local/FetchDocumentTypeMaster", nil, &resp); err != nil {
		return nil, err
	}
	return resp.ResponseData, nil
}
