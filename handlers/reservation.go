package handlers

import (
	"net/http"

	"guestdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetReservation handles GET /api/reservations/:id.
func (h *HandlerBundle) GetReservation(c *gin.Context) {
	id := c.Param("id")

	res, err := h.Reservations.Fetch(c.Request.Context(), id)
	if err != nil {
		h.Logger.Error("reservation fetch failed", zap.String("reservationNameID", id), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Failed to fetch reservation data after multiple attempts.", "")
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetReservationByRefNumber handles GET /api/reservations/ref/:ref.
func (h *HandlerBundle) GetReservationByRefNumber(c *gin.Context) {
	ref := c.Param("ref")

	res, err := h.Reservations.FetchByRefNumber(c.Request.Context(), ref)
	if err != nil {
		h.Logger.Error("reservation fetch by reference failed", zap.String("refNumber", ref), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "failed to fetch reservation", "")
		return
	}
	c.JSON(http.StatusOK, res)
}

// UpdateStay handles PUT /api/reservations/:id/stay — the summary screen's
// editable room number and adult count.
func (h *HandlerBundle) UpdateStay(c *gin.Context) {
	id := c.Param("id")

	var body struct {
		RoomNumber string `json:"roomNumber"`
		Adults     int    `json:"adults"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	res, err := h.Reservations.UpdateStay(c.Request.Context(), id, body.RoomNumber, body.Adults)
	if err != nil {
		h.Logger.Error("stay update failed", zap.String("reservationNameID", id), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "failed to update reservation", "")
		return
	}
	c.JSON(http.StatusOK, res)
}
