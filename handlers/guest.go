package handlers

import (
	"errors"
	"net/http"

	"guestdesk/models"
	"guestdesk/services/guest"
	"guestdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OpenGuestSession handles POST /api/reservations/:id/guests: it assembles a
// guest record from the reservation and any stored PMS profile and opens an
// editing session for it.
func (h *HandlerBundle) OpenGuestSession(c *gin.Context) {
	reservationNameID := c.Param("id")

	var body struct {
		PmsProfileID string `json:"pmsProfileId"`
		ProfileIndex int    `json:"profileIndex"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	sess, err := h.Guests.OpenSession(c.Request.Context(), reservationNameID, body.PmsProfileID, body.ProfileIndex)
	if err != nil {
		h.Logger.Error("failed to open guest session",
			zap.String("reservationNameID", reservationNameID), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "failed to load reservation", "")
		return
	}
	c.JSON(http.StatusOK, sess)
}

// GetGuestSession handles GET /api/guests/:sessionId.
func (h *HandlerBundle) GetGuestSession(c *gin.Context) {
	sess, err := h.Guests.Session(c.Param("sessionId"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "session not found", "")
		return
	}
	c.JSON(http.StatusOK, sess)
}

// PatchGuestRecord handles PATCH /api/guests/:sessionId — manual field edits.
func (h *HandlerBundle) PatchGuestRecord(c *gin.Context) {
	var patch guest.RecordPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	sess, err := h.Guests.ApplyPatch(c.Param("sessionId"), patch)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "session not found", "")
		return
	}
	c.JSON(http.StatusOK, sess)
}

// ScanDocument handles POST /api/guests/:sessionId/scan.
func (h *HandlerBundle) ScanDocument(c *gin.Context) {
	var body struct {
		Side string `json:"side" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	sess, err := h.Guests.Scan(c.Request.Context(), c.Param("sessionId"), models.ScanSide(body.Side))
	if err != nil {
		if errors.Is(err, guest.ErrSessionNotFound) {
			utils.JSONError(c, http.StatusNotFound, "session not found", "")
			return
		}
		h.Logger.Warn("scan failed", zap.String("side", body.Side), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "scan failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, sess)
}

// SaveGuest handles POST /api/guests/:sessionId/save — the full persistence
// sequence against the PMS.
func (h *HandlerBundle) SaveGuest(c *gin.Context) {
	report, err := h.Guests.Save(c.Request.Context(), c.Param("sessionId"))
	switch {
	case errors.Is(err, guest.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "session not found", "")
		return
	case errors.Is(err, guest.ErrNotSavable):
		utils.JSONError(c, http.StatusConflict, "guest record already saved", "")
		return
	case err != nil:
		// A hard failure early in the sequence; the report says how far it got.
		c.JSON(http.StatusBadGateway, report)
		return
	}

	if len(report.ValidationErrors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, report)
		return
	}
	c.JSON(http.StatusOK, report)
}

// CloseGuestSession handles DELETE /api/guests/:sessionId — cancel editing.
func (h *HandlerBundle) CloseGuestSession(c *gin.Context) {
	h.Guests.CloseSession(c.Param("sessionId"))
	c.Status(http.StatusNoContent)
}
