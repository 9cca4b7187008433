package handlers

import (
	"net/http"
	"time"

	"guestdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// CreateKioskSession handles POST /api/session: a kiosk device trades its
// access code for a bearer token.
func (h *HandlerBundle) CreateKioskSession(c *gin.Context) {
	var body struct {
		KioskID    string `json:"kioskId" binding:"required"`
		AccessCode string `json:"accessCode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.Cfg.KioskAccessHash), []byte(body.AccessCode)); err != nil {
		h.Logger.Warn("kiosk session rejected", zap.String("kioskId", body.KioskID))
		utils.JSONError(c, http.StatusUnauthorized, "invalid access code", "")
		return
	}

	token, err := utils.GenerateToken(h.Cfg.JWTSecret, body.KioskID, 12*time.Hour)
	if err != nil {
		h.Logger.Error("failed to generate kiosk token", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to create session", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
