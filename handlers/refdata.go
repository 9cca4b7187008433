package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetNationalities handles GET /api/refdata/nationalities — the selector list.
func (h *HandlerBundle) GetNationalities(c *gin.Context) {
	c.JSON(http.StatusOK, h.RefData.Countries())
}

// GetDocumentTypes handles GET /api/refdata/document-types.
func (h *HandlerBundle) GetDocumentTypes(c *gin.Context) {
	c.JSON(http.StatusOK, h.RefData.DocumentTypes())
}
