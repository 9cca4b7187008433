package handlers

import (
	"net/http"

	"guestdesk/utils"

	"github.com/gin-gonic/gin"
)

// Health handles GET /health.
func (h *HandlerBundle) Health(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
