package middleware

import (
	"net/http"
	"strings"

	"guestdesk/utils"

	"github.com/gin-gonic/gin"
)

// KioskAuth requires a valid kiosk session token on every request. The kiosk
// ID from the token is stored on the context under "kioskID".
func KioskAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		kioskID, err := utils.ExtractSubjectFromToken(jwtSecret, tokenString)
		if err != nil || kioskID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		c.Set("kioskID", kioskID)
		c.Next()
	}
}
