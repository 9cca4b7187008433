package routes

import (
	"time"

	"guestdesk/handlers"
	"guestdesk/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Register wires every endpoint onto the engine. The kiosk front-end runs in
// a browser on the device, so CORS stays open for it.
func Register(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", hb.Health)
	r.POST("/api/session", hb.CreateKioskSession)

	api := r.Group("/api")
	api.Use(middleware.KioskAuth(hb.Cfg.JWTSecret))
	{
		api.GET("/reservations/:id", hb.GetReservation)
		api.GET("/reservations/ref/:ref", hb.GetReservationByRefNumber)
		api.PUT("/reservations/:id/stay", hb.UpdateStay)
		api.POST("/reservations/:id/guests", hb.OpenGuestSession)

		api.GET("/guests/:sessionId", hb.GetGuestSession)
		api.PATCH("/guests/:sessionId", hb.PatchGuestRecord)
		api.POST("/guests/:sessionId/scan", hb.ScanDocument)
		api.POST("/guests/:sessionId/save", hb.SaveGuest)
		api.DELETE("/guests/:sessionId", hb.CloseGuestSession)

		api.GET("/refdata/nationalities", hb.GetNationalities)
		api.GET("/refdata/document-types", hb.GetDocumentTypes)
	}
}
