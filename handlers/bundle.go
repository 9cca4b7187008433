// Package handlers exposes the kiosk workflow over HTTP for the front-end.
package handlers

import (
	"guestdesk/config"
	"guestdesk/services/guest"
	"guestdesk/services/refdata"
	"guestdesk/services/reservation"

	"go.uber.org/zap"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Cfg          *config.Config
	Logger       *zap.Logger
	Guests       guest.Service
	Reservations reservation.Service
	RefData      refdata.Service
}

func NewHandlerBundle(cfg *config.Config, logger *zap.Logger, guests guest.Service,
	reservations reservation.Service, refData refdata.Service) *HandlerBundle {
	return &HandlerBundle{
		Cfg:          cfg,
		Logger:       logger,
		Guests:       guests,
		Reservations: reservations,
		RefData:      refData,
	}
}
