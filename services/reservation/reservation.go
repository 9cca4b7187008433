// Package reservation covers the summary-screen operations: loading a
// reservation for display and pushing the editable stay fields back.
package reservation

import (
	"context"

	"guestdesk/models"

	"go.uber.org/zap"
)

// Gateway is the slice of the DOTS client the summary operations need.
type Gateway interface {
	FetchReservation(ctx context.Context, reservationNameID string) (*models.Reservation, error)
	FetchReservationByRefNumber(ctx context.Context, refNumber string) (*models.Reservation, error)
	PushReservationDetails(ctx context.Context, reservation *models.Reservation, sync bool) error
}

type Service interface {
	// Fetch loads a reservation by its durable identifier, retrying once
	// before giving up.
	Fetch(ctx context.Context, reservationNameID string) (*models.Reservation, error)
	FetchByRefNumber(ctx context.Context, refNumber string) (*models.Reservation, error)
	// UpdateStay re-pushes the reservation with the room number and adult
	// count overridden; everything else is echoed from a fresh snapshot.
	UpdateStay(ctx context.Context, reservationNameID, roomNumber string, adults int) (*models.Reservation, error)
}

// DefaultService is the production implementation.
type DefaultService struct {
	Gateway Gateway
	Logger  *zap.Logger
}

func (s *DefaultService) Fetch(ctx context.Context, reservationNameID string) (*models.Reservation, error) {
	res, err := s.Gateway.FetchReservation(ctx, reservationNameID)
	if err == nil {
		return res, nil
	}
	// One retry at session start; nothing else in the kiosk retries.
	s.Logger.Warn("reservation fetch failed, retrying once",
		zap.String("reservationNameID", reservationNameID), zap.Error(err))
	res, err = s.Gateway.FetchReservation(ctx, reservationNameID)
	if err != nil {
		s.Logger.Error("reservation fetch failed after retry",
			zap.String("reservationNameID", reservationNameID), zap.Error(err))
		return nil, err
	}
	return res, nil
}

func (s *DefaultService) FetchByRefNumber(ctx context.Context, refNumber string) (*models.Reservation, error) {
	return s.Gateway.FetchReservationByRefNumber(ctx, refNumber)
}

func (s *DefaultService) UpdateStay(ctx context.Context, reservationNameID, roomNumber string, adults int) (*models.Reservation, error) {
	snapshot, err := s.Gateway.FetchReservation(ctx, reservationNameID)
	if err != nil {
		return nil, err
	}

	push := *snapshot
	if adults > 0 {
		push.Adults = adults
	}
	if roomNumber != "" {
		push.RoomDetails.RoomNumber = roomNumber
	} else if push.RoomDetails.RoomNumber == "" {
		push.RoomDetails.RoomNumber = "0"
	}
	// The guest list rides along unchanged: the primary profile is echoed as
	// the single entry, the way the summary screen always pushed it.
	if len(snapshot.GuestProfiles) > 0 {
		push.GuestProfiles = snapshot.GuestProfiles[:1]
	}

	if err := s.Gateway.PushReservationDetails(ctx, &push, true); err != nil {
		return nil, err
	}
	return &push, nil
}
