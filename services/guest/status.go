package guest

import (
	"context"

	"guestdesk/models"

	"go.uber.org/zap"
)

// refreshCheckStatus fetches the authoritative check-in/check-out flags for
// the record's (reservation, profile) pair. A fetch failure leaves the prior
// flags untouched.
func (s *DefaultService) refreshCheckStatus(ctx context.Context, rec *models.GuestRecord) {
	status, err := s.Gateway.FetchProfileInformation(ctx, rec.PmsProfileID, rec.ReservationNameID)
	if err != nil {
		s.Logger.Warn("check-in/check-out status fetch failed, keeping prior flags",
			zap.String("profileID", rec.PmsProfileID), zap.Error(err))
		return
	}
	rec.IsCheckedIn = status.IsCheckIn
	rec.IsCheckedOut = status.IsCheckOut
}
