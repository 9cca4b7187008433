package reservation_test

import (
	"context"
	"errors"
	"testing"

	"guestdesk/models"
	"guestdesk/services/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGateway struct {
	snapshot *models.Reservation
	// failures is consumed one FetchReservation call at a time.
	failures []error

	fetchCalls int
	pushed     *models.Reservation
	pushSync   bool
	pushErr    error
}

func (f *fakeGateway) FetchReservation(ctx context.Context, reservationNameID string) (*models.Reservation, error) {
	f.fetchCalls++
	if len(f.failures) > 0 {
		err := f.failures[0]
		f.failures = f.failures[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.snapshot, nil
}

func (f *fakeGateway) FetchReservationByRefNumber(ctx context.Context, refNumber string) (*models.Reservation, error) {
	return f.snapshot, nil
}

func (f *fakeGateway) PushReservationDetails(ctx context.Context, r *models.Reservation, sync bool) error {
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushed = r
	f.pushSync = sync
	return nil
}

func snapshot() *models.Reservation {
	return &models.Reservation{
		ReservationNameID: "RES-1",
		Adults:            2,
		RoomDetails:       models.RoomDetails{RoomNumber: "101"},
		GuestProfiles: []models.GuestProfile{
			{PmsProfileID: "P-1", IsPrimary: true},
			{PmsProfileID: "P-2"},
		},
	}
}

func TestFetchRetriesOnce(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{snapshot: snapshot(), failures: []error{errors.New("timeout")}}
	svc := &reservation.DefaultService{Gateway: gw, Logger: zap.NewNop()}

	res, err := svc.Fetch(context.Background(), "RES-1")
	require.NoError(t, err)
	assert.Equal(t, "RES-1", res.ReservationNameID)
	assert.Equal(t, 2, gw.fetchCalls)
}

func TestFetchGivesUpAfterSecondFailure(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{failures: []error{errors.New("timeout"), errors.New("timeout")}}
	svc := &reservation.DefaultService{Gateway: gw, Logger: zap.NewNop()}

	_, err := svc.Fetch(context.Background(), "RES-1")
	require.Error(t, err)
	assert.Equal(t, 2, gw.fetchCalls, "exactly one retry")
}

func TestUpdateStayOverridesAndEchoes(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{snapshot: snapshot()}
	svc := &reservation.DefaultService{Gateway: gw, Logger: zap.NewNop()}

	res, err := svc.UpdateStay(context.Background(), "RES-1", "204", 3)
	require.NoError(t, err)

	require.NotNil(t, gw.pushed)
	assert.True(t, gw.pushSync)
	assert.Equal(t, "204", gw.pushed.RoomDetails.RoomNumber)
	assert.Equal(t, 3, gw.pushed.Adults)
	require.Len(t, gw.pushed.GuestProfiles, 1, "only the primary profile is echoed")
	assert.Equal(t, "P-1", gw.pushed.GuestProfiles[0].PmsProfileID)
	assert.Equal(t, gw.pushed, res)
}

func TestUpdateStayKeepsSnapshotValuesWhenUnset(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{snapshot: snapshot()}
	svc := &reservation.DefaultService{Gateway: gw, Logger: zap.NewNop()}

	_, err := svc.UpdateStay(context.Background(), "RES-1", "", 0)
	require.NoError(t, err)
	assert.Equal(t, "101", gw.pushed.RoomDetails.RoomNumber)
	assert.Equal(t, 2, gw.pushed.Adults)
}

func TestUpdateStayDefaultsEmptyRoomToZero(t *testing.T) {
	t.Parallel()
	snap := snapshot()
	snap.RoomDetails.RoomNumber = ""
	gw := &fakeGateway{snapshot: snap}
	svc := &reservation.DefaultService{Gateway: gw, Logger: zap.NewNop()}

	_, err := svc.UpdateStay(context.Background(), "RES-1", "", 0)
	require.NoError(t, err)
	assert.Equal(t, "0", gw.pushed.RoomDetails.RoomNumber)
}

func TestUpdateStayPushFailure(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{snapshot: snapshot(), pushErr: errors.New("rejected")}
	svc := &reservation.DefaultService{Gateway: gw, Logger: zap.NewNop()}

	_, err := svc.UpdateStay(context.Background(), "RES-1", "204", 3)
	require.Error(t, err)
}
