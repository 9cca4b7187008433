package guest_test

import (
	"context"
	"time"

	"guestdesk/dots"
	"guestdesk/models"
	"guestdesk/services/guest"

	"go.uber.org/zap"
)

// testToday is the fixed reference date for validation in these tests.
var testToday = time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

type statusCall struct {
	profileID string
	checkin   *int
	checkout  *int
}

// fakeGateway implements guest.Gateway, recording every call in order.
type fakeGateway struct {
	calls []string

	// snapshots are returned by successive FetchReservation calls; the last
	// entry repeats once the list is exhausted.
	snapshots  []*models.Reservation
	fetchCount int

	createID  string
	createErr error

	profileDoc    *models.ProfileDocument
	profileDocErr error

	status    models.CheckStatus
	statusErr error

	fetchErr    error
	pushErr     error
	passportErr error
	docErr      error
	nameErr     error
	reserveErr  error

	pushes          []*models.Reservation
	creates         []dots.CreateGuestRequest
	passportUpdates []dots.ProfileUpdate
	nameUpdates     []dots.ProfileUpdate
	docDetails      []dots.DocumentDetails
	statusCalls     []statusCall
}

func (f *fakeGateway) record(name string) { f.calls = append(f.calls, name) }

func (f *fakeGateway) FetchReservation(ctx context.Context, reservationNameID string) (*models.Reservation, error) {
	f.record("FetchReservation")
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	idx := f.fetchCount
	if idx >= len(f.snapshots) {
		idx = len(f.snapshots) - 1
	}
	f.fetchCount++
	return f.snapshots[idx], nil
}

func (f *fakeGateway) PushReservationDetails(ctx context.Context, reservation *models.Reservation, sync bool) error {
	f.record("PushReservationDetails")
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushes = append(f.pushes, reservation)
	return nil
}

func (f *fakeGateway) CreateAccompanyingGuest(ctx context.Context, req dots.CreateGuestRequest) (string, error) {
	f.record("CreateAccompanyingGuest")
	if f.createErr != nil {
		return "", f.createErr
	}
	f.creates = append(f.creates, req)
	return f.createID, nil
}

func (f *fakeGateway) UpdatePassport(ctx context.Context, update dots.ProfileUpdate) error {
	f.record("UpdatePassport")
	if f.passportErr != nil {
		return f.passportErr
	}
	f.passportUpdates = append(f.passportUpdates, update)
	return nil
}

func (f *fakeGateway) UpdateName(ctx context.Context, update dots.ProfileUpdate) error {
	f.record("UpdateName")
	if f.nameErr != nil {
		return f.nameErr
	}
	f.nameUpdates = append(f.nameUpdates, update)
	return nil
}

func (f *fakeGateway) PushDocumentDetails(ctx context.Context, details dots.DocumentDetails) error {
	f.record("PushDocumentDetails")
	if f.docErr != nil {
		return f.docErr
	}
	f.docDetails = append(f.docDetails, details)
	return nil
}

func (f *fakeGateway) FetchProfileDocument(ctx context.Context, profileID, reservationNameID string) (*models.ProfileDocument, error) {
	f.record("FetchProfileDocument")
	if f.profileDocErr != nil {
		return nil, f.profileDocErr
	}
	return f.profileDoc, nil
}

func (f *fakeGateway) FetchProfileInformation(ctx context.Context, profileID, reservationNameID string) (*models.CheckStatus, error) {
	f.record("FetchProfileInformation")
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	status := f.status
	return &status, nil
}

func (f *fakeGateway) UpdateGuestReserveStatus(ctx context.Context, profileID, reservationNameID string, checkin, checkout *int) error {
	f.record("UpdateGuestReserveStatus")
	if f.reserveErr != nil {
		return f.reserveErr
	}
	f.statusCalls = append(f.statusCalls, statusCall{profileID: profileID, checkin: checkin, checkout: checkout})
	return nil
}

// fakeRefData translates a single nationality and upper-cases document codes
// with an OPERA- prefix, so tests can tell translated from local codes.
type fakeRefData struct{}

func (fakeRefData) NationalityCode(name string) string {
	if name == "United States" {
		return "US"
	}
	return ""
}

func (fakeRefData) OperaDocumentCode(localCode string) string {
	if localCode == "" {
		return ""
	}
	return "OPERA-" + localCode
}

func newService(gw *fakeGateway) *guest.DefaultService {
	return &guest.DefaultService{
		Gateway: gw,
		RefData: fakeRefData{},
		Logger:  zap.NewNop(),
		Now:     func() time.Time { return testToday },
	}
}
