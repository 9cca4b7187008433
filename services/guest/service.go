// Package guest owns the guest-record workflow: assembling one guest's
// identity/document record from its three sources, reconciling scans into it,
// validating it, and driving the ordered DOTS calls that persist it.
package guest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"guestdesk/dots"
	"guestdesk/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Gateway is the slice of the DOTS client the guest workflow needs.
type Gateway interface {
	FetchReservation(ctx context.Context, reservationNameID string) (*models.Reservation, error)
	PushReservationDetails(ctx context.Context, reservation *models.Reservation, sync bool) error
	CreateAccompanyingGuest(ctx context.Context, req dots.CreateGuestRequest) (string, error)
	UpdatePassport(ctx context.Context, update dots.ProfileUpdate) error
	UpdateName(ctx context.Context, update dots.ProfileUpdate) error
	PushDocumentDetails(ctx context.Context, details dots.DocumentDetails) error
	FetchProfileDocument(ctx context.Context, profileID, reservationNameID string) (*models.ProfileDocument, error)
	FetchProfileInformation(ctx context.Context, profileID, reservationNameID string) (*models.CheckStatus, error)
	UpdateGuestReserveStatus(ctx context.Context, profileID, reservationNameID string, checkin, checkout *int) error
}

// Scanner triggers the document scanner.
type Scanner interface {
	ScanDocument(ctx context.Context) (*models.ScannedDocument, error)
}

// RefData supplies the code translations the workflow needs.
type RefData interface {
	NationalityCode(name string) string
	OperaDocumentCode(localCode string) string
}

// Service is the guest-record workflow surface used by the handlers.
type Service interface {
	OpenSession(ctx context.Context, reservationNameID, pmsProfileID string, profileIndex int) (*models.GuestSession, error)
	Session(sessionID string) (*models.GuestSession, error)
	ApplyPatch(sessionID string, patch RecordPatch) (*models.GuestSession, error)
	Scan(ctx context.Context, sessionID string, side models.ScanSide) (*models.GuestSession, error)
	Save(ctx context.Context, sessionID string) (*SaveReport, error)
	CloseSession(sessionID string)
}

// DefaultService is the production implementation.
type DefaultService struct {
	Gateway Gateway
	Scanner Scanner
	RefData RefData
	Logger  *zap.Logger

	// SessionTTL bounds how long an abandoned editing session lingers.
	SessionTTL time.Duration
	// Now is the reference clock for validation; defaults to time.Now.
	Now func() time.Time

	mu       sync.Mutex
	sessions map[string]*models.GuestSession
}

func (s *DefaultService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ErrSessionNotFound is returned when a session ID is unknown or expired.
var ErrSessionNotFound = fmt.Errorf("guest session not found")

func (s *DefaultService) putSession(sess *models.GuestSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions == nil {
		s.sessions = make(map[string]*models.GuestSession)
	}
	s.sweepLocked()
	s.sessions[sess.SessionID] = sess
}

// Session returns the live session for sessionID.
func (s *DefaultService) Session(sessionID string) (*models.GuestSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// CloseSession discards a session; the record it held is gone.
func (s *DefaultService) CloseSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// sweepLocked drops sessions older than the TTL. Callers hold s.mu.
func (s *DefaultService) sweepLocked() {
	if s.SessionTTL <= 0 {
		return
	}
	cutoff := s.now().Add(-s.SessionTTL)
	for id, sess := range s.sessions {
		if sess.CreatedAt.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

func newSessionID() string { return uuid.New().String() }

// RecordPatch carries manual field edits from the kiosk UI. Nil fields are
// left untouched.
type RecordPatch struct {
	GivenName      *string `json:"givenName"`
	MiddleName     *string `json:"middleName"`
	FamilyName     *string `json:"familyName"`
	Salutation     *string `json:"salutation"`
	Gender         *string `json:"gender"`
	DateOfBirth    *string `json:"dateOfBirth"`
	DocumentType   *string `json:"documentType"`
	DocumentNumber *string `json:"documentNumber"`
	IssueDate      *string `json:"issueDate"`
	ExpiryDate     *string `json:"expiryDate"`
	PlaceOfIssue   *string `json:"placeOfIssue"`
	Nationality    *string `json:"nationality"`

	// Editable stay fields from the reservation summary screen.
	RoomNumber *string `json:"roomNumber"`
	Adults     *int    `json:"adults"`
}

// ApplyPatch applies manual edits to a session's record.
func (s *DefaultService) ApplyPatch(sessionID string, patch RecordPatch) (*models.GuestSession, error) {
	sess, err := s.Session(sessionID)
	if err != nil {
		return nil, err
	}

	rec := &sess.Record
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&rec.GivenName, patch.GivenName)
	set(&rec.MiddleName, patch.MiddleName)
	set(&rec.FamilyName, patch.FamilyName)
	set(&rec.Salutation, patch.Salutation)
	set(&rec.Gender, patch.Gender)
	set(&rec.DateOfBirth, patch.DateOfBirth)
	set(&rec.DocumentType, patch.DocumentType)
	set(&rec.DocumentNumber, patch.DocumentNumber)
	set(&rec.IssueDate, patch.IssueDate)
	set(&rec.ExpiryDate, patch.ExpiryDate)
	set(&rec.PlaceOfIssue, patch.PlaceOfIssue)
	set(&rec.Nationality, patch.Nationality)
	if patch.RoomNumber != nil {
		sess.RoomNumber = *patch.RoomNumber
	}
	if patch.Adults != nil {
		sess.Adults = *patch.Adults
	}
	return sess, nil
}
