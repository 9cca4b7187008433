package guest

import (
	"context"
	"strings"

	"guestdesk/models"

	"go.uber.org/zap"
)

// The PMS stores "no birth date" as the zero date.
const birthDateSentinel = "0001-01-01"

// OpenSession fetches the reservation and assembles a guest record from its
// precedence-ordered sources: the reservation's embedded guest profile first,
// overlaid by the stored PMS profile document when one exists. Overlay
// failures degrade to the data already held; only the reservation fetch
// itself can fail the open.
func (s *DefaultService) OpenSession(ctx context.Context, reservationNameID, pmsProfileID string, profileIndex int) (*models.GuestSession, error) {
	snapshot, err := s.Gateway.FetchReservation(ctx, reservationNameID)
	if err != nil {
		return nil, err
	}

	profile := resolveProfile(snapshot, pmsProfileID, profileIndex)

	sess := &models.GuestSession{
		SessionID:         newSessionID(),
		ReservationNameID: reservationNameID,
		Snapshot:          snapshot,
		CreatedAt:         s.now(),
	}
	sess.Record = models.GuestRecord{
		ReservationNumber: snapshot.ReservationNumber,
		ReservationNameID: reservationNameID,
		CanSave:           true,
	}

	if profile != nil {
		applyReservationProfile(&sess.Record, profile)
	}
	if sess.Record.PmsProfileID != "" {
		s.overlayProfileDocument(ctx, &sess.Record)
		s.refreshCheckStatus(ctx, &sess.Record)
	}

	s.putSession(sess)
	return sess, nil
}

// resolveProfile picks the guest-profile entry the session edits: by PMS
// profile ID when known, by position otherwise. An out-of-range index means a
// fresh accompanying-guest slot with no existing profile.
func resolveProfile(snapshot *models.Reservation, pmsProfileID string, profileIndex int) *models.GuestProfile {
	if pmsProfileID != "" {
		return snapshot.FindGuestProfile(pmsProfileID)
	}
	if profileIndex >= 0 && profileIndex < len(snapshot.GuestProfiles) {
		return &snapshot.GuestProfiles[profileIndex]
	}
	return nil
}

// applyReservationProfile fills the record from the reservation's embedded
// guest-profile entry (source 2 of the precedence order).
func applyReservationProfile(rec *models.GuestRecord, p *models.GuestProfile) {
	rec.PmsProfileID = p.PmsProfileID
	rec.GivenName = firstNonEmpty(p.FirstName, p.GivenName)
	rec.MiddleName = p.MiddleName
	rec.FamilyName = firstNonEmpty(p.LastName, p.FamilyName)
	rec.Salutation = p.Salutation
	rec.Gender = p.Gender
	rec.Nationality = p.Nationality
	rec.DocumentType = p.DocumentType
	rec.DocumentNumber = p.PassportNumber
	rec.IssueDate = truncateDate(p.IssueDate)
	rec.PlaceOfIssue = p.IssueCountry
	rec.Address = p.Address
	if dob := truncateDate(p.BirthDate); dob != birthDateSentinel {
		rec.DateOfBirth = dob
	}
}

// overlayProfileDocument fetches the stored PMS profile document (source 1)
// and overlays its document-specific fields; stored values win over the
// reservation's embedded profile when present.
func (s *DefaultService) overlayProfileDocument(ctx context.Context, rec *models.GuestRecord) {
	doc, err := s.Gateway.FetchProfileDocument(ctx, rec.PmsProfileID, rec.ReservationNameID)
	if err != nil {
		s.Logger.Warn("profile document overlay failed, keeping held data",
			zap.String("profileID", rec.PmsProfileID), zap.Error(err))
		return
	}
	if doc == nil {
		return
	}

	overlay := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	overlay(&rec.DocumentType, doc.DocumentType)
	overlay(&rec.Nationality, doc.Nationality)
	overlay(&rec.DocumentNumber, doc.DocumentNumber)
	overlay(&rec.IssueDate, truncateDate(doc.IssueDate))
	overlay(&rec.ExpiryDate, truncateDate(doc.ExpiryDate))
	overlay(&rec.PlaceOfIssue, doc.IssueCountry)
	overlay(&rec.DocumentImageFront, doc.DocumentImage1)
	overlay(&rec.DocumentImageBack, doc.DocumentImage2)
	overlay(&rec.FaceImage, doc.FaceImage)
	overlay(&rec.GivenName, doc.FirstName)
	overlay(&rec.MiddleName, doc.MiddleName)
	overlay(&rec.FamilyName, doc.LastName)

	// A stored front image means this guest was already captured and saved;
	// the session is view-only until the record is reopened elsewhere.
	if doc.DocumentImage1 != "" {
		rec.CanSave = false
	}
}

// truncateDate reduces a timestamp to calendar-date precision.
func truncateDate(s string) string {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
