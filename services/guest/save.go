package guest

import (
	"context"
	"errors"
	"fmt"

	"guestdesk/dots"
	"guestdesk/models"

	"go.uber.org/zap"
)

// StepOutcome is the result of one save step.
type StepOutcome string

const (
	StepOK StepOutcome = "ok"
	// StepSoftFailure: logged, the sequence continues. The save is
	// best-effort by design, not a transaction.
	StepSoftFailure StepOutcome = "soft-failure"
	// StepHardFailure aborts the remainder of the sequence.
	StepHardFailure StepOutcome = "hard-failure"
	StepSkipped     StepOutcome = "skipped"
)

// StepResult records how one named step of the save sequence went.
type StepResult struct {
	Name    string      `json:"name"`
	Outcome StepOutcome `json:"outcome"`
	Error   string      `json:"error,omitempty"`
}

// SaveReport is the outcome of a save run.
type SaveReport struct {
	Success bool `json:"success"`
	// ValidationErrors is set when validation blocked the save before any
	// network call.
	ValidationErrors models.ValidationErrors `json:"validationErrors,omitempty"`
	Steps            []StepResult            `json:"steps"`
	// UserMessage carries the one per-step failure that is surfaced to the
	// guest (check-in/check-out).
	UserMessage string `json:"userMessage,omitempty"`
}

// ErrNotSavable is returned when the session's record has already been saved.
var ErrNotSavable = errors.New("guest record is no longer savable")

var errStepSkipped = errors.New("step skipped")

// saveStep is one named entry of the save pipeline. Critical steps abort the
// sequence on failure; the rest fail soft. userMessage, when set, is surfaced
// to the guest if the step fails.
type saveStep struct {
	name        string
	critical    bool
	userMessage string
	run         func(ctx context.Context) error
}

// Save drives the ordered sequence that persists the session's guest record.
// Steps run strictly one after another: the profile-creation step can change
// the identifier every later step keys on, so ordering is a correctness
// requirement. Failures after the profile is resolved are logged and the
// sequence continues; nothing is rolled back.
func (s *DefaultService) Save(ctx context.Context, sessionID string) (*SaveReport, error) {
	sess, err := s.Session(sessionID)
	if err != nil {
		return nil, err
	}
	rec := &sess.Record
	if !rec.CanSave {
		return nil, ErrNotSavable
	}

	report := &SaveReport{}

	if errs := Validate(rec, s.now()); !errs.Valid() {
		report.ValidationErrors = errs
		report.Steps = append(report.Steps, StepResult{Name: "validate", Outcome: StepHardFailure})
		return report, nil
	}
	report.Steps = append(report.Steps, StepResult{Name: "validate", Outcome: StepOK})

	// Shared state threaded through the steps.
	snapshot := sess.Snapshot
	profileID := rec.PmsProfileID
	var passthrough *models.GuestProfile

	steps := []saveStep{
		{
			name:     "ensure-profile",
			critical: true,
			run: func(ctx context.Context) error {
				if rec.PmsProfileID != "" {
					return errStepSkipped
				}
				newID, err := s.Gateway.CreateAccompanyingGuest(ctx, dots.CreateGuestRequest{
					ReservationNumber: rec.ReservationNumber,
					Gender:            rec.Gender,
					FirstName:         rec.GivenName,
					MiddleName:        rec.MiddleName,
					LastName:          rec.FamilyName,
					DocumentType:      rec.DocumentType,
				})
				if err != nil {
					return err
				}
				// The new profile's identifier is only discoverable inside the
				// refreshed guest-profile list; adopt the refreshed snapshot
				// for the rest of the sequence.
				refreshed, err := s.Gateway.FetchReservation(ctx, sess.ReservationNameID)
				if err != nil {
					return err
				}
				snapshot = refreshed
				sess.Snapshot = refreshed
				if newID != "" {
					profileID = newID
					rec.PmsProfileID = newID
				}
				return nil
			},
		},
		{
			name:     "resolve-profile",
			critical: true,
			run: func(ctx context.Context) error {
				passthrough = snapshot.FindGuestProfile(profileID)
				if passthrough == nil {
					return fmt.Errorf("profile %q not found in reservation %q", profileID, sess.ReservationNameID)
				}
				return nil
			},
		},
		{
			name: "push-reservation",
			run: func(ctx context.Context) error {
				payload := buildReservationPush(sess, snapshot, passthrough)
				return s.Gateway.PushReservationDetails(ctx, payload, true)
			},
		},
		{
			name: "update-passport",
			run: func(ctx context.Context) error {
				update := s.profileUpdate(rec, profileID)
				update.DocumentType = s.RefData.OperaDocumentCode(rec.DocumentType)
				return s.Gateway.UpdatePassport(ctx, update)
			},
		},
		{
			name: "push-document",
			run: func(ctx context.Context) error {
				return s.Gateway.PushDocumentDetails(ctx, dots.DocumentDetails{
					ReservationNameID: sess.ReservationNameID,
					ProfileID:         profileID,
					DocumentNumber:    rec.DocumentNumber,
					ExpiryDate:        rec.ExpiryDate,
					IssueDate:         rec.IssueDate,
					DocumentImage1:    rec.DocumentImageFront,
					DocumentImage2:    rec.DocumentImageBack,
					FaceImage:         rec.FaceImage,
					DocumentTypeCode:  rec.DocumentType,
					IssueCountry:      rec.PlaceOfIssue,
				})
			},
		},
		{
			name: "update-name",
			run: func(ctx context.Context) error {
				// UpdateName takes the kiosk's local document code; only the
				// passport endpoint wants the PMS translation.
				return s.Gateway.UpdateName(ctx, s.profileUpdate(rec, profileID))
			},
		},
		{
			name:        "check-in",
			userMessage: "Guest Check-In Error!",
			run: func(ctx context.Context) error {
				if rec.IsCheckedIn || !checkInEligible(snapshot.ReservationStatus) {
					return errStepSkipped
				}
				one := 1
				if err := s.Gateway.UpdateGuestReserveStatus(ctx, profileID, sess.ReservationNameID, &one, nil); err != nil {
					return err
				}
				s.refreshCheckStatus(ctx, rec)
				return nil
			},
		},
		{
			name:        "check-out",
			userMessage: "Guest Check-Out Error!",
			run: func(ctx context.Context) error {
				if rec.IsCheckedOut || snapshot.ReservationStatus != models.StatusDueOut {
					return errStepSkipped
				}
				one := 1
				if err := s.Gateway.UpdateGuestReserveStatus(ctx, profileID, sess.ReservationNameID, nil, &one); err != nil {
					return err
				}
				s.refreshCheckStatus(ctx, rec)
				return nil
			},
		},
	}

	for _, st := range steps {
		err := st.run(ctx)
		switch {
		case errors.Is(err, errStepSkipped):
			report.Steps = append(report.Steps, StepResult{Name: st.name, Outcome: StepSkipped})
		case err == nil:
			report.Steps = append(report.Steps, StepResult{Name: st.name, Outcome: StepOK})
		case st.critical:
			report.Steps = append(report.Steps, StepResult{Name: st.name, Outcome: StepHardFailure, Error: err.Error()})
			s.Logger.Error("save aborted", zap.String("step", st.name),
				zap.String("sessionID", sess.SessionID), zap.Error(err))
			return report, err
		default:
			report.Steps = append(report.Steps, StepResult{Name: st.name, Outcome: StepSoftFailure, Error: err.Error()})
			s.Logger.Warn("save step failed, continuing", zap.String("step", st.name),
				zap.String("kind", dots.KindOf(err).String()),
				zap.String("sessionID", sess.SessionID), zap.Error(err))
			if st.userMessage != "" {
				report.UserMessage = st.userMessage
			}
		}
	}

	rec.CanSave = false
	report.Success = true
	s.Logger.Info("guest record saved", zap.String("sessionID", sess.SessionID),
		zap.String("profileID", profileID))
	return report, nil
}

// buildReservationPush rebuilds the reservation-update payload: the snapshot
// echoed verbatim, with room number and adult count overridden from session
// state and the guest-profile list replaced by this one guest merged with the
// resolved profile's passthrough fields.
func buildReservationPush(sess *models.GuestSession, snapshot *models.Reservation, passthrough *models.GuestProfile) *models.Reservation {
	rec := &sess.Record

	push := *snapshot
	push.Adults = resolveAdults(sess.Adults, snapshot.Adults)
	push.RoomDetails.RoomNumber = resolveRoomNumber(sess.RoomNumber, snapshot.RoomDetails.RoomNumber)
	push.GuestProfiles = []models.GuestProfile{{
		PmsProfileID:     passthrough.PmsProfileID,
		FamilyName:       rec.FamilyName,
		GivenName:        rec.GivenName,
		GuestName:        rec.GivenName + " " + rec.FamilyName,
		Nationality:      rec.Nationality,
		Gender:           rec.Gender,
		PassportNumber:   rec.DocumentNumber,
		DocumentType:     rec.DocumentType,
		IsPrimary:        passthrough.IsPrimary,
		MembershipType:   passthrough.MembershipType,
		MembershipNumber: passthrough.MembershipNumber,
		MembershipID:     passthrough.MembershipID,
		MembershipName:   passthrough.MembershipName,
		MembershipClass:  passthrough.MembershipClass,
		MembershipLevel:  passthrough.MembershipLevel,
		FirstName:        rec.GivenName,
		MiddleName:       rec.MiddleName,
		LastName:         rec.FamilyName,
		Phones:           snapshot.Phones,
		Address:          snapshot.Address,
		Email:            snapshot.Email,
		BirthDate:        rec.DateOfBirth,
		IssueDate:        rec.IssueDate,
		IssueCountry:     rec.PlaceOfIssue,
		IsActive:         snapshot.IsActive,
		Title:            snapshot.Title,
		VipCode:          snapshot.VipCode,
	}}
	return &push
}

func (s *DefaultService) profileUpdate(rec *models.GuestRecord, profileID string) dots.ProfileUpdate {
	return dots.ProfileUpdate{
		ProfileID:      profileID,
		DOB:            rec.DateOfBirth,
		Gender:         rec.Gender,
		Nationality:    rec.Nationality,
		IssueCountry:   rec.PlaceOfIssue,
		DocumentNumber: rec.DocumentNumber,
		DocumentType:   rec.DocumentType,
		IssueDate:      rec.IssueDate,
		ExpiryDate:     rec.ExpiryDate,
	}
}

func checkInEligible(status string) bool {
	switch status {
	case models.StatusReserved, models.StatusDueIn, models.StatusInHouse:
		return true
	}
	return false
}

func resolveAdults(session, snapshot int) int {
	if session > 0 {
		return session
	}
	if snapshot > 0 {
		return snapshot
	}
	return 1
}

func resolveRoomNumber(session, snapshot string) string {
	if session != "" {
		return session
	}
	if snapshot != "" {
		return snapshot
	}
	return "0"
}
