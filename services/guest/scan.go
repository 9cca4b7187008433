package guest

import (
	"context"
	"fmt"

	"guestdesk/models"

	"go.uber.org/zap"
)

// Scan captures one side of the guest's document and reconciles the result
// into the session's record. A scanner failure leaves the record unchanged.
func (s *DefaultService) Scan(ctx context.Context, sessionID string, side models.ScanSide) (*models.GuestSession, error) {
	if side != models.ScanSideFront && side != models.ScanSideBack {
		return nil, fmt.Errorf("unknown scan side %q", side)
	}
	sess, err := s.Session(sessionID)
	if err != nil {
		return nil, err
	}

	doc, err := s.Scanner.ScanDocument(ctx)
	if err != nil {
		s.Logger.Warn("document scan failed", zap.String("side", string(side)), zap.Error(err))
		return nil, err
	}

	nationalityCode := s.RefData.NationalityCode(doc.NationalityFullName)
	ApplyScan(sess, side, doc, nationalityCode)
	return sess, nil
}

// ApplyScan merges a scan result into the session for the given side.
//
// First scan wins per side: a side whose image slot is already populated
// discards the scan result entirely, apart from the back side's completion
// flag. With an empty slot, the front side overwrites a field whenever the
// record field is empty or the scan produced a non-empty value, so a scan
// never blanks a filled field but does refresh one when it found new data.
// The back side only fills fields that are still empty.
func ApplyScan(sess *models.GuestSession, side models.ScanSide, doc *models.ScannedDocument, nationalityCode string) {
	rec := &sess.Record

	switch side {
	case models.ScanSideFront:
		if rec.DocumentImageFront == "" {
			applyFront(rec, doc, nationalityCode)
		}
		sess.BackScanned = false
	case models.ScanSideBack:
		if rec.DocumentImageBack == "" {
			applyBack(rec, doc, nationalityCode)
		}
		sess.BackScanned = true
	}
}

func applyFront(rec *models.GuestRecord, doc *models.ScannedDocument, nationalityCode string) {
	// refresh overwrites dst when it is empty or the scan found a value. The
	// written value may differ from the tested one (normalized gender,
	// truncated dates, translated nationality).
	refresh := func(dst *string, found string, value string) {
		if *dst == "" || found != "" {
			*dst = value
		}
	}

	refresh(&rec.DocumentType, doc.DocumentType, doc.DocumentType)
	refresh(&rec.Nationality, nationalityCode, nationalityCode)
	refresh(&rec.DocumentNumber, doc.DocumentNumber, doc.DocumentNumber)
	refresh(&rec.DateOfBirth, doc.DateOfBirth, truncateDate(doc.DateOfBirth))
	refresh(&rec.GivenName, doc.GivenName, doc.GivenName)
	refresh(&rec.MiddleName, doc.MiddleName, doc.MiddleName)
	refresh(&rec.Gender, doc.Gender, normalizeGender(doc.Gender))
	refresh(&rec.FamilyName, doc.LastName, doc.LastName)
	refresh(&rec.IssueDate, doc.IssueDate, truncateDate(doc.IssueDate))
	refresh(&rec.ExpiryDate, doc.ExpiryDate, truncateDate(doc.ExpiryDate))
	refresh(&rec.PlaceOfIssue, doc.IssuingPlace, doc.IssuingPlace)
	refresh(&rec.DocumentImageFront, doc.DocumentImageBase64, doc.DocumentImageBase64)
	refresh(&rec.FaceImage, doc.FaceImageBase64, doc.FaceImageBase64)
}

func applyBack(rec *models.GuestRecord, doc *models.ScannedDocument, nationalityCode string) {
	fill := func(dst *string, value string) {
		if *dst == "" {
			*dst = value
		}
	}

	fill(&rec.DocumentType, doc.DocumentType)
	fill(&rec.Nationality, nationalityCode)
	fill(&rec.DocumentNumber, doc.DocumentNumber)
	fill(&rec.DateOfBirth, truncateDate(doc.DateOfBirth))
	fill(&rec.GivenName, doc.GivenName)
	fill(&rec.MiddleName, doc.MiddleName)
	fill(&rec.FamilyName, doc.LastName)
	fill(&rec.IssueDate, truncateDate(doc.IssueDate))
	fill(&rec.ExpiryDate, truncateDate(doc.ExpiryDate))
	fill(&rec.PlaceOfIssue, doc.IssuingPlace)
	fill(&rec.DocumentImageBack, doc.DocumentImageBase64)
	fill(&rec.FaceImage, doc.FaceImageBase64)
	if rec.Gender == "" {
		rec.Gender = normalizeGender(doc.Gender)
	}
}

// normalizeGender maps the scanner's single-letter code to the record's
// values; anything unrecognised maps to empty.
func normalizeGender(code string) string {
	switch code {
	case "M":
		return "male"
	case "F":
		return "female"
	default:
		return ""
	}
}
