package guest

import (
	"regexp"
	"time"

	"guestdesk/models"
)

var (
	documentNumberPattern = regexp.MustCompile(`(?i)^[a-z0-9-]+$`)
	namePattern           = regexp.MustCompile(`^[a-zA-Z\s]+$`)
)

// Validate checks rec against the kiosk's field rules, with today as the
// reference date. All rules run; errors are collected, never short-circuited.
// The record is not mutated and the result depends only on (rec, today).
func Validate(rec *models.GuestRecord, today time.Time) models.ValidationErrors {
	errs := models.ValidationErrors{}
	// ISO calendar dates compare correctly as strings.
	todayStr := today.Format("2006-01-02")

	if rec.DocumentType == "" {
		errs["documentType"] = "Document Type is Required"
	}
	if rec.DocumentNumber == "" {
		errs["documentNumber"] = "Document Number is Required"
	} else if !documentNumberPattern.MatchString(rec.DocumentNumber) {
		errs["documentNumber"] = "Document number should be alphanumeric"
	}

	if rec.DateOfBirth != "" && rec.DateOfBirth >= todayStr {
		errs["dateOfBirth"] = "Date of birth cannot be today or in the future"
	}

	if rec.GivenName == "" {
		errs["givenName"] = "Given Name is Required"
	} else if !namePattern.MatchString(rec.GivenName) {
		errs["givenName"] = "Given name should only contain letters"
	}
	if rec.FamilyName == "" {
		errs["familyName"] = "Family Name is Required"
	} else if !namePattern.MatchString(rec.FamilyName) {
		errs["familyName"] = "Family name should only contain letters"
	}

	if rec.IssueDate != "" && rec.IssueDate > todayStr {
		errs["issueDate"] = "Issue date cannot be in the future"
	}
	if rec.ExpiryDate != "" && rec.ExpiryDate < todayStr {
		errs["expiryDate"] = "Expiry date should not be a past date"
	}

	if rec.DocumentImageFront == "" {
		errs["documentImageFront"] = "Document Image is Required"
	}
	if rec.DocumentType == models.DocTypeIdentityCard && rec.DocumentImageBack == "" {
		errs["documentImageBack"] = "Back Document Image is Required"
	}

	return errs
}
