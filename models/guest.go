package models

import (
	"encoding/json"
	"time"
)

// Document type codes used by the kiosk. The PMS side uses its own codes; see
// the document-type index in services/refdata.
const (
	DocTypePassport       = "PASSPORT"
	DocTypeIdentityCard   = "IDENTITYCARD"
	DocTypeResidentPermit = "RESIDENTPERMIT"
	DocTypeDrivingLicense = "DRIVINGLICENSE"
	DocTypeVisa           = "VISA"
	DocTypeUnknown        = "UNKNOWN"
)

// Reservation statuses that permit a kiosk check-in, and the one that permits
// a check-out.
const (
	StatusReserved = "RESERVED"
	StatusDueIn    = "DUEIN"
	StatusInHouse  = "INHOUSE"
	StatusDueOut   = "DUEOUT"
)

// GuestRecord is the unit of work for one guest: identity and document data
// merged from the stored PMS profile, the reservation's embedded profile and
// any scanned document, in that order of precedence. Dates are ISO calendar
// dates ("2006-01-02") or empty.
type GuestRecord struct {
	PmsProfileID string `json:"pmsProfileId"`
	GivenName    string `json:"givenName"`
	MiddleName   string `json:"middleName"`
	FamilyName   string `json:"familyName"`
	Salutation   string `json:"salutation"`
	Gender       string `json:"gender"` // "male", "female" or ""
	DateOfBirth  string `json:"dateOfBirth"`

	DocumentType   string `json:"documentType"`
	DocumentNumber string `json:"documentNumber"`
	IssueDate      string `json:"issueDate"`
	ExpiryDate     string `json:"expiryDate"`
	PlaceOfIssue   string `json:"placeOfIssue"`
	Nationality    string `json:"nationality"` // country code

	// Base64 image payloads, passed through opaquely.
	DocumentImageFront string `json:"documentImageFront,omitempty"`
	DocumentImageBack  string `json:"documentImageBack,omitempty"`
	FaceImage          string `json:"faceImage,omitempty"`

	ReservationNumber string          `json:"reservationNumber"`
	ReservationNameID string          `json:"reservationNameId"`
	Address           json.RawMessage `json:"address,omitempty"`

	IsCheckedIn  bool `json:"isCheckedIn"`
	IsCheckedOut bool `json:"isCheckedOut"`
	CanSave      bool `json:"canSave"`
}

// ValidationErrors maps a field name to a human-readable message. An empty set
// means the record is valid.
type ValidationErrors map[string]string

func (v ValidationErrors) Valid() bool { return len(v) == 0 }

// GuestSession is one guest's transient editing session. It lives in memory
// only; discarding the session discards the record.
type GuestSession struct {
	SessionID         string       `json:"sessionId"`
	ReservationNameID string       `json:"reservationNameId"`
	Record            GuestRecord  `json:"record"`
	Snapshot          *Reservation `json:"-"`

	// Editable stay fields from the summary screen; empty/zero means "use the
	// snapshot value".
	RoomNumber string `json:"roomNumber,omitempty"`
	Adults     int    `json:"adults,omitempty"`

	// BackScanned flips once the back side has been scanned, whether or not
	// the scan changed anything.
	BackScanned bool      `json:"backScanned"`
	CreatedAt   time.Time `json:"createdAt"`
}
