package models

// ScanSide identifies which face of a physical document was captured.
type ScanSide string

const (
	ScanSideFront ScanSide = "front"
	ScanSideBack  ScanSide = "back"
)

// ScannedDocument is the field set extracted by the scanner service.
type ScannedDocument struct {
	DocumentType        string `json:"DocumentType"`
	DocumentNumber      string `json:"DocumentNumber"`
	NationalityFullName string `json:"NationalityFullName"`
	DateOfBirth         string `json:"DateOfBirth"`
	GivenName           string `json:"GivenName"`
	MiddleName          string `json:"MiddleName"`
	LastName            string `json:"LastName"`
	Gender              string `json:"Gender"` // single-letter code: M / F
	IssueDate           string `json:"IssueDate"`
	ExpiryDate          string `json:"ExpiryDate"`
	IssuingPlace        string `json:"IssuingPlace"`
	DocumentImageBase64 string `json:"DocumentImageBase64"`
	FaceImageBase64     string `json:"FaceImageBase64"`
}

// ScanResult is the scanner service's response envelope.
type ScanResult struct {
	Result          bool            `json:"Result"`
	ScannedDocument ScannedDocument `json:"ScannedDocument"`
	ErrorMessage    string          `json:"ErrorMessage"`
}

// ProfileDocument is a stored document image record fetched by profile ID.
type ProfileDocument struct {
	DocumentType   string `json:"DocumentType"`
	Nationality    string `json:"Nationality"`
	DocumentNumber string `json:"DocumentNumber"`
	IssueDate      string `json:"IssueDate"`
	ExpiryDate     string `json:"ExpiryDate"`
	IssueCountry   string `json:"IssueCountry"`
	DocumentImage1 string `json:"DocumentImage1"`
	DocumentImage2 string `json:"DocumentImage2"`
	FaceImage      string `json:"FaceImage"`
	FirstName      string `json:"FirstName"`
	MiddleName     string `json:"MiddleName"`
	LastName       string `json:"LastName"`
}

// CheckStatus reflects the guest's check-in/check-out state in the PMS for one
// (reservation, profile) pair.
type CheckStatus struct {
	IsCheckIn  bool `json:"IsCheckIn"`
	IsCheckOut bool `json:"IsCheckOut"`
}

// Country is one entry of the nationality reference list.
type Country struct {
	CountryCode string `json:"CountryCode"`
	CountryName string `json:"CountryName"`
}

// DocumentTypeMapping maps a kiosk document code to the PMS's own code.
type DocumentTypeMapping struct {
	DocumentCode      string `json:"DocumentCode"`
	OperaDocumentCode string `json:"OperaDocumentCode"`
}
