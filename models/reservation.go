package models

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Reservation is the reservation payload as last fetched from DOTS. Fields the
// kiosk never interprets are kept as raw JSON so a re-push echoes them exactly
// as they arrived; only room number, adult count and the guest-profile list are
// ever overridden.
type Reservation struct {
	ConfirmationNumber        string          `json:"ConfirmationNumber"`
	ReservationNumber         string          `json:"ReservationNumber"`
	ReservationNameID         string          `json:"ReservationNameID"`
	ArrivalDate               string          `json:"ArrivalDate"`
	DepartureDate             string          `json:"DepartureDate"`
	CreatedDateTime           string          `json:"CreatedDateTime"`
	Adults                    int             `json:"Adults"`
	Child                     json.RawMessage `json:"Child"`
	ReservationStatus         string          `json:"ReservationStatus"`
	ComputedReservationStatus json.RawMessage `json:"ComputedReservationStatus"`
	LegNumber                 json.RawMessage `json:"LegNumber"`
	ChainCode                 string          `json:"ChainCode"`
	ExpectedDepartureTime     json.RawMessage `json:"ExpectedDepartureTime"`
	ExpectedArrivalTime       json.RawMessage `json:"ExpectedArrivalTime"`
	ReservationSourceCode     json.RawMessage `json:"ReservationSourceCode"`
	ReservationType           json.RawMessage `json:"ReservationType"`
	PrintRate                 json.RawMessage `json:"PrintRate"`
	NoPost                    json.RawMessage `json:"NoPost"`
	DoNotMoveRoom             json.RawMessage `json:"DoNotMoveRoom"`
	TotalAmount               json.RawMessage `json:"TotalAmount"`
	TotalTax                  json.RawMessage `json:"TotalTax"`
	IsTaxInclusive            json.RawMessage `json:"IsTaxInclusive"`
	CurrentBalance            json.RawMessage `json:"CurrentBalance"`
	RoomDetails               RoomDetails     `json:"RoomDetails"`
	RateDetails               RateDetails     `json:"RateDetails"`
	PartyCode                 json.RawMessage `json:"PartyCode"`
	PaymentMethod             json.RawMessage `json:"PaymentMethod"`
	IsPrimary                 json.RawMessage `json:"IsPrimary"`
	ETA                       json.RawMessage `json:"ETA"`
	FlightNo                  json.RawMessage `json:"FlightNo"`
	IsCardDetailPresent       json.RawMessage `json:"IsCardDetailPresent"`
	IsDepositAvailable        json.RawMessage `json:"IsDepositAvailable"`
	IsPreCheckedInPMS         json.RawMessage `json:"IsPreCheckedInPMS"`
	IsSaavyPaid               json.RawMessage `json:"IsSaavyPaid"`
	SharerReservations        json.RawMessage `json:"SharerReservations"`
	DepositDetail             json.RawMessage `json:"DepositDetail"`
	PreferanceDetails         json.RawMessage `json:"PreferanceDetails"`
	PackageDetails            json.RawMessage `json:"PackageDetails"`
	UserDefinedFields         json.RawMessage `json:"userDefinedFields"`
	GuestProfiles             []GuestProfile  `json:"GuestProfiles"`
	Alerts                    json.RawMessage `json:"Alerts"`
	IsMemberShipEnrolled      json.RawMessage `json:"IsMemberShipEnrolled"`
	ReservationDocument       json.RawMessage `json:"reservationDocument"`
	GuestSignature            json.RawMessage `json:"GuestSignature"`
	FolioEmail                string          `json:"FolioEmail"`
	IsBreakFastAvailable      json.RawMessage `json:"IsBreakFastAvailable"`
	Phones                    json.RawMessage `json:"Phones"`
	Address                   json.RawMessage `json:"Address"`
	Email                     json.RawMessage `json:"Email"`
	IsActive                  json.RawMessage `json:"IsActive"`
	Title                     json.RawMessage `json:"Title"`
	VipCode                   json.RawMessage `json:"VipCode"`

	// Extra captures any field the integration layer sends that this struct
	// does not enumerate, so a re-push echoes it back instead of dropping it.
	Extra map[string]json.RawMessage `json:"-"`
}

// reservationAlias avoids recursing into the custom JSON methods.
type reservationAlias Reservation

var reservationKnownKeys = knownJSONKeys(Reservation{})

func knownJSONKeys(v any) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		if idx := strings.IndexByte(tag, ','); idx >= 0 {
			tag = tag[:idx]
		}
		keys[tag] = true
	}
	return keys
}

func (r *Reservation) UnmarshalJSON(data []byte) error {
	var alias reservationAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for key := range all {
		if reservationKnownKeys[key] {
			delete(all, key)
		}
	}
	if len(all) > 0 {
		alias.Extra = all
	}
	*r = Reservation(alias)
	return nil
}

func (r Reservation) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(reservationAlias(r))
	if err != nil {
		return nil, err
	}
	if len(r.Extra) == 0 {
		return data, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for key, value := range r.Extra {
		merged[key] = value
	}
	return json.Marshal(merged)
}

// RoomDetails carries the room block; RoomNumber is the one field the kiosk
// may override.
type RoomDetails struct {
	RoomNumber               string          `json:"RoomNumber"`
	RoomType                 json.RawMessage `json:"RoomType"`
	RoomTypeDescription      json.RawMessage `json:"RoomTypeDescription"`
	RoomTypeShortDescription json.RawMessage `json:"RoomTypeShortDescription"`
	RoomStatus               json.RawMessage `json:"RoomStatus"`
	RTC                      json.RawMessage `json:"RTC"`
	RTCDescription           json.RawMessage `json:"RTCDescription"`
	RTCShortDescription      json.RawMessage `json:"RTCShortDescription"`
}

type RateDetails struct {
	RateCode       json.RawMessage `json:"RateCode"`
	RateAmount     json.RawMessage `json:"RateAmount"`
	DailyRates     json.RawMessage `json:"DailyRates"`
	IsMultipleRate json.RawMessage `json:"IsMultipleRate"`
}

// GuestProfile is one guest's entry inside a reservation. Membership and
// contact blocks are immutable passthrough: the kiosk echoes them unchanged
// when it rebuilds the profile list on save.
type GuestProfile struct {
	PmsProfileID         string          `json:"PmsProfileID"`
	FamilyName           string          `json:"FamilyName"`
	GivenName            string          `json:"GivenName"`
	GuestName            string          `json:"GuestName"`
	Nationality          string          `json:"Nationality"`
	Gender               string          `json:"Gender"`
	PassportNumber       string          `json:"PassportNumber"`
	DocumentType         string          `json:"DocumentType"`
	IsPrimary            bool            `json:"IsPrimary"`
	MembershipType       json.RawMessage `json:"MembershipType"`
	MembershipNumber     json.RawMessage `json:"MembershipNumber"`
	MembershipID         json.RawMessage `json:"MembershipID"`
	MembershipName       json.RawMessage `json:"MembershipName"`
	MembershipClass      json.RawMessage `json:"MembershipClass"`
	MembershipLevel      json.RawMessage `json:"MembershipLevel"`
	FirstName            string          `json:"FirstName"`
	MiddleName           string          `json:"MiddleName"`
	LastName             string          `json:"LastName"`
	Phones               json.RawMessage `json:"Phones"`
	Address              json.RawMessage `json:"Address"`
	Email                json.RawMessage `json:"Email"`
	BirthDate            string          `json:"BirthDate"`
	IssueDate            string          `json:"IssueDate"`
	IssueCountry         string          `json:"IssueCountry"`
	IsActive             json.RawMessage `json:"IsActive"`
	Title                json.RawMessage `json:"Title"`
	VipCode              json.RawMessage `json:"VipCode"`
	CloudProfileDetailID json.RawMessage `json:"CloudProfileDetailID"`
	// The integration layer spells this field "Saturated".
	Salutation string `json:"Saturated,omitempty"`
}

// FindGuestProfile returns the profile matching the given PMS profile ID, or
// nil when the reservation carries no such guest.
func (r *Reservation) FindGuestProfile(pmsProfileID string) *GuestProfile {
	for i := range r.GuestProfiles {
		if r.GuestProfiles[i].PmsProfileID == pmsProfileID {
			return &r.GuestProfiles[i]
		}
	}
	return nil
}
