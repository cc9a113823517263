package models

import (
	"fmt"
	"time"
)

// Itinerary status values. Draft is the starting state; Sent is entered
// only when a dispatch succeeds; Completed and Cancelled are terminal.
const (
	StatusDraft     = "draft"
	StatusSent      = "sent"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Itinerary is the aggregate trip record.
type Itinerary struct {
	ItineraryID string     `json:"id" bson:"itineraryid"`
	Code        string     `json:"code" bson:"code"`
	CreatedBy   string     `json:"created_by" bson:"created_by"`
	Status      string     `json:"status" bson:"status"`
	SentTo      string     `json:"sent_to,omitempty" bson:"sent_to,omitempty"`
	SentAt      *time.Time `json:"sent_at,omitempty" bson:"sent_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`

	DocTitle     string `json:"doc_title" bson:"doc_title"`
	TripTag      string `json:"trip_tag,omitempty" bson:"trip_tag,omitempty"`
	Participants string `json:"participants" bson:"participants"`
	Phones       string `json:"phones,omitempty" bson:"phones,omitempty"`
	Purpose      string `json:"purpose" bson:"purpose"`
	Factory      string `json:"factory,omitempty" bson:"factory,omitempty"`
	StartDate    string `json:"start_date" bson:"start_date"`
	EndDate      string `json:"end_date" bson:"end_date"`

	Flights       []Flight    `json:"flights" bson:"flights"`
	Visits        []Visit     `json:"visits" bson:"visits"`
	Accommodation []Hotel     `json:"accommodation" bson:"accommodation"`
	Transport     []Transport `json:"transport" bson:"transport"`
	TravelDocs    TravelDocs  `json:"travel_docs,omitempty" bson:"travel_docs,omitempty"`

	// Legacy field name from before the transport rename. Read-only
	// compatibility: Normalize folds it into Transport, nothing writes it.
	GroundTransport []Transport `json:"ground_transport,omitempty" bson:"ground_transport,omitempty"`
}

type Flight struct {
	Flight  string `json:"flight,omitempty" bson:"flight,omitempty"`
	Airline string `json:"airline,omitempty" bson:"airline,omitempty"`
	Date    string `json:"date,omitempty" bson:"date,omitempty"`
	From    string `json:"from,omitempty" bson:"from,omitempty"`
	To      string `json:"to,omitempty" bson:"to,omitempty"`
	Dep     string `json:"dep,omitempty" bson:"dep,omitempty"`
	Arr     string `json:"arr,omitempty" bson:"arr,omitempty"`
	PNR     string `json:"pnr,omitempty" bson:"pnr,omitempty"`
	ETicket string `json:"eticket,omitempty" bson:"eticket,omitempty"`
}

type Visit struct {
	Date      string `json:"date,omitempty" bson:"date,omitempty"`
	Activity  string `json:"activity,omitempty" bson:"activity,omitempty"`
	Facility  string `json:"facility,omitempty" bson:"facility,omitempty"`
	Address   string `json:"address,omitempty" bson:"address,omitempty"`
	Transport string `json:"transport,omitempty" bson:"transport,omitempty"`
}

type Hotel struct {
	HotelName    string `json:"hotel_name,omitempty" bson:"hotel_name,omitempty"`
	Checkin      string `json:"checkin,omitempty" bson:"checkin,omitempty"`
	Checkout     string `json:"checkout,omitempty" bson:"checkout,omitempty"`
	Confirmation string `json:"confirmation,omitempty" bson:"confirmation,omitempty"`
	Address      string `json:"address,omitempty" bson:"address,omitempty"`
	Phone        string `json:"phone,omitempty" bson:"phone,omitempty"`
}

type Transport struct {
	Type           string `json:"type,omitempty" bson:"type,omitempty"`
	Company        string `json:"company,omitempty" bson:"company,omitempty"`
	Confirmation   string `json:"confirmation,omitempty" bson:"confirmation,omitempty"`
	PickupDate     string `json:"pickup_date,omitempty" bson:"pickup_date,omitempty"`
	PickupTime     string `json:"pickup_time,omitempty" bson:"pickup_time,omitempty"`
	PickupLocation string `json:"pickup_location,omitempty" bson:"pickup_location,omitempty"`
	Notes          string `json:"notes,omitempty" bson:"notes,omitempty"`
}

// TravelDocs is a singleton per itinerary, not a collection.
type TravelDocs struct {
	VisaNumber        string `json:"visa_number,omitempty" bson:"visa_number,omitempty"`
	VisaExpiry        string `json:"visa_expiry,omitempty" bson:"visa_expiry,omitempty"`
	InsurancePolicy   string `json:"insurance_policy,omitempty" bson:"insurance_policy,omitempty"`
	InsuranceProvider string `json:"insurance_provider,omitempty" bson:"insurance_provider,omitempty"`
	EmergencyContact  string `json:"emergency_contact,omitempty" bson:"emergency_contact,omitempty"`
}

// IsEmpty reports whether no travel-document field is set.
func (td TravelDocs) IsEmpty() bool {
	return td == TravelDocs{}
}

// Normalize folds the legacy ground_transport field into Transport.
// Applied on load and on save so nothing downstream sees the old name.
func (it *Itinerary) Normalize() {
	if len(it.Transport) == 0 && len(it.GroundTransport) > 0 {
		it.Transport = it.GroundTransport
	}
	it.GroundTransport = nil
}

// Validate checks the required descriptive fields before any write.
func (it *Itinerary) Validate() error {
	if it.DocTitle == "" {
		return fmt.Errorf("doc_title is required")
	}
	if it.Participants == "" {
		return fmt.Errorf("participants is required")
	}
	if it.Purpose == "" {
		return fmt.Errorf("purpose is required")
	}
	if it.StartDate == "" || it.EndDate == "" {
		return fmt.Errorf("start_date and end_date are required")
	}
	start, err := time.Parse("2006-01-02", it.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start_date: %q", it.StartDate)
	}
	end, err := time.Parse("2006-01-02", it.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end_date: %q", it.EndDate)
	}
	if end.Before(start) {
		return fmt.Errorf("end_date %s is before start_date %s", it.EndDate, it.StartDate)
	}
	return nil
}

// IsTerminal reports whether a status admits no further transitions.
func IsTerminal(status string) bool {
	return status == StatusCompleted || status == StatusCancelled
}

// CanTransition reports whether the status machine permits from → to.
// draft → sent happens only through a successful dispatch; completed and
// cancelled are entered from any non-terminal state by explicit user
// action and never left.
func CanTransition(from, to string) bool {
	if IsTerminal(from) {
		return false
	}
	switch to {
	case StatusSent:
		return from == StatusDraft
	case StatusCompleted, StatusCancelled:
		return from == StatusDraft || from == StatusSent
	default:
		return false
	}
}
