// Package render builds presentational views of an itinerary. One
// normalized model feeds every target (email HTML, print page, PDF) so
// the "is this section present" logic lives in exactly one place.
package render

import (
	"fmt"
	"time"

	"wayfare/models"
)

const placeholder = "N/A"

// Model is the display-ready shape shared by all render targets. Every
// field is already formatted; absent data has been replaced with an
// explicit placeholder.
type Model struct {
	Code         string
	Title        string
	Participants string
	Purpose      string
	Phones       string
	TripTag      string
	Factory      string
	StartDate    string
	EndDate      string
	LookupURL    string

	Flights   []FlightRow
	Hotels    []HotelRow
	Visits    []VisitRow
	Transport []TransportRow
	Docs      *DocsRow
	Files     []FileRow

	CustomMessage string
	GeneratedAt   string
}

type FlightRow struct {
	Airline, Flight, Date, From, To, Dep, Arr, PNR, ETicket string
}

type HotelRow struct {
	Name, Checkin, Checkout, Confirmation, Address, Phone string
}

type VisitRow struct {
	Date, Activity, Facility, Address, Transport string
}

type TransportRow struct {
	Type, Company, Confirmation, PickupTime, PickupLocation, Notes string
}

type DocsRow struct {
	VisaNumber, VisaExpiry, InsurancePolicy, InsuranceProvider, EmergencyContact string
}

type FileRow struct {
	Name, URL, Size string
}

func orNA(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func fileSize(n int64) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}

// BuildWithMessage is Build plus the coordinator's custom message for
// the email target.
func BuildWithMessage(it models.Itinerary, docs []models.Document, appURL string, now time.Time, msg string) Model {
	m := Build(it, docs, appURL, now)
	m.CustomMessage = msg
	return m
}

// Build normalizes an itinerary plus its attachments into a Model. The
// appURL forms the traveler-facing lookup link; now stamps the footer
// and is the only non-deterministic input.
func Build(it models.Itinerary, docs []models.Document, appURL string, now time.Time) Model {
	m := Model{
		Code:         it.Code,
		Title:        orNA(it.DocTitle),
		Participants: orNA(it.Participants),
		Purpose:      orNA(it.Purpose),
		Phones:       orNA(it.Phones),
		TripTag:      it.TripTag,
		Factory:      it.Factory,
		StartDate:    orNA(it.StartDate),
		EndDate:      orNA(it.EndDate),
		LookupURL:    appURL + "/?code=" + it.Code,
		GeneratedAt:  now.UTC().Format("2006-01-02 15:04 UTC"),
	}

	for _, f := range it.Flights {
		m.Flights = append(m.Flights, FlightRow{
			Airline: orNA(f.Airline),
			Flight:  orNA(f.Flight),
			Date:    orNA(f.Date),
			From:    orNA(f.From),
			To:      orNA(f.To),
			Dep:     orNA(f.Dep),
			Arr:     orNA(f.Arr),
			PNR:     f.PNR,
			ETicket: f.ETicket,
		})
	}
	for _, h := range it.Accommodation {
		m.Hotels = append(m.Hotels, HotelRow{
			Name:         orNA(h.HotelName),
			Checkin:      orNA(h.Checkin),
			Checkout:     orNA(h.Checkout),
			Confirmation: h.Confirmation,
			Address:      orNA(h.Address),
			Phone:        h.Phone,
		})
	}
	for _, v := range it.Visits {
		m.Visits = append(m.Visits, VisitRow{
			Date:      orNA(v.Date),
			Activity:  orNA(v.Activity),
			Facility:  orNA(v.Facility),
			Address:   orNA(v.Address),
			Transport: v.Transport,
		})
	}
	for _, t := range it.Transport {
		m.Transport = append(m.Transport, TransportRow{
			Type:           orNA(t.Type),
			Company:        orNA(t.Company),
			Confirmation:   t.Confirmation,
			PickupTime:     orNA(t.PickupTime),
			PickupLocation: orNA(t.PickupLocation),
			Notes:          t.Notes,
		})
	}
	if !it.TravelDocs.IsEmpty() {
		m.Docs = &DocsRow{
			VisaNumber:        orNA(it.TravelDocs.VisaNumber),
			VisaExpiry:        orNA(it.TravelDocs.VisaExpiry),
			InsurancePolicy:   orNA(it.TravelDocs.InsurancePolicy),
			InsuranceProvider: orNA(it.TravelDocs.InsuranceProvider),
			EmergencyContact:  orNA(it.TravelDocs.EmergencyContact),
		}
	}
	for _, d := range docs {
		m.Files = append(m.Files, FileRow{
			Name: orNA(d.FileName),
			URL:  d.FileURL,
			Size: fileSize(d.FileSize),
		})
	}
	return m
}
