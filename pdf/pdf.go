// Package pdf renders an itinerary into a downloadable PDF document.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"wayfare/render"
)

const accentR, accentG, accentB = 98, 187, 193

// Render lays out the normalized itinerary model on A4 pages. A QR code
// of the traveler lookup URL sits on the first page so the paper copy
// links back to the live record.
func Render(m render.Model) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, tr(m.Title))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(accentR, accentG, accentB)
	pdf.Cell(0, 8, "Reference Code: "+m.Code)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(12)

	if qrPNG, err := qrcode.Encode(m.LookupURL, qrcode.Medium, 256); err == nil {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("lookup-qr", opts, bytes.NewReader(qrPNG))
		pdf.ImageOptions("lookup-qr", 160, 15, 32, 32, false, opts, 0, "")
	}

	kv := func(label, value string) {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(40, 6, label)
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 6, tr(value), "", "L", false)
	}

	section := func(title string) {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 13)
		pdf.SetTextColor(accentR, accentG, accentB)
		pdf.Cell(0, 8, title)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(9)
	}

	kv("Travelers", m.Participants)
	kv("Purpose", m.Purpose)
	if m.Factory != "" {
		kv("Factory", m.Factory)
	}
	kv("Dates", m.StartDate+" to "+m.EndDate)
	kv("Contact", m.Phones)

	if len(m.Flights) > 0 {
		section("Flight Schedule")
		for _, f := range m.Flights {
			pdf.SetFont("Arial", "B", 10)
			pdf.Cell(0, 6, tr(fmt.Sprintf("%s %s - %s", f.Airline, f.Flight, f.Date)))
			pdf.Ln(6)
			pdf.SetFont("Arial", "", 10)
			pdf.Cell(0, 6, tr(fmt.Sprintf("%s -> %s | Dep: %s | Arr: %s", f.From, f.To, f.Dep, f.Arr)))
			pdf.Ln(6)
			if f.PNR != "" || f.ETicket != "" {
				pdf.SetFont("Arial", "", 9)
				pdf.Cell(0, 5, tr(fmt.Sprintf("PNR: %s   E-ticket: %s", f.PNR, f.ETicket)))
				pdf.Ln(6)
			}
		}
	}

	if len(m.Hotels) > 0 {
		section("Accommodation")
		for _, h := range m.Hotels {
			pdf.SetFont("Arial", "B", 10)
			pdf.Cell(0, 6, tr(h.Name))
			pdf.Ln(6)
			pdf.SetFont("Arial", "", 10)
			pdf.Cell(0, 6, tr(fmt.Sprintf("Check-in: %s | Check-out: %s", h.Checkin, h.Checkout)))
			pdf.Ln(6)
			pdf.MultiCell(0, 5, tr(h.Address), "", "L", false)
			if h.Confirmation != "" {
				pdf.SetFont("Arial", "", 9)
				pdf.Cell(0, 5, tr("Confirmation: "+h.Confirmation))
				pdf.Ln(6)
			}
		}
	}

	if len(m.Visits) > 0 {
		section("Site Visits")
		for _, v := range m.Visits {
			pdf.SetFont("Arial", "B", 10)
			pdf.Cell(0, 6, tr(v.Date+" - "+v.Activity))
			pdf.Ln(6)
			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(0, 5, tr(v.Facility+" | "+v.Address), "", "L", false)
			if v.Transport != "" {
				pdf.SetFont("Arial", "", 9)
				pdf.Cell(0, 5, tr("Transport: "+v.Transport))
				pdf.Ln(6)
			}
		}
	}

	if len(m.Transport) > 0 {
		section("Ground Transportation")
		for _, t := range m.Transport {
			pdf.SetFont("Arial", "B", 10)
			pdf.Cell(0, 6, tr(t.Type+" - "+t.Company))
			pdf.Ln(6)
			pdf.SetFont("Arial", "", 10)
			pdf.Cell(0, 6, tr(fmt.Sprintf("Pickup: %s at %s", t.PickupTime, t.PickupLocation)))
			pdf.Ln(6)
			if t.Notes != "" {
				pdf.SetFont("Arial", "", 9)
				pdf.MultiCell(0, 5, tr(t.Notes), "", "L", false)
			}
		}
	}

	if m.Docs != nil {
		section("Travel Documents")
		kv("Visa Number", m.Docs.VisaNumber)
		kv("Visa Expiry", m.Docs.VisaExpiry)
		kv("Insurance Policy", m.Docs.InsurancePolicy)
		kv("Insurance Provider", m.Docs.InsuranceProvider)
		kv("Emergency Contact", m.Docs.EmergencyContact)
	}

	if len(m.Files) > 0 {
		section("Attached Files")
		pdf.SetFont("Arial", "", 10)
		for _, f := range m.Files {
			line := f.Name
			if f.Size != "" {
				line += " (" + f.Size + ")"
			}
			pdf.Cell(0, 6, tr(line))
			pdf.Ln(6)
		}
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.Cell(0, 5, tr("Generated at "+m.GeneratedAt+" - "+m.LookupURL))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
