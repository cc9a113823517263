package ical

import (
	"strings"
	"testing"
	"time"

	"wayfare/models"
)

var fixedNow = time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)

func baseItinerary() models.Itinerary {
	return models.Itinerary{
		Code:         "IT-2025-ABCDEF",
		DocTitle:     "Factory Audit",
		Participants: "Jane Doe",
		Purpose:      "Supplier audit",
		StartDate:    "2025-06-01",
		EndDate:      "2025-06-05",
	}
}

func eventBlocks(ics string) []string {
	var blocks []string
	for _, part := range strings.Split(ics, "BEGIN:VEVENT") {
		if strings.Contains(part, "END:VEVENT") {
			blocks = append(blocks, part[:strings.Index(part, "END:VEVENT")])
		}
	}
	return blocks
}

func TestFlightEventTimes(t *testing.T) {
	it := baseItinerary()
	it.StartDate, it.EndDate = "", "" // suppress the trip-window event
	it.Flights = []models.Flight{
		{Flight: "SQ856", Date: "2025-06-01", Dep: "09:00", Arr: "11:30", From: "SIN", To: "HKG"},
	}

	ics := BuildAt(it, fixedNow)
	blocks := eventBlocks(ics)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 VEVENT, got %d", len(blocks))
	}
	if !strings.Contains(ics, "DTSTART:20250601T090000Z") {
		t.Errorf("missing DTSTART, got:\n%s", ics)
	}
	if !strings.Contains(ics, "DTEND:20250601T113000Z") {
		t.Errorf("missing DTEND, got:\n%s", ics)
	}
	if !strings.Contains(blocks[0], "SIN") || !strings.Contains(blocks[0], "HKG") {
		t.Errorf("summary should carry the route, got:\n%s", blocks[0])
	}
}

func TestFlightMissingArrivalFallsBackTwoHours(t *testing.T) {
	it := baseItinerary()
	it.StartDate, it.EndDate = "", ""
	it.Flights = []models.Flight{
		{Flight: "SQ856", Date: "2025-06-01", Dep: "23:30", From: "SIN", To: "HKG"},
	}

	ics := BuildAt(it, fixedNow)
	if !strings.Contains(ics, "DTSTART:20250601T233000Z") {
		t.Fatalf("unexpected DTSTART:\n%s", ics)
	}
	// +2h crosses midnight
	if !strings.Contains(ics, "DTEND:20250602T013000Z") {
		t.Errorf("expected DTEND two hours after departure:\n%s", ics)
	}
}

func TestFlightWithoutDateOrDepIsSkipped(t *testing.T) {
	it := baseItinerary()
	it.StartDate, it.EndDate = "", ""
	it.Flights = []models.Flight{
		{Flight: "NO-DATE", Dep: "09:00"},
		{Flight: "NO-DEP", Date: "2025-06-01"},
		{Flight: "OK1", Date: "2025-06-02", Dep: "10:00"},
		{Flight: "BAD-DATE", Date: "junk", Dep: "10:00"},
	}

	blocks := eventBlocks(BuildAt(it, fixedNow))
	if len(blocks) != 1 {
		t.Fatalf("expected only the complete flight, got %d events", len(blocks))
	}
	if !strings.Contains(blocks[0], "OK1") {
		t.Errorf("wrong surviving event:\n%s", blocks[0])
	}
}

func TestVisitWithoutDateSkippedSiblingsSurvive(t *testing.T) {
	it := baseItinerary()
	it.StartDate, it.EndDate = "", ""
	it.Visits = []models.Visit{
		{Activity: "Orphan visit"},
		{Date: "2025-06-03", Facility: "Plant 1", Activity: "Audit"},
	}

	blocks := eventBlocks(BuildAt(it, fixedNow))
	if len(blocks) != 1 {
		t.Fatalf("expected 1 event, got %d", len(blocks))
	}
	if !strings.Contains(blocks[0], "Plant 1") {
		t.Errorf("sibling visit should survive:\n%s", blocks[0])
	}
	if !strings.Contains(blocks[0], "DTSTART:20250603T090000Z") ||
		!strings.Contains(blocks[0], "DTEND:20250603T170000Z") {
		t.Errorf("visit should span the 09:00-17:00 working window:\n%s", blocks[0])
	}
}

func TestHotelAllDayExclusiveEnd(t *testing.T) {
	it := baseItinerary()
	it.StartDate, it.EndDate = "", ""
	it.Accommodation = []models.Hotel{
		{HotelName: "Harbour View", Checkin: "2025-07-01", Checkout: "2025-07-03"},
	}

	ics := BuildAt(it, fixedNow)
	if !strings.Contains(ics, "DTSTART;VALUE=DATE:20250701") {
		t.Errorf("missing check-in date:\n%s", ics)
	}
	if !strings.Contains(ics, "DTEND;VALUE=DATE:20250704") {
		t.Errorf("all-day end must be checkout plus one day:\n%s", ics)
	}
}

func TestTransportZeroDurationAndStartDateFallback(t *testing.T) {
	it := baseItinerary()
	it.Transport = []models.Transport{
		{Type: "Car", Company: "Acme Cars", PickupTime: "07:45"},
	}

	ics := BuildAt(it, fixedNow)
	// No pickup_date, so the trip start date anchors the event.
	if !strings.Contains(ics, "DTSTART:20250601T074500Z") {
		t.Errorf("pickup should fall back to trip start date:\n%s", ics)
	}
	if !strings.Contains(ics, "DTEND:20250601T074500Z") {
		t.Errorf("pickup events have zero duration:\n%s", ics)
	}
}

func TestTransportWithoutAnyDateIsSkipped(t *testing.T) {
	it := baseItinerary()
	it.StartDate, it.EndDate = "", ""
	it.Transport = []models.Transport{
		{Type: "Car", PickupTime: "07:45"},
	}

	if blocks := eventBlocks(BuildAt(it, fixedNow)); len(blocks) != 0 {
		t.Fatalf("expected no events, got %d", len(blocks))
	}
}

func TestTripWindowExclusiveEnd(t *testing.T) {
	ics := BuildAt(baseItinerary(), fixedNow)
	if !strings.Contains(ics, "DTSTART;VALUE=DATE:20250601") {
		t.Errorf("missing trip start:\n%s", ics)
	}
	if !strings.Contains(ics, "DTEND;VALUE=DATE:20250606") {
		t.Errorf("trip window end must be end_date plus one day:\n%s", ics)
	}
}

func TestUIDsStableAcrossExports(t *testing.T) {
	it := baseItinerary()
	it.Flights = []models.Flight{
		{Flight: "SQ856", Date: "2025-06-01", Dep: "09:00", From: "SIN", To: "HKG"},
	}
	it.Visits = []models.Visit{{Date: "2025-06-02", Facility: "Plant 1"}}

	collect := func(ics string) []string {
		var uids []string
		for _, line := range strings.Split(ics, crlf) {
			if strings.HasPrefix(line, "UID:") {
				uids = append(uids, line)
			}
		}
		return uids
	}

	first := collect(BuildAt(it, fixedNow))
	second := collect(BuildAt(it, fixedNow.Add(48*time.Hour)))
	if len(first) == 0 || len(first) != len(second) {
		t.Fatalf("uid count mismatch: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("uid %d changed between exports: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestEscaping(t *testing.T) {
	it := baseItinerary()
	it.StartDate, it.EndDate = "", ""
	it.Visits = []models.Visit{
		{Date: "2025-06-03", Facility: "Acme, Inc.; Plant 2"},
	}

	ics := BuildAt(it, fixedNow)
	if !strings.Contains(ics, `Acme\, Inc.\; Plant 2`) {
		t.Fatalf("separators must be backslash-escaped:\n%s", ics)
	}
	if got := Unescape(`Acme\, Inc.\; Plant 2`); got != "Acme, Inc.; Plant 2" {
		t.Errorf("unescape round-trip failed: %q", got)
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	cases := []string{
		`back\slash`,
		"line1\nline2",
		"a;b,c",
		"plain",
	}
	for _, c := range cases {
		if got := Unescape(Escape(c)); got != c {
			t.Errorf("round trip of %q gave %q", c, got)
		}
	}
}

func TestDocumentUsesCRLF(t *testing.T) {
	ics := BuildAt(baseItinerary(), fixedNow)
	if !strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n") {
		t.Error("calendar must start with BEGIN:VCALENDAR and CRLF line endings")
	}
	if !strings.HasSuffix(ics, "END:VCALENDAR\r\n") {
		t.Error("calendar must end with END:VCALENDAR and a trailing CRLF")
	}
	if strings.Contains(strings.ReplaceAll(ics, "\r\n", ""), "\n") {
		t.Error("found bare LF line ending")
	}
}
