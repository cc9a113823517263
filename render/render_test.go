package render

import (
	"strings"
	"testing"
	"time"

	"wayfare/models"
)

var testNow = time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)

func sample() models.Itinerary {
	return models.Itinerary{
		Code:         "IT-2025-ABCDEF",
		DocTitle:     "Factory Audit",
		Participants: "Jane Doe",
		Purpose:      "Supplier audit",
		StartDate:    "2025-06-01",
		EndDate:      "2025-06-05",
	}
}

func TestModelPlaceholders(t *testing.T) {
	it := sample()
	it.Phones = ""
	it.Flights = []models.Flight{{Flight: "SQ856"}}

	m := Build(it, nil, "https://trips.example.com", testNow)
	if m.Phones != "N/A" {
		t.Errorf("missing phones should render N/A, got %q", m.Phones)
	}
	if m.Flights[0].Arr != "N/A" || m.Flights[0].Date != "N/A" {
		t.Errorf("missing flight fields should render N/A, got %+v", m.Flights[0])
	}
	if m.LookupURL != "https://trips.example.com/?code=IT-2025-ABCDEF" {
		t.Errorf("unexpected lookup url %q", m.LookupURL)
	}
}

func TestEmptySectionsOmitted(t *testing.T) {
	m := Build(sample(), nil, "https://trips.example.com", testNow)

	for name, renderFn := range map[string]func(Model) (string, error){
		"email": Email,
		"print": Print,
	} {
		out, err := renderFn(m)
		if err != nil {
			t.Fatalf("%s render failed: %v", name, err)
		}
		for _, heading := range []string{"Flight Schedule", "Accommodation", "Site Visits", "Ground Transportation", "Attached"} {
			if strings.Contains(out, heading) {
				t.Errorf("%s: section %q should be omitted when empty", name, heading)
			}
		}
		if !strings.Contains(out, "IT-2025-ABCDEF") {
			t.Errorf("%s: code missing from output", name)
		}
	}
}

func TestHTMLEscaping(t *testing.T) {
	it := sample()
	it.Visits = []models.Visit{{
		Date:     "2025-06-03",
		Activity: "Review <script>alert(1)</script>",
		Facility: `Acme, Inc.; "Plant 2" & Co`,
	}}

	m := Build(it, nil, "https://trips.example.com", testNow)
	for name, renderFn := range map[string]func(Model) (string, error){
		"email": Email,
		"print": Print,
	} {
		out, err := renderFn(m)
		if err != nil {
			t.Fatalf("%s render failed: %v", name, err)
		}
		if strings.Contains(out, "<script>alert(1)</script>") {
			t.Errorf("%s: unescaped script tag in output", name)
		}
		if !strings.Contains(out, "&lt;script&gt;") {
			t.Errorf("%s: angle brackets should be entity-escaped", name)
		}
		if !strings.Contains(out, "&amp; Co") {
			t.Errorf("%s: ampersand should be entity-escaped", name)
		}
	}
}

func TestDeterministicExceptFooter(t *testing.T) {
	it := sample()
	it.Accommodation = []models.Hotel{{HotelName: "Harbour View", Checkin: "2025-06-01", Checkout: "2025-06-04"}}

	first, err := Print(Build(it, nil, "https://trips.example.com", testNow))
	if err != nil {
		t.Fatal(err)
	}
	second, err := Print(Build(it, nil, "https://trips.example.com", testNow))
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("same input and clock must render identical output")
	}
}

func TestCheckoutLabelKeepsRealDate(t *testing.T) {
	it := sample()
	it.Accommodation = []models.Hotel{{HotelName: "Harbour View", Checkin: "2025-07-01", Checkout: "2025-07-03"}}

	out, err := Print(Build(it, nil, "https://trips.example.com", testNow))
	if err != nil {
		t.Fatal(err)
	}
	// The human-readable label shows the actual checkout date; only the
	// calendar export shifts it by a day.
	if !strings.Contains(out, "2025-07-03") {
		t.Error("check-out label must display the stored checkout date")
	}
	if strings.Contains(out, "2025-07-04") {
		t.Error("print view must not apply the exclusive-end shift")
	}
}

func TestAttachmentsListed(t *testing.T) {
	docs := []models.Document{{
		FileName: "visa.pdf",
		FileURL:  "https://trips.example.com/static/uploads/itineraries/x/visa.pdf",
		FileSize: 2048,
	}}

	m := Build(sample(), docs, "https://trips.example.com", testNow)
	out, err := Email(m)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "visa.pdf") || !strings.Contains(out, "2.0 KB") {
		t.Errorf("attachment name and size should be rendered:\n%s", out)
	}
}
