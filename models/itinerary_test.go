package models

import "testing"

func validItinerary() Itinerary {
	return Itinerary{
		DocTitle:     "Supplier Audit",
		Participants: "A. Chen, B. Rao",
		Purpose:      "Factory audit",
		StartDate:    "2025-06-01",
		EndDate:      "2025-06-05",
	}
}

func TestValidateAcceptsCompleteRecord(t *testing.T) {
	it := validItinerary()
	if err := it.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Itinerary)
	}{
		{"missing title", func(it *Itinerary) { it.DocTitle = "" }},
		{"missing participants", func(it *Itinerary) { it.Participants = "" }},
		{"missing purpose", func(it *Itinerary) { it.Purpose = "" }},
		{"missing start date", func(it *Itinerary) { it.StartDate = "" }},
		{"missing end date", func(it *Itinerary) { it.EndDate = "" }},
		{"malformed start date", func(it *Itinerary) { it.StartDate = "06/01/2025" }},
		{"malformed end date", func(it *Itinerary) { it.EndDate = "2025-6-5" }},
		{"end before start", func(it *Itinerary) { it.StartDate = "2025-06-05"; it.EndDate = "2025-06-01" }},
	}
	for _, tc := range cases {
		it := validItinerary()
		tc.mutate(&it)
		if err := it.Validate(); err == nil {
			t.Errorf("%s: Validate() = nil, want error", tc.name)
		}
	}
}

func TestValidateSingleDayTrip(t *testing.T) {
	it := validItinerary()
	it.EndDate = it.StartDate
	if err := it.Validate(); err != nil {
		t.Errorf("single-day trip rejected: %v", err)
	}
}

func TestNormalizeFoldsLegacyTransport(t *testing.T) {
	it := Itinerary{
		GroundTransport: []Transport{{Type: "car", Company: "City Cars"}},
	}
	it.Normalize()
	if len(it.Transport) != 1 || it.Transport[0].Company != "City Cars" {
		t.Fatalf("legacy transport not folded: %+v", it.Transport)
	}
	if it.GroundTransport != nil {
		t.Error("ground_transport should be cleared after Normalize")
	}
}

func TestNormalizePrefersCanonicalField(t *testing.T) {
	it := Itinerary{
		Transport:       []Transport{{Type: "train"}},
		GroundTransport: []Transport{{Type: "car"}},
	}
	it.Normalize()
	if len(it.Transport) != 1 || it.Transport[0].Type != "train" {
		t.Fatalf("canonical transport overwritten: %+v", it.Transport)
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusDraft, StatusSent, true},
		{StatusDraft, StatusCompleted, true},
		{StatusDraft, StatusCancelled, true},
		{StatusSent, StatusCompleted, true},
		{StatusSent, StatusCancelled, true},
		{StatusSent, StatusSent, false},
		{StatusSent, StatusDraft, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusCompleted, false},
		{StatusCompleted, StatusSent, false},
		{StatusDraft, "archived", false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []string{StatusDraft, StatusSent} {
		if IsTerminal(s) {
			t.Errorf("IsTerminal(%s) = true, want false", s)
		}
	}
	for _, s := range []string{StatusCompleted, StatusCancelled} {
		if !IsTerminal(s) {
			t.Errorf("IsTerminal(%s) = false, want true", s)
		}
	}
}

func TestTravelDocsIsEmpty(t *testing.T) {
	if !(TravelDocs{}).IsEmpty() {
		t.Error("zero TravelDocs should be empty")
	}
	if (TravelDocs{VisaNumber: "V123"}).IsEmpty() {
		t.Error("TravelDocs with a visa number should not be empty")
	}
}
