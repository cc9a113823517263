// Package ical turns an itinerary into an iCalendar (.ics) document.
package ical

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"wayfare/models"
)

const (
	crlf      = "\r\n"
	prodID    = "-//Wayfare//Itinerary//EN"
	uidDomain = "@wayfare.app"

	// Substitute duration when a flight has no arrival time.
	fallbackFlightDuration = 2 * time.Hour
)

// Escape applies RFC 5545 TEXT escaping: backslash, semicolon, comma and
// newlines. Unescaped separators corrupt the document for any field that
// contains them.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, "\r\n", `\n`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

// Unescape reverses Escape. Used by tests and by callers that round-trip
// summaries back into display strings.
func Unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n', 'N':
			b.WriteByte('\n')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// parseDate accepts the calendar-date forms the editor stores. A date
// that parses with neither layout causes the caller to skip the entry.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// parseClock reads "HH:MM"; missing or malformed parts fall back to zero,
// matching the lenient behavior travelers' hand-entered times need.
func parseClock(s string) (int, int) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	hh, _ := strconv.Atoi(parts[0])
	mm := 0
	if len(parts) == 2 {
		mm, _ = strconv.Atoi(parts[1])
	}
	return hh, mm
}

func dateValue(t time.Time) string {
	return t.Format("20060102")
}

// utcStamp renders a naive-UTC date-time: the wall-clock time is kept as
// written and stamped Z without any zone conversion.
func utcStamp(t time.Time) string {
	return t.Format("20060102T150405Z")
}

// at combines a calendar day with an "HH:MM" clock string in UTC.
func at(day time.Time, clock string) time.Time {
	hh, mm := parseClock(clock)
	return time.Date(day.Year(), day.Month(), day.Day(), hh, mm, 0, 0, time.UTC)
}

func uid(code, category string, idx int) string {
	return Escape(fmt.Sprintf("%s-%s-%d", code, category, idx)) + uidDomain
}

type builder struct {
	lines []string
}

func (b *builder) add(line string) {
	b.lines = append(b.lines, line)
}

func (b *builder) event(uid, dtstamp string, body ...string) {
	b.add("BEGIN:VEVENT")
	b.add("UID:" + uid)
	b.add("DTSTAMP:" + dtstamp)
	for _, l := range body {
		if l != "" {
			b.add(l)
		}
	}
	b.add("END:VEVENT")
}

// Build renders the full VCALENDAR document for an itinerary. Missing
// optional fields degrade by omitting the affected event; Build itself
// never fails.
func Build(it models.Itinerary) string {
	return BuildAt(it, time.Now().UTC())
}

// BuildAt is Build with an explicit generation time, so output is
// reproducible under test. UIDs depend only on the code, the event
// category and the entry index: re-exporting yields stable identities and
// calendar clients treat changed times as updates.
func BuildAt(it models.Itinerary, now time.Time) string {
	b := &builder{}
	b.add("BEGIN:VCALENDAR")
	b.add("VERSION:2.0")
	b.add("PRODID:" + prodID)
	b.add("CALSCALE:GREGORIAN")
	b.add("METHOD:PUBLISH")

	dtstamp := utcStamp(now.UTC())

	// Trip window as an all-day event; DTEND is exclusive so the end
	// date is pushed out by one day.
	if start, ok := parseDate(it.StartDate); ok {
		if end, ok := parseDate(it.EndDate); ok {
			summary := it.DocTitle
			if summary == "" {
				summary = "Business Trip"
			}
			desc := it.Purpose
			if desc == "" {
				desc = "Business travel"
			}
			desc += "\nCode: " + it.Code + "\nTraveler: " + it.Participants
			b.event(uid(it.Code, "trip", 0), dtstamp,
				"DTSTART;VALUE=DATE:"+dateValue(start),
				"DTEND;VALUE=DATE:"+dateValue(end.AddDate(0, 0, 1)),
				"SUMMARY:"+Escape(summary),
				"DESCRIPTION:"+Escape(desc),
			)
		}
	}

	for idx, f := range it.Flights {
		day, ok := parseDate(f.Date)
		if !ok || f.Dep == "" {
			continue
		}
		start := at(day, f.Dep)
		var end time.Time
		if f.Arr != "" {
			end = at(day, f.Arr)
		} else {
			end = start.Add(fallbackFlightDuration)
		}
		name := f.Flight
		if name == "" {
			name = "Flight"
		}
		body := []string{
			"DTSTART:" + utcStamp(start),
			"DTEND:" + utcStamp(end),
			fmt.Sprintf("SUMMARY:✈️ %s: %s → %s", Escape(name), Escape(f.From), Escape(f.To)),
		}
		if f.PNR != "" {
			body = append(body, "DESCRIPTION:"+Escape("PNR: "+f.PNR))
		}
		if f.From != "" {
			body = append(body, "LOCATION:"+Escape(f.From+" Airport"))
		}
		b.event(uid(it.Code, "flight", idx), dtstamp, body...)
	}

	for idx, v := range it.Visits {
		day, ok := parseDate(v.Date)
		if !ok {
			continue
		}
		name := v.Facility
		if name == "" {
			name = v.Activity
		}
		if name == "" {
			name = "Site Visit"
		}
		body := []string{
			"DTSTART:" + utcStamp(at(day, "09:00")),
			"DTEND:" + utcStamp(at(day, "17:00")),
			"SUMMARY:" + Escape("📍 Visit: "+name),
		}
		if v.Activity != "" {
			desc := v.Activity
			if v.Transport != "" {
				desc += "\nTransport: " + v.Transport
			}
			body = append(body, "DESCRIPTION:"+Escape(desc))
		}
		if v.Address != "" {
			body = append(body, "LOCATION:"+Escape(v.Address))
		}
		b.event(uid(it.Code, "visit", idx), dtstamp, body...)
	}

	for idx, h := range it.Accommodation {
		checkin, ok := parseDate(h.Checkin)
		if !ok {
			continue
		}
		checkout, ok := parseDate(h.Checkout)
		if !ok {
			continue
		}
		name := h.HotelName
		if name == "" {
			name = "Hotel"
		}
		body := []string{
			"DTSTART;VALUE=DATE:" + dateValue(checkin),
			"DTEND;VALUE=DATE:" + dateValue(checkout.AddDate(0, 0, 1)),
			"SUMMARY:" + Escape("🏨 "+name),
		}
		var desc []string
		if h.Confirmation != "" {
			desc = append(desc, "Confirmation: "+h.Confirmation)
		}
		if h.Phone != "" {
			desc = append(desc, "Phone: "+h.Phone)
		}
		if len(desc) > 0 {
			body = append(body, "DESCRIPTION:"+Escape(strings.Join(desc, "\n")))
		}
		if h.Address != "" {
			body = append(body, "LOCATION:"+Escape(h.Address))
		}
		b.event(uid(it.Code, "hotel", idx), dtstamp, body...)
	}

	for idx, t := range it.Transport {
		if t.PickupTime == "" {
			continue
		}
		pickupDate := t.PickupDate
		if pickupDate == "" {
			pickupDate = it.StartDate
		}
		day, ok := parseDate(pickupDate)
		if !ok {
			continue
		}
		kind := t.Type
		if kind == "" {
			kind = "Transport"
		}
		company := t.Company
		if company == "" {
			company = "Pickup"
		}
		// Zero duration: a pickup is a point-in-time reminder.
		moment := utcStamp(at(day, t.PickupTime))
		body := []string{
			"DTSTART:" + moment,
			"DTEND:" + moment,
			"SUMMARY:" + Escape("🚗 "+kind+" - "+company),
		}
		var desc []string
		if t.Confirmation != "" {
			desc = append(desc, "Confirmation: "+t.Confirmation)
		}
		if t.Notes != "" {
			desc = append(desc, t.Notes)
		}
		if len(desc) > 0 {
			body = append(body, "DESCRIPTION:"+Escape(strings.Join(desc, "\n")))
		}
		if t.PickupLocation != "" {
			body = append(body, "LOCATION:"+Escape(t.PickupLocation))
		}
		b.event(uid(it.Code, "transport", idx), dtstamp, body...)
	}

	b.add("END:VCALENDAR")
	return strings.Join(b.lines, crlf) + crlf
}
