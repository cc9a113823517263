package notify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"wayfare/models"
)

type fakeStore struct {
	it      models.Itinerary
	itErr   error
	marked  []string // recipient of each MarkSent call
	markErr error
}

func (f *fakeStore) Itinerary(ctx context.Context, id string) (models.Itinerary, error) {
	return f.it, f.itErr
}

func (f *fakeStore) Documents(ctx context.Context, itineraryID string) ([]models.Document, error) {
	return nil, nil
}

func (f *fakeStore) MarkSent(ctx context.Context, id, email string, at time.Time) error {
	f.marked = append(f.marked, email)
	return f.markErr
}

type fakeSender struct {
	err     error
	calls   int
	to      string
	subject string
	body    string
}

func (f *fakeSender) Send(to, subject, htmlBody string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.to, f.subject, f.body = to, subject, htmlBody
	return nil
}

func draftItinerary() models.Itinerary {
	return models.Itinerary{
		ItineraryID:  "itin-1",
		Code:         "IT-2025-ABC234",
		Status:       models.StatusDraft,
		DocTitle:     "Supplier Audit",
		Participants: "A. Chen",
		Purpose:      "Factory audit",
		StartDate:    "2025-06-01",
		EndDate:      "2025-06-05",
	}
}

func postSend(h *Handler, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/itineraries/itin-1/send", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Send(w, r, httprouter.Params{{Key: "id", Value: "itin-1"}})
	return w
}

func TestSendSuccessMovesDraftToSent(t *testing.T) {
	fs := &fakeStore{it: draftItinerary()}
	snd := &fakeSender{}
	var invalidated []string
	h := &Handler{store: fs, sender: snd, invalidate: func(code string) {
		invalidated = append(invalidated, code)
	}}

	w := postSend(h, `{"email":"traveler@example.com"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body %s", w.Code, http.StatusOK, w.Body.String())
	}
	if snd.calls != 1 {
		t.Errorf("sender called %d times, want 1", snd.calls)
	}
	if snd.to != "traveler@example.com" {
		t.Errorf("mail sent to %q", snd.to)
	}
	if !strings.Contains(snd.subject, "Supplier Audit") {
		t.Errorf("subject %q missing the document title", snd.subject)
	}
	if len(fs.marked) != 1 || fs.marked[0] != "traveler@example.com" {
		t.Errorf("MarkSent calls = %v, want one for the recipient", fs.marked)
	}
	if len(invalidated) != 1 || invalidated[0] != "IT-2025-ABC234" {
		t.Errorf("cache invalidations = %v, want the itinerary code once", invalidated)
	}
}

func TestSendFailureLeavesRecordUntouched(t *testing.T) {
	fs := &fakeStore{it: draftItinerary()}
	snd := &fakeSender{err: errors.New("relay refused")}
	var invalidated []string
	h := &Handler{store: fs, sender: snd, invalidate: func(code string) {
		invalidated = append(invalidated, code)
	}}

	w := postSend(h, `{"email":"traveler@example.com"}`)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadGateway)
	}
	if len(fs.marked) != 0 {
		t.Errorf("MarkSent called after a failed dispatch: %v", fs.marked)
	}
	if len(invalidated) != 0 {
		t.Errorf("cache invalidated after a failed dispatch: %v", invalidated)
	}
}

func TestSendTerminalItineraryConflict(t *testing.T) {
	it := draftItinerary()
	it.Status = models.StatusCompleted
	fs := &fakeStore{it: it}
	snd := &fakeSender{}
	h := &Handler{store: fs, sender: snd, invalidate: func(string) {}}

	w := postSend(h, `{"email":"traveler@example.com"}`)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusConflict)
	}
	if snd.calls != 0 {
		t.Errorf("sender called %d times for a terminal itinerary", snd.calls)
	}
}

func TestSendAllowsResendOfSentItinerary(t *testing.T) {
	it := draftItinerary()
	it.Status = models.StatusSent
	fs := &fakeStore{it: it}
	snd := &fakeSender{}
	h := &Handler{store: fs, sender: snd, invalidate: func(string) {}}

	w := postSend(h, `{"email":"other@example.com"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body %s", w.Code, http.StatusOK, w.Body.String())
	}
	if snd.calls != 1 {
		t.Errorf("sender called %d times, want 1", snd.calls)
	}
}

func TestSendRequiresRecipient(t *testing.T) {
	fs := &fakeStore{it: draftItinerary()}
	snd := &fakeSender{}
	h := &Handler{store: fs, sender: snd, invalidate: func(string) {}}

	for _, body := range []string{`{}`, `{"email":"   "}`, `{"email":"not-an-address"}`} {
		w := postSend(h, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want %d", body, w.Code, http.StatusBadRequest)
		}
	}
	if snd.calls != 0 {
		t.Errorf("sender called %d times without a valid recipient", snd.calls)
	}
}

func TestSendUnknownItineraryNotFound(t *testing.T) {
	fs := &fakeStore{itErr: errors.New("no documents in result")}
	h := &Handler{store: fs, sender: &fakeSender{}, invalidate: func(string) {}}

	w := postSend(h, `{"email":"traveler@example.com"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
