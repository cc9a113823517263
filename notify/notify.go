// Package notify dispatches rendered itineraries to travelers by email
// and records the resulting status transition.
package notify

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"wayfare/db"
	"wayfare/globals"
	"wayfare/itinerary"
	"wayfare/models"
	"wayfare/render"
	"wayfare/utils"
)

// Sender is the outbound mail transport. Production wires SMTP; tests
// wire a fake so dispatch logic runs without a mail server.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// store is the slice of persistence the dispatch path needs. mongoStore
// backs it in production; tests back it with a fake.
type store interface {
	Itinerary(ctx context.Context, id string) (models.Itinerary, error)
	Documents(ctx context.Context, itineraryID string) ([]models.Document, error)
	MarkSent(ctx context.Context, id, email string, at time.Time) error
}

type Handler struct {
	store      store
	sender     Sender
	invalidate func(code string)
}

func NewHandler(s *db.Store, sender Sender) *Handler {
	return &Handler{
		store:      mongoStore{s},
		sender:     sender,
		invalidate: itinerary.InvalidateLookupCache,
	}
}

type mongoStore struct {
	s *db.Store
}

func (m mongoStore) Itinerary(ctx context.Context, id string) (models.Itinerary, error) {
	var it models.Itinerary
	err := m.s.Itineraries.FindOne(ctx, bson.M{"itineraryid": id}).Decode(&it)
	return it, err
}

func (m mongoStore) Documents(ctx context.Context, itineraryID string) ([]models.Document, error) {
	return utils.FindAndDecode[models.Document](ctx, m.s.Documents, bson.M{"itinerary_id": itineraryID})
}

// MarkSent is conditional on status so only a draft moves to sent;
// re-sending an already-sent itinerary delivers mail without rewriting
// the stamp.
func (m mongoStore) MarkSent(ctx context.Context, id, email string, at time.Time) error {
	_, err := m.s.Itineraries.UpdateOne(ctx,
		bson.M{"itineraryid": id, "status": models.StatusDraft},
		bson.M{"$set": bson.M{
			"status":     models.StatusSent,
			"sent_to":    email,
			"sent_at":    at,
			"updated_at": at,
		}},
	)
	return err
}

// POST /api/itineraries/:id/send
//
// A successful dispatch moves draft → sent and stamps sent_to/sent_at in
// the same update. A failed dispatch surfaces a transport error and
// leaves the record untouched.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Email         string `json:"email"`
		CustomMessage string `json:"customMessage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	input.Email = strings.TrimSpace(input.Email)
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		utils.RespondWithError(w, http.StatusBadRequest, "A recipient email is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	itineraryID := ps.ByName("id")
	it, err := h.store.Itinerary(ctx, itineraryID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}
	it.Normalize()
	if models.IsTerminal(it.Status) {
		utils.RespondWithError(w, http.StatusConflict, "Itinerary is "+it.Status+" and can no longer be sent")
		return
	}

	docs, err := h.store.Documents(ctx, itineraryID)
	if err != nil {
		log.Printf("document fetch failed for %s: %v", itineraryID, err)
	}

	body, err := render.Email(render.BuildWithMessage(it, docs, globals.AppURL, time.Now().UTC(), input.CustomMessage))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to render email")
		return
	}

	subject := "Your Travel Itinerary: " + it.DocTitle
	if it.DocTitle == "" {
		subject = "Your Travel Itinerary: " + it.Code
	}
	if err := h.sender.Send(input.Email, subject, body); err != nil {
		log.Printf("email dispatch failed for %s: %v", it.Code, err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to send email")
		return
	}

	if err := h.store.MarkSent(ctx, itineraryID, input.Email, time.Now().UTC()); err != nil {
		// Mail already left; report the record problem rather than lying.
		log.Printf("status update failed for %s after dispatch: %v", it.Code, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Email sent but status update failed")
		return
	}

	// The public lookup must not keep serving the draft for the cache TTL.
	h.invalidate(it.Code)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "sent_to": input.Email})
}
