// itinerary.go
package itinerary

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"wayfare/db"
	"wayfare/globals"
	"wayfare/models"
	"wayfare/utils"
)

// Handler owns the itinerary collection endpoints.
type Handler struct {
	store *db.Store
}

func NewHandler(store *db.Store) *Handler {
	return &Handler{store: store}
}

func requestUser(r *http.Request) (userID, role string) {
	userID, _ = r.Context().Value(globals.UserIDKey).(string)
	role, _ = r.Context().Value(globals.RoleKey).(string)
	return userID, role
}

// POST /api/itineraries
func (h *Handler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, _ := requestUser(r)

	var it models.Itinerary
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	it.Normalize()
	if err := it.Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	it.ItineraryID = utils.GetUUID()
	it.CreatedBy = userID
	it.Status = models.StatusDraft
	it.SentTo = ""
	it.SentAt = nil
	now := time.Now().UTC()
	it.CreatedAt = now
	it.UpdatedAt = now

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// The unique index on code enforces uniqueness; a collision is a
	// retryable failure, retried once with a fresh code.
	for attempt := 0; attempt < 2; attempt++ {
		code, err := GenerateCode()
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Could not generate code")
			return
		}
		it.Code = code

		_, err = h.store.Itineraries.InsertOne(ctx, it)
		if err == nil {
			utils.RespondWithJSON(w, http.StatusCreated, it)
			return
		}
		if !db.IsDup(err) {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error inserting itinerary")
			return
		}
		log.Printf("code collision on %s, retrying", it.Code)
	}
	utils.RespondWithError(w, http.StatusConflict, "Could not allocate a unique code, retry the request")
}

// GET /api/itineraries
func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, role := requestUser(r)

	filter := bson.M{"created_by": userID}
	if role == models.RoleAdmin {
		filter = bson.M{}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	itineraries, err := utils.FindAndDecode[models.Itinerary](ctx, h.store.Itineraries, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching itineraries")
		return
	}
	for i := range itineraries {
		itineraries[i].Normalize()
	}
	utils.RespondWithJSON(w, http.StatusOK, itineraries)
}

// GET /api/itineraries/all/:id
func (h *Handler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var it models.Itinerary
	err := h.store.Itineraries.FindOne(ctx, bson.M{"itineraryid": ps.ByName("id")}).Decode(&it)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}
	it.Normalize()
	utils.RespondWithJSON(w, http.StatusOK, it)
}

// fetchOwned loads an itinerary and checks the requester may modify it.
func (h *Handler) fetchOwned(ctx context.Context, w http.ResponseWriter, r *http.Request, id string) (models.Itinerary, bool) {
	userID, role := requestUser(r)

	var existing models.Itinerary
	err := h.store.Itineraries.FindOne(ctx, bson.M{"itineraryid": id}).Decode(&existing)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return existing, false
	}
	if existing.CreatedBy != userID && role != models.RoleAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return existing, false
	}
	return existing, true
}

// PUT /api/itineraries/:id
//
// Field edits are allowed in any non-terminal state and never touch
// status. Concurrent editors race last-write-wins; there is no version
// token on the record.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	existing, ok := h.fetchOwned(ctx, w, r, ps.ByName("id"))
	if !ok {
		return
	}
	if models.IsTerminal(existing.Status) {
		utils.RespondWithError(w, http.StatusConflict, "Itinerary is "+existing.Status+" and can no longer be edited")
		return
	}

	var updated models.Itinerary
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	updated.Normalize()
	if err := updated.Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	update := bson.M{"$set": bson.M{
		"doc_title":     updated.DocTitle,
		"trip_tag":      updated.TripTag,
		"participants":  updated.Participants,
		"phones":        updated.Phones,
		"purpose":       updated.Purpose,
		"factory":       updated.Factory,
		"start_date":    updated.StartDate,
		"end_date":      updated.EndDate,
		"flights":       updated.Flights,
		"visits":        updated.Visits,
		"accommodation": updated.Accommodation,
		"transport":     updated.Transport,
		"travel_docs":   updated.TravelDocs,
		"updated_at":    time.Now().UTC(),
	}}

	if _, err := h.store.Itineraries.UpdateOne(ctx, bson.M{"itineraryid": existing.ItineraryID}, update); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating itinerary")
		return
	}

	InvalidateLookupCache(existing.Code)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Itinerary updated successfully"})
}

// DELETE /api/itineraries/:id
//
// Attached documents are not cascaded; they remain addressable until
// deleted on their own.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	existing, ok := h.fetchOwned(ctx, w, r, ps.ByName("id"))
	if !ok {
		return
	}

	if _, err := h.store.Itineraries.DeleteOne(ctx, bson.M{"itineraryid": existing.ItineraryID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting itinerary")
		return
	}

	InvalidateLookupCache(existing.Code)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Itinerary deleted successfully"})
}

// PUT /api/itineraries/:id/status
//
// Explicit transitions to completed or cancelled. Requests against a
// terminal record get a 409, not a silent no-op. draft → sent is not
// reachable here; only a successful dispatch makes that move.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Status != models.StatusCompleted && input.Status != models.StatusCancelled {
		utils.RespondWithError(w, http.StatusBadRequest, "Status must be completed or cancelled")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	existing, ok := h.fetchOwned(ctx, w, r, ps.ByName("id"))
	if !ok {
		return
	}
	if !models.CanTransition(existing.Status, input.Status) {
		utils.RespondWithError(w, http.StatusConflict, "Cannot move from "+existing.Status+" to "+input.Status)
		return
	}

	update := bson.M{"$set": bson.M{"status": input.Status, "updated_at": time.Now().UTC()}}
	if _, err := h.store.Itineraries.UpdateOne(ctx, bson.M{"itineraryid": existing.ItineraryID}, update); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating status")
		return
	}

	InvalidateLookupCache(existing.Code)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": input.Status})
}
