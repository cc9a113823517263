package itinerary

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"wayfare/globals"
	"wayfare/ical"
	"wayfare/models"
	"wayfare/pdf"
	"wayfare/rdx"
	"wayfare/render"
	"wayfare/utils"
)

const lookupCacheTTL = 60 * time.Second

func lookupCacheKey(code string) string {
	return "itinerary:code:" + code
}

// InvalidateLookupCache drops the cached public-lookup entry for a
// code. Every write that changes what a lookup returns, including the
// dispatch path in notify, must call it or readers see the old record
// until the TTL runs out.
func InvalidateLookupCache(code string) {
	if rdx.Conn == nil {
		return
	}
	if _, err := rdx.RdxDel(lookupCacheKey(code)); err != nil {
		log.Printf("cache invalidation failed for %s: %v", code, err)
	}
}

// loadByCode resolves a lookup code to an itinerary, read-through
// cached. This path is public by design: holding the code is the access
// model, so no auth check belongs here.
func (h *Handler) loadByCode(ctx context.Context, rawCode string) (models.Itinerary, bool) {
	code := utils.NormalizeCode(rawCode)

	var it models.Itinerary
	if rdx.Conn != nil {
		if cached, err := rdx.RdxGet(lookupCacheKey(code)); err == nil {
			if err := json.Unmarshal([]byte(cached), &it); err == nil {
				return it, true
			}
		}
	}

	err := h.store.Itineraries.FindOne(ctx, bson.M{"code": code}).Decode(&it)
	if err != nil {
		return it, false
	}
	it.Normalize()

	if rdx.Conn != nil {
		if data, err := json.Marshal(it); err == nil {
			if err := rdx.RdxSet(lookupCacheKey(code), string(data), lookupCacheTTL); err != nil {
				log.Printf("cache set failed for %s: %v", code, err)
			}
		}
	}
	return it, true
}

func (h *Handler) loadDocuments(ctx context.Context, itineraryID string) []models.Document {
	docs, err := utils.FindAndDecode[models.Document](ctx, h.store.Documents, bson.M{"itinerary_id": itineraryID})
	if err != nil {
		log.Printf("document fetch failed for %s: %v", itineraryID, err)
		return nil
	}
	return docs
}

// GET /api/itineraries/code/:code
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	it, ok := h.loadByCode(ctx, ps.ByName("code"))
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, it)
}

// GET /api/itineraries/code/:code/ics
func (h *Handler) ExportICS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	it, ok := h.loadByCode(ctx, ps.ByName("code"))
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}

	ics := ical.Build(it)
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+it.Code+`.ics"`)
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(ics))
}

// GET /api/itineraries/code/:code/print
func (h *Handler) PrintView(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	it, ok := h.loadByCode(ctx, ps.ByName("code"))
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}

	docs := h.loadDocuments(ctx, it.ItineraryID)
	page, err := render.Print(render.Build(it, docs, globals.AppURL, time.Now().UTC()))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to render itinerary")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(page))
}

// GET /api/itineraries/code/:code/pdf
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	it, ok := h.loadByCode(ctx, ps.ByName("code"))
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}

	docs := h.loadDocuments(ctx, it.ItineraryID)
	doc, err := pdf.Render(render.Build(it, docs, globals.AppURL, time.Now().UTC()))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+it.Code+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}
