// Package documents manages file attachments scoped to one itinerary.
package documents

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"wayfare/db"
	"wayfare/filemgr"
	"wayfare/globals"
	"wayfare/models"
	"wayfare/utils"
)

type Handler struct {
	store *db.Store
}

func NewHandler(store *db.Store) *Handler {
	return &Handler{store: store}
}

// POST /api/itineraries/:id/documents
//
// Files are processed strictly one at a time: storage write, then the
// database row, then the next file. A mid-batch failure leaves earlier
// files persisted; the per-file result list tells the caller exactly
// which ones made it.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	itineraryID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var it models.Itinerary
	if err := h.store.Itineraries.FindOne(ctx, bson.M{"itineraryid": itineraryID}).Decode(&it); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}

	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	role, _ := r.Context().Value(globals.RoleKey).(string)
	if it.CreatedBy != userID && role != models.RoleAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	if err := r.ParseMultipartForm(filemgr.MaxAttachmentSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No files uploaded")
		return
	}

	results := make([]models.UploadResult, 0, len(files))
	anyOK := false
	for _, header := range files {
		saved, err := filemgr.SaveAttachment(header, itineraryID)
		if err != nil {
			results = append(results, models.UploadResult{FileName: header.Filename, Error: err.Error()})
			continue
		}

		doc := models.Document{
			DocumentID:  utils.GetUUID(),
			ItineraryID: itineraryID,
			FileName:    header.Filename,
			FilePath:    saved.Path,
			FileType:    saved.ContentType,
			FileSize:    saved.Size,
			FileURL:     globals.AppURL + saved.URLPath,
			UploadedAt:  time.Now().UTC(),
		}
		if _, err := h.store.Documents.InsertOne(ctx, doc); err != nil {
			// Orphaned file on disk is preferable to a row without a file.
			filemgr.DeleteAttachment(saved.Path)
			results = append(results, models.UploadResult{FileName: header.Filename, Error: "failed to record document"})
			continue
		}

		anyOK = true
		d := doc
		results = append(results, models.UploadResult{FileName: header.Filename, OK: true, Document: &d})
	}

	status := http.StatusCreated
	if !anyOK {
		status = http.StatusBadRequest
	}
	utils.RespondWithJSON(w, status, utils.M{"results": results})
}

// GET /api/itineraries/all/:id/documents
func (h *Handler) List(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	docs, err := utils.FindAndDecode[models.Document](ctx, h.store.Documents, bson.M{"itinerary_id": ps.ByName("id")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching documents")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, docs)
}

// DELETE /api/documents/:id
//
// Documents live and die independently of their itinerary; this is the
// only delete path for them.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	documentID := ps.ByName("id")
	var doc models.Document
	if err := h.store.Documents.FindOne(ctx, bson.M{"documentid": documentID}).Decode(&doc); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Document not found")
		return
	}

	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	role, _ := r.Context().Value(globals.RoleKey).(string)
	var it models.Itinerary
	if err := h.store.Itineraries.FindOne(ctx, bson.M{"itineraryid": doc.ItineraryID}).Decode(&it); err == nil {
		if it.CreatedBy != userID && role != models.RoleAdmin {
			utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
			return
		}
	} else if role != models.RoleAdmin {
		// Parent gone: only an admin may clean up orphans.
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	if _, err := h.store.Documents.DeleteOne(ctx, bson.M{"documentid": documentID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting document")
		return
	}
	if err := filemgr.DeleteAttachment(doc.FilePath); err != nil {
		// Row is gone; a stray file on disk only wastes space.
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Document deleted, file cleanup pending"})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Document deleted successfully"})
}
