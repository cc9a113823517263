package models

import "time"

// Document is a file attached to exactly one itinerary. Deleting an
// itinerary does not cascade to its documents.
type Document struct {
	DocumentID  string    `json:"id" bson:"documentid"`
	ItineraryID string    `json:"itinerary_id" bson:"itinerary_id"`
	FileName    string    `json:"file_name" bson:"file_name"`
	FilePath    string    `json:"file_path" bson:"file_path"`
	FileType    string    `json:"file_type" bson:"file_type"`
	FileSize    int64     `json:"file_size" bson:"file_size"`
	FileURL     string    `json:"file_url" bson:"file_url"`
	UploadedAt  time.Time `json:"uploaded_at" bson:"uploaded_at"`
}

// UploadResult reports the outcome of one file within a multi-file
// upload. Files are processed one at a time; earlier successes stay
// persisted when a later file fails.
type UploadResult struct {
	FileName string    `json:"file_name"`
	OK       bool      `json:"ok"`
	Error    string    `json:"error,omitempty"`
	Document *Document `json:"document,omitempty"`
}
