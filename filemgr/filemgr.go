// Package filemgr stores itinerary attachments on local disk under a
// path namespaced by the owning itinerary.
package filemgr

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"wayfare/utils"
)

const uploadRoot = "static/uploads/itineraries"

// MaxAttachmentSize caps a single uploaded file at 20 MB.
const MaxAttachmentSize = 20 << 20

var allowedExtensions = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".txt":  "text/plain",
}

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

// Saved describes a stored attachment.
type Saved struct {
	StorageName string // unique on-disk name
	Path        string // path relative to the server root
	URLPath     string // public path served by the static route
	Size        int64
	ContentType string
}

func ensureDirExists(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// SaveAttachment validates and writes one uploaded file under the
// itinerary's directory. Image attachments get a 300px-wide thumbnail
// next to the original.
func SaveAttachment(header *multipart.FileHeader, itineraryID string) (Saved, error) {
	var saved Saved

	if header.Size > MaxAttachmentSize {
		return saved, fmt.Errorf("file %s exceeds the %d MB limit", header.Filename, MaxAttachmentSize>>20)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := allowedExtensions[ext]
	if !ok {
		return saved, fmt.Errorf("file type %q is not allowed", ext)
	}

	src, err := header.Open()
	if err != nil {
		return saved, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(uploadRoot, itineraryID)
	if err := ensureDirExists(dir); err != nil {
		return saved, fmt.Errorf("failed to create upload directory: %w", err)
	}

	storageName := uuid.New().String() + "_" + utils.SanitizeFilename(header.Filename)
	dstPath := filepath.Join(dir, storageName)

	dst, err := os.Create(dstPath)
	if err != nil {
		return saved, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(dstPath)
		return saved, fmt.Errorf("failed to write file: %w", err)
	}

	if imageExtensions[ext] {
		if err := writeThumbnail(dstPath, dir, storageName); err != nil {
			// The original is fine; a missing thumbnail is cosmetic.
			fmt.Printf("thumbnail generation failed for %s: %v\n", storageName, err)
		}
	}

	saved = Saved{
		StorageName: storageName,
		Path:        dstPath,
		URLPath:     "/" + filepath.ToSlash(dstPath),
		Size:        size,
		ContentType: contentType,
	}
	return saved, nil
}

func writeThumbnail(srcPath, dir, storageName string) error {
	img, err := imaging.Open(srcPath)
	if err != nil {
		return err
	}
	thumbDir := filepath.Join(dir, "thumb")
	if err := ensureDirExists(thumbDir); err != nil {
		return err
	}
	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	return imaging.Save(thumb, filepath.Join(thumbDir, storageName))
}

// DeleteAttachment removes a stored file and its thumbnail if present.
func DeleteAttachment(path string) error {
	if !strings.HasPrefix(filepath.ToSlash(path), uploadRoot+"/") {
		return fmt.Errorf("refusing to delete outside the upload root: %s", path)
	}
	thumb := filepath.Join(filepath.Dir(path), "thumb", filepath.Base(path))
	os.Remove(thumb)
	return os.Remove(path)
}
