package services

import (
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"places-server/utils/errors"
)

// MaxImageBytes is the upload limit for place and profile images.
const MaxImageBytes = 500_000

var errImageTooLarge = errors.NewAPIError("IMAGE_TOO_LARGE", "Image exceeds the 500KB upload limit.", http.StatusUnprocessableEntity)
var errInvalidMimeType = errors.NewAPIError("INVALID_MIME_TYPE", "Invalid mime type!", http.StatusUnprocessableEntity)

// FileService stores uploaded images on local disk under a configured
// directory. Files are named <uuid>.<ext> so client-supplied names never
// touch the filesystem.
type FileService struct {
	dir string
}

func NewFileService(dir string) *FileService {
	return &FileService{dir: dir}
}

// SaveImage validates size and content type by sniffing the bytes, then
// writes the file. Returns the stored path.
func (s *FileService) SaveImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > MaxImageBytes {
		return "", errImageTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(file, MaxImageBytes+1))
	if err != nil {
		return "", errors.Wrap(err, "UPLOAD_ERROR", "Reading uploaded image failed.", http.StatusInternalServerError)
	}
	if len(data) > MaxImageBytes {
		return "", errImageTooLarge
	}

	mtype := mimetype.Detect(data)
	if !mtype.Is("image/png") && !mtype.Is("image/jpeg") {
		return "", errInvalidMimeType
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", errors.Wrap(err, "UPLOAD_ERROR", "Storing uploaded image failed.", http.StatusInternalServerError)
	}
	path := filepath.Join(s.dir, uuid.New().String()+mtype.Extension())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(err, "UPLOAD_ERROR", "Storing uploaded image failed.", http.StatusInternalServerError)
	}
	return path, nil
}

// Remove deletes a stored image. Best effort: failures are logged, never
// surfaced to callers.
func (s *FileService) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil {
		log.Printf("Failed to remove file %s: %v", path, err)
	}
}
