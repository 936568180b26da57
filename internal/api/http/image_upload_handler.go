package http

import (
	"errors"
	"io"
	"net/http"
	"os"
	"strings"

	"freight-booking-backend/internal/logger"
	"freight-booking-backend/internal/storage"

	"github.com/gorilla/mux"
)

// ImageUploadHandler serves stored proof of delivery images
type ImageUploadHandler struct {
	store storage.StorageInterface
}

// NewImageUploadHandler creates a new upload handler
func NewImageUploadHandler(store storage.StorageInterface) *ImageUploadHandler {
	return &ImageUploadHandler{store: store}
}

// HandleDownload streams the file stored under the {key} path variable
func (h *ImageUploadHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(mux.Vars(r)["key"], "/")
	if key == "" {
		respondError(w, r, http.StatusBadRequest, "validation_error", "missing file key", nil)
		return
	}

	file, err := h.store.ReadFile(r.Context(), key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, storage.ErrInvalidKey) {
			respondError(w, r, http.StatusNotFound, "not_found", "file not found", nil)
			return
		}
		RespondDomainError(w, r, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", storage.ContentTypeForKey(key))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if _, err := io.Copy(w, file); err != nil {
		logger.WarnContext(r.Context(), "Failed to stream file", "key", key, "error", err)
	}
}

// RegisterUploadRoutes registers the routes serving stored files under
// baseURL (e.g. "/uploads").
func RegisterUploadRoutes(router *mux.Router, baseURL string, store storage.StorageInterface) {
	handler := NewImageUploadHandler(store)
	prefix := "/" + strings.Trim(baseURL, "/")
	router.HandleFunc(prefix+"/{key:.+}", handler.HandleDownload).Methods(http.MethodGet, http.MethodHead).Name("uploads")
}
