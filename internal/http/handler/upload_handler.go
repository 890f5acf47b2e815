package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/lfpcrew/lfp-admin/internal/http/response"
	"github.com/lfpcrew/lfp-admin/internal/service"
)

type UploadHandler struct {
	photos service.PhotoStorage
}

func NewUploadHandler(photos service.PhotoStorage) *UploadHandler {
	return &UploadHandler{photos: photos}
}

// Upload stores a base64 image data URL and returns its public URL.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var body struct {
		File   string `json:"file"`
		Folder string `json:"folder"`
	}
	if err := decodeJSON(r, &body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	url, err := h.photos.Upload(r.Context(), body.File, body.Folder)
	if err != nil {
		h.writeStorageError(w, r, err, "upload failed")
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]string{"url": url})
}

func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("url"))
	if raw == "" {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", service.ErrPhotoURLRequired.Error(), nil)
		return
	}
	deleted, err := h.photos.Delete(r.Context(), raw)
	if err != nil {
		h.writeStorageError(w, r, err, "delete failed")
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]bool{"deleted": deleted})
}

func (h *UploadHandler) writeStorageError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrStorageDisabled), errors.Is(err, service.ErrBucketUnavailable):
		response.Error(w, r, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "photo storage is unavailable", nil)
	default:
		writeServiceError(w, r, err, fallback)
	}
}
