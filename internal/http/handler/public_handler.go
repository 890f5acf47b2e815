package handler

import (
	"net/http"

	"github.com/lfpcrew/lfp-admin/internal/http/response"
	"github.com/lfpcrew/lfp-admin/internal/service"
)

// PublicHandler serves the read-only showcase consumed by the club site.
type PublicHandler struct {
	catalog service.PublicCatalog
}

func NewPublicHandler(catalog service.PublicCatalog) *PublicHandler {
	return &PublicHandler{catalog: catalog}
}

func (h *PublicHandler) Members(w http.ResponseWriter, r *http.Request) {
	members, err := h.catalog.Members(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to load members")
		return
	}
	response.JSON(w, r, http.StatusOK, members)
}

func (h *PublicHandler) Cars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.catalog.Cars(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to load cars")
		return
	}
	response.JSON(w, r, http.StatusOK, cars)
}

func (h *PublicHandler) Events(w http.ResponseWriter, r *http.Request) {
	events, err := h.catalog.Events(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to load events")
		return
	}
	response.JSON(w, r, http.StatusOK, events)
}
