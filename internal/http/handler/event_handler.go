package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lfpcrew/lfp-admin/internal/http/response"
	"github.com/lfpcrew/lfp-admin/internal/service"
)

type EventHandler struct {
	eventSvc service.EventAdmin
}

func NewEventHandler(eventSvc service.EventAdmin) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventSvc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to list events")
		return
	}
	response.JSON(w, r, http.StatusOK, events)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "event")
	if !ok {
		return
	}
	event, err := h.eventSvc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "failed to load event")
		return
	}
	response.JSON(w, r, http.StatusOK, event)
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title       string  `json:"title"`
		Date        string  `json:"date"`
		Location    string  `json:"location"`
		Description string  `json:"description"`
		Photo       *string `json:"photo"`
		Order       *int    `json:"order"`
	}
	if err := decodeJSON(r, &body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	event, err := h.eventSvc.Create(r.Context(), actorFromRequest(r), service.CreateEventInput{
		Title:       body.Title,
		Date:        body.Date,
		Location:    body.Location,
		Description: body.Description,
		Photo:       body.Photo,
		Order:       body.Order,
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to create event")
		return
	}
	emitAdminAudit(r, "admin.event.create", "event", event.ID, "create")
	response.JSON(w, r, http.StatusCreated, event)
}

// Update treats "photo": null as a request to clear the picture.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "event")
	if !ok {
		return
	}
	var body struct {
		Title       *string         `json:"title"`
		Date        *string         `json:"date"`
		Location    *string         `json:"location"`
		Description *string         `json:"description"`
		Photo       json.RawMessage `json:"photo"`
		Order       *int            `json:"order"`
		IsActive    *bool           `json:"isActive"`
	}
	if err := decodeJSON(r, &body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	photoSet, photo, err := nullableField[string](body.Photo)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "photo must be a string or null", nil)
		return
	}
	event, err := h.eventSvc.Update(r.Context(), actorFromRequest(r), id, service.UpdateEventInput{
		Title:       body.Title,
		Date:        body.Date,
		Location:    body.Location,
		Description: body.Description,
		Photo:       photo,
		ClearPhoto:  photoSet && photo == nil,
		Order:       body.Order,
		IsActive:    body.IsActive,
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to update event")
		return
	}
	emitAdminAudit(r, "admin.event.update", "event", event.ID, "update")
	response.JSON(w, r, http.StatusOK, event)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "event")
	if !ok {
		return
	}
	if err := h.eventSvc.Delete(r.Context(), actorFromRequest(r), id); err != nil {
		writeServiceError(w, r, err, "failed to delete event")
		return
	}
	emitAdminAudit(r, "admin.event.delete", "event", id, "delete")
	response.JSON(w, r, http.StatusOK, map[string]string{"message": "event deactivated"})
}
