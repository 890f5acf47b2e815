package handler

import (
	"net/http"
	"strings"

	"github.com/lfpcrew/lfp-admin/internal/http/response"
	"github.com/lfpcrew/lfp-admin/internal/service"
)

type CarHandler struct {
	carSvc service.CarAdmin
}

func NewCarHandler(carSvc service.CarAdmin) *CarHandler {
	return &CarHandler{carSvc: carSvc}
}

type carBody struct {
	Model         *string  `json:"model"`
	Year          *string  `json:"year"`
	Photos        []string `json:"photos"`
	ContainPhotos []int    `json:"containPhotos"`
	Engine        *string  `json:"engine"`
	Power         *string  `json:"power"`
	Modifications *string  `json:"modifications"`
	Story         *string  `json:"story"`
	MemberID      *uint    `json:"memberId"`
	Order         *int     `json:"order"`
	IsActive      *bool    `json:"isActive"`
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}

// List accepts an optional ?memberId= filter.
func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	var memberID *uint
	if raw := strings.TrimSpace(r.URL.Query().Get("memberId")); raw != "" {
		id, err := parsePathID(raw)
		if err != nil {
			response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "memberId must be a positive integer", nil)
			return
		}
		memberID = &id
	}
	cars, err := h.carSvc.List(r.Context(), memberID)
	if err != nil {
		writeServiceError(w, r, err, "failed to list cars")
		return
	}
	response.JSON(w, r, http.StatusOK, cars)
}

func (h *CarHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "car")
	if !ok {
		return
	}
	car, err := h.carSvc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "failed to load car")
		return
	}
	response.JSON(w, r, http.StatusOK, car)
}

func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body carBody
	if err := decodeJSON(r, &body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	car, err := h.carSvc.Create(r.Context(), actorFromRequest(r), service.CreateCarInput{
		Model:         deref(body.Model),
		Year:          deref(body.Year),
		Photos:        body.Photos,
		ContainPhotos: body.ContainPhotos,
		Engine:        deref(body.Engine),
		Power:         deref(body.Power),
		Modifications: deref(body.Modifications),
		Story:         deref(body.Story),
		MemberID:      deref(body.MemberID),
		Order:         body.Order,
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to create car")
		return
	}
	emitAdminAudit(r, "admin.car.create", "car", car.ID, "create")
	response.JSON(w, r, http.StatusCreated, car)
}

func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "car")
	if !ok {
		return
	}
	var body carBody
	if err := decodeJSON(r, &body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	car, err := h.carSvc.Update(r.Context(), actorFromRequest(r), id, service.UpdateCarInput{
		Model:         body.Model,
		Year:          body.Year,
		Photos:        body.Photos,
		ContainPhotos: body.ContainPhotos,
		Engine:        body.Engine,
		Power:         body.Power,
		Modifications: body.Modifications,
		Story:         body.Story,
		MemberID:      body.MemberID,
		Order:         body.Order,
		IsActive:      body.IsActive,
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to update car")
		return
	}
	emitAdminAudit(r, "admin.car.update", "car", car.ID, "update")
	response.JSON(w, r, http.StatusOK, car)
}

func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "car")
	if !ok {
		return
	}
	if err := h.carSvc.Delete(r.Context(), actorFromRequest(r), id); err != nil {
		writeServiceError(w, r, err, "failed to delete car")
		return
	}
	emitAdminAudit(r, "admin.car.delete", "car", id, "delete")
	response.JSON(w, r, http.StatusOK, map[string]string{"message": "car deleted"})
}
