package handler

import (
	"net/http"
	"strconv"

	"github.com/lfpcrew/lfp-admin/internal/http/response"
	"github.com/lfpcrew/lfp-admin/internal/service"
)

type MemberHandler struct {
	memberSvc service.MemberAdmin
}

func NewMemberHandler(memberSvc service.MemberAdmin) *MemberHandler {
	return &MemberHandler{memberSvc: memberSvc}
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.memberSvc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to list members")
		return
	}
	response.JSON(w, r, http.StatusOK, members)
}

func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "member")
	if !ok {
		return
	}
	member, err := h.memberSvc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "failed to load member")
		return
	}
	response.JSON(w, r, http.StatusOK, member)
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name      string `json:"name"`
		Instagram string `json:"instagram"`
		Photo     string `json:"photo"`
		Bio       string `json:"bio"`
		Order     *int   `json:"order"`
	}
	if err := decodeJSON(r, &body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	member, err := h.memberSvc.Create(r.Context(), actorFromRequest(r), service.CreateMemberInput{
		Name:      body.Name,
		Instagram: body.Instagram,
		Photo:     body.Photo,
		Bio:       body.Bio,
		Order:     body.Order,
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to create member")
		return
	}
	emitAdminAudit(r, "admin.member.create", "member", member.ID, "create")
	response.JSON(w, r, http.StatusCreated, member)
}

func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "member")
	if !ok {
		return
	}
	var body struct {
		Name      *string `json:"name"`
		Instagram *string `json:"instagram"`
		Photo     *string `json:"photo"`
		Bio       *string `json:"bio"`
		Order     *int    `json:"order"`
		IsActive  *bool   `json:"isActive"`
	}
	if err := decodeJSON(r, &body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	member, err := h.memberSvc.Update(r.Context(), actorFromRequest(r), id, service.UpdateMemberInput{
		Name:      body.Name,
		Instagram: body.Instagram,
		Photo:     body.Photo,
		Bio:       body.Bio,
		Order:     body.Order,
		IsActive:  body.IsActive,
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to update member")
		return
	}
	emitAdminAudit(r, "admin.member.update", "member", member.ID, "update")
	response.JSON(w, r, http.StatusOK, member)
}

// Delete deactivates the member unless ?permanent=true asks for removal of
// the member and its cars.
func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "member")
	if !ok {
		return
	}
	permanent, _ := strconv.ParseBool(r.URL.Query().Get("permanent"))
	if err := h.memberSvc.Delete(r.Context(), actorFromRequest(r), id, permanent); err != nil {
		writeServiceError(w, r, err, "failed to delete member")
		return
	}
	message := "member deactivated"
	if permanent {
		message = "member permanently deleted"
	}
	emitAdminAudit(r, "admin.member.delete", "member", id, "delete", "permanent", permanent)
	response.JSON(w, r, http.StatusOK, map[string]string{"message": message})
}

func (h *MemberHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "member")
	if !ok {
		return
	}
	member, err := h.memberSvc.Reactivate(r.Context(), actorFromRequest(r), id)
	if err != nil {
		writeServiceError(w, r, err, "failed to reactivate member")
		return
	}
	emitAdminAudit(r, "admin.member.reactivate", "member", id, "update")
	response.JSON(w, r, http.StatusOK, member)
}
