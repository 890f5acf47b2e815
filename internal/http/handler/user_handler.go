package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lfpcrew/lfp-admin/internal/http/response"
	"github.com/lfpcrew/lfp-admin/internal/service"
)

type UserHandler struct {
	userSvc service.UserAdmin
}

func NewUserHandler(userSvc service.UserAdmin) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userSvc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to list users")
		return
	}
	response.JSON(w, r, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "user")
	if !ok {
		return
	}
	user, err := h.userSvc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "failed to load user")
		return
	}
	response.JSON(w, r, http.StatusOK, user)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		RoleID   uint   `json:"roleId"`
		MemberID *uint  `json:"memberId"`
	}
	if err := decodeJSON(r, &body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	res, err := h.userSvc.Create(r.Context(), actorFromRequest(r), service.CreateUserInput{
		Name:     body.Name,
		Email:    body.Email,
		RoleID:   body.RoleID,
		MemberID: body.MemberID,
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to create user")
		return
	}
	sent := res.EmailSent != nil && *res.EmailSent
	message := "user created, invitation sent"
	if !sent {
		message = "user created, but the invitation email could not be sent"
	}
	emitAdminAudit(r, "admin.user.create", "user", res.User.ID, "create", "email_sent", sent)
	response.JSON(w, r, http.StatusCreated, map[string]any{
		"user":      res.User,
		"emailSent": sent,
		"message":   message,
	})
}

type updateUserBody struct {
	Name          *string         `json:"name"`
	Email         *string         `json:"email"`
	RoleID        *uint           `json:"roleId"`
	MemberID      json.RawMessage `json:"memberId"`
	IsActive      *bool           `json:"isActive"`
	ResendInvite  bool            `json:"resendInvite"`
	ResetPassword bool            `json:"resetPassword"`
}

func (b updateUserBody) input() (service.UpdateUserInput, error) {
	in := service.UpdateUserInput{
		Name:          b.Name,
		Email:         b.Email,
		RoleID:        b.RoleID,
		IsActive:      b.IsActive,
		ResendInvite:  b.ResendInvite,
		ResetPassword: b.ResetPassword,
	}
	set, memberID, err := nullableField[uint](b.MemberID)
	if err != nil {
		return in, errInvalidPayload
	}
	in.SetMember = set
	in.MemberID = memberID
	return in, nil
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "user")
	if !ok {
		return
	}
	var body updateUserBody
	if err := decodeJSON(r, &body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	in, err := body.input()
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "memberId must be a number or null", nil)
		return
	}

	res, err := h.userSvc.Update(r.Context(), actorFromRequest(r), id, in)
	if err != nil {
		writeServiceError(w, r, err, "failed to update user")
		return
	}
	if res.EmailSent != nil {
		message := "email sent"
		if !*res.EmailSent {
			message = "the link was generated but the email could not be sent"
		}
		response.JSON(w, r, http.StatusOK, map[string]any{"emailSent": *res.EmailSent, "message": message})
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"user": res.User, "message": "user updated"})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "user")
	if !ok {
		return
	}
	if err := h.userSvc.Delete(r.Context(), actorFromRequest(r), id); err != nil {
		writeServiceError(w, r, err, "failed to delete user")
		return
	}
	emitAdminAudit(r, "admin.user.delete", "user", id, "delete")
	response.JSON(w, r, http.StatusOK, map[string]string{"message": "user deleted"})
}
