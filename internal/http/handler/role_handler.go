package handler

import (
	"net/http"

	"github.com/lfpcrew/lfp-admin/internal/http/response"
	"github.com/lfpcrew/lfp-admin/internal/service"
)

type RoleHandler struct {
	roleSvc service.RoleAdmin
}

func NewRoleHandler(roleSvc service.RoleAdmin) *RoleHandler {
	return &RoleHandler{roleSvc: roleSvc}
}

func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleSvc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to list roles")
		return
	}
	response.JSON(w, r, http.StatusOK, roles)
}

// Permissions returns the grouped catalog the role editor renders.
func (h *RoleHandler) Permissions(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.roleSvc.PermissionCatalog())
}

func (h *RoleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "role")
	if !ok {
		return
	}
	role, err := h.roleSvc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "failed to load role")
		return
	}
	response.JSON(w, r, http.StatusOK, role)
}

func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Permissions []string `json:"permissions"`
	}
	if err := decodeJSON(r, &body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	role, err := h.roleSvc.Create(r.Context(), service.CreateRoleInput{
		Name:        body.Name,
		Description: body.Description,
		Permissions: body.Permissions,
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to create role")
		return
	}
	emitAdminAudit(r, "admin.role.create", "role", role.ID, "create", "role", role.Name)
	response.JSON(w, r, http.StatusCreated, role)
}

func (h *RoleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "role")
	if !ok {
		return
	}
	var body struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Permissions []string `json:"permissions"`
	}
	if err := decodeJSON(r, &body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	role, err := h.roleSvc.Update(r.Context(), id, service.UpdateRoleInput{
		Name:        body.Name,
		Description: body.Description,
		Permissions: body.Permissions,
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to update role")
		return
	}
	emitAdminAudit(r, "admin.role.update", "role", role.ID, "update", "permissions", len(role.Permissions))
	response.JSON(w, r, http.StatusOK, role)
}

func (h *RoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "role")
	if !ok {
		return
	}
	if err := h.roleSvc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "failed to delete role")
		return
	}
	emitAdminAudit(r, "admin.role.delete", "role", id, "delete")
	response.JSON(w, r, http.StatusOK, map[string]string{"message": "role deleted"})
}
