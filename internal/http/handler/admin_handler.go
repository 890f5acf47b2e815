package handler

import (
	"net/http"

	"github.com/lfpcrew/lfp-admin/internal/http/response"
	"github.com/lfpcrew/lfp-admin/internal/service"
)

// AdminHandler serves the back-office dashboard counters and the audit
// trail.
type AdminHandler struct {
	stats service.StatsReader
	audit service.AuditReader
}

func NewAdminHandler(stats service.StatsReader, audit service.AuditReader) *AdminHandler {
	return &AdminHandler{stats: stats, audit: audit}
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to load stats")
		return
	}
	response.JSON(w, r, http.StatusOK, stats)
}

func (h *AdminHandler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	pageReq, err := parsePageRequest(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	logs, err := h.audit.List(r.Context(), pageReq)
	if err != nil {
		writeServiceError(w, r, err, "failed to list audit logs")
		return
	}
	response.JSON(w, r, http.StatusOK, paginatedData(logs.Items, logs.Page, logs.PageSize, logs.Total, logs.TotalPages))
}
