package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lfpcrew/lfp-admin/internal/http/middleware"
	"github.com/lfpcrew/lfp-admin/internal/http/response"
	"github.com/lfpcrew/lfp-admin/internal/observability"
	"github.com/lfpcrew/lfp-admin/internal/repository"
	"github.com/lfpcrew/lfp-admin/internal/service"
)

var errInvalidPayload = errors.New("invalid payload")

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errInvalidPayload
	}
	return nil
}

// actorFromRequest builds the audit identity of the caller. Routes behind
// the auth middleware always carry claims; elsewhere the user id stays 0.
func actorFromRequest(r *http.Request) service.Actor {
	actor := service.Actor{
		IP:        observability.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		if id, err := claims.UserID(); err == nil {
			actor.UserID = id
		}
	}
	return actor
}

func parsePathID(input string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(input), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid id %q", input)
	}
	return uint(n), nil
}

func parsePageRequest(r *http.Request) (repository.PageRequest, error) {
	page := repository.DefaultPage
	pageSize := repository.DefaultPageSize
	q := r.URL.Query()
	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return repository.PageRequest{}, errors.New("page must be a positive integer")
		}
		page = v
	}
	raw := strings.TrimSpace(q.Get("limit"))
	if raw == "" {
		raw = strings.TrimSpace(q.Get("page_size"))
	}
	if raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return repository.PageRequest{}, errors.New("limit must be a positive integer")
		}
		pageSize = min(v, repository.MaxPageSize)
	}
	return repository.PageRequest{Page: page, PageSize: pageSize}, nil
}

func paginatedData[T any](items []T, page, pageSize int, total int64, totalPages int) map[string]any {
	return map[string]any{
		"items": items,
		"pagination": map[string]any{
			"page":       page,
			"limit":      pageSize,
			"total":      total,
			"totalPages": totalPages,
		},
	}
}

// writeServiceError maps the service error taxonomy onto the response
// envelope. fallback is the message used for unexpected failures.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var inUse *service.RoleInUseError
	switch {
	case errors.As(err, &inUse):
		response.Error(w, r, http.StatusBadRequest, "ROLE_IN_USE", inUse.Error(), map[string]int64{"userCount": inUse.Count})
	case service.IsNotFound(err):
		response.Error(w, r, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case service.IsValidation(err),
		errors.Is(err, service.ErrProtectedRole),
		errors.Is(err, service.ErrSelfDelete),
		errors.Is(err, service.ErrCredentialAlreadySet),
		errors.Is(err, service.ErrCredentialNotSet):
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	case errors.Is(err, service.ErrAuthenticationRequired):
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
	case errors.Is(err, service.ErrPermissionDenied):
		response.Error(w, r, http.StatusForbidden, "FORBIDDEN", "insufficient permission", nil)
	default:
		slog.ErrorContext(r.Context(), fallback, "error", err, "path", r.URL.Path)
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", fallback, nil)
	}
}

func formatID(id uint) string { return strconv.FormatUint(uint64(id), 10) }

// emitAdminAudit logs a successful admin mutation. The persisted trail is
// written by the services.
func emitAdminAudit(r *http.Request, event, targetType string, targetID uint, action string, attrs ...any) {
	actor := actorFromRequest(r)
	observability.EmitAudit(r, observability.AuditInput{
		EventName:   event,
		ActorUserID: formatID(actor.UserID),
		TargetType:  targetType,
		TargetID:    formatID(targetID),
		Action:      action,
		Outcome:     "success",
	}, attrs...)
}

// pathID reads the {id} route parameter and answers 400 when it is not a
// positive integer.
func pathID(w http.ResponseWriter, r *http.Request, noun string) (uint, bool) {
	id, err := parsePathID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid "+noun+" id", nil)
		return 0, false
	}
	return id, true
}

// nullableField distinguishes an absent JSON field from an explicit null.
func nullableField[T any](raw json.RawMessage) (set bool, value *T, err error) {
	if len(raw) == 0 {
		return false, nil, nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return true, nil, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return true, nil, err
	}
	return true, &v, nil
}
