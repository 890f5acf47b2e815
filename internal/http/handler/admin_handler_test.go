package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/lfpcrew/lfp-admin/internal/domain"
	"github.com/lfpcrew/lfp-admin/internal/repository"
	"github.com/lfpcrew/lfp-admin/internal/service"
	servicegomock "github.com/lfpcrew/lfp-admin/internal/service/gomock"
)

func TestAdminHandlerStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	stats := servicegomock.NewMockStatsReader(ctrl)
	h := NewAdminHandler(stats, servicegomock.NewMockAuditReader(ctrl))

	stats.EXPECT().Dashboard(gomock.Any()).Return(service.DashboardStats{Members: 4, Cars: 6, Events: 2, Users: 3}, nil)
	rr := httptest.NewRecorder()
	h.Stats(rr, httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var got service.DashboardStats
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &got); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if got.Cars != 6 || got.Users != 3 {
		t.Fatalf("unexpected stats %+v", got)
	}

	stats.EXPECT().Dashboard(gomock.Any()).Return(service.DashboardStats{}, errors.New("db down"))
	rr = httptest.NewRecorder()
	h.Stats(rr, httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}

func TestAdminHandlerAuditLogsPagination(t *testing.T) {
	ctrl := gomock.NewController(t)
	audit := servicegomock.NewMockAuditReader(ctrl)
	h := NewAdminHandler(servicegomock.NewMockStatsReader(ctrl), audit)

	audit.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req repository.PageRequest) (repository.PageResult[domain.AuditLogView], error) {
			if req.Page != 2 || req.PageSize != repository.MaxPageSize {
				t.Fatalf("unexpected page request %+v", req)
			}
			return repository.PageResult[domain.AuditLogView]{
				Items:      []domain.AuditLogView{{UserName: "Admin"}},
				Page:       req.Page,
				PageSize:   req.PageSize,
				Total:      101,
				TotalPages: 2,
			}, nil
		})
	rr := httptest.NewRecorder()
	h.AuditLogs(rr, httptest.NewRequest(http.MethodGet, "/api/v1/admin/logs?page=2&limit=500", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var data struct {
		Items      []json.RawMessage `json:"items"`
		Pagination struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"totalPages"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(data.Items) != 1 || data.Pagination.Total != 101 || data.Pagination.TotalPages != 2 {
		t.Fatalf("unexpected page %+v", data)
	}

	rr = httptest.NewRecorder()
	h.AuditLogs(rr, httptest.NewRequest(http.MethodGet, "/api/v1/admin/logs?page=0", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for page=0, got %d", rr.Code)
	}
}

func TestUploadHandlerMappings(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "stored", wantCode: http.StatusOK},
		{name: "not an image", err: service.ErrPhotoNotImage, wantCode: http.StatusBadRequest},
		{name: "disabled", err: service.ErrStorageDisabled, wantCode: http.StatusServiceUnavailable},
		{name: "bucket down", err: service.ErrBucketUnavailable, wantCode: http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			photos := servicegomock.NewMockPhotoStorage(gomock.NewController(t))
			h := NewUploadHandler(photos)
			url := ""
			if tc.err == nil {
				url = "http://minio.local/lfp/cars/1-ab.jpg"
			}
			photos.EXPECT().Upload(gomock.Any(), "data:image/jpeg;base64,AAAA", "lfp/cars").Return(url, tc.err)

			rr := httptest.NewRecorder()
			h.Upload(rr, httptest.NewRequest(http.MethodPost, "/api/v1/admin/upload", strings.NewReader(`{"file":"data:image/jpeg;base64,AAAA","folder":"lfp/cars"}`)))
			if rr.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d body=%s", tc.wantCode, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestUploadHandlerDelete(t *testing.T) {
	photos := servicegomock.NewMockPhotoStorage(gomock.NewController(t))
	h := NewUploadHandler(photos)

	rr := httptest.NewRecorder()
	h.Delete(rr, httptest.NewRequest(http.MethodDelete, "/api/v1/admin/upload", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without url, got %d", rr.Code)
	}

	photos.EXPECT().Delete(gomock.Any(), "https://elsewhere.test/a.jpg").Return(false, nil)
	rr = httptest.NewRecorder()
	h.Delete(rr, httptest.NewRequest(http.MethodDelete, "/api/v1/admin/upload?url=https://elsewhere.test/a.jpg", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for foreign url, got %d", rr.Code)
	}
}

func TestPublicHandlerServesCatalog(t *testing.T) {
	catalog := servicegomock.NewMockPublicCatalog(gomock.NewController(t))
	h := NewPublicHandler(catalog)

	catalog.EXPECT().Members(gomock.Any()).Return([]service.PublicMember{{ID: 1, Name: "Nico"}}, nil)
	catalog.EXPECT().Cars(gomock.Any()).Return(nil, errors.New("cache and db down"))
	catalog.EXPECT().Events(gomock.Any()).Return([]service.PublicEvent{}, nil)

	checks := []struct {
		handler  http.HandlerFunc
		wantCode int
	}{
		{handler: h.Members, wantCode: http.StatusOK},
		{handler: h.Cars, wantCode: http.StatusInternalServerError},
		{handler: h.Events, wantCode: http.StatusOK},
	}
	for i, c := range checks {
		rr := httptest.NewRecorder()
		c.handler(rr, httptest.NewRequest(http.MethodGet, "/api/v1/public", nil))
		if rr.Code != c.wantCode {
			t.Fatalf("check %d: expected %d, got %d", i, c.wantCode, rr.Code)
		}
	}
}
