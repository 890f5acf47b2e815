package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/lfpcrew/lfp-admin/internal/domain"
	"github.com/lfpcrew/lfp-admin/internal/repository"
	"github.com/lfpcrew/lfp-admin/internal/service"
	servicegomock "github.com/lfpcrew/lfp-admin/internal/service/gomock"
)

func userRouterForTest(t *testing.T) (http.Handler, *servicegomock.MockUserAdmin) {
	t.Helper()
	svc := servicegomock.NewMockUserAdmin(gomock.NewController(t))
	h := NewUserHandler(svc)
	r := chi.NewRouter()
	r.Get("/users", h.List)
	r.Post("/users", h.Create)
	r.Get("/users/{id}", h.Get)
	r.Put("/users/{id}", h.Update)
	r.Delete("/users/{id}", h.Delete)
	return r, svc
}

func boolPtr(v bool) *bool { return &v }

func TestUserHandlerCreateReportsEmailOutcome(t *testing.T) {
	for _, sent := range []bool{true, false} {
		r, svc := userRouterForTest(t)
		svc.EXPECT().Create(gomock.Any(), gomock.Any(), service.CreateUserInput{Name: "Lea", Email: "lea@lfp.test", RoleID: 3}).
			Return(service.UserMutationResult{User: &domain.UserSummary{ID: 11, Email: "lea@lfp.test"}, EmailSent: boolPtr(sent)}, nil)

		req := withSession(httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"Lea","email":"lea@lfp.test","roleId":3}`)), "1")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
		}
		var data struct {
			EmailSent bool   `json:"emailSent"`
			Message   string `json:"message"`
			User      struct {
				ID uint `json:"id"`
			} `json:"user"`
		}
		if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if data.EmailSent != sent || data.User.ID != 11 || data.Message == "" {
			t.Fatalf("unexpected create payload %+v", data)
		}
	}
}

func TestUserHandlerCreateMapsServiceErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "missing fields", err: service.ErrUserFieldsRequired, wantCode: http.StatusBadRequest},
		{name: "duplicate email", err: service.ErrEmailTaken, wantCode: http.StatusBadRequest},
		{name: "forbidden", err: service.ErrPermissionDenied, wantCode: http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, svc := userRouterForTest(t)
			svc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(service.UserMutationResult{}, tc.err)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"x"}`)))
			if rr.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rr.Code)
			}
		})
	}
}

func TestUserHandlerUpdateMemberLinkTriState(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		wantSet    bool
		wantMember *uint
	}{
		{name: "absent", body: `{"name":"New"}`},
		{name: "cleared", body: `{"memberId":null}`, wantSet: true},
		{name: "linked", body: `{"memberId":7}`, wantSet: true, wantMember: func() *uint { v := uint(7); return &v }()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, svc := userRouterForTest(t)
			svc.EXPECT().Update(gomock.Any(), gomock.Any(), uint(5), gomock.Any()).DoAndReturn(
				func(_ context.Context, actor service.Actor, _ uint, in service.UpdateUserInput) (service.UserMutationResult, error) {
					if actor.UserID != 1 {
						t.Fatalf("expected actor 1, got %d", actor.UserID)
					}
					if in.SetMember != tc.wantSet {
						t.Fatalf("expected SetMember=%v, got %v", tc.wantSet, in.SetMember)
					}
					if (in.MemberID == nil) != (tc.wantMember == nil) || (in.MemberID != nil && *in.MemberID != *tc.wantMember) {
						t.Fatalf("unexpected member id %v", in.MemberID)
					}
					return service.UserMutationResult{User: &domain.UserSummary{ID: 5}}, nil
				})
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, withSession(httptest.NewRequest(http.MethodPut, "/users/5", strings.NewReader(tc.body)), "1"))
			if rr.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestUserHandlerUpdateRejectsMalformedMemberID(t *testing.T) {
	r, _ := userRouterForTest(t)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/users/5", strings.NewReader(`{"memberId":"seven"}`)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestUserHandlerResetPasswordReturnsEmailSent(t *testing.T) {
	r, svc := userRouterForTest(t)
	svc.EXPECT().Update(gomock.Any(), gomock.Any(), uint(5), service.UpdateUserInput{ResetPassword: true}).
		Return(service.UserMutationResult{EmailSent: boolPtr(false)}, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/users/5", strings.NewReader(`{"resetPassword":true}`)))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var data map[string]any
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data["emailSent"] != false {
		t.Fatalf("expected emailSent=false, got %v", data)
	}
	if _, ok := data["user"]; ok {
		t.Fatalf("credential actions must not echo the user, got %v", data)
	}
}

func TestUserHandlerDeleteSelfRefused(t *testing.T) {
	r, svc := userRouterForTest(t)
	svc.EXPECT().Delete(gomock.Any(), gomock.Any(), uint(1)).Return(service.ErrSelfDelete)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, withSession(httptest.NewRequest(http.MethodDelete, "/users/1", nil), "1"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	env := decodeEnvelope(t, rr)
	if env.Error == nil || env.Error.Message != service.ErrSelfDelete.Error() {
		t.Fatalf("unexpected error %+v", env.Error)
	}
}

func TestUserHandlerInvalidIDs(t *testing.T) {
	r, _ := userRouterForTest(t)
	for _, path := range []string{"/users/0", "/users/abc", "/users/-2"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, rr.Code)
		}
	}
}

func TestUserHandlerGetNotFound(t *testing.T) {
	r, svc := userRouterForTest(t)
	svc.EXPECT().Get(gomock.Any(), uint(99)).Return(nil, repository.ErrUserNotFound)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users/99", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
