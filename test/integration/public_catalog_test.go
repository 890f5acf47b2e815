package integration

import (
	"net/http"
	"testing"

	"github.com/lfpcrew/lfp-admin/internal/domain"
)

func publicMembers(t *testing.T, c *apiClient) []string {
	t.Helper()
	status, res := c.do(http.MethodGet, "/api/v1/public/members", nil)
	if status != http.StatusOK {
		t.Fatalf("public members: status=%d code=%s", status, res.code())
	}
	var members []struct {
		Name string `json:"name"`
	}
	decodeData(t, res, &members)
	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name)
	}
	return names
}

func TestPublicCatalogServedFromCacheUntilMutation(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminClient(t)
	anon := env.newClient(t)

	if names := publicMembers(t, anon); len(names) != 0 {
		t.Fatalf("expected empty roster, got %v", names)
	}

	direct := domain.Member{Name: "Backdoor", Instagram: "@backdoor", Photo: domain.DefaultMemberPhoto, IsActive: true}
	if err := env.db.Create(&direct).Error; err != nil {
		t.Fatalf("insert member: %v", err)
	}
	if names := publicMembers(t, anon); len(names) != 0 {
		t.Fatalf("cached roster should not see direct writes yet, got %v", names)
	}

	status, res := admin.do(http.MethodPost, "/api/v1/admin/members", map[string]any{"name": "Nico", "instagram": "@nico"})
	if status != http.StatusCreated {
		t.Fatalf("create member: status=%d code=%s", status, res.code())
	}
	if names := publicMembers(t, anon); len(names) != 2 {
		t.Fatalf("mutation must invalidate the roster cache, got %v", names)
	}
}

func TestDeactivatedMembersLeaveThePublicRoster(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminClient(t)
	anon := env.newClient(t)

	status, res := admin.do(http.MethodPost, "/api/v1/admin/members", map[string]any{"name": "Tom", "instagram": "@tom"})
	if status != http.StatusCreated {
		t.Fatalf("create member: status=%d code=%s", status, res.code())
	}
	var member domain.Member
	decodeData(t, res, &member)
	if names := publicMembers(t, anon); len(names) != 1 {
		t.Fatalf("expected one member, got %v", names)
	}

	if status, res := admin.do(http.MethodDelete, "/api/v1/admin/members/"+itoa(member.ID), nil); status != http.StatusOK {
		t.Fatalf("deactivate: status=%d code=%s", status, res.code())
	}
	if names := publicMembers(t, anon); len(names) != 0 {
		t.Fatalf("deactivated member still public: %v", names)
	}

	if status, res := admin.do(http.MethodPost, "/api/v1/admin/members/"+itoa(member.ID)+"/reactivate", nil); status != http.StatusOK {
		t.Fatalf("reactivate: status=%d code=%s", status, res.code())
	}
	if names := publicMembers(t, anon); len(names) != 1 {
		t.Fatalf("reactivated member missing: %v", names)
	}
}
