package api

import (
	"net/http"
	"testing"

	"github.com/nuttybakers/bakery-core/internal/auth"
	"github.com/nuttybakers/bakery-core/internal/infrastructure/logging"
)

func TestNew_RequiresDeps(t *testing.T) {
	if _, err := New(Deps{}); err == nil {
		t.Error("New() with no deps should fail")
	}

	if _, err := New(Deps{Logger: logging.Default()}); err == nil {
		t.Error("New() without repositories should fail")
	}
}

func TestStatsEndpoints(t *testing.T) {
	env := newTestServer(t)
	admin := env.seedUser(t, "admin@example.com", auth.RoleAdmin)
	token := env.token(t, admin)

	rec := env.request(t, http.MethodGet, "/api/v1/admin/stats", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d, body %s", rec.Code, rec.Body.String())
	}

	var dashboard map[string]any
	decode(t, rec, &dashboard)
	for _, key := range []string{"overview", "top_viewed", "recent_contacts", "categories", "contact_trend", "testimonials"} {
		if _, ok := dashboard[key]; !ok {
			t.Errorf("dashboard missing %q", key)
		}
	}

	rec = env.request(t, http.MethodGet, "/api/v1/admin/stats/portfolio", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("portfolio report status = %d", rec.Code)
	}

	var report map[string]any
	decode(t, rec, &report)
	if _, ok := report["price_ranges"]; !ok {
		t.Error("report missing price_ranges")
	}
}
