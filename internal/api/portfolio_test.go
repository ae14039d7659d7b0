package api

import (
	"net/http"
	"testing"

	"github.com/nuttybakers/bakery-core/internal/auth"
	"github.com/nuttybakers/bakery-core/internal/catalog"
)

func testItemPayload() map[string]any {
	return map[string]any{
		"title":    "Three Tier Rose Cake",
		"category": "Wedding Cakes",
		"price":    450.0,
		"images": []map[string]string{
			{"url": "https://media.test/portfolio/images/rose.jpg", "key": "portfolio/images/rose.jpg"},
		},
		"tags": []string{"roses", "three-tier"},
	}
}

func TestPortfolioCRUD(t *testing.T) {
	env := newTestServer(t)
	admin := env.seedUser(t, "admin@example.com", auth.RoleAdmin)
	token := env.token(t, admin)

	rec := env.request(t, http.MethodPost, "/api/v1/admin/portfolio", token, testItemPayload())
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created catalog.Item
	decode(t, rec, &created)
	if created.ID == "" {
		t.Fatal("created item has no ID")
	}
	if !created.IsActive {
		t.Error("items default to active")
	}
	if created.Servings != "Varies" {
		t.Errorf("Servings = %q, want default", created.Servings)
	}

	// Public get increments views
	rec = env.request(t, http.MethodGet, "/api/v1/portfolio/"+created.ID, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var got catalog.Item
	decode(t, rec, &got)
	if got.Views != 1 {
		t.Errorf("Views = %d, want 1", got.Views)
	}

	// Update
	payload := testItemPayload()
	payload["title"] = "Updated Cake"
	rec = env.request(t, http.MethodPut, "/api/v1/admin/portfolio/"+created.ID, token, payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}

	// Delete removes media objects best-effort
	rec = env.request(t, http.MethodDelete, "/api/v1/admin/portfolio/"+created.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if len(env.media.deletes) != 1 || env.media.deletes[0] != "portfolio/images/rose.jpg" {
		t.Errorf("media deletes = %v", env.media.deletes)
	}

	rec = env.request(t, http.MethodGet, "/api/v1/portfolio/"+created.ID, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestPortfolioCreate_Validation(t *testing.T) {
	env := newTestServer(t)
	admin := env.seedUser(t, "admin@example.com", auth.RoleAdmin)
	token := env.token(t, admin)

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"missing title", func(p map[string]any) { p["title"] = "" }},
		{"bad category", func(p map[string]any) { p["category"] = "Bread" }},
		{"negative price", func(p map[string]any) { p["price"] = -1.0 }},
		{"no images", func(p map[string]any) { p["images"] = []map[string]string{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := testItemPayload()
			tt.mutate(payload)

			rec := env.request(t, http.MethodPost, "/api/v1/admin/portfolio", token, payload)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400, body %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestPortfolioList_PublicHidesInactive(t *testing.T) {
	env := newTestServer(t)
	admin := env.seedUser(t, "admin@example.com", auth.RoleAdmin)
	token := env.token(t, admin)

	rec := env.request(t, http.MethodPost, "/api/v1/admin/portfolio", token, testItemPayload())
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	hidden := testItemPayload()
	hidden["title"] = "Hidden Cake"
	hidden["is_active"] = false
	rec = env.request(t, http.MethodPost, "/api/v1/admin/portfolio", token, hidden)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create hidden status = %d", rec.Code)
	}
	var hiddenItem catalog.Item
	decode(t, rec, &hiddenItem)

	rec = env.request(t, http.MethodGet, "/api/v1/portfolio", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var result catalog.ListResult
	decode(t, rec, &result)
	if result.Total != 1 || len(result.Items) != 1 {
		t.Errorf("public list total = %d, items = %d, want 1/1", result.Total, len(result.Items))
	}

	// Hidden item is a 404 on the public detail route too
	rec = env.request(t, http.MethodGet, "/api/v1/portfolio/"+hiddenItem.ID, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("hidden item get status = %d, want 404", rec.Code)
	}
}

func TestPortfolioList_InvalidSort(t *testing.T) {
	env := newTestServer(t)

	rec := env.request(t, http.MethodGet, "/api/v1/portfolio?sort=password_hash", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestPortfolioCategories(t *testing.T) {
	env := newTestServer(t)

	rec := env.request(t, http.MethodGet, "/api/v1/portfolio/categories", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var counts []catalog.CategoryCount
	decode(t, rec, &counts)
	if len(counts) != len(catalog.Categories) {
		t.Errorf("got %d categories, want %d even when empty", len(counts), len(catalog.Categories))
	}
}

func TestPortfolioAdminRoutes_RequireAuth(t *testing.T) {
	env := newTestServer(t)

	rec := env.request(t, http.MethodPost, "/api/v1/admin/portfolio", "", testItemPayload())
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated create status = %d, want 401", rec.Code)
	}
}
