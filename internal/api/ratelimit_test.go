package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nuttybakers/bakery-core/internal/infrastructure/config"
)

func TestRateLimiter_BurstThenRefuse(t *testing.T) {
	limiter := newRateLimiter(config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 60,
		Burst:             3,
	})

	for i := 0; i < 3; i++ {
		if ok, _ := limiter.allow("1.2.3.4"); !ok {
			t.Fatalf("request %d within burst should pass", i+1)
		}
	}
	if ok, _ := limiter.allow("1.2.3.4"); ok {
		t.Error("request past burst should be refused")
	}

	// Other clients have their own bucket
	if ok, _ := limiter.allow("5.6.7.8"); !ok {
		t.Error("fresh client should pass")
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	limiter := newRateLimiter(config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 60,
		Burst:             1,
	})

	handler := limiter.middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rec.Code)
	}
	if rec.Header().Get("X-RateLimit-Limit") != "60" {
		t.Errorf("X-RateLimit-Limit = %q", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("429 should carry Retry-After")
	}
}
