package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter assembles the full route tree with the middleware chain.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)
	if s.limiter != nil {
		r.Use(s.limiter.middleware)
	}

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		// Public surface.
		r.Post("/auth/login", s.handleLogin)

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/", s.handlePortfolioList)
			r.Get("/categories", s.handlePortfolioCategories)
			r.Get("/{id}", s.handlePortfolioGet)
		})

		r.Route("/testimonials", func(r chi.Router) {
			r.Get("/", s.handleTestimonialList)
			r.Get("/{id}", s.handleTestimonialGet)
		})

		r.Post("/contact", s.handleContactSubmit)

		// Authenticated surface.
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/auth/me", s.handleMe)
			r.Put("/auth/password", s.handlePasswordChange)

			// Admin surface.
			r.Route("/admin", func(r chi.Router) {
				r.Use(s.adminMiddleware)

				r.Post("/auth/register", s.handleRegister)

				r.Route("/portfolio", func(r chi.Router) {
					r.Post("/", s.handlePortfolioCreate)
					r.Put("/{id}", s.handlePortfolioUpdate)
					r.Delete("/{id}", s.handlePortfolioDelete)
				})

				r.Route("/testimonials", func(r chi.Router) {
					r.Post("/", s.handleTestimonialCreate)
					r.Put("/{id}", s.handleTestimonialUpdate)
					r.Delete("/{id}", s.handleTestimonialDelete)
					r.Patch("/{id}/approve", s.handleTestimonialApprove)
				})

				r.Route("/contacts", func(r chi.Router) {
					r.Get("/", s.handleContactList)
					r.Get("/{id}", s.handleContactGet)
					r.Patch("/{id}", s.handleContactUpdate)
					r.Delete("/{id}", s.handleContactDelete)
				})

				r.Get("/stats", s.handleStats)
				r.Get("/stats/portfolio", s.handleStatsPortfolio)

				r.Route("/uploads", func(r chi.Router) {
					r.Post("/image", s.handleUploadImage)
					r.Post("/video", s.handleUploadVideo)
				})
			})
		})
	})

	return r
}

// handleHealth reports service liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.version,
	})
}
