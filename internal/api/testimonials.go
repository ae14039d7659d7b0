package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nuttybakers/bakery-core/internal/testimonial"
)

// handleTestimonialList returns a page of approved testimonials,
// featured entries first.
func (s *Server) handleTestimonialList(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePage(r)
	rating, _ := strconv.Atoi(r.URL.Query().Get("rating")) //nolint:errcheck // zero means unfiltered

	filter := testimonial.ListFilter{
		ApprovedOnly: true,
		Featured:     parseBoolParam(r, "featured"),
		Rating:       rating,
		Page:         page,
		Limit:        limit,
	}

	result, err := s.testimonialRepo.List(r.Context(), filter)
	if err != nil {
		s.logger.Error("listing testimonials", "error", err)
		writeInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleTestimonialGet returns one approved testimonial. Unapproved
// entries are indistinguishable from missing ones.
func (s *Server) handleTestimonialGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	tm, err := s.testimonialRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, testimonial.ErrNotFound) {
			writeNotFound(w, "testimonial not found")
			return
		}
		s.logger.Error("loading testimonial", "error", err, "testimonial_id", id)
		writeInternalError(w, "internal server error")
		return
	}
	if !tm.IsApproved {
		writeNotFound(w, "testimonial not found")
		return
	}

	writeJSON(w, http.StatusOK, tm)
}

// testimonialRequest is the admin create/update payload.
type testimonialRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Rating     int    `json:"rating"`
	Message    string `json:"message"`
	Occasion   string `json:"occasion"`
	ImageURL   string `json:"image_url"`
	VideoURL   string `json:"video_url"`
	IsApproved bool   `json:"is_approved"`
	Featured   bool   `json:"featured"`
}

func (req *testimonialRequest) toTestimonial() *testimonial.Testimonial {
	return &testimonial.Testimonial{
		Name:       req.Name,
		Email:      req.Email,
		Rating:     req.Rating,
		Message:    req.Message,
		Occasion:   req.Occasion,
		ImageURL:   req.ImageURL,
		VideoURL:   req.VideoURL,
		IsApproved: req.IsApproved,
		Featured:   req.Featured,
	}
}

// handleTestimonialCreate adds a new testimonial.
func (s *Server) handleTestimonialCreate(w http.ResponseWriter, r *http.Request) {
	var req testimonialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	tm := req.toTestimonial()
	if err := testimonial.Validate(tm); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	if err := s.testimonialRepo.Create(r.Context(), tm); err != nil {
		s.logger.Error("creating testimonial", "error", err)
		writeInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, tm)
}

// handleTestimonialUpdate replaces a testimonial's editable fields.
func (s *Server) handleTestimonialUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req testimonialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	tm := req.toTestimonial()
	tm.ID = id
	if err := testimonial.Validate(tm); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	if err := s.testimonialRepo.Update(r.Context(), tm); err != nil {
		if errors.Is(err, testimonial.ErrNotFound) {
			writeNotFound(w, "testimonial not found")
			return
		}
		s.logger.Error("updating testimonial", "error", err, "testimonial_id", id)
		writeInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, tm)
}

// handleTestimonialDelete removes a testimonial.
func (s *Server) handleTestimonialDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.testimonialRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, testimonial.ErrNotFound) {
			writeNotFound(w, "testimonial not found")
			return
		}
		s.logger.Error("deleting testimonial", "error", err, "testimonial_id", id)
		writeInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "testimonial deleted"})
}

// handleTestimonialApprove flips the approval flag.
func (s *Server) handleTestimonialApprove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	tm, err := s.testimonialRepo.ToggleApproval(r.Context(), id)
	if err != nil {
		if errors.Is(err, testimonial.ErrNotFound) {
			writeNotFound(w, "testimonial not found")
			return
		}
		s.logger.Error("toggling testimonial approval", "error", err, "testimonial_id", id)
		writeInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, tm)
}
