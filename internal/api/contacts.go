package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nuttybakers/bakery-core/internal/contact"
)

// notifyTimeout bounds the background email delivery for one enquiry.
const notifyTimeout = 30 * time.Second

// contactSubmitRequest is the public contact form payload.
type contactSubmitRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Occasion  string `json:"occasion"`
	EventDate string `json:"event_date"`
	Message   string `json:"message"`
}

// handleContactSubmit stores a new enquiry and kicks off the email
// notifications in the background. Notification failures are logged,
// never surfaced to the submitter.
func (s *Server) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	var req contactSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	m := &contact.Message{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Occasion: req.Occasion,
		Message:  req.Message,
	}
	if req.EventDate != "" {
		t, err := time.Parse("2006-01-02", req.EventDate)
		if err != nil {
			writeValidationError(w, "event_date must be YYYY-MM-DD")
			return
		}
		m.EventDate = &t
	}

	if err := contact.Validate(m); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	if err := s.contactRepo.Create(r.Context(), m); err != nil {
		s.logger.Error("creating contact message", "error", err)
		writeInternalError(w, "internal server error")
		return
	}

	go func(m *contact.Message) {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.ContactReceived(ctx, m); err != nil {
			s.logger.Warn("sending contact notifications", "error", err, "message_id", m.ID)
		}
	}(m)

	writeJSON(w, http.StatusCreated, m)
}

// handleContactList returns a page of enquiries, newest first,
// optionally filtered by workflow status.
func (s *Server) handleContactList(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePage(r)

	filter := contact.ListFilter{
		Status: contact.Status(r.URL.Query().Get("status")),
		Page:   page,
		Limit:  limit,
	}

	result, err := s.contactRepo.List(r.Context(), filter)
	if err != nil {
		if errors.Is(err, contact.ErrInvalidStatus) {
			writeBadRequest(w, err.Error())
			return
		}
		s.logger.Error("listing contact messages", "error", err)
		writeInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleContactGet returns one enquiry, transitioning new entries to
// read as a side effect of viewing them.
func (s *Server) handleContactGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	m, err := s.contactRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			writeNotFound(w, "contact message not found")
			return
		}
		s.logger.Error("loading contact message", "error", err, "message_id", id)
		writeInternalError(w, "internal server error")
		return
	}

	if m.Status == contact.StatusNew {
		if err := s.contactRepo.MarkRead(r.Context(), id); err != nil {
			s.logger.Warn("marking contact message read", "error", err, "message_id", id)
		} else {
			m.Status = contact.StatusRead
		}
	}

	writeJSON(w, http.StatusOK, m)
}

// contactUpdateRequest is the admin workflow payload. Notes are only
// touched when the field is present.
type contactUpdateRequest struct {
	Status contact.Status `json:"status"`
	Notes  *string        `json:"notes"`
}

// handleContactUpdate changes an enquiry's workflow state and notes.
func (s *Server) handleContactUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req contactUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	m, err := s.contactRepo.UpdateStatus(r.Context(), id, req.Status, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, contact.ErrNotFound):
			writeNotFound(w, "contact message not found")
		case errors.Is(err, contact.ErrInvalidStatus):
			writeValidationError(w, err.Error())
		default:
			s.logger.Error("updating contact message", "error", err, "message_id", id)
			writeInternalError(w, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, m)
}

// handleContactDelete removes an enquiry.
func (s *Server) handleContactDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.contactRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			writeNotFound(w, "contact message not found")
			return
		}
		s.logger.Error("deleting contact message", "error", err, "message_id", id)
		writeInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "contact message deleted"})
}
