package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nuttybakers/bakery-core/internal/catalog"
)

// parsePage reads the shared pagination query parameters. Zero values
// fall back to repository defaults.
func parsePage(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))   //nolint:errcheck // zero means default
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit")) //nolint:errcheck // zero means default
	return page, limit
}

// parseBoolParam reads an optional boolean query parameter.
func parseBoolParam(r *http.Request, name string) *bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

// handlePortfolioList returns a page of active portfolio items.
func (s *Server) handlePortfolioList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := parsePage(r)

	filter := catalog.ListFilter{
		Category: q.Get("category"),
		Featured: parseBoolParam(r, "featured"),
		Search:   q.Get("search"),
		Sort:     q.Get("sort"),
		Page:     page,
		Limit:    limit,
	}

	result, err := s.catalogRepo.List(r.Context(), filter)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidSort) {
			writeBadRequest(w, err.Error())
			return
		}
		s.logger.Error("listing portfolio", "error", err)
		writeInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handlePortfolioCategories returns active item counts per category,
// every category present even when empty.
func (s *Server) handlePortfolioCategories(w http.ResponseWriter, r *http.Request) {
	counts, err := s.catalogRepo.CategoryCounts(r.Context())
	if err != nil {
		s.logger.Error("counting categories", "error", err)
		writeInternalError(w, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// handlePortfolioGet returns one active item and bumps its view count.
// Hidden items are indistinguishable from missing ones.
func (s *Server) handlePortfolioGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := s.catalogRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrItemNotFound) {
			writeNotFound(w, "portfolio item not found")
			return
		}
		s.logger.Error("loading portfolio item", "error", err, "item_id", id)
		writeInternalError(w, "internal server error")
		return
	}
	if !item.IsActive {
		writeNotFound(w, "portfolio item not found")
		return
	}

	if err := s.catalogRepo.IncrementViews(r.Context(), id); err != nil {
		s.logger.Warn("incrementing views", "error", err, "item_id", id)
	} else {
		item.Views++
	}

	writeJSON(w, http.StatusOK, item)
}

// portfolioRequest is the admin create/update payload. IsActive
// defaults to true when omitted on create.
type portfolioRequest struct {
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Price           float64         `json:"price"`
	Images          []catalog.Image `json:"images"`
	Video           *catalog.Video  `json:"video"`
	Tags            []string        `json:"tags"`
	Featured        bool            `json:"featured"`
	Servings        string          `json:"servings"`
	PreparationTime string          `json:"preparation_time"`
	IsActive        *bool           `json:"is_active"`
}

func (req *portfolioRequest) toItem() *catalog.Item {
	item := &catalog.Item{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Price:           req.Price,
		Images:          req.Images,
		Video:           req.Video,
		Tags:            req.Tags,
		Featured:        req.Featured,
		Servings:        req.Servings,
		PreparationTime: req.PreparationTime,
		IsActive:        true,
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	return item
}

// handlePortfolioCreate adds a new portfolio item.
func (s *Server) handlePortfolioCreate(w http.ResponseWriter, r *http.Request) {
	var req portfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	item := req.toItem()
	if err := catalog.ValidateItem(item); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	if err := s.catalogRepo.Create(r.Context(), item); err != nil {
		s.logger.Error("creating portfolio item", "error", err)
		writeInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// handlePortfolioUpdate replaces an item's editable fields.
func (s *Server) handlePortfolioUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req portfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	item := req.toItem()
	item.ID = id
	if err := catalog.ValidateItem(item); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	if err := s.catalogRepo.Update(r.Context(), item); err != nil {
		if errors.Is(err, catalog.ErrItemNotFound) {
			writeNotFound(w, "portfolio item not found")
			return
		}
		s.logger.Error("updating portfolio item", "error", err, "item_id", id)
		writeInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// handlePortfolioDelete removes an item and, best-effort, its hosted
// media objects. A failed object delete never fails the request.
func (s *Server) handlePortfolioDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := s.catalogRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrItemNotFound) {
			writeNotFound(w, "portfolio item not found")
			return
		}
		s.logger.Error("loading portfolio item", "error", err, "item_id", id)
		writeInternalError(w, "internal server error")
		return
	}

	if err := s.catalogRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrItemNotFound) {
			writeNotFound(w, "portfolio item not found")
			return
		}
		s.logger.Error("deleting portfolio item", "error", err, "item_id", id)
		writeInternalError(w, "internal server error")
		return
	}

	for _, img := range item.Images {
		if img.Key == "" {
			continue
		}
		if err := s.mediaStore.DeleteObject(r.Context(), img.Key); err != nil {
			s.logger.Warn("deleting media object", "error", err, "key", img.Key)
		}
	}
	if item.Video != nil && item.Video.Key != "" {
		if err := s.mediaStore.DeleteObject(r.Context(), item.Video.Key); err != nil {
			s.logger.Warn("deleting media object", "error", err, "key", item.Video.Key)
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "portfolio item deleted"})
}
