package testimonial

import (
	"errors"
	"time"
)

// Occasions is the closed set of testimonial occasions.
var Occasions = []string{
	"Wedding",
	"Birthday",
	"Anniversary",
	"Corporate Event",
	"Other",
}

// IsValidOccasion returns true if the occasion is one of the defined set.
func IsValidOccasion(occasion string) bool {
	for _, o := range Occasions {
		if occasion == o {
			return true
		}
	}
	return false
}

// Testimonial represents one customer review.
type Testimonial struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Rating     int       `json:"rating"`
	Message    string    `json:"message"`
	Occasion   string    `json:"occasion"`
	ImageURL   string    `json:"image_url,omitempty"`
	VideoURL   string    `json:"video_url,omitempty"`
	IsApproved bool      `json:"is_approved"`
	Featured   bool      `json:"featured"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ListFilter narrows a testimonial listing.
type ListFilter struct {
	// ApprovedOnly hides unapproved entries (always set for public reads).
	ApprovedOnly bool

	// Featured restricts to featured entries when set.
	Featured *bool

	// Rating restricts to one rating value when 1-5.
	Rating int

	// Page is 1-based. Limit caps results per page.
	Page  int
	Limit int
}

// ListResult is a page of testimonials with pagination totals.
type ListResult struct {
	Testimonials []Testimonial `json:"results"`
	Total        int           `json:"total"`
	Page         int           `json:"page"`
	Pages        int           `json:"pages"`
}

// Sentinel errors for testimonial operations.
var (
	ErrNotFound        = errors.New("testimonial not found")
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidRating   = errors.New("invalid rating")
	ErrInvalidMessage  = errors.New("invalid message")
	ErrInvalidOccasion = errors.New("invalid occasion")
)
