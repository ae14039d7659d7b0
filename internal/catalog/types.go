package catalog

import "time"

// Categories is the closed set of portfolio categories.
var Categories = []string{
	"Wedding Cakes",
	"Birthday Cakes",
	"Cupcakes",
	"Custom Cakes",
	"Desserts",
	"Other",
}

// IsValidCategory returns true if the category is one of the defined set.
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if category == c {
			return true
		}
	}
	return false
}

// Image is a hosted photo of a portfolio item.
type Image struct {
	URL string `json:"url"`
	Key string `json:"key,omitempty"`
	Alt string `json:"alt,omitempty"`
}

// Video is an optional hosted video of a portfolio item.
type Video struct {
	URL       string  `json:"url"`
	Key       string  `json:"key,omitempty"`
	Thumbnail string  `json:"thumbnail,omitempty"`
	Duration  float64 `json:"duration,omitempty"`
	Size      int64   `json:"size,omitempty"`
}

// Item represents a single piece of portfolio work.
type Item struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Price           float64   `json:"price"`
	Images          []Image   `json:"images"`
	Video           *Video    `json:"video,omitempty"`
	Tags            []string  `json:"tags"`
	Featured        bool      `json:"featured"`
	Servings        string    `json:"servings"`
	PreparationTime string    `json:"preparation_time"`
	IsActive        bool      `json:"is_active"`
	Views           int       `json:"views"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ListFilter narrows and orders a portfolio listing.
type ListFilter struct {
	// Category restricts results to one category when non-empty.
	Category string

	// Featured restricts to featured (true) or non-featured (false)
	// items when set.
	Featured *bool

	// Search matches title, description, and tags, case-insensitive.
	Search string

	// Sort is one of created_at, price, views, optionally prefixed
	// with "-" for descending. Empty means "-created_at".
	Sort string

	// IncludeInactive includes hidden items (admin listings only).
	IncludeInactive bool

	// Page is 1-based. Limit caps results per page.
	Page  int
	Limit int
}

// ListResult is a page of portfolio items with pagination totals.
type ListResult struct {
	Items []Item `json:"results"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Pages int    `json:"pages"`
}

// CategoryCount is the number of active items in one category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}
