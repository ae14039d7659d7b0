package contact

import (
	"errors"
	"time"
)

// Status represents a message's position in the admin workflow.
type Status string

const (
	StatusNew      Status = "new"
	StatusRead     Status = "read"
	StatusReplied  Status = "replied"
	StatusArchived Status = "archived"
)

// ValidStatuses is the closed set of workflow statuses.
var ValidStatuses = []Status{StatusNew, StatusRead, StatusReplied, StatusArchived}

// IsValid returns true if the status is one of the defined workflow states.
func (s Status) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Occasions is the closed set of enquiry occasions.
var Occasions = []string{
	"Wedding",
	"Birthday",
	"Anniversary",
	"Corporate Event",
	"Custom Order",
	"General Inquiry",
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

// Message represents one contact form enquiry.
type Message struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Occasion  string     `json:"occasion"`
	EventDate *time.Time `json:"event_date,omitempty"`
	Message   string     `json:"message"`
	Status    Status     `json:"status"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ListFilter narrows a message listing.
type ListFilter struct {
	// Status restricts to one workflow state when non-empty.
	Status Status

	// Page is 1-based. Limit caps results per page.
	Page  int
	Limit int
}

// ListResult is a page of messages with pagination totals.
type ListResult struct {
	Messages []Message `json:"results"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Pages    int       `json:"pages"`
}

// Sentinel errors for contact operations.
var (
	ErrNotFound        = errors.New("contact message not found")
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidMessage  = errors.New("invalid message")
	ErrInvalidOccasion = errors.New("invalid occasion")
	ErrInvalidStatus   = errors.New("invalid status")
)
