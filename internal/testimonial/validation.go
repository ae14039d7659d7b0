package testimonial

import (
	"fmt"
	"regexp"
	"strings"
)

// Validation limits.
const (
	maxNameLength    = 100
	maxMessageLength = 2000
	minRating        = 1
	maxRating        = 5
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks a testimonial before persistence. The email is
// lowercased, the rating defaults to 5 when unset, and the occasion
// defaults to Other.
func Validate(tm *Testimonial) error {
	tm.Name = strings.TrimSpace(tm.Name)
	if tm.Name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}
	if len(tm.Name) > maxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, maxNameLength)
	}

	tm.Email = strings.ToLower(strings.TrimSpace(tm.Email))
	if tm.Email == "" || !emailPattern.MatchString(tm.Email) {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, tm.Email)
	}

	if tm.Rating == 0 {
		tm.Rating = maxRating
	}
	if tm.Rating < minRating || tm.Rating > maxRating {
		return fmt.Errorf("%w: rating must be %d-%d", ErrInvalidRating, minRating, maxRating)
	}

	tm.Message = strings.TrimSpace(tm.Message)
	if tm.Message == "" {
		return fmt.Errorf("%w: message cannot be empty", ErrInvalidMessage)
	}
	if len(tm.Message) > maxMessageLength {
		return fmt.Errorf("%w: message exceeds %d characters", ErrInvalidMessage, maxMessageLength)
	}

	if tm.Occasion == "" {
		tm.Occasion = "Other"
	}
	if !IsValidOccasion(tm.Occasion) {
		return fmt.Errorf("%w: %q", ErrInvalidOccasion, tm.Occasion)
	}

	return nil
}
