package contact

import (
	"fmt"
	"regexp"
	"strings"
)

// Validation limits.
const (
	maxNameLength    = 100
	maxPhoneLength   = 30
	maxMessageLength = 5000
	maxNotesLength   = 2000
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks an incoming enquiry before persistence. The email is
// lowercased and the occasion defaults to General Inquiry.
func Validate(m *Message) error {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}
	if len(m.Name) > maxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, maxNameLength)
	}

	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	if m.Email == "" || !emailPattern.MatchString(m.Email) {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, m.Email)
	}

	m.Phone = strings.TrimSpace(m.Phone)
	if len(m.Phone) > maxPhoneLength {
		return fmt.Errorf("%w: phone exceeds %d characters", ErrInvalidName, maxPhoneLength)
	}

	if m.Occasion == "" {
		m.Occasion = "General Inquiry"
	}
	if !IsValidOccasion(m.Occasion) {
		return fmt.Errorf("%w: %q", ErrInvalidOccasion, m.Occasion)
	}

	m.Message = strings.TrimSpace(m.Message)
	if m.Message == "" {
		return fmt.Errorf("%w: message cannot be empty", ErrInvalidMessage)
	}
	if len(m.Message) > maxMessageLength {
		return fmt.Errorf("%w: message exceeds %d characters", ErrInvalidMessage, maxMessageLength)
	}

	if len(m.Notes) > maxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidMessage, maxNotesLength)
	}

	return nil
}
