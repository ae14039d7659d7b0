package catalog

import "errors"

// Sentinel errors for catalogue operations.
var (
	ErrItemNotFound    = errors.New("portfolio item not found")
	ErrInvalidTitle    = errors.New("invalid title")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidImages   = errors.New("invalid images")
	ErrInvalidPrice    = errors.New("invalid price")
	ErrInvalidSort     = errors.New("invalid sort field")
)
