package catalog

import (
	"fmt"
	"strings"
)

// Validation limits.
const (
	maxTitleLength       = 200
	maxDescriptionLength = 5000
	maxTags              = 20
	maxTagLength         = 50
	maxImages            = 20
)

// ValidateItem checks an item before persistence. Defaults for
// servings and preparation time are applied here so callers can pass
// zero values.
func ValidateItem(item *Item) error {
	item.Title = strings.TrimSpace(item.Title)
	if item.Title == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidTitle)
	}
	if len(item.Title) > maxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidTitle, maxTitleLength)
	}

	item.Description = strings.TrimSpace(item.Description)
	if len(item.Description) > maxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidTitle, maxDescriptionLength)
	}

	if !IsValidCategory(item.Category) {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, item.Category)
	}

	if item.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidPrice)
	}

	if len(item.Images) == 0 {
		return fmt.Errorf("%w: at least one image is required", ErrInvalidImages)
	}
	if len(item.Images) > maxImages {
		return fmt.Errorf("%w: more than %d images", ErrInvalidImages, maxImages)
	}
	for _, img := range item.Images {
		if strings.TrimSpace(img.URL) == "" {
			return fmt.Errorf("%w: image url cannot be empty", ErrInvalidImages)
		}
	}

	if len(item.Tags) > maxTags {
		return fmt.Errorf("%w: more than %d tags", ErrInvalidTitle, maxTags)
	}
	for i, tag := range item.Tags {
		item.Tags[i] = strings.TrimSpace(tag)
		if len(item.Tags[i]) > maxTagLength {
			return fmt.Errorf("%w: tag exceeds %d characters", ErrInvalidTitle, maxTagLength)
		}
	}

	if item.Servings == "" {
		item.Servings = "Varies"
	}
	if item.PreparationTime == "" {
		item.PreparationTime = "2-3 days"
	}

	return nil
}

// sortColumns whitelists the sortable fields. Filter sort values are
// interpolated into ORDER BY, so only these keys are accepted.
var sortColumns = map[string]string{
	"created_at": "created_at ASC",
	"price":      "price ASC",
	"views":      "views ASC",
}

// orderClause resolves a filter sort value to a safe ORDER BY clause.
// A leading "-" flips the direction. Empty means newest first.
func orderClause(sort string) (string, error) {
	if sort == "" {
		sort = "-created_at"
	}
	desc := strings.HasPrefix(sort, "-")
	field := strings.TrimPrefix(sort, "-")

	clause, ok := sortColumns[field]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, sort)
	}
	if desc {
		clause = field + " DESC"
	}
	return clause, nil
}
