package testimonial

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Pagination bounds.
const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// Repository defines the interface for testimonial persistence.
type Repository interface {
	Create(ctx context.Context, tm *Testimonial) error
	GetByID(ctx context.Context, id string) (*Testimonial, error)
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	Update(ctx context.Context, tm *Testimonial) error
	Delete(ctx context.Context, id string) error
	ToggleApproval(ctx context.Context, id string) (*Testimonial, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed testimonial repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const testimonialColumns = `id, name, email, rating, message, occasion,
	image_url, video_url, is_approved, featured, created_at, updated_at`

// Create inserts a new testimonial. The ID is generated if empty.
// New submissions are never pre-approved.
func (r *SQLiteRepository) Create(ctx context.Context, tm *Testimonial) error {
	if tm.ID == "" {
		tm.ID = "tst-" + uuid.NewString()[:8]
	}

	now := time.Now().UTC().Format(time.RFC3339)
	tm.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled
	tm.UpdatedAt = tm.CreatedAt

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO testimonials (id, name, email, rating, message, occasion,
			image_url, video_url, is_approved, featured, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tm.ID, tm.Name, tm.Email, tm.Rating, tm.Message, tm.Occasion,
		nullString(tm.ImageURL), nullString(tm.VideoURL),
		boolToInt(tm.IsApproved), boolToInt(tm.Featured), now, now,
	)
	if err != nil {
		return fmt.Errorf("inserting testimonial %s: %w", tm.ID, err)
	}
	return nil
}

// GetByID returns a single testimonial by ID, approved or not.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*Testimonial, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+testimonialColumns+" FROM testimonials WHERE id = ?", id)
	return scanTestimonial(row)
}

// List returns a page of testimonials matching the filter, featured
// entries first, newest first within each group.
func (r *SQLiteRepository) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	var conds []string
	var args []any

	if filter.ApprovedOnly {
		conds = append(conds, "is_approved = 1")
	}
	if filter.Featured != nil {
		conds = append(conds, "featured = ?")
		args = append(args, boolToInt(*filter.Featured))
	}
	if filter.Rating >= minRating && filter.Rating <= maxRating {
		conds = append(conds, "rating = ?")
		args = append(args, filter.Rating)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM testimonials"+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting testimonials: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	query := "SELECT " + testimonialColumns + " FROM testimonials" + where +
		" ORDER BY featured DESC, created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying testimonials: %w", err)
	}
	defer rows.Close()

	testimonials := []Testimonial{}
	for rows.Next() {
		tm, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		testimonials = append(testimonials, *tm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating testimonials: %w", err)
	}

	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}

	return &ListResult{Testimonials: testimonials, Total: total, Page: page, Pages: pages}, nil
}

// Update modifies an existing testimonial.
func (r *SQLiteRepository) Update(ctx context.Context, tm *Testimonial) error {
	now := time.Now().UTC().Format(time.RFC3339)
	tm.UpdatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled

	result, err := r.db.ExecContext(ctx,
		`UPDATE testimonials SET name = ?, email = ?, rating = ?, message = ?,
			occasion = ?, image_url = ?, video_url = ?, is_approved = ?,
			featured = ?, updated_at = ?
		 WHERE id = ?`,
		tm.Name, tm.Email, tm.Rating, tm.Message, tm.Occasion,
		nullString(tm.ImageURL), nullString(tm.VideoURL),
		boolToInt(tm.IsApproved), boolToInt(tm.Featured), now, tm.ID,
	)
	if err != nil {
		return fmt.Errorf("updating testimonial %s: %w", tm.ID, err)
	}

	n, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a testimonial by ID.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM testimonials WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting testimonial %s: %w", id, err)
	}

	n, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleApproval flips the approval flag and returns the updated row.
func (r *SQLiteRepository) ToggleApproval(ctx context.Context, id string) (*Testimonial, error) {
	now := time.Now().UTC().Format(time.RFC3339)

	result, err := r.db.ExecContext(ctx,
		`UPDATE testimonials SET is_approved = 1 - is_approved, updated_at = ? WHERE id = ?`,
		now, id,
	)
	if err != nil {
		return nil, fmt.Errorf("toggling approval for %s: %w", id, err)
	}

	n, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if n == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// scanner is an interface for sql.Row and sql.Rows Scan methods.
type scanner interface {
	Scan(dest ...any) error
}

// scanTestimonial scans a testimonial from any scanner (Row or Rows).
func scanTestimonial(s scanner) (*Testimonial, error) {
	var tm Testimonial
	var imageURL, videoURL sql.NullString
	var isApproved, featured int
	var createdAt, updatedAt string

	err := s.Scan(&tm.ID, &tm.Name, &tm.Email, &tm.Rating, &tm.Message,
		&tm.Occasion, &imageURL, &videoURL, &isApproved, &featured,
		&createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning testimonial: %w", err)
	}

	if imageURL.Valid {
		tm.ImageURL = imageURL.String
	}
	if videoURL.Valid {
		tm.VideoURL = videoURL.String
	}
	tm.IsApproved = isApproved != 0
	tm.Featured = featured != 0
	tm.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
	tm.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // format is controlled

	return &tm, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
