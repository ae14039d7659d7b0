package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Pagination bounds.
const (
	defaultPageLimit = 12
	maxPageLimit     = 100
)

// Repository defines the interface for portfolio persistence.
type Repository interface {
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	CategoryCounts(ctx context.Context) ([]CategoryCount, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed portfolio repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const itemColumns = `id, title, description, category, price, images, video, tags,
	featured, servings, preparation_time, is_active, views, created_at, updated_at`

// Create inserts a new portfolio item. The ID is generated if empty.
func (r *SQLiteRepository) Create(ctx context.Context, item *Item) error {
	if item.ID == "" {
		item.ID = "prt-" + uuid.NewString()[:8]
	}

	images, video, tags, err := encodeMedia(item)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	item.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled
	item.UpdatedAt = item.CreatedAt

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO portfolio_items (id, title, description, category, price, images, video, tags,
			featured, servings, preparation_time, is_active, views, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Title, item.Description, item.Category, item.Price,
		images, video, tags, boolToInt(item.Featured),
		item.Servings, item.PreparationTime, boolToInt(item.IsActive),
		item.Views, now, now,
	)
	if err != nil {
		return fmt.Errorf("inserting portfolio item %s: %w", item.ID, err)
	}
	return nil
}

// GetByID returns a single item by ID, active or not.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*Item, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM portfolio_items WHERE id = ?", id)
	return scanItem(row)
}

// List returns a page of items matching the filter.
func (r *SQLiteRepository) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	order, err := orderClause(filter.Sort)
	if err != nil {
		return nil, err
	}

	where, args := buildWhere(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM portfolio_items" + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting portfolio items: %w", err)
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

	query := "SELECT " + itemColumns + " FROM portfolio_items" + where +
		" ORDER BY " + order + " LIMIT ? OFFSET ?"
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying portfolio items: %w", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating portfolio items: %w", err)
	}

	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}

	return &ListResult{Items: items, Total: total, Page: page, Pages: pages}, nil
}

// buildWhere assembles the WHERE clause for a listing filter.
func buildWhere(filter ListFilter) (string, []any) {
	var conds []string
	var args []any

	if !filter.IncludeInactive {
		conds = append(conds, "is_active = 1")
	}
	if filter.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Featured != nil {
		conds = append(conds, "featured = ?")
		args = append(args, boolToInt(*filter.Featured))
	}
	if filter.Search != "" {
		conds = append(conds, "(title LIKE ? OR description LIKE ? OR tags LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Update modifies an existing item. Views and timestamps are managed
// by the repository, not the caller.
func (r *SQLiteRepository) Update(ctx context.Context, item *Item) error {
	images, video, tags, err := encodeMedia(item)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	item.UpdatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled

	result, err := r.db.ExecContext(ctx,
		`UPDATE portfolio_items SET title = ?, description = ?, category = ?, price = ?,
			images = ?, video = ?, tags = ?, featured = ?, servings = ?,
			preparation_time = ?, is_active = ?, updated_at = ?
		 WHERE id = ?`,
		item.Title, item.Description, item.Category, item.Price,
		images, video, tags, boolToInt(item.Featured),
		item.Servings, item.PreparationTime, boolToInt(item.IsActive),
		now, item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating portfolio item %s: %w", item.ID, err)
	}

	n, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}

// Delete removes an item by ID.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM portfolio_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting portfolio item %s: %w", id, err)
	}

	n, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}

// IncrementViews bumps an item's view counter atomically.
func (r *SQLiteRepository) IncrementViews(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE portfolio_items SET views = views + 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("incrementing views for %s: %w", id, err)
	}

	n, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}

// CategoryCounts returns per-category active item counts, every
// category present even when empty.
func (r *SQLiteRepository) CategoryCounts(ctx context.Context) ([]CategoryCount, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT category, COUNT(*) FROM portfolio_items WHERE is_active = 1 GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("counting categories: %w", err)
	}
	defer rows.Close()

	byCategory := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("scanning category count: %w", err)
		}
		byCategory[category] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category counts: %w", err)
	}

	counts := make([]CategoryCount, 0, len(Categories))
	for _, c := range Categories {
		counts = append(counts, CategoryCount{Category: c, Count: byCategory[c]})
	}
	return counts, nil
}

// encodeMedia serialises the JSON columns of an item.
func encodeMedia(item *Item) (images string, video sql.NullString, tags string, err error) {
	if item.Images == nil {
		item.Images = []Image{}
	}
	b, err := json.Marshal(item.Images)
	if err != nil {
		return "", video, "", fmt.Errorf("encoding images: %w", err)
	}
	images = string(b)

	if item.Video != nil {
		b, err := json.Marshal(item.Video)
		if err != nil {
			return "", video, "", fmt.Errorf("encoding video: %w", err)
		}
		video = sql.NullString{String: string(b), Valid: true}
	}

	if item.Tags == nil {
		item.Tags = []string{}
	}
	b, err = json.Marshal(item.Tags)
	if err != nil {
		return "", video, "", fmt.Errorf("encoding tags: %w", err)
	}
	tags = string(b)

	return images, video, tags, nil
}

// scanner is an interface for sql.Row and sql.Rows Scan methods.
type scanner interface {
	Scan(dest ...any) error
}

// scanItem scans a portfolio item from any scanner (Row or Rows).
func scanItem(s scanner) (*Item, error) {
	var item Item
	var images, tags string
	var video sql.NullString
	var featured, isActive int
	var createdAt, updatedAt string

	err := s.Scan(&item.ID, &item.Title, &item.Description, &item.Category,
		&item.Price, &images, &video, &tags, &featured,
		&item.Servings, &item.PreparationTime, &isActive, &item.Views,
		&createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("scanning portfolio item: %w", err)
	}

	if err := json.Unmarshal([]byte(images), &item.Images); err != nil {
		item.Images = []Image{}
	}
	if video.Valid && video.String != "" {
		var v Video
		if err := json.Unmarshal([]byte(video.String), &v); err == nil {
			item.Video = &v
		}
	}
	if err := json.Unmarshal([]byte(tags), &item.Tags); err != nil {
		item.Tags = []string{}
	}

	item.Featured = featured != 0
	item.IsActive = isActive != 0
	item.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
	item.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // format is controlled

	return &item, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
