package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Pagination bounds.
const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Repository defines the interface for contact message persistence.
type Repository interface {
	Create(ctx context.Context, m *Message) error
	GetByID(ctx context.Context, id string) (*Message, error)
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	UpdateStatus(ctx context.Context, id string, status Status, notes *string) (*Message, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed contact repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const messageColumns = `id, name, email, phone, occasion, event_date,
	message, status, notes, created_at, updated_at`

// Create inserts a new enquiry. The ID is generated if empty and the
// status always starts at new.
func (r *SQLiteRepository) Create(ctx context.Context, m *Message) error {
	if m.ID == "" {
		m.ID = "msg-" + uuid.NewString()[:8]
	}
	m.Status = StatusNew

	now := time.Now().UTC().Format(time.RFC3339)
	m.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled
	m.UpdatedAt = m.CreatedAt

	var eventDate sql.NullString
	if m.EventDate != nil {
		eventDate = sql.NullString{String: m.EventDate.UTC().Format(time.RFC3339), Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_messages (id, name, email, phone, occasion, event_date,
			message, status, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Email, m.Phone, m.Occasion, eventDate,
		m.Message, string(m.Status), m.Notes, now, now,
	)
	if err != nil {
		return fmt.Errorf("inserting contact message %s: %w", m.ID, err)
	}
	return nil
}

// GetByID returns a single enquiry by ID.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*Message, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+messageColumns+" FROM contact_messages WHERE id = ?", id)
	return scanMessage(row)
}

// List returns a page of enquiries, newest first.
func (r *SQLiteRepository) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	where := ""
	var args []any
	if filter.Status != "" {
		if !filter.Status.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, filter.Status)
		}
		where = " WHERE status = ?"
		args = append(args, string(filter.Status))
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM contact_messages"+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting contact messages: %w", err)
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

	query := "SELECT " + messageColumns + " FROM contact_messages" + where +
		" ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying contact messages: %w", err)
	}
	defer rows.Close()

	messages := []Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contact messages: %w", err)
	}

	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}

	return &ListResult{Messages: messages, Total: total, Page: page, Pages: pages}, nil
}

// UpdateStatus changes an enquiry's workflow state and, when notes is
// non-nil, its admin notes. Returns the updated row.
func (r *SQLiteRepository) UpdateStatus(ctx context.Context, id string, status Status, notes *string) (*Message, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	now := time.Now().UTC().Format(time.RFC3339)

	var result sql.Result
	var err error
	if notes != nil {
		result, err = r.db.ExecContext(ctx,
			"UPDATE contact_messages SET status = ?, notes = ?, updated_at = ? WHERE id = ?",
			string(status), *notes, now, id)
	} else {
		result, err = r.db.ExecContext(ctx,
			"UPDATE contact_messages SET status = ?, updated_at = ? WHERE id = ?",
			string(status), now, id)
	}
	if err != nil {
		return nil, fmt.Errorf("updating contact message %s: %w", id, err)
	}

	n, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if n == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// MarkRead transitions a new enquiry to read. Messages already past
// new are left alone.
func (r *SQLiteRepository) MarkRead(ctx context.Context, id string) error {
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := r.db.ExecContext(ctx,
		"UPDATE contact_messages SET status = ?, updated_at = ? WHERE id = ? AND status = ?",
		string(StatusRead), now, id, string(StatusNew))
	if err != nil {
		return fmt.Errorf("marking contact message %s read: %w", id, err)
	}
	return nil
}

// Delete removes an enquiry by ID.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM contact_messages WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting contact message %s: %w", id, err)
	}

	n, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner is an interface for sql.Row and sql.Rows Scan methods.
type scanner interface {
	Scan(dest ...any) error
}

// scanMessage scans an enquiry from any scanner (Row or Rows).
func scanMessage(s scanner) (*Message, error) {
	var m Message
	var eventDate sql.NullString
	var status string
	var createdAt, updatedAt string

	err := s.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Occasion,
		&eventDate, &m.Message, &status, &m.Notes, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning contact message: %w", err)
	}

	m.Status = Status(status)
	if eventDate.Valid {
		if t, err := time.Parse(time.RFC3339, eventDate.String); err == nil {
			m.EventDate = &t
		}
	}
	m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
	m.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // format is controlled

	return &m, nil
}
