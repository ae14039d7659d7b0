package testimonial

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// testDB creates a temporary SQLite database with the testimonials schema applied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp("", "testimonial-test-*.db")
	if err != nil {
		t.Fatalf("creating temp db: %v", err)
	}
	dbPath := f.Name()
	f.Close()
	t.Cleanup(func() { os.Remove(dbPath) })

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	migrationSQL := `
		CREATE TABLE testimonials (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			rating INTEGER NOT NULL DEFAULT 5 CHECK (rating BETWEEN 1 AND 5),
			message TEXT NOT NULL,
			occasion TEXT NOT NULL DEFAULT 'Other'
				CHECK (occasion IN ('Wedding', 'Birthday', 'Anniversary', 'Corporate Event', 'Other')),
			image_url TEXT,
			video_url TEXT,
			is_approved INTEGER NOT NULL DEFAULT 0,
			featured INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		) STRICT;
	`
	if _, err := db.Exec(migrationSQL); err != nil {
		t.Fatalf("applying testimonials migration: %v", err)
	}

	return db
}

// seedTestimonial inserts a testimonial with sensible defaults,
// overridable through the mutate callback.
func seedTestimonial(t *testing.T, db *sql.DB, mutate func(*Testimonial)) *Testimonial {
	t.Helper()

	tm := &Testimonial{
		Name:     "Sarah P",
		Email:    "sarah@example.com",
		Rating:   5,
		Message:  "The wedding cake was perfect.",
		Occasion: "Wedding",
	}
	if mutate != nil {
		mutate(tm)
	}

	repo := NewSQLiteRepository(db)
	if err := repo.Create(context.Background(), tm); err != nil {
		t.Fatalf("creating test testimonial: %v", err)
	}
	return tm
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Testimonial)
		wantErr error
	}{
		{"valid", nil, nil},
		{"empty name", func(tm *Testimonial) { tm.Name = " " }, ErrInvalidName},
		{"bad email", func(tm *Testimonial) { tm.Email = "not-an-email" }, ErrInvalidEmail},
		{"empty email", func(tm *Testimonial) { tm.Email = "" }, ErrInvalidEmail},
		{"rating too high", func(tm *Testimonial) { tm.Rating = 6 }, ErrInvalidRating},
		{"rating negative", func(tm *Testimonial) { tm.Rating = -1 }, ErrInvalidRating},
		{"empty message", func(tm *Testimonial) { tm.Message = "" }, ErrInvalidMessage},
		{"unknown occasion", func(tm *Testimonial) { tm.Occasion = "Funeral" }, ErrInvalidOccasion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := &Testimonial{
				Name:     "Sarah P",
				Email:    "Sarah@Example.com",
				Rating:   5,
				Message:  "Lovely cake.",
				Occasion: "Wedding",
			}
			if tt.mutate != nil {
				tt.mutate(tm)
			}
			err := Validate(tm)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	tm := &Testimonial{Name: "Sam", Email: "SAM@Example.com", Message: "Great."}
	if err := Validate(tm); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if tm.Rating != 5 {
		t.Errorf("Rating = %d, want default 5", tm.Rating)
	}
	if tm.Occasion != "Other" {
		t.Errorf("Occasion = %q, want default Other", tm.Occasion)
	}
	if tm.Email != "sam@example.com" {
		t.Errorf("Email = %q, want lowercased", tm.Email)
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	db := testDB(t)
	repo := NewSQLiteRepository(db)

	tm := seedTestimonial(t, db, func(tm *Testimonial) {
		tm.ImageURL = "https://cdn.example.com/sarah.jpg"
	})

	got, err := repo.GetByID(context.Background(), tm.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "Sarah P" || got.ImageURL != "https://cdn.example.com/sarah.jpg" {
		t.Errorf("got %+v", got)
	}
	if got.IsApproved {
		t.Error("new testimonials should not be approved")
	}
}

func TestRepository_ListApprovedOnly(t *testing.T) {
	db := testDB(t)
	repo := NewSQLiteRepository(db)

	seedTestimonial(t, db, nil)
	approved := seedTestimonial(t, db, func(tm *Testimonial) { tm.IsApproved = true })

	public, err := repo.List(context.Background(), ListFilter{ApprovedOnly: true})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if public.Total != 1 || public.Testimonials[0].ID != approved.ID {
		t.Errorf("public listing = %+v, want only the approved entry", public)
	}

	all, err := repo.List(context.Background(), ListFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if all.Total != 2 {
		t.Errorf("admin Total = %d, want 2", all.Total)
	}
}

func TestRepository_ListFeaturedFirst(t *testing.T) {
	db := testDB(t)
	repo := NewSQLiteRepository(db)

	seedTestimonial(t, db, func(tm *Testimonial) { tm.IsApproved = true })
	featured := seedTestimonial(t, db, func(tm *Testimonial) {
		tm.IsApproved = true
		tm.Featured = true
	})

	result, err := repo.List(context.Background(), ListFilter{ApprovedOnly: true})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(result.Testimonials) != 2 || result.Testimonials[0].ID != featured.ID {
		t.Errorf("featured entry should sort first, got %+v", result.Testimonials)
	}
}

func TestRepository_ToggleApproval(t *testing.T) {
	db := testDB(t)
	repo := NewSQLiteRepository(db)

	tm := seedTestimonial(t, db, nil)

	got, err := repo.ToggleApproval(context.Background(), tm.ID)
	if err != nil {
		t.Fatalf("ToggleApproval() error = %v", err)
	}
	if !got.IsApproved {
		t.Error("first toggle should approve")
	}

	got, err = repo.ToggleApproval(context.Background(), tm.ID)
	if err != nil {
		t.Fatalf("ToggleApproval() error = %v", err)
	}
	if got.IsApproved {
		t.Error("second toggle should unapprove")
	}

	if _, err := repo.ToggleApproval(context.Background(), "tst-missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ToggleApproval(missing) error = %v, want ErrNotFound", err)
	}
}

func TestRepository_UpdateAndDelete(t *testing.T) {
	db := testDB(t)
	repo := NewSQLiteRepository(db)

	tm := seedTestimonial(t, db, nil)

	tm.Message = "Updated message."
	tm.Featured = true
	if err := repo.Update(context.Background(), tm); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByID(context.Background(), tm.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Message != "Updated message." || !got.Featured {
		t.Errorf("update not persisted: %+v", got)
	}

	if err := repo.Delete(context.Background(), tm.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID(context.Background(), tm.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
}
