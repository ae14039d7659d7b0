package catalog

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// testDB creates a temporary SQLite database with the portfolio schema applied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp("", "catalog-test-*.db")
	if err != nil {
		t.Fatalf("creating temp db: %v", err)
	}
	dbPath := f.Name()
	f.Close()
	t.Cleanup(func() { os.Remove(dbPath) })

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	migrationSQL := `
		CREATE TABLE portfolio_items (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			category TEXT NOT NULL
				CHECK (category IN ('Wedding Cakes', 'Birthday Cakes', 'Cupcakes', 'Custom Cakes', 'Desserts', 'Other')),
			price REAL NOT NULL DEFAULT 0,
			images TEXT NOT NULL DEFAULT '[]',
			video TEXT,
			tags TEXT NOT NULL DEFAULT '[]',
			featured INTEGER NOT NULL DEFAULT 0,
			servings TEXT NOT NULL DEFAULT 'Varies',
			preparation_time TEXT NOT NULL DEFAULT '2-3 days',
			is_active INTEGER NOT NULL DEFAULT 1,
			views INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		) STRICT;
	`
	if _, err := db.Exec(migrationSQL); err != nil {
		t.Fatalf("applying portfolio migration: %v", err)
	}

	return db
}

// seedTestItem inserts a portfolio item with sensible defaults,
// overridable through the mutate callback.
func seedTestItem(t *testing.T, db *sql.DB, mutate func(*Item)) *Item {
	t.Helper()

	item := &Item{
		Title:       "Three Tier Rose Cake",
		Description: "Vanilla sponge with buttercream roses",
		Category:    "Wedding Cakes",
		Price:       350,
		Images:      []Image{{URL: "https://cdn.example.com/rose.jpg", Key: "portfolio/rose.jpg", Alt: "rose cake"}},
		Tags:        []string{"vanilla", "roses"},
		IsActive:    true,
	}
	if mutate != nil {
		mutate(item)
	}

	repo := NewSQLiteRepository(db)
	if err := repo.Create(context.Background(), item); err != nil {
		t.Fatalf("creating test item: %v", err)
	}
	return item
}
