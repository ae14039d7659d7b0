package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nuttybakers/bakery-core/internal/auth"
	"github.com/nuttybakers/bakery-core/internal/catalog"
	"github.com/nuttybakers/bakery-core/internal/contact"
	"github.com/nuttybakers/bakery-core/internal/infrastructure/config"
	"github.com/nuttybakers/bakery-core/internal/infrastructure/logging"
	"github.com/nuttybakers/bakery-core/internal/stats"
	"github.com/nuttybakers/bakery-core/internal/testimonial"
)

const testSecret = "api-test-secret-with-at-least-32-characters"

// testSchema mirrors the initial migration closely enough for handler
// tests.
const testSchema = `
	CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE COLLATE NOCASE,
		display_name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	) STRICT;

	CREATE TABLE portfolio_items (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL,
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

	CREATE TABLE testimonials (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		rating INTEGER NOT NULL DEFAULT 5,
		message TEXT NOT NULL,
		occasion TEXT NOT NULL DEFAULT 'Other',
		image_url TEXT,
		video_url TEXT,
		is_approved INTEGER NOT NULL DEFAULT 0,
		featured INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	) STRICT;

	CREATE TABLE contact_messages (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		occasion TEXT NOT NULL DEFAULT 'General Inquiry',
		event_date TEXT,
		message TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'new',
		notes TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	) STRICT;
`

// fakeMediaStore records object operations instead of talking to a host.
type fakeMediaStore struct {
	puts    []string
	deletes []string
	failPut bool
}

func (f *fakeMediaStore) PutObject(_ context.Context, key string, content io.Reader, _ string) error {
	if f.failPut {
		return io.ErrUnexpectedEOF
	}
	if _, err := io.ReadAll(content); err != nil {
		return err
	}
	f.puts = append(f.puts, key)
	return nil
}

func (f *fakeMediaStore) DeleteObject(_ context.Context, key string) error {
	f.deletes = append(f.deletes, key)
	return nil
}

func (f *fakeMediaStore) PublicURL(key string) string {
	return "https://media.test/" + key
}

// fakeNotifier signals deliveries so tests can wait on the background send.
type fakeNotifier struct {
	received chan *contact.Message
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{received: make(chan *contact.Message, 4)}
}

func (f *fakeNotifier) ContactReceived(_ context.Context, m *contact.Message) error {
	f.received <- m
	return nil
}

// testEnv bundles a fully wired server over a temp database.
type testEnv struct {
	server   *Server
	handler  http.Handler
	db       *sql.DB
	users    auth.UserRepository
	media    *fakeMediaStore
	notifier *fakeNotifier
}

func newTestServer(t *testing.T) *testEnv {
	t.Helper()

	f, err := os.CreateTemp("", "api-test-*.db")
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

	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("applying schema: %v", err)
	}

	mediaStore := &fakeMediaStore{}
	notifier := newFakeNotifier()
	users := auth.NewUserRepository(db)

	srv, err := New(Deps{
		Config: config.APIConfig{
			Host: "127.0.0.1",
			Timeouts: config.APITimeoutConfig{
				Read: 5, Write: 5, Idle: 5,
			},
			CORS: config.CORSConfig{
				AllowedOrigins: []string{"https://nuttybakers.test"},
			},
		},
		Security: config.SecurityConfig{
			JWT: config.JWTConfig{
				Secret:       testSecret,
				TokenTTLDays: 7,
				Header:       "Authorization",
			},
		},
		Media: config.MediaConfig{
			MaxImageMB: 5,
			MaxVideoMB: 50,
		},
		Logger:          logging.Default(),
		UserRepo:        users,
		CatalogRepo:     catalog.NewSQLiteRepository(db),
		TestimonialRepo: testimonial.NewSQLiteRepository(db),
		ContactRepo:     contact.NewSQLiteRepository(db),
		StatsRepo:       stats.NewRepository(db),
		MediaStore:      mediaStore,
		Notifier:        notifier,
		Version:         "test",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return &testEnv{
		server:   srv,
		handler:  srv.buildRouter(),
		db:       db,
		users:    users,
		media:    mediaStore,
		notifier: notifier,
	}
}

// seedUser inserts an account with password "test-password".
func (env *testEnv) seedUser(t *testing.T, email string, role auth.Role) *auth.User {
	t.Helper()

	hash, err := auth.HashPassword("test-password")
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	user := &auth.User{
		Email:        email,
		DisplayName:  email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := env.users.Create(context.Background(), user); err != nil {
		t.Fatalf("creating test user %s: %v", email, err)
	}
	return user
}

// token issues a valid bearer token for a user.
func (env *testEnv) token(t *testing.T, user *auth.User) string {
	t.Helper()

	token, err := auth.GenerateAccessToken(user, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	return token
}

// request performs an HTTP request against the router. A non-nil body
// is JSON-encoded; a non-empty token is sent as a bearer credential.
func (env *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a recorded JSON response body.
func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}
