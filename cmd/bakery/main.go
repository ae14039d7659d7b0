// Bakery Core - portfolio and enquiry backend
//
// This is the main entry point for the bakery backend. It serves the
// public site API (portfolio, testimonials, contact form) and the
// admin dashboard API from a single binary backed by SQLite.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/nuttybakers/bakery-core/migrations"

	"github.com/nuttybakers/bakery-core/internal/api"
	"github.com/nuttybakers/bakery-core/internal/auth"
	"github.com/nuttybakers/bakery-core/internal/catalog"
	"github.com/nuttybakers/bakery-core/internal/contact"
	"github.com/nuttybakers/bakery-core/internal/infrastructure/config"
	"github.com/nuttybakers/bakery-core/internal/infrastructure/database"
	"github.com/nuttybakers/bakery-core/internal/infrastructure/logging"
	"github.com/nuttybakers/bakery-core/internal/media"
	"github.com/nuttybakers/bakery-core/internal/notify"
	"github.com/nuttybakers/bakery-core/internal/stats"
	"github.com/nuttybakers/bakery-core/internal/testimonial"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for
// testability. Returning an error allows main to handle exit codes
// consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting bakery core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)

	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	userRepo := auth.NewUserRepository(db.DB)
	if _, err := auth.SeedAdmin(ctx, userRepo, log.Logger); err != nil {
		return fmt.Errorf("seeding admin account: %w", err)
	}

	// Media host is optional; a disabled config serves a Noop store and
	// upload routes answer 503.
	var mediaStore media.Store = media.Noop{}
	if cfg.Media.Enabled {
		s3Store, err := media.NewS3Store(ctx, media.Config{
			Endpoint:      cfg.Media.Endpoint,
			Region:        cfg.Media.Region,
			Bucket:        cfg.Media.Bucket,
			AccessKey:     cfg.Media.AccessKey,
			SecretKey:     cfg.Media.SecretKey,
			UsePathStyle:  cfg.Media.UsePathStyle,
			PublicBaseURL: cfg.Media.PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("connecting to media host: %w", err)
		}
		mediaStore = s3Store
		log.Info("media host configured", "bucket", cfg.Media.Bucket)
	} else {
		log.Info("media hosting disabled")
	}

	// Email is optional too; enquiries are stored either way.
	var notifier notify.Notifier = notify.Noop{}
	if cfg.SMTP.Enabled {
		notifier = notify.NewSMTPNotifier(notify.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			AdminTo:  cfg.SMTP.AdminTo,
		})
		log.Info("smtp notifications enabled", "host", cfg.SMTP.Host)
	} else {
		log.Info("smtp notifications disabled")
	}

	server, err := api.New(api.Deps{
		Config:          cfg.API,
		Security:        cfg.Security,
		Media:           cfg.Media,
		Logger:          log,
		UserRepo:        userRepo,
		CatalogRepo:     catalog.NewSQLiteRepository(db.DB),
		TestimonialRepo: testimonial.NewSQLiteRepository(db.DB),
		ContactRepo:     contact.NewSQLiteRepository(db.DB),
		StatsRepo:       stats.NewRepository(db.DB),
		MediaStore:      mediaStore,
		Notifier:        notifier,
		Version:         version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error stopping API server", "error", closeErr)
		}
	}()

	if err := healthCheck(ctx, db, server); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses BAKERY_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("BAKERY_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies infrastructure is up before declaring readiness.
func healthCheck(ctx context.Context, db *database.DB, server *api.Server) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := server.HealthCheck(ctx); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}
