// Package api provides the HTTP REST API for the bakery backend.
//
// It exposes the public site endpoints (portfolio, testimonials,
// contact form), authenticated account endpoints, and the admin
// surface (content management, dashboard stats, media uploads).
//
// The server follows the same lifecycle pattern as the other
// infrastructure components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nuttybakers/bakery-core/internal/auth"
	"github.com/nuttybakers/bakery-core/internal/catalog"
	"github.com/nuttybakers/bakery-core/internal/contact"
	"github.com/nuttybakers/bakery-core/internal/infrastructure/config"
	"github.com/nuttybakers/bakery-core/internal/infrastructure/logging"
	"github.com/nuttybakers/bakery-core/internal/media"
	"github.com/nuttybakers/bakery-core/internal/notify"
	"github.com/nuttybakers/bakery-core/internal/stats"
	"github.com/nuttybakers/bakery-core/internal/testimonial"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight
// requests to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config          config.APIConfig
	Security        config.SecurityConfig
	Media           config.MediaConfig
	Logger          *logging.Logger
	UserRepo        auth.UserRepository
	CatalogRepo     catalog.Repository
	TestimonialRepo testimonial.Repository
	ContactRepo     contact.Repository
	StatsRepo       *stats.Repository
	MediaStore      media.Store
	Notifier        notify.Notifier
	Version         string
}

// Server is the HTTP API server for the bakery backend.
//
// It manages the HTTP listener, routes, and middleware. The server is
// created with New() and started with Start().
type Server struct {
	cfg             config.APIConfig
	secCfg          config.SecurityConfig
	mediaCfg        config.MediaConfig
	logger          *logging.Logger
	userRepo        auth.UserRepository
	catalogRepo     catalog.Repository
	testimonialRepo testimonial.Repository
	contactRepo     contact.Repository
	statsRepo       *stats.Repository
	mediaStore      media.Store
	notifier        notify.Notifier
	version         string
	server          *http.Server
	limiter         *rateLimiter
	cancel          context.CancelFunc
}

// New creates a new API server with the given dependencies.
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if deps.CatalogRepo == nil || deps.TestimonialRepo == nil || deps.ContactRepo == nil {
		return nil, fmt.Errorf("content repositories are required")
	}
	if deps.StatsRepo == nil {
		return nil, fmt.Errorf("stats repository is required")
	}

	s := &Server{
		cfg:             deps.Config,
		secCfg:          deps.Security,
		mediaCfg:        deps.Media,
		logger:          deps.Logger,
		userRepo:        deps.UserRepo,
		catalogRepo:     deps.CatalogRepo,
		testimonialRepo: deps.TestimonialRepo,
		contactRepo:     deps.ContactRepo,
		statsRepo:       deps.StatsRepo,
		mediaStore:      deps.MediaStore,
		notifier:        deps.Notifier,
		version:         deps.Version,
	}

	if s.mediaStore == nil {
		s.mediaStore = media.Noop{}
	}
	if s.notifier == nil {
		s.notifier = notify.Noop{}
	}

	if s.cfg.RateLimit.Enabled {
		s.limiter = newRateLimiter(s.cfg.RateLimit)
	}

	return s, nil
}

// Start begins listening for HTTP connections. The listener runs in a
// background goroutine; the server is stopped with Close().
func (s *Server) Start(ctx context.Context) error {
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	if s.limiter != nil {
		go s.limiter.cleanupLoop(srvCtx)
	}

	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		s.logger.Info("API server starting", "address", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server, waiting up to 10 seconds
// for in-flight requests to complete.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}
	return nil
}
