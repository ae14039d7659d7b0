package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the bakery backend.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Business Business       `yaml:"business"`
	Database DatabaseConfig `yaml:"database"`
	API      APIConfig      `yaml:"api"`
	Security SecurityConfig `yaml:"security"`
	Media    MediaConfig    `yaml:"media"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Business contains site-level information about the bakery itself.
type Business struct {
	Name     string `yaml:"name"`
	Timezone string `yaml:"timezone"`
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host      string           `yaml:"host"`
	Port      int              `yaml:"port"`
	Timeouts  APITimeoutConfig `yaml:"timeouts"`
	CORS      CORSConfig       `yaml:"cors"`
	RateLimit RateLimitConfig  `yaml:"rate_limit"`
}

// APITimeoutConfig contains HTTP timeout settings (seconds).
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// RateLimitConfig contains per-client request rate limiting settings.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requests_per_minute"`
	Burst             int  `yaml:"burst"`
}

// SecurityConfig contains authentication settings.
type SecurityConfig struct {
	JWT JWTConfig `yaml:"jwt"`
}

// JWTConfig contains bearer token settings.
//
// Secret signs every issued token and MUST be set (use the
// BAKERY_JWT_SECRET environment variable in production). Header is the
// request header the API reads bearer tokens from.
type JWTConfig struct {
	Secret       string `yaml:"secret"`
	TokenTTLDays int    `yaml:"token_ttl_days"`
	Header       string `yaml:"header"`
}

// MediaConfig contains settings for the S3-compatible media host that
// stores uploaded cake images and videos.
type MediaConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Endpoint      string `yaml:"endpoint"`
	Region        string `yaml:"region"`
	Bucket        string `yaml:"bucket"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	UsePathStyle  bool   `yaml:"use_path_style"`
	PublicBaseURL string `yaml:"public_base_url"`
	MaxImageMB    int    `yaml:"max_image_mb"`
	MaxVideoMB    int    `yaml:"max_video_mb"`
}

// SMTPConfig contains outbound email settings for contact-form
// notifications. Disabled by default; submissions are stored either way.
type SMTPConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	AdminTo  string `yaml:"admin_to"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: BAKERY_SECTION_KEY
// For example: BAKERY_DATABASE_PATH, BAKERY_JWT_SECRET
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Business: Business{
			Name:     "Nutty Bakers",
			Timezone: "UTC",
		},
		Database: DatabaseConfig{
			Path:        "./data/bakery.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 100,
				Burst:             20,
			},
		},
		Security: SecurityConfig{
			JWT: JWTConfig{
				TokenTTLDays: 7,
				Header:       "Authorization",
			},
		},
		Media: MediaConfig{
			Region:     "us-east-1",
			MaxImageMB: 5,
			MaxVideoMB: 50,
		},
		SMTP: SMTPConfig{
			Port: 587,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: BAKERY_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Database
	if v := os.Getenv("BAKERY_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// API
	if v := os.Getenv("BAKERY_API_HOST"); v != "" {
		cfg.API.Host = v
	}

	// Security - JWT secret (IMPORTANT: always set in production)
	if v := os.Getenv("BAKERY_JWT_SECRET"); v != "" {
		cfg.Security.JWT.Secret = v
	}

	// Media host credentials
	if v := os.Getenv("BAKERY_MEDIA_ACCESS_KEY"); v != "" {
		cfg.Media.AccessKey = v
	}
	if v := os.Getenv("BAKERY_MEDIA_SECRET_KEY"); v != "" {
		cfg.Media.SecretKey = v
	}

	// SMTP credentials
	if v := os.Getenv("BAKERY_SMTP_PASSWORD"); v != "" {
		cfg.SMTP.Password = v
	}
}

// minJWTSecretLength is the minimum accepted signing secret length.
// Short secrets make HS256 tokens forgeable by brute force.
const minJWTSecretLength = 32

// Validate checks the configuration for errors and security issues.
func (c *Config) Validate() error {
	var errs []string

	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	// The signing secret is REQUIRED. A missing secret is a fatal
	// startup condition, never a per-request error.
	if c.Security.JWT.Secret == "" {
		errs = append(errs, "security.jwt.secret is required (set BAKERY_JWT_SECRET environment variable)")
	} else if len(c.Security.JWT.Secret) < minJWTSecretLength {
		errs = append(errs, "security.jwt.secret must be at least 32 characters for adequate security")
	}

	if c.Security.JWT.TokenTTLDays < 1 {
		errs = append(errs, "security.jwt.token_ttl_days must be at least 1")
	}

	if c.Media.Enabled {
		if c.Media.Bucket == "" {
			errs = append(errs, "media.bucket is required when media uploads are enabled")
		}
		if c.Media.PublicBaseURL == "" {
			errs = append(errs, "media.public_base_url is required when media uploads are enabled")
		}
	}

	if c.SMTP.Enabled {
		if c.SMTP.Host == "" {
			errs = append(errs, "smtp.host is required when smtp is enabled")
		}
		if c.SMTP.From == "" || c.SMTP.AdminTo == "" {
			errs = append(errs, "smtp.from and smtp.admin_to are required when smtp is enabled")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}

// TokenTTL returns the bearer token lifetime as a Duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Security.JWT.TokenTTLDays) * 24 * time.Hour
}
