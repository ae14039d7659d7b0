// Package config loads and validates the backend configuration.
//
// Configuration comes from three layers, each overriding the last:
// hardcoded defaults, a YAML file, and BAKERY_* environment variables.
// Secrets (JWT signing key, media host keys, SMTP password) should come
// from the environment, never the YAML file.
//
// Validation runs at load time so misconfiguration is a startup failure,
// not a request-time surprise. In particular, a missing or short JWT
// signing secret refuses to boot.
package config
