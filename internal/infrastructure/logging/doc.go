// Package logging provides structured logging for the bakery backend.
//
// It wraps the standard log/slog package so every log line carries the
// same default fields (service, version) and honours the configured
// level, format (json/text), and output destination.
//
// Never log secrets: passwords, password hashes, bearer tokens, or
// media host credentials must not appear in log fields.
package logging
