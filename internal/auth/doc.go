// Package auth provides authentication and authorisation for the
// bakery backend.
//
// It implements a 2-tier role model (user → admin) with:
//   - Argon2id password hashing (OWASP 2025 recommendation)
//   - Signed JWT access tokens (HS256, stateless, no revocation list)
//   - Live account checks on every authenticated request: the request
//     identity is re-read from the database, so deactivating an account
//     or changing its role takes effect immediately even while
//     previously issued tokens are still unexpired
//
// Login is deliberately non-distinguishing: unknown email, wrong
// password, and deactivated account all produce the same
// ErrInvalidCredentials, so the API leaks nothing about which
// accounts exist.
package auth
