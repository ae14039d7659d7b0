// Package media uploads portfolio images and videos to an
// S3-compatible object host (AWS S3, MinIO, Cloudflare R2) and builds
// the public URLs the site serves them from.
//
// The Store interface keeps handlers independent of the SDK; tests use
// an in-memory fake.
package media
