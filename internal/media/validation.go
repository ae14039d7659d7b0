package media

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Upload kind identifiers, used as key prefixes.
const (
	KindImage = "images"
	KindVideo = "videos"
)

// imageTypes maps accepted image content types to file extensions.
var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// videoTypes maps accepted video content types to file extensions.
var videoTypes = map[string]string{
	"video/mp4":        ".mp4",
	"video/quicktime":  ".mov",
	"video/x-msvideo":  ".avi",
	"video/x-matroska": ".mkv",
	"video/webm":       ".webm",
}

// ErrUnsupportedType wraps rejections of unknown content types.
var ErrUnsupportedType = fmt.Errorf("unsupported content type")

// ValidateContentType checks an upload's declared content type against
// the accepted set for its kind and returns the canonical extension.
func ValidateContentType(kind, contentType string) (ext string, err error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))

	var types map[string]string
	switch kind {
	case KindImage:
		types = imageTypes
	case KindVideo:
		types = videoTypes
	default:
		return "", fmt.Errorf("unknown upload kind %q", kind)
	}

	ext, ok := types[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, contentType)
	}
	return ext, nil
}

// ObjectKey builds a collision-free object key for an upload:
// portfolio/<kind>/<uuid><ext>. The original filename only informs the
// extension fallback, never the key itself.
func ObjectKey(kind, filename, ext string) string {
	if ext == "" {
		ext = strings.ToLower(path.Ext(filename))
	}
	return "portfolio/" + kind + "/" + uuid.NewString() + ext
}
