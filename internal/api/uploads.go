package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/nuttybakers/bakery-core/internal/media"
)

// uploadResponse carries the hosted location of a stored object.
type uploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// handleUploadImage stores a portfolio image on the media host.
func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	s.handleUpload(w, r, media.KindImage, s.mediaCfg.MaxImageMB)
}

// handleUploadVideo stores a portfolio video on the media host.
func (s *Server) handleUploadVideo(w http.ResponseWriter, r *http.Request) {
	s.handleUpload(w, r, media.KindVideo, s.mediaCfg.MaxVideoMB)
}

// handleUpload validates a multipart upload under the "file" field and
// streams it to the media host. The multipart framing gets 1 MiB of
// headroom on top of the per-kind payload limit.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, kind string, maxMB int) {
	maxBytes := int64(maxMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+maxJSONBodyBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeTooLarge,
			fmt.Sprintf("upload exceeds %d MiB or is not valid multipart", maxMB))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	if header.Size > maxBytes {
		writeError(w, http.StatusBadRequest, ErrCodeTooLarge,
			fmt.Sprintf("upload exceeds %d MiB", maxMB))
		return
	}

	contentType := header.Header.Get("Content-Type")
	ext, err := media.ValidateContentType(kind, contentType)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	key := media.ObjectKey(kind, header.Filename, ext)
	if err := s.mediaStore.PutObject(r.Context(), key, file, contentType); err != nil {
		if errors.Is(err, media.ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "unavailable", "media hosting is not configured")
			return
		}
		s.logger.Error("uploading media object", "error", err, "key", key)
		writeInternalError(w, "upload failed")
		return
	}

	writeJSON(w, http.StatusCreated, uploadResponse{
		URL: s.mediaStore.PublicURL(key),
		Key: key,
	})
}
