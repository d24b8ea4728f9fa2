// Package upload stages a user-chosen audio file as an artifact
// equivalent to a finished recording.
package upload

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ram55git/recipediary/internal/domain"
	"github.com/ram55git/recipediary/internal/logger"
)

// Handler validates and stages uploaded audio files. It owns the
// current selection; a blocked or failed selection clears it.
type Handler struct {
	auth domain.Authenticator
	log  *logger.Logger

	mu      sync.Mutex
	current *domain.AudioArtifact
}

// NewHandler creates an upload handler.
func NewHandler(auth domain.Authenticator, log *logger.Logger) *Handler {
	return &Handler{auth: auth, log: log}
}

// audioTypes maps the accepted file extensions to their declared MIME
// types. The system mime table can't be relied on to know audio
// extensions, so the common ones are pinned here.
var audioTypes = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".opus": "audio/opus",
	".flac": "audio/flac",
	".webm": "audio/webm",
}

// Select stages the file at path as the current artifact. The file's
// declared type — derived from its extension — must be an audio type;
// the content itself is not sniffed, matching the backend's own
// validation. Fails with ErrUnauthenticated when signed out (clearing
// any previous selection) and ErrInvalidMediaType for non-audio files.
func (h *Handler) Select(path string) (*domain.AudioArtifact, error) {
	if !h.auth.SignedIn() {
		h.Clear()
		return nil, domain.ErrUnauthenticated
	}

	ext := strings.ToLower(filepath.Ext(path))
	declared, ok := audioTypes[ext]
	if !ok {
		declared = mime.TypeByExtension(ext)
	}
	if !strings.HasPrefix(declared, "audio/") {
		h.log.Warn("upload: rejected %q (declared type %q)", filepath.Base(path), declared)
		return nil, domain.ErrInvalidMediaType
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("upload: read %s: %w", filepath.Base(path), err)
	}

	artifact := &domain.AudioArtifact{
		ID:       uuid.NewString(),
		Data:     data,
		MIMEType: declared,
		Origin:   domain.OriginUploaded,
		Filename: filepath.Base(path),
	}

	h.mu.Lock()
	h.current = artifact
	h.mu.Unlock()

	h.log.Info("upload: staged %q (%d bytes, %s)", artifact.Filename, len(data), declared)
	return artifact, nil
}

// Current returns the staged artifact, or nil when none is staged.
func (h *Handler) Current() *domain.AudioArtifact {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Clear discards the staged selection.
func (h *Handler) Clear() {
	h.mu.Lock()
	h.current = nil
	h.mu.Unlock()
}
