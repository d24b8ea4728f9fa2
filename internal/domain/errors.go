package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across layers. Authentication and capability
// errors block the triggering action entirely; network and processing
// errors leave the prior state (artifact, edit buffer) intact so the
// user can retry. Nothing retries automatically.
var (
	ErrUnauthenticated     = errors.New("not signed in")
	ErrPermissionDenied    = errors.New("microphone access denied")
	ErrUnsupportedPlatform = errors.New("audio capture not available on this platform")
	ErrInvalidMediaType    = errors.New("not an audio file")
	ErrEmptyRecording      = errors.New("no audio was captured")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrNetworkUnavailable  = errors.New("network unavailable")
	ErrPersistenceFailed   = errors.New("saving recipe failed")
)

// ProcessingError is a backend-reported processing failure. It wraps
// the server's error message so callers can surface it verbatim.
type ProcessingError struct {
	Message string
}

func (e *ProcessingError) Error() string {
	if e.Message == "" {
		return "recipe processing failed"
	}
	return fmt.Sprintf("recipe processing failed: %s", e.Message)
}
