package domain

import "time"

// ArtifactOrigin records how an audio artifact was produced.
type ArtifactOrigin int

const (
	// OriginRecorded — captured from the microphone.
	OriginRecorded ArtifactOrigin = iota
	// OriginUploaded — staged from a user-chosen file.
	OriginUploaded
)

// String returns a human-readable origin.
func (o ArtifactOrigin) String() string {
	switch o {
	case OriginRecorded:
		return "recorded"
	case OriginUploaded:
		return "uploaded"
	default:
		return "unknown"
	}
}

// AudioArtifact is a finished, immutable audio payload ready for
// submission. Created on recording-stop or file selection, held in
// memory, and discarded on reset or successful submission.
type AudioArtifact struct {
	ID       string
	Data     []byte
	MIMEType string
	Origin   ArtifactOrigin
	Duration time.Duration // zero when unknown (uploads)
	Filename string        // original name for uploads, generated otherwise
}

// Empty reports whether the artifact carries no audio bytes.
func (a *AudioArtifact) Empty() bool {
	return a == nil || len(a.Data) == 0
}
