package upload

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ram55git/recipediary/internal/domain"
	"github.com/ram55git/recipediary/internal/logger"
)

type fakeAuth struct {
	signedIn bool
}

func (a *fakeAuth) SignedIn() bool { return a.signedIn }
func (a *fakeAuth) Token() string  { return "tok" }

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestSelectStagesAudioFile(t *testing.T) {
	h := NewHandler(&fakeAuth{signedIn: true}, logger.New(logger.LevelOff, nil))
	path := writeFile(t, "dinner.wav", []byte("RIFFxxxxWAVE"))

	artifact, err := h.Select(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if artifact.Origin != domain.OriginUploaded {
		t.Fatalf("expected uploaded origin, got %s", artifact.Origin)
	}
	if artifact.Filename != "dinner.wav" {
		t.Fatalf("unexpected filename: %q", artifact.Filename)
	}
	if h.Current() != artifact {
		t.Fatal("selection not exposed via Current")
	}
}

func TestSelectRejectsNonAudio(t *testing.T) {
	h := NewHandler(&fakeAuth{signedIn: true}, logger.New(logger.LevelOff, nil))

	for _, name := range []string{"notes.txt", "photo.png", "recipe.pdf"} {
		path := writeFile(t, name, []byte("data"))
		if _, err := h.Select(path); !errors.Is(err, domain.ErrInvalidMediaType) {
			t.Fatalf("%s: expected ErrInvalidMediaType, got %v", name, err)
		}
	}
}

func TestSelectBlockedWhenSignedOutAndClearsSelection(t *testing.T) {
	auth := &fakeAuth{signedIn: true}
	h := NewHandler(auth, logger.New(logger.LevelOff, nil))

	if _, err := h.Select(writeFile(t, "a.wav", []byte("RIFF"))); err != nil {
		t.Fatalf("staging failed: %v", err)
	}

	auth.signedIn = false
	_, err := h.Select(writeFile(t, "b.wav", []byte("RIFF")))
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if h.Current() != nil {
		t.Fatal("stored selection not cleared on auth failure")
	}
}

func TestSelectMissingFile(t *testing.T) {
	h := NewHandler(&fakeAuth{signedIn: true}, logger.New(logger.LevelOff, nil))
	if _, err := h.Select(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
