// Package preview plays a staged audio artifact back to the user so a
// recording or upload can be auditioned before submission.
package preview

import (
	"bytes"
	"encoding/binary"
	"errors"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ram55git/recipediary/internal/domain"
	"github.com/ram55git/recipediary/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.Previewer = (*Player)(nil)
	_ domain.Previewer = (Noop{})
)

// Player plays WAV artifacts through the system audio output via oto.
type Player struct {
	ctx    *oto.Context
	log    *logger.Logger
	mu     sync.Mutex
	active *oto.Player // currently playing, nil when idle
}

// NewPlayer initializes the system audio context for the given PCM
// format. Returns an error if no output device is available — callers
// should fall back to Noop.
func NewPlayer(sampleRate, channels int, log *logger.Logger) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-readyChan

	log.Debug("preview: audio output initialized (rate=%d, channels=%d)", sampleRate, channels)
	return &Player{ctx: ctx, log: log}, nil
}

// Play plays a WAV artifact synchronously. Blocks until playback
// finishes or Stop is called. Non-WAV artifacts (compressed uploads)
// are not decodable locally and return an error.
func (p *Player) Play(artifact *domain.AudioArtifact) error {
	if artifact.Empty() {
		return errors.New("preview: artifact is empty")
	}

	pcm, err := extractPCM(artifact.Data)
	if err != nil {
		return err
	}

	player := p.ctx.NewPlayer(bytes.NewReader(pcm))

	p.mu.Lock()
	p.active = player
	p.mu.Unlock()

	player.Play()
	p.log.Debug("preview: playing artifact %s (%d bytes of PCM)", artifact.ID, len(pcm))

	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}

	p.mu.Lock()
	p.active = nil
	p.mu.Unlock()

	return player.Close()
}

// Stop interrupts the currently playing preview, if any. Safe to call
// concurrently and when nothing is playing.
func (p *Player) Stop() {
	p.mu.Lock()
	active := p.active
	p.mu.Unlock()

	if active != nil {
		active.Pause()
		p.log.Debug("preview: interrupted")
	}
}

// extractPCM strips the WAV/RIFF container and returns raw PCM data.
func extractPCM(wav []byte) ([]byte, error) {
	if len(wav) < 44 {
		return nil, errors.New("preview: wav data too short")
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return nil, errors.New("preview: not a WAV file")
	}

	// Walk chunks to find the "data" chunk.
	pos := 12
	for pos < len(wav)-8 {
		chunkID := string(wav[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(wav[pos+4 : pos+8]))

		if chunkID == "data" {
			start := pos + 8
			end := start + chunkSize
			if end > len(wav) {
				end = len(wav)
			}
			return wav[start:end], nil
		}

		pos += 8 + chunkSize
		// Chunks are word-aligned.
		if chunkSize%2 != 0 {
			pos++
		}
	}

	return nil, errors.New("preview: data chunk not found in WAV")
}

// Noop is the previewer used when audio output is unavailable.
type Noop struct{}

// Play does nothing.
func (Noop) Play(*domain.AudioArtifact) error { return nil }

// Stop does nothing.
func (Noop) Stop() {}
