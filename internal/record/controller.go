// Package record implements the recording controller state machine:
// idle → recording → {paused ⇄ recording} → stopped. It owns the
// transient recording session, drives the elapsed-time tick, enforces
// the maximum-duration cap, and finalizes captured chunks into a
// single audio artifact. The microphone itself sits behind the
// domain.AudioCapture port so the machine is fully testable headless.
package record

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ram55git/recipediary/internal/domain"
	"github.com/ram55git/recipediary/internal/logger"
)

// Status is the recording session state.
type Status int

const (
	StatusIdle Status = iota
	StatusRecording
	StatusPaused
	StatusStopped
)

// String returns a human-readable status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRecording:
		return "recording"
	case StatusPaused:
		return "paused"
	case StatusStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Option configures the controller.
type Option func(*Controller)

// WithMaxDuration sets the hard recording cap (default 300s). The
// controller auto-stops when elapsed time reaches it.
func WithMaxDuration(d time.Duration) Option {
	return func(c *Controller) { c.maxDuration = d }
}

// WithTickInterval sets the elapsed-time tick granularity (default 100ms).
func WithTickInterval(d time.Duration) Option {
	return func(c *Controller) { c.tickEvery = d }
}

// WithOnTick registers the elapsed-time display callback, fired on
// every tick while recording.
func WithOnTick(fn func(elapsed time.Duration)) Option {
	return func(c *Controller) { c.onTick = fn }
}

// WithOnAutoStop registers the callback fired when the cap triggers an
// automatic stop. It receives the finalized artifact or the stop error.
func WithOnAutoStop(fn func(*domain.AudioArtifact, error)) Option {
	return func(c *Controller) { c.onAutoStop = fn }
}

// WithAudioFormat overrides the PCM format the capture port delivers
// (default 16 kHz mono).
func WithAudioFormat(sampleRate, channels int) Option {
	return func(c *Controller) {
		c.sampleRate = sampleRate
		c.channels = channels
	}
}

// withNow overrides the time source (tests).
func withNow(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// Controller manages at most one recording session at a time.
// Starting a second session while one is active is rejected.
type Controller struct {
	capture domain.AudioCapture
	auth    domain.Authenticator
	log     *logger.Logger

	maxDuration time.Duration
	tickEvery   time.Duration
	sampleRate  int
	channels    int
	now         func() time.Time
	onTick      func(time.Duration)
	onAutoStop  func(*domain.AudioArtifact, error)

	mu        sync.Mutex
	starting  bool
	status    Status
	session   domain.CaptureSession
	chunks    [][]byte
	byteCount int
	startedAt time.Time
	pausedAt  time.Time
	tickDone  chan struct{}

	autoArtifact *domain.AudioArtifact
	autoErr      error
}

// New creates a recording controller.
func New(capture domain.AudioCapture, auth domain.Authenticator, log *logger.Logger, opts ...Option) *Controller {
	c := &Controller{
		capture:     capture,
		auth:        auth,
		log:         log,
		maxDuration: 300 * time.Second,
		tickEvery:   100 * time.Millisecond,
		sampleRate:  16000,
		channels:    1,
		now:         time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Status returns the current session state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Elapsed returns how long the session has been recording, excluding
// paused intervals. Zero when idle.
func (c *Controller) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsedLocked()
}

func (c *Controller) elapsedLocked() time.Duration {
	switch c.status {
	case StatusRecording:
		return c.now().Sub(c.startedAt)
	case StatusPaused:
		return c.pausedAt.Sub(c.startedAt)
	default:
		return 0
	}
}

// Start begins a new recording session. Preconditions: the user is
// signed in and no session is active. Capture errors pass through from
// the port (ErrUnsupportedPlatform, ErrPermissionDenied).
func (c *Controller) Start(ctx context.Context) error {
	if !c.auth.SignedIn() {
		return domain.ErrUnauthenticated
	}

	// The starting flag stays set across the capture open so a
	// concurrent Start cannot grab a second device.
	c.mu.Lock()
	if c.starting || c.status == StatusRecording || c.status == StatusPaused {
		c.mu.Unlock()
		return fmt.Errorf("record: a recording session is already active")
	}
	c.starting = true
	c.mu.Unlock()

	session, err := c.capture.Start(ctx, c.appendChunk)
	if err != nil {
		c.mu.Lock()
		c.starting = false
		c.mu.Unlock()
		c.log.Error("record: capture start failed: %v", err)
		return err
	}

	c.mu.Lock()
	c.starting = false
	c.session = session
	c.chunks = nil
	c.byteCount = 0
	c.startedAt = c.now()
	c.status = StatusRecording
	c.tickDone = make(chan struct{})
	done := c.tickDone
	c.mu.Unlock()

	go c.runTicker(done)

	c.log.Info("record: session started (cap=%s)", c.maxDuration)
	return nil
}

// Pause suspends capture. Valid only while recording.
func (c *Controller) Pause() error {
	c.mu.Lock()
	if c.status != StatusRecording {
		c.mu.Unlock()
		return fmt.Errorf("record: pause is only valid while recording (state=%s)", c.status)
	}
	c.pausedAt = c.now()
	c.status = StatusPaused
	session := c.session
	c.mu.Unlock()

	if err := session.Pause(); err != nil {
		c.log.Warn("record: capture pause failed: %v", err)
	}
	c.log.Debug("record: paused at %s", c.pausedAt.Sub(c.startedAt))
	return nil
}

// Resume continues a paused session. The start timestamp is shifted by
// the paused duration so elapsed time stays continuous and pause
// intervals are excluded.
func (c *Controller) Resume() error {
	c.mu.Lock()
	if c.status != StatusPaused {
		c.mu.Unlock()
		return fmt.Errorf("record: resume is only valid while paused (state=%s)", c.status)
	}
	c.startedAt = c.startedAt.Add(c.now().Sub(c.pausedAt))
	c.status = StatusRecording
	session := c.session
	c.mu.Unlock()

	if err := session.Resume(); err != nil {
		c.log.Warn("record: capture resume failed: %v", err)
	}
	c.log.Debug("record: resumed")
	return nil
}

// Stop finalizes the session into an audio artifact. Valid from
// recording or paused. Returns ErrEmptyRecording when zero bytes were
// captured — a user-facing condition, not a crash.
func (c *Controller) Stop() (*domain.AudioArtifact, error) {
	c.mu.Lock()
	if c.status != StatusRecording && c.status != StatusPaused {
		c.mu.Unlock()
		return nil, fmt.Errorf("record: stop is only valid while recording or paused (state=%s)", c.status)
	}
	elapsed := c.elapsedLocked()
	session := c.session
	done := c.tickDone
	c.status = StatusStopped
	c.session = nil
	c.tickDone = nil
	c.mu.Unlock()

	if done != nil {
		close(done)
	}
	if err := session.Stop(); err != nil {
		c.log.Warn("record: capture stop failed: %v", err)
	}

	c.mu.Lock()
	chunks := c.chunks
	total := c.byteCount
	c.chunks = nil
	c.byteCount = 0
	c.mu.Unlock()

	if total == 0 {
		c.log.Warn("record: session stopped with no audio captured")
		return nil, domain.ErrEmptyRecording
	}

	pcm := make([]byte, 0, total)
	for _, chunk := range chunks {
		pcm = append(pcm, chunk...)
	}

	wav, err := encodeWAV(pcm, c.sampleRate, c.channels)
	if err != nil {
		return nil, fmt.Errorf("record: encode artifact: %w", err)
	}

	id := uuid.NewString()
	artifact := &domain.AudioArtifact{
		ID:       id,
		Data:     wav,
		MIMEType: "audio/wav",
		Origin:   domain.OriginRecorded,
		Duration: elapsed,
		Filename: "recording-" + id + ".wav",
	}
	c.log.Info("record: finalized artifact %s (%d bytes, %s)", id, len(wav), elapsed.Round(time.Millisecond))
	return artifact, nil
}

// Reset discards any finished or idle state and returns to idle. Not
// valid while a session is active.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == StatusRecording || c.status == StatusPaused {
		return fmt.Errorf("record: cannot reset while a session is active")
	}
	c.status = StatusIdle
	c.chunks = nil
	c.byteCount = 0
	c.autoArtifact = nil
	c.autoErr = nil
	return nil
}

// appendChunk receives PCM chunks from the capture device thread.
func (c *Controller) appendChunk(pcm []byte) {
	if len(pcm) == 0 {
		return
	}
	// The device callback reuses its buffer.
	chunk := make([]byte, len(pcm))
	copy(chunk, pcm)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusRecording {
		return
	}
	c.chunks = append(c.chunks, chunk)
	c.byteCount += len(chunk)
}

// runTicker drives the elapsed-time callback and the duration cap.
func (c *Controller) runTicker(done chan struct{}) {
	ticker := time.NewTicker(c.tickEvery)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if stopped := c.tickOnce(); stopped {
				return
			}
		}
	}
}

// tickOnce reports elapsed time and enforces the cap. Returns true
// when the cap triggered an automatic stop.
func (c *Controller) tickOnce() bool {
	c.mu.Lock()
	if c.status != StatusRecording {
		c.mu.Unlock()
		return false
	}
	elapsed := c.now().Sub(c.startedAt)
	onTick := c.onTick
	c.mu.Unlock()

	if onTick != nil {
		onTick(elapsed)
	}

	if elapsed < c.maxDuration {
		return false
	}

	c.log.Info("record: duration cap reached, auto-stopping")
	artifact, err := c.Stop()

	c.mu.Lock()
	c.autoArtifact = artifact
	c.autoErr = err
	c.mu.Unlock()

	if c.onAutoStop != nil {
		c.onAutoStop(artifact, err)
	}
	return true
}

// TakeAutoStop returns and clears the result of a cap-triggered stop.
// Pollers use this when no auto-stop callback is registered. Returns
// (nil, nil) when no auto-stop has happened since the last call.
func (c *Controller) TakeAutoStop() (*domain.AudioArtifact, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	artifact, err := c.autoArtifact, c.autoErr
	c.autoArtifact = nil
	c.autoErr = nil
	return artifact, err
}
