// Package capture provides the microphone implementation of the
// domain.AudioCapture port using miniaudio (malgo). Audio is captured
// as 16 kHz mono signed 16-bit little-endian PCM — the format the
// processing backend's transcriber expects.
package capture

import (
	"context"
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"

	"github.com/ram55git/recipediary/internal/domain"
	"github.com/ram55git/recipediary/internal/logger"
)

// Compile-time interface check.
var _ domain.AudioCapture = (*Microphone)(nil)

// Microphone opens capture sessions on the default input device.
type Microphone struct {
	sampleRate int
	channels   int
	log        *logger.Logger
}

// NewMicrophone creates a capture factory. Non-positive parameters
// fall back to 16 kHz mono.
func NewMicrophone(sampleRate, channels int, log *logger.Logger) *Microphone {
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	if channels <= 0 {
		channels = 1
	}
	return &Microphone{sampleRate: sampleRate, channels: channels, log: log}
}

// Start opens the default capture device and begins delivering PCM
// chunks to onChunk from the device thread. A missing audio backend
// maps to ErrUnsupportedPlatform; a refused device grant maps to
// ErrPermissionDenied.
func (m *Microphone) Start(ctx context.Context, onChunk func(pcm []byte)) (domain.CaptureSession, error) {
	mCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(msg string) {
		m.log.Debug("capture: %s", msg)
	})
	if err != nil {
		m.log.Error("capture: no audio backend available: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedPlatform, err)
	}

	devCfg := malgo.DefaultDeviceConfig(malgo.Capture)
	devCfg.SampleRate = uint32(m.sampleRate)
	devCfg.Capture.Format = malgo.FormatS16
	devCfg.Capture.Channels = uint32(m.channels)
	devCfg.Alsa.NoMMap = 1

	callbacks := malgo.DeviceCallbacks{
		Data: func(_ []byte, raw []byte, _ uint32) {
			if len(raw) > 0 {
				onChunk(raw)
			}
		},
	}

	device, err := malgo.InitDevice(mCtx.Context, devCfg, callbacks)
	if err != nil {
		_ = mCtx.Uninit()
		mCtx.Free()
		m.log.Error("capture: device open refused: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrPermissionDenied, err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		_ = mCtx.Uninit()
		mCtx.Free()
		m.log.Error("capture: device start refused: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrPermissionDenied, err)
	}

	m.log.Debug("capture: device started (rate=%d, channels=%d)", m.sampleRate, m.channels)
	return &session{ctx: mCtx, device: device, log: m.log}, nil
}

// session is one live capture. Pause stops the device without tearing
// it down; Stop releases everything.
type session struct {
	mu     sync.Mutex
	ctx    *malgo.AllocatedContext
	device *malgo.Device
	closed bool
	log    *logger.Logger
}

func (s *session) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("capture: session closed")
	}
	return s.device.Stop()
}

func (s *session) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("capture: session closed")
	}
	return s.device.Start()
}

func (s *session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	_ = s.device.Stop()
	s.device.Uninit()
	err := s.ctx.Uninit()
	s.ctx.Free()
	s.log.Debug("capture: device released")
	return err
}
