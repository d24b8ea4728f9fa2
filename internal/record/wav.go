package record

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// encodeWAV wraps raw little-endian 16-bit PCM in a WAV container.
func encodeWAV(pcm []byte, sampleRate, channels int) ([]byte, error) {
	samples := make([]int, len(pcm)/2)
	for i := range samples {
		samples[i] = int(int16(binary.LittleEndian.Uint16(pcm[i*2 : i*2+2])))
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: 16,
	}

	var out seekBuffer
	enc := wav.NewEncoder(&out, sampleRate, 16, channels, 1)
	if err := enc.Write(buf); err != nil {
		return nil, fmt.Errorf("write pcm: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("finalize header: %w", err)
	}
	return out.Bytes(), nil
}

// seekBuffer is an in-memory io.WriteSeeker. The WAV encoder seeks
// back to patch chunk sizes into the header on Close.
type seekBuffer struct {
	buf []byte
	pos int
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	if need := b.pos + len(p); need > len(b.buf) {
		grown := make([]byte, need)
		copy(grown, b.buf)
		b.buf = grown
	}
	copy(b.buf[b.pos:], p)
	b.pos += len(p)
	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var next int
	switch whence {
	case io.SeekStart:
		next = int(offset)
	case io.SeekCurrent:
		next = b.pos + int(offset)
	case io.SeekEnd:
		next = len(b.buf) + int(offset)
	default:
		return 0, fmt.Errorf("seek: invalid whence %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("seek: negative position")
	}
	b.pos = next
	return int64(next), nil
}

func (b *seekBuffer) Bytes() []byte {
	return bytes.Clone(b.buf)
}
