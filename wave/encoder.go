// Package wave writes decoded FLAC sample blocks to a canonical RIFF/WAVE
// PCM stream.
package wave

import (
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"

	"github.com/waveflac/flac/internal/ferrors"
)

// pcmFormat is the WAVE fmt-chunk format code for uncompressed linear PCM.
const pcmFormat = 1

// Encoder writes interleaved PCM sample blocks to a RIFF/WAVE stream.
type Encoder struct {
	enc      *wav.Encoder
	format   *audio.Format
	bitDepth int
}

// NewEncoder returns an Encoder that writes a sampleRate Hz, channels
// channel, bitDepth bits-per-sample WAVE stream to w. bitDepth must be one
// of 8, 16, 24, 32.
func NewEncoder(w io.WriteSeeker, sampleRate, bitDepth, channels int) (*Encoder, error) {
	const component = "wave.NewEncoder"
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, ferrors.NewProtocol(component, "unsupported bit depth %d", bitDepth)
	}
	return &Encoder{
		enc:      wav.NewEncoder(w, sampleRate, bitDepth, channels, pcmFormat),
		format:   &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		bitDepth: bitDepth,
	}, nil
}

// WriteBlock interleaves one decoded frame's per-channel samples and writes
// them as PCM data. channels holds one sample slice per audio channel, each
// of length blockSize.
func (e *Encoder) WriteBlock(channels [][]int32, blockSize int) error {
	data := make([]int, 0, blockSize*len(channels))
	for i := 0; i < blockSize; i++ {
		for _, ch := range channels {
			data = append(data, int(ch[i]))
		}
	}
	buf := &audio.IntBuffer{
		Format:         e.format,
		Data:           data,
		SourceBitDepth: e.bitDepth,
	}
	return errors.Wrap(e.enc.Write(buf), "wave.Encoder.WriteBlock")
}

// Close flushes the WAVE header (with its now-known data size) and closes
// the encoder. It does not close the underlying writer.
func (e *Encoder) Close() error {
	return errors.Wrap(e.enc.Close(), "wave.Encoder.Close")
}
