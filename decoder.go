// Package flac implements a streaming decoder for the FLAC (Free Lossless
// Audio Codec) bitstream: magic marker, metadata blocks, and audio frames.
//
// The basic structure of a FLAC bitstream is:
//   - The four byte string signature "fLaC".
//   - The StreamInfo metadata block.
//   - Zero or more other metadata blocks.
//   - One or more audio frames.
package flac

import (
	"io"

	"github.com/waveflac/flac/frame"
	"github.com/waveflac/flac/internal/bitutil"
	"github.com/waveflac/flac/internal/ferrors"
	"github.com/waveflac/flac/meta"
)

// marker is the four-byte "fLaC" signature every FLAC stream begins with.
const marker = 0x664C6143

// State is a Decoder's position in its four-state lifecycle. States are
// never revisited: INIT -> HAS_MARKER -> HAS_METADATA -> COMPLETE.
type State int

// Decoder states, in the order a well-formed stream passes through them.
const (
	StateInit State = iota
	StateHasMarker
	StateHasMetadata
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateHasMarker:
		return "HAS_MARKER"
	case StateHasMetadata:
		return "HAS_METADATA"
	case StateComplete:
		return "COMPLETE"
	default:
		return "UNKNOWN"
	}
}

// defaultCapacity is the buffer capacity assumed when NewDecoder is not
// given one explicitly: the largest block size a frame may declare.
const defaultCapacity = 8192

// Decoder is a stateful, single-pass FLAC bitstream reader. It is not safe
// for concurrent use; each Decoder owns its own byte source and shares no
// mutable state with any other.
type Decoder struct {
	br       *bitutil.Reader
	state    State
	capacity int

	si *meta.StreamInfo

	// last holds the most recently decoded frame; valid after any
	// decode_audio call that produced one.
	last *frame.Frame
}

// NewDecoder returns a Decoder reading from r. capacity bounds the largest
// block size a frame may declare (checked against STREAMINFO); it defaults
// to 8192 samples if omitted.
func NewDecoder(r io.Reader, capacity ...int) *Decoder {
	n := defaultCapacity
	if len(capacity) > 0 {
		n = capacity[0]
	}
	return &Decoder{
		br:       bitutil.NewReader(r),
		state:    StateInit,
		capacity: n,
	}
}

// State returns the decoder's current lifecycle state.
func (d *Decoder) State() State {
	return d.state
}

// StreamInfo returns the stream's STREAMINFO record. It is valid once State
// has reached at least StateHasMetadata.
func (d *Decoder) StreamInfo() *meta.StreamInfo {
	return d.si
}

// BlockSize returns the most recently decoded frame's block size in
// samples. Valid after a decode_audio call that produced a frame.
func (d *Decoder) BlockSize() uint32 {
	if d.last == nil {
		return 0
	}
	return d.last.BlockSize
}

// SampleRate returns the most recently decoded frame's sample rate, which
// may differ from the stream's STREAMINFO rate.
func (d *Decoder) SampleRate() uint32 {
	if d.last == nil {
		return 0
	}
	return d.last.SampleRate
}

// Channels returns the most recently decoded frame's per-channel sample
// buffers, indexed channel then sample. The slice is owned by the decoder
// and is only valid until the next DecodeAudio call.
func (d *Decoder) Channels() [][]int32 {
	if d.last == nil {
		return nil
	}
	return d.last.Channels
}

// DecodeMarker reads the 32-bit "fLaC" magic and, on success, advances the
// state from StateInit to StateHasMarker.
func (d *Decoder) DecodeMarker() error {
	const component = "flac.DecodeMarker"
	v, err := d.br.Uint(32)
	if err != nil {
		return err
	}
	if v != marker {
		return ferrors.NewProtocol(component, "invalid stream marker: got %#x, want %#x (\"fLaC\")", v, uint64(marker))
	}
	d.state = StateHasMarker
	return nil
}

// DecodeMetadata reads one metadata block. If it is the STREAMINFO block,
// its body is parsed and validated against capacity; any other type is
// parsed if this decoder recognizes it, otherwise skipped byte-wise. If the
// block's "last" flag is set, the state advances to StateHasMetadata.
func (d *Decoder) DecodeMetadata() error {
	const component = "flac.DecodeMetadata"

	block, err := meta.ReadBlock(d.br)
	if err != nil {
		return err
	}
	if err := block.Parse(d.br); err != nil {
		return err
	}

	if si, ok := block.Body.(*meta.StreamInfo); ok {
		if uint32(si.BlockSizeMax) > uint32(d.capacity) {
			return ferrors.NewAssertion(component, "max block size %d exceeds configured capacity %d", si.BlockSizeMax, d.capacity)
		}
		if si.NChannels != 1 && si.NChannels != 2 {
			return ferrors.NewAssertion(component, "channel count %d exceeds the 2-channel limit of this decoder", si.NChannels)
		}
		d.si = si
	}

	if block.Header.IsLast {
		d.state = StateHasMetadata
	}
	return nil
}

// DecodeAudio decodes one audio frame. If the stream is exhausted before a
// frame header begins, that is not an error: the state advances to
// StateComplete and Channels/BlockSize/SampleRate report the last frame
// decoded, if any.
func (d *Decoder) DecodeAudio() error {
	if d.br.EOS() {
		d.state = StateComplete
		return nil
	}

	fr, err := frame.Decode(d.br, d.si)
	if err != nil {
		return err
	}
	d.last = fr
	return nil
}
