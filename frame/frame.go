package frame

import (
	"github.com/waveflac/flac/internal/bitutil"
	"github.com/waveflac/flac/meta"
)

// Frame holds one decoded audio frame: its header and one sample slice per
// channel, each of length Header.BlockSize.
type Frame struct {
	Header
	Channels [][]int32
}

// Decode reads and decodes one full frame from br: header, one subframe per
// channel, interchannel decorrelation, and the trailing CRC-16 (§4.2-§4.5).
func Decode(br *bitutil.Reader, si *meta.StreamInfo) (*Frame, error) {
	hdr, err := ParseHeader(br, si)
	if err != nil {
		return nil, err
	}

	channels := make([][]int32, hdr.Channels)
	for c := 0; c < int(hdr.Channels); c++ {
		bps := hdr.BitsPerSample
		if subframeCarriesSideChannel(hdr.Assignment, c) {
			bps++
		}
		sf, err := DecodeSubframe(br, bps, int(hdr.BlockSize))
		if err != nil {
			return nil, err
		}
		channels[c] = sf.Samples
	}

	if hdr.Channels == 2 {
		decorrelate(hdr.Assignment, channels[0], channels[1])
	}

	// Byte-align, then discard the CRC-16 footer (verification is out of
	// scope).
	br.Align()
	if _, err := br.Uint(16); err != nil {
		return nil, err
	}

	return &Frame{Header: *hdr, Channels: channels}, nil
}

// subframeCarriesSideChannel reports whether channel index c is the "side"
// channel of a decorrelated stereo assignment, which carries one extra bit
// of precision (§4.3).
func subframeCarriesSideChannel(assignment ChannelAssignment, c int) bool {
	switch assignment {
	case ChannelLeftSide, ChannelMidSide:
		return c == 1
	case ChannelSideRight:
		return c == 0
	default:
		return false
	}
}
