// Package frame implements FLAC frame header, subframe, and interchannel
// decorrelation decoding: everything needed to turn one FLAC frame's worth
// of bits into per-channel sample blocks (§4.2-§4.5).
package frame

import (
	"math/bits"

	"github.com/waveflac/flac/internal/bitutil"
	"github.com/waveflac/flac/internal/ferrors"
	"github.com/waveflac/flac/meta"
)

// ChannelAssignment identifies how the frame's channels map to left/right
// audio, independent or interchannel-decorrelated.
type ChannelAssignment uint8

// Channel assignments. Independent covers mono and plain stereo; the other
// three are FLAC's decorrelated stereo forms (§4.5).
const (
	ChannelIndependent ChannelAssignment = iota
	ChannelLeftSide
	ChannelSideRight
	ChannelMidSide
)

// syncCode is the 14-bit frame sync pattern: 11111111111110.
const syncCode = 0x3FFE

// Header is a decoded frame preamble: everything needed to know how many
// subframes to decode, at what precision, and at what rate (§4.2).
type Header struct {
	// BlockSize is the number of samples per channel in this frame.
	BlockSize uint32
	// SampleRate is this frame's sample rate in Hz, which may differ from
	// the stream's STREAMINFO rate.
	SampleRate uint32
	// Channels is the number of audio channels, 1 or 2.
	Channels uint8
	// Assignment describes how the subframes' channels combine.
	Assignment ChannelAssignment
	// BitsPerSample is the bit depth shared by all subframes in this frame,
	// before any per-subframe wasted-bit or side-channel adjustment.
	BitsPerSample uint8
}

// ParseHeader reads and decodes a frame header from br. si supplies the
// sample rate and bit depth for the "get from STREAMINFO" codes.
func ParseHeader(br *bitutil.Reader, si *meta.StreamInfo) (*Header, error) {
	const component = "frame.ParseHeader"

	sync, err := br.Uint(14)
	if err != nil {
		return nil, err
	}
	if sync != syncCode {
		return nil, ferrors.NewProtocol(component, "invalid sync code: got %014b, want %014b", sync, syncCode)
	}

	reserved, err := br.Uint(1)
	if err != nil {
		return nil, err
	}
	if reserved != 0 {
		return nil, ferrors.NewProtocol(component, "reserved bit after sync code is set")
	}

	// Blocking strategy: this decoder treats fixed- and variable-blocksize
	// frames identically once the block size is known, so the bit is read
	// and discarded.
	if _, err := br.Uint(1); err != nil {
		return nil, err
	}

	blockSizeCode, err := br.Uint(4)
	if err != nil {
		return nil, err
	}
	sampleRateCode, err := br.Uint(4)
	if err != nil {
		return nil, err
	}
	channelCode, err := br.Uint(4)
	if err != nil {
		return nil, err
	}
	sampleSizeCode, err := br.Uint(3)
	if err != nil {
		return nil, err
	}

	reserved, err = br.Uint(1)
	if err != nil {
		return nil, err
	}
	if reserved != 0 {
		return nil, ferrors.NewProtocol(component, "reserved bit before frame number is set")
	}

	if err := skipCodedFrameNumber(br); err != nil {
		return nil, err
	}

	h := new(Header)
	if h.BlockSize, err = decodeBlockSize(br, blockSizeCode); err != nil {
		return nil, err
	}
	if h.SampleRate, err = decodeSampleRate(br, sampleRateCode, si); err != nil {
		return nil, err
	}
	if h.Channels, h.Assignment, err = decodeChannelAssignment(channelCode); err != nil {
		return nil, err
	}
	if h.BitsPerSample, err = decodeSampleSize(sampleSizeCode, si); err != nil {
		return nil, err
	}

	// CRC-8: read and discarded (verification is out of scope).
	if _, err := br.Byte(); err != nil {
		return nil, err
	}

	return h, nil
}

// skipCodedFrameNumber reads the UTF-8-style coded frame/sample number and
// discards it: the value isn't needed to decode a contiguous stream. The
// number of bytes following the first is the number of leading one bits of
// the first byte, minus one (none for a first byte below 0x80).
func skipCodedFrameNumber(br *bitutil.Reader) error {
	first, err := br.Byte()
	if err != nil {
		return err
	}
	if first < 0x80 {
		return nil
	}
	k := bits.LeadingZeros8(^first) - 1
	for i := 0; i < k; i++ {
		if _, err := br.Byte(); err != nil {
			return err
		}
	}
	return nil
}

func decodeBlockSize(br *bitutil.Reader, code uint64) (uint32, error) {
	const component = "frame.decodeBlockSize"
	switch {
	case code == 0:
		return 0, ferrors.NewProtocol(component, "reserved block size code 0")
	case code == 1:
		return 192, nil
	case code >= 2 && code <= 5:
		return 144 * (1 << code), nil
	case code == 6:
		v, err := br.Uint(8)
		if err != nil {
			return 0, err
		}
		return uint32(v) + 1, nil
	case code == 7:
		v, err := br.Uint(16)
		if err != nil {
			return 0, err
		}
		return uint32(v) + 1, nil
	default: // 8..15
		return 256 * (1 << (code - 8)), nil
	}
}

func decodeSampleRate(br *bitutil.Reader, code uint64, si *meta.StreamInfo) (uint32, error) {
	const component = "frame.decodeSampleRate"
	switch code {
	case 0:
		return si.SampleRate, nil
	case 1:
		return 88200, nil
	case 2:
		return 176400, nil
	case 3:
		return 192000, nil
	case 4:
		return 8000, nil
	case 5:
		return 16000, nil
	case 6:
		return 22050, nil
	case 7:
		return 24000, nil
	case 8:
		return 32000, nil
	case 9:
		return 44100, nil
	case 10:
		return 48000, nil
	case 11:
		return 96000, nil
	case 12:
		v, err := br.Uint(8)
		if err != nil {
			return 0, err
		}
		return uint32(v) * 1000, nil
	case 13:
		v, err := br.Uint(16)
		if err != nil {
			return 0, err
		}
		return uint32(v), nil
	case 14:
		v, err := br.Uint(16)
		if err != nil {
			return 0, err
		}
		return uint32(v) * 10, nil
	default: // 15
		return 0, ferrors.NewProtocol(component, "reserved sample rate code 15")
	}
}

func decodeChannelAssignment(code uint64) (uint8, ChannelAssignment, error) {
	const component = "frame.decodeChannelAssignment"
	switch {
	case code <= 7:
		channels := uint8(code) + 1
		if channels > 2 {
			return 0, 0, ferrors.NewAssertion(component, "channel count %d exceeds the 2-channel limit of this decoder", channels)
		}
		return channels, ChannelIndependent, nil
	case code == 8:
		return 2, ChannelLeftSide, nil
	case code == 9:
		return 2, ChannelSideRight, nil
	case code == 10:
		return 2, ChannelMidSide, nil
	default: // 11..15
		return 0, 0, ferrors.NewAssertion(component, "reserved channel assignment code %d", code)
	}
}

func decodeSampleSize(code uint64, si *meta.StreamInfo) (uint8, error) {
	const component = "frame.decodeSampleSize"
	switch code {
	case 0:
		return si.BitsPerSample, nil
	case 1:
		return 8, nil
	case 2:
		return 12, nil
	case 3:
		return 0, ferrors.NewProtocol(component, "reserved sample size code 3")
	case 4:
		return 16, nil
	case 5:
		return 20, nil
	case 6:
		return 24, nil
	case 7:
		return 32, nil
	}
	panic("unreachable")
}
