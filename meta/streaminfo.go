package meta

import (
	"io"

	"github.com/eaburns/bit"
	"github.com/pkg/errors"
)

// StreamInfo describes the audio stream: block-size and frame-size bounds,
// sample rate, channel count, bit depth, and total sample count. It is
// mandatory and must be the first metadata block of a FLAC stream (§3.1).
type StreamInfo struct {
	// BlockSizeMin is the minimum block size in samples used across the
	// stream.
	BlockSizeMin uint16
	// BlockSizeMax is the maximum block size in samples used across the
	// stream.
	BlockSizeMax uint16
	// FrameSizeMin is the minimum frame size in bytes, or 0 if unknown.
	FrameSizeMin uint32
	// FrameSizeMax is the maximum frame size in bytes, or 0 if unknown.
	FrameSizeMax uint32
	// SampleRate is the sample rate in Hz.
	SampleRate uint32
	// NChannels is the number of audio channels; 1 or 2 are the only values
	// this decoder supports.
	NChannels uint8
	// BitsPerSample is the number of bits per sample.
	BitsPerSample uint8
	// SampleCount is the total number of samples per channel in the stream,
	// or 0 if unknown.
	SampleCount uint64
}

// ParseStreamInfo reads and parses the body of a StreamInfo metadata block:
// the fields above, packed bit by bit, followed by a 128-bit MD5 signature
// that is read and discarded (this decoder does not verify it).
func ParseStreamInfo(r io.Reader) (*StreamInfo, error) {
	br := bit.NewReader(r)
	// 16, 16, 24, 24, 20, 3, 5, 36 bits, in that order (144 bits = 18 bytes).
	fields, err := br.ReadFields(16, 16, 24, 24, 20, 3, 5, 36)
	if err != nil {
		return nil, errors.Wrap(err, "meta.ParseStreamInfo")
	}

	si := &StreamInfo{
		BlockSizeMin:  uint16(fields[0]),
		BlockSizeMax:  uint16(fields[1]),
		FrameSizeMin:  uint32(fields[2]),
		FrameSizeMax:  uint32(fields[3]),
		SampleRate:    uint32(fields[4]),
		NChannels:     uint8(fields[5]) + 1,
		BitsPerSample: uint8(fields[6]) + 1,
		SampleCount:   fields[7],
	}
	if si.BlockSizeMin > si.BlockSizeMax {
		return nil, errors.Errorf("meta.ParseStreamInfo: invalid block size bounds (ProtocolError): min %d > max %d", si.BlockSizeMin, si.BlockSizeMax)
	}

	// MD5 signature (16 bytes): read and discarded, per this decoder's scope.
	md5sum := make([]byte, 16)
	if _, err := io.ReadFull(r, md5sum); err != nil {
		return nil, errors.Wrap(err, "meta.ParseStreamInfo: MD5 signature")
	}

	return si, nil
}
