package meta

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// SeekTable holds one or more pre-calculated audio frame seek points.
// Parsed for completeness (a caller inspecting metadata may want it); this
// decoder does not use it for navigation (seeking is out of scope).
type SeekTable struct {
	Points []SeekPoint
}

// SeekPoint gives the sample number and byte offset of a target frame.
type SeekPoint struct {
	// SampleNum is the sample number of the first sample in the target
	// frame, or 0xFFFFFFFFFFFFFFFF for a placeholder point.
	SampleNum uint64
	// Offset is the byte offset from the first byte of the first frame
	// header to the first byte of the target frame's header.
	Offset uint64
	// NSamples is the number of samples in the target frame.
	NSamples uint16
}

const seekPointSize = 18 // 8 + 8 + 2 bytes.

// ParseSeekTable reads and parses the body of a SeekTable metadata block of
// the given byte length.
func ParseSeekTable(r io.Reader, length int) (*SeekTable, error) {
	n := length / seekPointSize
	if n < 1 {
		return nil, errors.New("meta.ParseSeekTable: at least one seek point is required")
	}
	table := &SeekTable{Points: make([]SeekPoint, n)}
	for i := range table.Points {
		var buf [seekPointSize]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, errors.Wrap(err, "meta.ParseSeekTable")
		}
		table.Points[i] = SeekPoint{
			SampleNum: binary.BigEndian.Uint64(buf[0:8]),
			Offset:    binary.BigEndian.Uint64(buf[8:16]),
			NSamples:  binary.BigEndian.Uint16(buf[16:18]),
		}
	}
	return table, nil
}
