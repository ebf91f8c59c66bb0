package meta

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// CueSheet stores CD-DA-compatible track and index point information.
type CueSheet struct {
	// MCN is the media catalog number, in ASCII, NUL-padded to 128 bytes on
	// disk.
	MCN string
	// LeadInSampleCount is the number of CD-DA lead-in samples.
	LeadInSampleCount uint64
	// IsCompactDisc reports whether the cue sheet corresponds to a CD.
	IsCompactDisc bool
	// Tracks holds one or more tracks, the last of which is the mandatory
	// lead-out track.
	Tracks []CueSheetTrack
}

// CueSheetTrack describes one track within a CueSheet.
type CueSheetTrack struct {
	// Offset is the track's offset in samples from the start of the stream.
	Offset uint64
	// TrackNum is the track number (1-99, or 170/255 for the lead-out).
	TrackNum uint8
	// ISRC is the track's International Standard Recording Code.
	ISRC string
	// IsAudio reports whether the track is audio (vs. data).
	IsAudio bool
	// HasPreEmphasis reports the CD-DA pre-emphasis flag.
	HasPreEmphasis bool
	// Indexes holds the track's index points; empty for the lead-out track.
	Indexes []CueSheetTrackIndex
}

// CueSheetTrackIndex is one index point within a CueSheetTrack.
type CueSheetTrackIndex struct {
	// Offset is the index point's offset in samples, relative to the
	// track's offset.
	Offset uint64
	// IndexNum is the index point number.
	IndexNum uint8
}

// ParseCueSheet reads and parses the body of a CueSheet metadata block.
func ParseCueSheet(r io.Reader) (*CueSheet, error) {
	mcnBuf := make([]byte, 128)
	if _, err := io.ReadFull(r, mcnBuf); err != nil {
		return nil, errors.Wrap(err, "meta.ParseCueSheet: MCN")
	}
	cs := &CueSheet{MCN: cString(mcnBuf)}

	if err := binary.Read(r, binary.BigEndian, &cs.LeadInSampleCount); err != nil {
		return nil, errors.Wrap(err, "meta.ParseCueSheet: lead-in sample count")
	}

	var flags [1]byte
	if _, err := io.ReadFull(r, flags[:]); err != nil {
		return nil, errors.Wrap(err, "meta.ParseCueSheet: flags")
	}
	cs.IsCompactDisc = flags[0]&0x80 != 0

	// Reserved: 258 bytes (7 + 251) skipped per the format's zero-padding.
	if _, err := io.CopyN(io.Discard, r, 258); err != nil {
		return nil, errors.Wrap(err, "meta.ParseCueSheet: reserved")
	}

	var trackCount uint8
	if err := binary.Read(r, binary.BigEndian, &trackCount); err != nil {
		return nil, errors.Wrap(err, "meta.ParseCueSheet: track count")
	}
	if trackCount < 1 {
		return nil, errors.New("meta.ParseCueSheet: at least one (lead-out) track is required")
	}

	cs.Tracks = make([]CueSheetTrack, trackCount)
	for i := range cs.Tracks {
		track, err := parseCueSheetTrack(r)
		if err != nil {
			return nil, errors.Wrapf(err, "meta.ParseCueSheet: track %d", i)
		}
		cs.Tracks[i] = *track
	}
	return cs, nil
}

func parseCueSheetTrack(r io.Reader) (*CueSheetTrack, error) {
	t := new(CueSheetTrack)
	if err := binary.Read(r, binary.BigEndian, &t.Offset); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.BigEndian, &t.TrackNum); err != nil {
		return nil, err
	}
	isrcBuf := make([]byte, 12)
	if _, err := io.ReadFull(r, isrcBuf); err != nil {
		return nil, err
	}
	t.ISRC = cString(isrcBuf)

	var flags [1]byte
	if _, err := io.ReadFull(r, flags[:]); err != nil {
		return nil, err
	}
	t.IsAudio = flags[0]&0x80 == 0
	t.HasPreEmphasis = flags[0]&0x40 != 0

	// Reserved: 13 bytes.
	if _, err := io.CopyN(io.Discard, r, 13); err != nil {
		return nil, err
	}

	var indexCount uint8
	if err := binary.Read(r, binary.BigEndian, &indexCount); err != nil {
		return nil, err
	}
	t.Indexes = make([]CueSheetTrackIndex, indexCount)
	for i := range t.Indexes {
		idx := &t.Indexes[i]
		if err := binary.Read(r, binary.BigEndian, &idx.Offset); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.BigEndian, &idx.IndexNum); err != nil {
			return nil, err
		}
		// Reserved: 3 bytes.
		if _, err := io.CopyN(io.Discard, r, 3); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// cString trims a fixed-width NUL-padded byte buffer to its string content.
func cString(buf []byte) string {
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}
