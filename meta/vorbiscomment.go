package meta

import (
	"encoding/binary"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// VorbisComment stores human-readable name/value tag pairs, encoded per the
// Vorbis comment specification (without the framing bit). This is FLAC's
// only officially supported tagging mechanism.
type VorbisComment struct {
	Vendor  string
	Entries []VorbisEntry
}

// VorbisEntry is a single "NAME=value" tag.
type VorbisEntry struct {
	Name  string
	Value string
}

// ParseVorbisComment reads and parses the body of a VorbisComment metadata
// block. All length-prefixed fields are little-endian, unlike the rest of
// the FLAC format.
func ParseVorbisComment(r io.Reader) (*VorbisComment, error) {
	vendor, err := readVorbisString(r)
	if err != nil {
		return nil, errors.Wrap(err, "meta.ParseVorbisComment: vendor")
	}
	vc := &VorbisComment{Vendor: vendor}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, errors.Wrap(err, "meta.ParseVorbisComment: comment count")
	}

	vc.Entries = make([]VorbisEntry, count)
	for i := range vc.Entries {
		vector, err := readVorbisString(r)
		if err != nil {
			return nil, errors.Wrapf(err, "meta.ParseVorbisComment: entry %d", i)
		}
		pos := strings.IndexByte(vector, '=')
		if pos == -1 {
			return nil, errors.Errorf("meta.ParseVorbisComment: no '=' in comment vector %q", vector)
		}
		vc.Entries[i] = VorbisEntry{Name: vector[:pos], Value: vector[pos+1:]}
	}
	return vc, nil
}

func readVorbisString(r io.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
