// Package meta parses FLAC metadata blocks: the mandatory StreamInfo block
// (§3.1) plus the block types the format defines for tags, seek points,
// cue sheets, and embedded pictures.
package meta

import (
	"io"

	"github.com/eaburns/bit"
	"github.com/pkg/errors"
)

// BlockType identifies the kind of a metadata block's body.
type BlockType uint8

// Metadata block types, per the block-type field of the block header.
const (
	TypeStreamInfo BlockType = iota
	TypePadding
	TypeApplication
	TypeSeekTable
	TypeVorbisComment
	TypeCueSheet
	TypePicture
)

var blockTypeName = map[BlockType]string{
	TypeStreamInfo:    "streaminfo",
	TypePadding:       "padding",
	TypeApplication:   "application",
	TypeSeekTable:     "seektable",
	TypeVorbisComment: "vorbis_comment",
	TypeCueSheet:      "cuesheet",
	TypePicture:       "picture",
}

func (t BlockType) String() string {
	if name, ok := blockTypeName[t]; ok {
		return name
	}
	return "reserved"
}

// Header is a metadata block header: a last-block flag, the block's type,
// and the byte length of its body.
type Header struct {
	// IsLast reports whether this is the last metadata block before the
	// audio frames begin.
	IsLast bool
	// Type is the metadata block's body type.
	Type BlockType
	// Length is the byte length of the block body.
	Length int
}

// ReadHeader reads a 32-bit metadata block header: a 1-bit last-block flag, a
// 7-bit type, and a 24-bit body byte-length.
func ReadHeader(r io.Reader) (*Header, error) {
	br := bit.NewReader(r)
	fields, err := br.ReadFields(1, 7, 24)
	if err != nil {
		return nil, errors.Wrap(err, "meta.ReadHeader")
	}

	h := &Header{
		IsLast: fields[0] != 0,
		Length: int(fields[2]),
	}
	rawType := fields[1]
	switch {
	case rawType <= uint64(TypePicture):
		h.Type = BlockType(rawType)
	case rawType == 127:
		return nil, errors.New("meta.ReadHeader: invalid block type 127")
	default:
		// 7..126: reserved, but still skippable; store the raw code, and
		// Parse skips the body's Length bytes.
		h.Type = BlockType(rawType)
	}
	return h, nil
}

// A Block is one metadata block: its header, plus its parsed or skipped
// body.
type Block struct {
	Header *Header
	// Body holds the parsed block body: *StreamInfo, *Application,
	// *SeekTable, *VorbisComment, *CueSheet, *Picture. Nil if the block was
	// skipped, or for a Padding block (which carries no information).
	Body any
}

// ReadBlock reads a metadata block header from r and returns a Block. Call
// Parse to decode the body from r, or Skip to discard it unread.
func ReadBlock(r io.Reader) (*Block, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	return &Block{Header: h}, nil
}

// Parse reads and decodes the block body of exactly Header.Length bytes from
// r, storing the result in Body.
func (b *Block) Parse(r io.Reader) error {
	lr := io.LimitReader(r, int64(b.Header.Length))
	var err error
	switch b.Header.Type {
	case TypeStreamInfo:
		b.Body, err = ParseStreamInfo(lr)
	case TypePadding:
		err = verifyPadding(lr)
	case TypeApplication:
		b.Body, err = ParseApplication(lr, b.Header.Length)
	case TypeSeekTable:
		b.Body, err = ParseSeekTable(lr, b.Header.Length)
	case TypeVorbisComment:
		b.Body, err = ParseVorbisComment(lr)
	case TypeCueSheet:
		b.Body, err = ParseCueSheet(lr)
	case TypePicture:
		b.Body, err = ParsePicture(lr)
	default:
		// Reserved block type: skip its body byte-wise.
		return b.Skip(r)
	}
	if err != nil {
		return errors.Wrapf(err, "meta.Block.Parse: type %v", b.Header.Type)
	}
	return nil
}

// Skip discards the block body without decoding it.
func (b *Block) Skip(r io.Reader) error {
	_, err := io.CopyN(io.Discard, r, int64(b.Header.Length))
	if err != nil {
		return errors.Wrap(err, "meta.Block.Skip")
	}
	return nil
}
