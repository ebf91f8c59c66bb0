package meta

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Picture holds embedded artwork associated with the stream, per the ID3v2
// APIC picture-type taxonomy.
type Picture struct {
	// Type is the ID3v2 APIC picture type (e.g. 3 = cover front).
	Type uint32
	// MIME is the MIME type of Data, or "-->" to signify Data is a URL.
	MIME string
	// Desc is a UTF-8 description of the picture.
	Desc string
	// Width and Height are the picture's dimensions in pixels.
	Width, Height uint32
	// ColorDepth is the color depth in bits-per-pixel.
	ColorDepth uint32
	// ColorCount is the number of colors used for indexed-color pictures, or
	// 0 for non-indexed pictures.
	ColorCount uint32
	// Data is the picture's binary content.
	Data []byte
}

// ParsePicture reads and parses the body of a Picture metadata block.
func ParsePicture(r io.Reader) (*Picture, error) {
	pic := new(Picture)
	var mimeLen, descLen, dataLen uint32

	if err := binary.Read(r, binary.BigEndian, &pic.Type); err != nil {
		return nil, errors.Wrap(err, "meta.ParsePicture: type")
	}
	if err := binary.Read(r, binary.BigEndian, &mimeLen); err != nil {
		return nil, errors.Wrap(err, "meta.ParsePicture: MIME length")
	}
	mimeBuf := make([]byte, mimeLen)
	if _, err := io.ReadFull(r, mimeBuf); err != nil {
		return nil, errors.Wrap(err, "meta.ParsePicture: MIME")
	}
	pic.MIME = string(mimeBuf)

	if err := binary.Read(r, binary.BigEndian, &descLen); err != nil {
		return nil, errors.Wrap(err, "meta.ParsePicture: description length")
	}
	descBuf := make([]byte, descLen)
	if _, err := io.ReadFull(r, descBuf); err != nil {
		return nil, errors.Wrap(err, "meta.ParsePicture: description")
	}
	pic.Desc = string(descBuf)

	if err := binary.Read(r, binary.BigEndian, &pic.Width); err != nil {
		return nil, errors.Wrap(err, "meta.ParsePicture: width")
	}
	if err := binary.Read(r, binary.BigEndian, &pic.Height); err != nil {
		return nil, errors.Wrap(err, "meta.ParsePicture: height")
	}
	if err := binary.Read(r, binary.BigEndian, &pic.ColorDepth); err != nil {
		return nil, errors.Wrap(err, "meta.ParsePicture: color depth")
	}
	if err := binary.Read(r, binary.BigEndian, &pic.ColorCount); err != nil {
		return nil, errors.Wrap(err, "meta.ParsePicture: color count")
	}
	if err := binary.Read(r, binary.BigEndian, &dataLen); err != nil {
		return nil, errors.Wrap(err, "meta.ParsePicture: data length")
	}
	data := make([]byte, dataLen)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, errors.Wrap(err, "meta.ParsePicture: data")
	}
	pic.Data = data

	return pic, nil
}
