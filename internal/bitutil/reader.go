// Package bitutil implements the MSB-first bit source the FLAC bitstream
// requires: unsigned and signed fixed-width reads, byte reads, alignment to
// the next byte boundary, unary decoding, and an end-of-stream query that is
// only meaningful once the underlying byte stream is aligned.
package bitutil

import (
	"bufio"
	"io"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

// Reader is an MSB-first bit reader built on top of bitio.Reader. A
// bufio.Reader sits underneath so that EOS can be answered by peeking one
// byte ahead without disturbing bitio's own byte cache, which is only empty
// at a byte boundary.
type Reader struct {
	src *bufio.Reader
	br  *bitio.Reader
}

// NewReader returns a bit reader over r.
func NewReader(r io.Reader) *Reader {
	src := bufio.NewReader(r)
	return &Reader{
		src: src,
		br:  bitio.NewReader(src),
	}
}

// Uint reads the next n bits (1 <= n <= 64) MSB first and returns them as an
// unsigned integer.
func (r *Reader) Uint(n uint8) (uint64, error) {
	v, err := r.br.ReadBits(n)
	if err != nil {
		return 0, errors.Wrap(err, "bitutil.Reader.Uint")
	}
	return v, nil
}

// Int reads the next n bits (1 <= n <= 64) MSB first and sign-extends the
// result from bit n-1, i.e. two's-complement.
func (r *Reader) Int(n uint8) (int64, error) {
	u, err := r.Uint(n)
	if err != nil {
		return 0, err
	}
	return signExtend(u, n), nil
}

// signExtend interprets the low n bits of x as a two's-complement integer.
func signExtend(x uint64, n uint8) int64 {
	signBit := uint64(1) << (n - 1)
	if x&signBit == 0 {
		return int64(x)
	}
	return int64(x) - int64(signBit<<1)
}

// Read implements io.Reader by pulling whole bytes directly from the
// underlying byte stream, bypassing the bit cache. It is only valid to call
// at a byte boundary (i.e. right after Align, NewReader, or a run of reads
// whose total bit count is a multiple of 8); bitio.Reader never buffers
// ahead of the current partial byte, so the underlying stream's position
// always matches the bit reader's once aligned. This lets a *Reader stand
// in for an io.Reader wherever a byte-oriented consumer, such as a metadata
// block parser, needs to take over between bit-level reads.
func (r *Reader) Read(p []byte) (int, error) {
	return r.src.Read(p)
}

// Byte returns the next 8 bits as an octet, irrespective of current bit
// alignment.
func (r *Reader) Byte() (byte, error) {
	b, err := r.br.ReadByte()
	if err != nil {
		return 0, errors.Wrap(err, "bitutil.Reader.Byte")
	}
	return b, nil
}

// Align skips the 0..7 bits remaining before the next byte boundary.
func (r *Reader) Align() {
	r.br.Align()
}

// EOS reports whether the underlying stream has yielded all bytes and no
// partial octet remains. It is only meaningful when called at a byte
// boundary (i.e. right after Align, or before any bits have been consumed
// from the current byte).
func (r *Reader) EOS() bool {
	_, err := r.src.Peek(1)
	return err != nil
}

// Unary decodes and returns the number of leading zero bits before the
// terminating one bit.
func (r *Reader) Unary() (uint32, error) {
	var q uint32
	for {
		bit, err := r.br.ReadBool()
		if err != nil {
			return 0, errors.Wrap(err, "bitutil.Reader.Unary")
		}
		if bit {
			return q, nil
		}
		q++
	}
}
