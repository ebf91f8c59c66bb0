package frame_test

import (
	"bytes"
	"testing"

	"github.com/icza/bitio"
)

// bitField is one (value, width) pair for building a hand-crafted bitstream
// in tests.
type bitField struct {
	v uint64
	n uint8
}

func packBits(t *testing.T, fields ...bitField) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	bw := bitio.NewWriter(buf)
	for _, f := range fields {
		if err := bw.WriteBits(f.v, f.n); err != nil {
			t.Fatal(err)
		}
	}
	if err := bw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func u(v uint64, n uint8) bitField { return bitField{v: v, n: n} }
