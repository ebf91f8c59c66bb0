package frame

import (
	"bytes"
	"testing"

	"github.com/icza/bitio"
	"github.com/waveflac/flac/internal/bitutil"
)

// lpcSubframeBits builds the full body decodeLPC expects: order warmup
// samples at the given bit depth, the quantized precision/shift/coefficient
// header, and an all-zero residual (one Rice partition, parameter 0).
func lpcSubframeBits(t *testing.T, warmup []int32, bps, precision uint8, shift int8, coeffs []int64, blockSize, order int) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	bw := bitio.NewWriter(buf)
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	for _, v := range warmup {
		must(bw.WriteBits(uint64(uint32(v))&((1<<bps)-1), bps))
	}
	must(bw.WriteBits(uint64(precision-1), 4))
	must(bw.WriteBits(uint64(uint8(shift))&0x1F, 5))
	for _, c := range coeffs {
		must(bw.WriteBits(uint64(uint32(c))&((1<<precision)-1), precision))
	}
	// Residual: single partition, k=0, all zero.
	must(bw.WriteBits(0, 2))
	must(bw.WriteBits(0, 4))
	must(bw.WriteBits(0, 4))
	for i := 0; i < blockSize-order; i++ {
		must(bw.WriteBool(true))
	}
	must(bw.Close())
	return buf.Bytes()
}

func TestDecodeLPCPositiveShift(t *testing.T) {
	// x[i] = (4*x[i-1]) >> 1 = 2*x[i-1], quantized coefficient 4 at
	// precision 4, shift 1.
	const blockSize, order, bps = 6, 1, 16
	raw := lpcSubframeBits(t, []int32{1}, bps, 4, 1, []int64{4}, blockSize, order)
	br := bitutil.NewReader(bytes.NewReader(raw))
	sf := &Subframe{}
	if err := decodeLPC(br, sf, bps, blockSize, order); err != nil {
		t.Fatal(err)
	}
	want := []int32{1, 2, 4, 8, 16, 32}
	for i, w := range want {
		if sf.Samples[i] != w {
			t.Errorf("Samples[%d] = %d, want %d", i, sf.Samples[i], w)
		}
	}
}

func TestDecodeLPCNegativeShift(t *testing.T) {
	// A negative shift means "shift left": x[i] = coeff*x[i-1] << 1.
	const blockSize, order, bps = 4, 1, 16
	raw := lpcSubframeBits(t, []int32{3}, bps, 4, -1, []int64{1}, blockSize, order)
	br := bitutil.NewReader(bytes.NewReader(raw))
	sf := &Subframe{}
	if err := decodeLPC(br, sf, bps, blockSize, order); err != nil {
		t.Fatal(err)
	}
	want := []int32{3, 6, 12, 24}
	for i, w := range want {
		if sf.Samples[i] != w {
			t.Errorf("Samples[%d] = %d, want %d", i, sf.Samples[i], w)
		}
	}
}
