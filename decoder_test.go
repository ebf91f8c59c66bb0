package flac_test

import (
	"bytes"
	"testing"

	"github.com/icza/bitio"
	"github.com/waveflac/flac"
)

type bitField struct {
	v uint64
	n uint8
}

func u(v uint64, n uint8) bitField { return bitField{v: v, n: n} }

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

// streamInfoBlock builds a last-flagged STREAMINFO metadata block declaring
// a mono, 16-bit, blockSize-sample stream.
func streamInfoBlock(t *testing.T, blockSize uint16, sampleCount uint64) []byte {
	t.Helper()
	fields := []bitField{
		u(1, 1),  // last block
		u(0, 7),  // type 0: STREAMINFO
		u(34, 24), // body length: 18 bytes fields + 16 bytes MD5

		u(uint64(blockSize), 16), // min block size
		u(uint64(blockSize), 16), // max block size
		u(0, 24),                 // min frame size (unknown)
		u(0, 24),                 // max frame size (unknown)
		u(44100, 20),             // sample rate
		u(0, 3),                  // channels-1: mono
		u(15, 5),                 // bits per sample-1: 16 bit
		u(sampleCount, 36),       // total samples
	}
	raw := packBits(t, fields...)
	return append(raw, make([]byte, 16)...) // zeroed MD5
}

// constantMonoFrame builds one mono frame of blockSize CONSTANT samples at
// the given signed 16-bit value, with an extended (code-6) block size.
func constantMonoFrame(t *testing.T, blockSize uint8, value int16) []byte {
	t.Helper()
	fields := []bitField{
		u(0x3FFE, 14), // sync
		u(0, 1),       // reserved
		u(0, 1),       // blocking strategy
		u(6, 4),       // block size code 6: extended 8-bit
		u(0, 4),       // sample rate code 0: from STREAMINFO
		u(0, 4),       // channel assignment 0: mono, independent
		u(0, 3),       // sample size code 0: from STREAMINFO
		u(0, 1),       // reserved
		u(0x00, 8),    // frame number, single byte
		u(uint64(blockSize-1), 8),
		u(0, 8), // CRC-8, discarded

		u(0, 1), u(0, 6), u(0, 1), // subframe header: CONSTANT, no wasted bits
		u(uint64(uint16(value)), 16),

		u(0, 16), // CRC-16, discarded
	}
	return packBits(t, fields...)
}

func TestDecodeMarkerInvalid(t *testing.T) {
	d := flac.NewDecoder(bytes.NewReader([]byte("OggS")))
	if err := d.DecodeMarker(); err == nil {
		t.Fatal("DecodeMarker() with invalid marker succeeded, want an error")
	}
	if d.State() != flac.StateInit {
		t.Errorf("State() = %v, want StateInit", d.State())
	}
}

func TestDecodeFullStreamMono(t *testing.T) {
	const blockSize = 4
	var raw bytes.Buffer
	raw.WriteString("fLaC")
	raw.Write(streamInfoBlock(t, blockSize, blockSize))
	raw.Write(constantMonoFrame(t, blockSize, -1))

	d := flac.NewDecoder(bytes.NewReader(raw.Bytes()))
	if err := d.DecodeMarker(); err != nil {
		t.Fatal(err)
	}
	if d.State() != flac.StateHasMarker {
		t.Fatalf("State() = %v, want StateHasMarker", d.State())
	}

	for d.State() != flac.StateHasMetadata {
		if err := d.DecodeMetadata(); err != nil {
			t.Fatal(err)
		}
	}
	if d.StreamInfo() == nil {
		t.Fatal("StreamInfo() = nil after HAS_METADATA")
	}
	if d.StreamInfo().SampleRate != 44100 {
		t.Errorf("StreamInfo().SampleRate = %d, want 44100", d.StreamInfo().SampleRate)
	}

	if err := d.DecodeAudio(); err != nil {
		t.Fatal(err)
	}
	if d.BlockSize() != blockSize {
		t.Fatalf("BlockSize() = %d, want %d", d.BlockSize(), blockSize)
	}
	channels := d.Channels()
	if len(channels) != 1 {
		t.Fatalf("len(Channels()) = %d, want 1", len(channels))
	}
	for i, s := range channels[0] {
		if s != -1 {
			t.Errorf("Channels()[0][%d] = %d, want -1", i, s)
		}
	}

	// EOS before the next frame header transitions to COMPLETE without an
	// error.
	if err := d.DecodeAudio(); err != nil {
		t.Fatal(err)
	}
	if d.State() != flac.StateComplete {
		t.Errorf("State() = %v, want StateComplete", d.State())
	}
}

func TestDecodeMetadataCapacityExceeded(t *testing.T) {
	var raw bytes.Buffer
	raw.WriteString("fLaC")
	raw.Write(streamInfoBlock(t, 1<<15, 0))

	d := flac.NewDecoder(bytes.NewReader(raw.Bytes()), 256)
	if err := d.DecodeMarker(); err != nil {
		t.Fatal(err)
	}
	if err := d.DecodeMetadata(); err == nil {
		t.Fatal("DecodeMetadata() with oversized block size succeeded, want an error")
	}
}

func TestDecodeAudioTruncatedMidFrame(t *testing.T) {
	const blockSize = 4
	var raw bytes.Buffer
	raw.WriteString("fLaC")
	raw.Write(streamInfoBlock(t, blockSize, blockSize))
	frameBytes := constantMonoFrame(t, blockSize, -1)
	raw.Write(frameBytes[:len(frameBytes)-2]) // drop the CRC-16 footer's bytes

	d := flac.NewDecoder(bytes.NewReader(raw.Bytes()))
	if err := d.DecodeMarker(); err != nil {
		t.Fatal(err)
	}
	for d.State() != flac.StateHasMetadata {
		if err := d.DecodeMetadata(); err != nil {
			t.Fatal(err)
		}
	}
	if err := d.DecodeAudio(); err == nil {
		t.Fatal("DecodeAudio() on truncated frame succeeded, want an error")
	}
	if d.State() == flac.StateComplete {
		t.Error("State() advanced to StateComplete despite a mid-frame error")
	}
}
