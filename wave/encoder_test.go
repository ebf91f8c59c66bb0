package wave_test

import (
	"errors"
	"io"
	"testing"

	"github.com/waveflac/flac/wave"
)

// memWriteSeeker is a memory-backed io.WriteSeeker, standing in for a real
// file so tests don't touch the filesystem.
type memWriteSeeker struct {
	buf []byte
	pos int
}

func (w *memWriteSeeker) Write(p []byte) (int, error) {
	end := w.pos + len(p)
	if end > len(w.buf) {
		grown := make([]byte, end)
		copy(grown, w.buf)
		w.buf = grown
	}
	copy(w.buf[w.pos:end], p)
	w.pos = end
	return len(p), nil
}

func (w *memWriteSeeker) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = int64(w.pos) + offset
	case io.SeekEnd:
		newPos = int64(len(w.buf)) + offset
	}
	if newPos < 0 {
		return 0, errors.New("negative seek position")
	}
	w.pos = int(newPos)
	return newPos, nil
}

func TestEncoderRejectsUnsupportedBitDepth(t *testing.T) {
	ws := &memWriteSeeker{}
	if _, err := wave.NewEncoder(ws, 44100, 17, 1); err == nil {
		t.Fatal("NewEncoder() with bit depth 17 succeeded, want an error")
	}
}

func TestEncoderWritesRIFFHeader(t *testing.T) {
	ws := &memWriteSeeker{}
	enc, err := wave.NewEncoder(ws, 44100, 16, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := enc.WriteBlock([][]int32{{1, 2, 3, 4}}, 4); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if len(ws.buf) < 44 {
		t.Fatalf("wrote %d bytes, want at least a 44-byte RIFF header", len(ws.buf))
	}
	if string(ws.buf[0:4]) != "RIFF" {
		t.Errorf("chunk ID = %q, want RIFF", ws.buf[0:4])
	}
	if string(ws.buf[8:12]) != "WAVE" {
		t.Errorf("format = %q, want WAVE", ws.buf[8:12])
	}
	found := false
	for i := 0; i+4 <= len(ws.buf); i++ {
		if string(ws.buf[i:i+4]) == "data" {
			found = true
			break
		}
	}
	if !found {
		t.Error("no \"data\" chunk found in encoded output")
	}
}
