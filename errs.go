package flac

import "github.com/waveflac/flac/internal/ferrors"

// ProtocolError reports that the bitstream violates the FLAC format: an
// unexpected marker, a non-zero reserved bit, an invalid sync code, or a
// reserved code in a decoding table.
type ProtocolError = ferrors.Protocol

// AssertionError reports structurally valid FLAC that exceeds this
// decoder's configured limits: more than two channels, a block size larger
// than the configured buffer capacity, or a reserved channel-assignment
// code.
type AssertionError = ferrors.Assertion
