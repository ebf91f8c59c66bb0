// Package ferrors defines the two error kinds the FLAC decoder raises:
// Protocol errors (the bitstream violates FLAC) and Assertion errors
// (structurally valid FLAC that exceeds this decoder's configured limits).
// It lives under internal so that frame, meta, and the root flac package can
// all construct these errors without an import cycle; the root package
// re-exports the types under flac.ProtocolError and flac.AssertionError.
package ferrors

import "fmt"

// Protocol reports a bitstream violation: an unexpected marker, a non-zero
// reserved bit, an invalid sync code, a reserved code in a decoding table, or
// any other condition the FLAC format itself forbids.
type Protocol struct {
	// Component identifies where the error was detected, e.g.
	// "frame.ParseHeader".
	Component string
	Message   string
}

func (e *Protocol) Error() string {
	return fmt.Sprintf("%s (ProtocolError): %s", e.Component, e.Message)
}

// NewProtocol builds a Protocol error with a formatted message.
func NewProtocol(component, format string, args ...any) error {
	return &Protocol{Component: component, Message: fmt.Sprintf(format, args...)}
}

// Assertion reports structurally valid FLAC that exceeds this decoder's
// configured limits: more than two channels, a block size larger than the
// configured buffer capacity, or a reserved-but-defined channel-assignment
// code.
type Assertion struct {
	Component string
	Message   string
}

func (e *Assertion) Error() string {
	return fmt.Sprintf("%s (AssertionError): %s", e.Component, e.Message)
}

// NewAssertion builds an Assertion error with a formatted message.
func NewAssertion(component, format string, args ...any) error {
	return &Assertion{Component: component, Message: fmt.Sprintf(format, args...)}
}
