package xdr

import "errors"

// Sentinel errors returned by the primitive codec.
//
// All of them describe local, non-retryable data problems: a caller can
// test for them with errors.Is, but re-running the same operation on the
// same buffer will always fail the same way.
var (
	// ErrUnexpectedEOF is returned when fewer bytes remain in the input
	// than a fixed-width field requires.
	ErrUnexpectedEOF = errors.New("unexpected end of xdr data")

	// ErrInvalidLength is returned when a declared variable-length field
	// (after 4-byte padding) would read past the end of the input. The
	// check always happens before the read, so a forged length can never
	// cause an out-of-bounds access.
	ErrInvalidLength = errors.New("invalid length in xdr data")

	// ErrBufferTooSmall is returned by the encode path when the
	// caller-supplied destination cannot hold the output. The encoder
	// never grows the destination itself; the caller should grow the
	// buffer and retry the same encode call.
	ErrBufferTooSmall = errors.New("buffer too small for xdr data")
)
