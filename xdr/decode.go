// Package xdr implements the XDR (External Data Representation) base
// types used by the ONC RPC wire protocol, as defined in RFC 4506.
//
// Unlike reflection-based XDR libraries, this package decodes without
// copying: variable-length fields are returned as subslices of the input
// buffer. The caller owns that buffer and must not reuse or overwrite it
// while decoded values are still alive.
package xdr

import "encoding/binary"

// ============================================================================
// XDR Decoding - Wire Format → Go Types
// ============================================================================

// Decoder reads XDR primitives from a caller-owned byte slice.
//
// Every method validates the available bytes before reading, so malformed
// or adversarial input produces a typed error, never a panic or an
// out-of-bounds access. Variable-length results are views into the input
// buffer, not copies.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder returns a Decoder positioned at the start of buf.
//
// The Decoder borrows buf: results returned by Opaque, FixedOpaque and
// Rest alias it directly.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Pos returns the number of bytes consumed so far.
func (d *Decoder) Pos() int {
	return d.pos
}

// Remaining returns the number of bytes left in the input.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}

// Uint32 decodes a 32-bit unsigned integer.
//
// Per RFC 4506 Section 4.2: exactly 4 bytes, big-endian.
func (d *Decoder) Uint32() (uint32, error) {
	if d.Remaining() < 4 {
		return 0, ErrUnexpectedEOF
	}
	v := binary.BigEndian.Uint32(d.buf[d.pos:])
	d.pos += 4
	return v, nil
}

// Uint64 decodes a 64-bit unsigned integer.
//
// Per RFC 4506 Section 4.5: exactly 8 bytes, big-endian.
func (d *Decoder) Uint64() (uint64, error) {
	if d.Remaining() < 8 {
		return 0, ErrUnexpectedEOF
	}
	v := binary.BigEndian.Uint64(d.buf[d.pos:])
	d.pos += 8
	return v, nil
}

// Bool decodes an XDR boolean.
//
// Per RFC 4506 Section 4.4: encoded as a uint32 where 0 = false and any
// non-zero value is treated as true.
func (d *Decoder) Bool() (bool, error) {
	v, err := d.Uint32()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// FixedOpaque decodes a fixed-length opaque block of n bytes.
//
// Per RFC 4506 Section 4.9: the block is followed by 0-3 padding bytes
// aligning the next item to a 4-byte boundary. Padding is consumed but
// its value is not validated. The returned slice aliases the input.
func (d *Decoder) FixedOpaque(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrInvalidLength
	}
	padded := n + int(Pad(uint32(n)))
	if padded > d.Remaining() {
		return nil, ErrUnexpectedEOF
	}
	data := d.buf[d.pos : d.pos+n]
	d.pos += padded
	if n == 0 {
		return nil, nil
	}
	return data, nil
}

// Opaque decodes variable-length opaque data.
//
// Per RFC 4506 Section 4.10:
// Format: [length:uint32][data:length bytes][padding:0-3 bytes]
//
// The declared length plus padding is validated against the remaining
// input before anything is read; a forged length yields ErrInvalidLength.
// Padding bytes are consumed but not validated to be zero. The returned
// slice aliases the input buffer; a zero-length field decodes as nil.
func (d *Decoder) Opaque() ([]byte, error) {
	length, err := d.Uint32()
	if err != nil {
		return nil, err
	}

	// uint64 arithmetic so a length near 2^32 cannot wrap the check.
	padded := uint64(length) + uint64(Pad(length))
	if padded > uint64(d.Remaining()) {
		return nil, ErrInvalidLength
	}

	data := d.buf[d.pos : d.pos+int(length)]
	d.pos += int(padded)
	if length == 0 {
		return nil, nil
	}
	return data, nil
}

// String decodes an XDR string.
//
// Per RFC 4506 Section 4.11: the wire form is identical to Opaque. The
// bytes are converted to a Go string, which copies; callers that need the
// zero-copy view should use Opaque instead.
func (d *Decoder) String() (string, error) {
	data, err := d.Opaque()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ArrayLen decodes the length prefix of a variable-length array and
// validates it against the remaining input.
//
// Per RFC 4506 Section 4.13 the count is followed by that many encoded
// elements. elemSize is the minimum encoded size of one element; the
// count is rejected with ErrInvalidLength when count*elemSize exceeds the
// remaining input, bounding the work a forged count can demand.
func (d *Decoder) ArrayLen(elemSize int) (int, error) {
	count, err := d.Uint32()
	if err != nil {
		return 0, err
	}
	if uint64(count)*uint64(elemSize) > uint64(d.Remaining()) {
		return 0, ErrInvalidLength
	}
	return int(count), nil
}

// Uint32Array decodes a count-prefixed array of 32-bit unsigned integers.
//
// The element values cannot alias the big-endian input, so this is the
// one decode path that allocates; the allocation is bounded by the
// remaining input via ArrayLen. A zero count decodes as nil.
func (d *Decoder) Uint32Array() ([]uint32, error) {
	count, err := d.ArrayLen(4)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	out := make([]uint32, count)
	for i := range out {
		out[i] = binary.BigEndian.Uint32(d.buf[d.pos:])
		d.pos += 4
	}
	return out, nil
}

// Rest consumes and returns everything left in the input without
// interpretation. Used for opaque-remainder fields such as RPC call
// payloads. Returns nil when nothing remains.
func (d *Decoder) Rest() []byte {
	if d.Remaining() == 0 {
		return nil
	}
	data := d.buf[d.pos:]
	d.pos = len(d.buf)
	return data
}
