package xdr

import "encoding/binary"

// ============================================================================
// XDR Encoding - Go Types → Wire Format
// ============================================================================

// Encoder writes XDR primitives into a caller-supplied byte slice.
//
// The encoder never grows the destination: a write that does not fit
// fails with ErrBufferTooSmall and the caller is expected to retry with a
// larger buffer. This keeps buffer ownership with the caller and enables
// reuse and pooling of output buffers across messages.
type Encoder struct {
	buf []byte
	pos int
}

// NewEncoder returns an Encoder writing into buf from the start.
func NewEncoder(buf []byte) *Encoder {
	return &Encoder{buf: buf}
}

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int {
	return e.pos
}

// Uint32 encodes a 32-bit unsigned integer as 4 big-endian bytes.
func (e *Encoder) Uint32(v uint32) error {
	if len(e.buf)-e.pos < 4 {
		return ErrBufferTooSmall
	}
	binary.BigEndian.PutUint32(e.buf[e.pos:], v)
	e.pos += 4
	return nil
}

// Uint64 encodes a 64-bit unsigned integer as 8 big-endian bytes.
func (e *Encoder) Uint64(v uint64) error {
	if len(e.buf)-e.pos < 8 {
		return ErrBufferTooSmall
	}
	binary.BigEndian.PutUint64(e.buf[e.pos:], v)
	e.pos += 8
	return nil
}

// Bool encodes a boolean as a uint32 (0 = false, 1 = true).
func (e *Encoder) Bool(v bool) error {
	var val uint32
	if v {
		val = 1
	}
	return e.Uint32(val)
}

// RawBytes copies data into the output verbatim: no length prefix and no
// padding. Used for opaque-remainder fields such as RPC call payloads,
// whose internal alignment is the application layer's concern.
func (e *Encoder) RawBytes(data []byte) error {
	if len(e.buf)-e.pos < len(data) {
		return ErrBufferTooSmall
	}
	copy(e.buf[e.pos:], data)
	e.pos += len(data)
	return nil
}

// FixedOpaque encodes a fixed-length opaque block: the bytes followed by
// zero padding to the next 4-byte boundary, without a length prefix.
//
// Per RFC 4506 Section 4.9.
func (e *Encoder) FixedOpaque(data []byte) error {
	padding := int(Pad(uint32(len(data))))
	if len(e.buf)-e.pos < len(data)+padding {
		return ErrBufferTooSmall
	}
	copy(e.buf[e.pos:], data)
	e.pos += len(data)
	for i := 0; i < padding; i++ {
		e.buf[e.pos] = 0
		e.pos++
	}
	return nil
}

// Opaque encodes variable-length opaque data.
//
// Per RFC 4506 Section 4.10:
// Format: [length:uint32][data:bytes][padding:0-3 zero bytes]
//
// Example: 3 bytes of data encode to 8 bytes total (4 length + 3 data +
// 1 padding).
func (e *Encoder) Opaque(data []byte) error {
	if err := e.Uint32(uint32(len(data))); err != nil {
		return err
	}
	return e.FixedOpaque(data)
}

// String encodes an XDR string. The wire form is identical to Opaque.
//
// Per RFC 4506 Section 4.11.
func (e *Encoder) String(s string) error {
	if err := e.Uint32(uint32(len(s))); err != nil {
		return err
	}
	padding := int(Pad(uint32(len(s))))
	if len(e.buf)-e.pos < len(s)+padding {
		return ErrBufferTooSmall
	}
	copy(e.buf[e.pos:], s)
	e.pos += len(s)
	for i := 0; i < padding; i++ {
		e.buf[e.pos] = 0
		e.pos++
	}
	return nil
}

// Uint32Array encodes a count-prefixed array of 32-bit unsigned
// integers.
//
// Per RFC 4506 Section 4.13.
func (e *Encoder) Uint32Array(values []uint32) error {
	if err := e.Uint32(uint32(len(values))); err != nil {
		return err
	}
	for _, v := range values {
		if err := e.Uint32(v); err != nil {
			return err
		}
	}
	return nil
}

// ============================================================================
// Size Helpers
// ============================================================================

// Pad returns the number of padding bytes (0-3) needed to align length to
// the next 4-byte boundary.
//
// Formula: (4 - (length % 4)) % 4
// Examples: length=5 → 3, length=8 → 0.
func Pad(length uint32) uint32 {
	return (4 - (length % 4)) % 4
}

// OpaqueLen returns the encoded size of variable-length opaque data of n
// bytes, including the length prefix and padding: 4 + n + Pad(n).
func OpaqueLen(n int) int {
	return 4 + n + int(Pad(uint32(n)))
}
