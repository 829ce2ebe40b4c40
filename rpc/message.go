package rpc

import (
	"fmt"

	"github.com/marmos91/oncrpc/xdr"
)

// ============================================================================
// Message Envelope
// ============================================================================

// Message is one ONC RPC message: a transaction ID and either a call or
// a reply body (RFC 5531 Section 9).
//
// A parsed Message borrows from the buffer it was parsed out of; see
// Parse. A constructed Message serializes with Serialize or
// SerializeInto.
type Message struct {
	// XID is the transaction ID chosen by the caller and echoed by the
	// server. This package carries it verbatim and attaches no meaning
	// to it.
	XID uint32

	// Body is either a *CallBody or a *ReplyBody.
	Body Body
}

// Body is the message body union, discriminated on the wire by the
// message type.
type Body interface {
	messageType() uint32
	encodedLen() int
	encode(e *xdr.Encoder) error
}

// CallBody returns the body as a call, or (nil, false) for a reply.
func (m *Message) CallBody() (*CallBody, bool) {
	c, ok := m.Body.(*CallBody)
	return c, ok
}

// ReplyBody returns the body as a reply, or (nil, false) for a call.
func (m *Message) ReplyBody() (*ReplyBody, bool) {
	r, ok := m.Body.(*ReplyBody)
	return r, ok
}

// ============================================================================
// Parsing
// ============================================================================

// Parse decodes one RPC message from buf, starting at the xid. It
// returns the message and the number of bytes consumed.
//
// Parse is zero-copy: variable-length fields of the result (auth bodies,
// machine names, call payloads, reply results) are subslices of buf. The
// caller must keep buf alive and unmodified for as long as the message
// is in use, and must not hand Parse a buffer that still carries a
// transport record mark.
//
// Malformed input fails with xdr.ErrUnexpectedEOF, xdr.ErrInvalidLength,
// a *DiscriminantError or an *AuthStatusError; it never panics. Opaque
// payloads after the fixed header swallow the rest of the buffer, so for
// call and successful-reply messages the consumed count equals len(buf).
func Parse(buf []byte) (*Message, int, error) {
	d := xdr.NewDecoder(buf)

	xid, err := d.Uint32()
	if err != nil {
		return nil, 0, fmt.Errorf("xid: %w", err)
	}

	msgType, err := d.Uint32()
	if err != nil {
		return nil, 0, fmt.Errorf("message type: %w", err)
	}

	var body Body
	switch msgType {
	case MessageTypeCall:
		body, err = decodeCallBody(d)
	case MessageTypeReply:
		body, err = decodeReplyBody(d)
	default:
		return nil, 0, &DiscriminantError{Kind: "message type", Value: msgType}
	}
	if err != nil {
		return nil, 0, err
	}

	return &Message{XID: xid, Body: body}, d.Pos(), nil
}

// ============================================================================
// Serialization
// ============================================================================

// SerializedLen returns the exact number of bytes Serialize produces for
// this message.
func (m *Message) SerializedLen() int {
	return 4 + 4 + m.Body.encodedLen()
}

// SerializeInto encodes the message into dst and returns the number of
// bytes written. The size is checked up front: when dst is shorter than
// SerializedLen, SerializeInto fails with xdr.ErrBufferTooSmall without
// writing anything, and the caller can grow the buffer and retry. This
// is the path for callers that pool and reuse output buffers.
func (m *Message) SerializeInto(dst []byte) (int, error) {
	need := m.SerializedLen()
	if len(dst) < need {
		return 0, fmt.Errorf("message needs %d bytes, have %d: %w",
			need, len(dst), xdr.ErrBufferTooSmall)
	}

	e := xdr.NewEncoder(dst)
	if err := e.Uint32(m.XID); err != nil {
		return 0, err
	}
	if err := e.Uint32(m.Body.messageType()); err != nil {
		return 0, err
	}
	if err := m.Body.encode(e); err != nil {
		return 0, err
	}
	return e.Len(), nil
}

// Serialize encodes the message into a freshly allocated, exactly-sized
// buffer.
func (m *Message) Serialize() ([]byte, error) {
	buf := make([]byte, m.SerializedLen())
	if _, err := m.SerializeInto(buf); err != nil {
		return nil, err
	}
	return buf, nil
}
