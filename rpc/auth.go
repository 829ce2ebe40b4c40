package rpc

import (
	"fmt"

	"github.com/marmos91/oncrpc/xdr"
)

// ============================================================================
// Authentication Flavors
// ============================================================================

// Auth is one authentication structure on the wire: a flavor number
// followed by an opaque, length-prefixed body (RFC 5531 Section 8.2).
// Both the credential and the verifier of a call, and the verifier of an
// accepted reply, have this shape.
//
// The concrete types are AuthNone, AuthUnix, AuthShort and AuthOther.
// AuthOther is the catch-all: any flavor this package does not model
// (AUTH_DH, RPCSEC_GSS, vendor flavors) round-trips through it with the
// flavor number and body preserved byte for byte.
type Auth interface {
	// Flavor returns the flavor discriminant as it appears on the wire.
	Flavor() uint32

	encodedLen() int
	encode(e *xdr.Encoder) error
}

// AuthNone is the AUTH_NONE flavor: no authentication.
//
// RFC 5531 says the body "should" be empty, but implementations have
// been observed sending one; it is kept so that parse → serialize is
// lossless. A nil Body is the common case.
type AuthNone struct {
	Body []byte
}

// AuthUnix is the AUTH_SYS flavor (historically AUTH_UNIX): traditional
// Unix process credentials, defined in RFC 5531 Appendix A.
//
// MachineName is kept as the raw bytes borrowed from the input buffer;
// use MachineNameString when a copy as a Go string is wanted.
type AuthUnix struct {
	Stamp       uint32
	MachineName []byte
	UID         uint32
	GID         uint32
	GIDs        []uint32
}

// AuthShort is the AUTH_SHORT flavor: an opaque shorthand token the
// server handed out in an earlier AUTH_SYS verifier.
type AuthShort struct {
	Body []byte
}

// AuthOther is any flavor this package does not model. ID is the raw
// flavor number and Body the undecoded opaque body; both are preserved
// exactly on re-serialization.
type AuthOther struct {
	ID   uint32
	Body []byte
}

// Flavor implements Auth.
func (a *AuthNone) Flavor() uint32 { return AuthFlavorNone }

// Flavor implements Auth.
func (a *AuthUnix) Flavor() uint32 { return AuthFlavorUnix }

// Flavor implements Auth.
func (a *AuthShort) Flavor() uint32 { return AuthFlavorShort }

// Flavor implements Auth.
func (a *AuthOther) Flavor() uint32 { return a.ID }

// MachineNameString returns the machine name as a string. This copies;
// the MachineName field itself stays a view into the parse buffer.
func (a *AuthUnix) MachineNameString() string {
	return string(a.MachineName)
}

// ============================================================================
// Decoding
// ============================================================================

// decodeAuth reads one flavor + opaque body pair and interprets the body
// according to the flavor. Unknown flavors land in AuthOther untouched.
func decodeAuth(d *xdr.Decoder) (Auth, error) {
	flavor, err := d.Uint32()
	if err != nil {
		return nil, fmt.Errorf("auth flavor: %w", err)
	}

	body, err := d.Opaque()
	if err != nil {
		return nil, fmt.Errorf("auth body: %w", err)
	}

	switch flavor {
	case AuthFlavorNone:
		return &AuthNone{Body: body}, nil
	case AuthFlavorUnix:
		return decodeAuthUnix(body)
	case AuthFlavorShort:
		return &AuthShort{Body: body}, nil
	default:
		return &AuthOther{ID: flavor, Body: body}, nil
	}
}

// decodeAuthUnix interprets an AUTH_SYS opaque body. The structured
// fields must consume the body exactly; leftover bytes mean the declared
// body length and its contents disagree.
func decodeAuthUnix(body []byte) (*AuthUnix, error) {
	d := xdr.NewDecoder(body)

	stamp, err := d.Uint32()
	if err != nil {
		return nil, fmt.Errorf("auth unix stamp: %w", err)
	}

	machineName, err := d.Opaque()
	if err != nil {
		return nil, fmt.Errorf("auth unix machine name: %w", err)
	}

	uid, err := d.Uint32()
	if err != nil {
		return nil, fmt.Errorf("auth unix uid: %w", err)
	}

	gid, err := d.Uint32()
	if err != nil {
		return nil, fmt.Errorf("auth unix gid: %w", err)
	}

	gids, err := d.Uint32Array()
	if err != nil {
		return nil, fmt.Errorf("auth unix gids: %w", err)
	}

	if d.Remaining() != 0 {
		return nil, fmt.Errorf("auth unix body has %d trailing bytes: %w",
			d.Remaining(), xdr.ErrInvalidLength)
	}

	return &AuthUnix{
		Stamp:       stamp,
		MachineName: machineName,
		UID:         uid,
		GID:         gid,
		GIDs:        gids,
	}, nil
}

// ============================================================================
// Encoding
// ============================================================================

func (a *AuthNone) encodedLen() int {
	return 4 + xdr.OpaqueLen(len(a.Body))
}

func (a *AuthNone) encode(e *xdr.Encoder) error {
	if err := e.Uint32(AuthFlavorNone); err != nil {
		return err
	}
	return e.Opaque(a.Body)
}

// unixBodyLen is the encoded size of the AUTH_SYS body alone, without
// the flavor and body-length prefix.
func (a *AuthUnix) unixBodyLen() int {
	return 4 + xdr.OpaqueLen(len(a.MachineName)) + 4 + 4 + 4 + 4*len(a.GIDs)
}

func (a *AuthUnix) encodedLen() int {
	return 4 + 4 + a.unixBodyLen()
}

func (a *AuthUnix) encode(e *xdr.Encoder) error {
	if err := e.Uint32(AuthFlavorUnix); err != nil {
		return err
	}
	// The body length is computed, not stored, so a structurally valid
	// AuthUnix always serializes with a consistent prefix.
	if err := e.Uint32(uint32(a.unixBodyLen())); err != nil {
		return err
	}
	if err := e.Uint32(a.Stamp); err != nil {
		return err
	}
	if err := e.Opaque(a.MachineName); err != nil {
		return err
	}
	if err := e.Uint32(a.UID); err != nil {
		return err
	}
	if err := e.Uint32(a.GID); err != nil {
		return err
	}
	return e.Uint32Array(a.GIDs)
}

func (a *AuthShort) encodedLen() int {
	return 4 + xdr.OpaqueLen(len(a.Body))
}

func (a *AuthShort) encode(e *xdr.Encoder) error {
	if err := e.Uint32(AuthFlavorShort); err != nil {
		return err
	}
	return e.Opaque(a.Body)
}

func (a *AuthOther) encodedLen() int {
	return 4 + xdr.OpaqueLen(len(a.Body))
}

func (a *AuthOther) encode(e *xdr.Encoder) error {
	if err := e.Uint32(a.ID); err != nil {
		return err
	}
	return e.Opaque(a.Body)
}
