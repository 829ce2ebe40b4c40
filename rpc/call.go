package rpc

import (
	"fmt"

	"github.com/marmos91/oncrpc/xdr"
)

// ============================================================================
// Call Body
// ============================================================================

// CallBody is the body of an RPC call message (RFC 5531 Section 9).
//
// Payload holds the procedure arguments as opaque bytes: everything after
// the verifier, undecoded, borrowed from the parse buffer. Their shape is
// defined by the program being called, not by this package, so they are
// carried verbatim in both directions.
//
// The rpcvers field is not stored. Parsing requires it to be 2 and
// serialization always writes 2.
type CallBody struct {
	Program   uint32
	Version   uint32
	Procedure uint32

	Credential Auth
	Verifier   Auth

	Payload []byte
}

func (c *CallBody) messageType() uint32 { return MessageTypeCall }

// decodeCallBody reads the call body fields following the message type.
func decodeCallBody(d *xdr.Decoder) (*CallBody, error) {
	rpcVersion, err := d.Uint32()
	if err != nil {
		return nil, fmt.Errorf("rpc version: %w", err)
	}
	if rpcVersion != RPCVersion {
		return nil, &DiscriminantError{Kind: "rpc version", Value: rpcVersion}
	}

	program, err := d.Uint32()
	if err != nil {
		return nil, fmt.Errorf("program: %w", err)
	}

	version, err := d.Uint32()
	if err != nil {
		return nil, fmt.Errorf("program version: %w", err)
	}

	procedure, err := d.Uint32()
	if err != nil {
		return nil, fmt.Errorf("procedure: %w", err)
	}

	credential, err := decodeAuth(d)
	if err != nil {
		return nil, fmt.Errorf("credential: %w", err)
	}

	verifier, err := decodeAuth(d)
	if err != nil {
		return nil, fmt.Errorf("verifier: %w", err)
	}

	return &CallBody{
		Program:    program,
		Version:    version,
		Procedure:  procedure,
		Credential: credential,
		Verifier:   verifier,
		Payload:    d.Rest(),
	}, nil
}

func (c *CallBody) encodedLen() int {
	return 4 + // rpcvers
		4 + 4 + 4 + // program, version, procedure
		c.Credential.encodedLen() +
		c.Verifier.encodedLen() +
		len(c.Payload)
}

func (c *CallBody) encode(e *xdr.Encoder) error {
	if err := e.Uint32(RPCVersion); err != nil {
		return err
	}
	if err := e.Uint32(c.Program); err != nil {
		return err
	}
	if err := e.Uint32(c.Version); err != nil {
		return err
	}
	if err := e.Uint32(c.Procedure); err != nil {
		return err
	}
	if err := c.Credential.encode(e); err != nil {
		return err
	}
	if err := c.Verifier.encode(e); err != nil {
		return err
	}
	// Payload bytes go out as-is: no length prefix and no padding.
	return e.RawBytes(c.Payload)
}
