package rpc

import (
	"fmt"

	"github.com/marmos91/oncrpc/xdr"
)

// ============================================================================
// Reply Body
// ============================================================================

// ReplyBody is the body of an RPC reply message (RFC 5531 Section 9).
// Stat is either an *AcceptedReply or a *RejectedReply.
type ReplyBody struct {
	Stat ReplyStat
}

// ReplyStat is the reply_stat union: accepted or denied.
type ReplyStat interface {
	replyStat() uint32
	encodedLen() int
	encode(e *xdr.Encoder) error
}

// AcceptedReply is a reply whose call was accepted by the server. The
// Status carries the actual outcome; acceptance alone says nothing about
// success.
type AcceptedReply struct {
	Verifier Auth
	Status   AcceptedStatus
}

// AcceptedStatus is the accept_stat union inside an accepted reply. The
// concrete types are Success, ProgramUnavailable, ProgramMismatch,
// ProcedureUnavailable, GarbageArgs and SystemError.
type AcceptedStatus interface {
	acceptStat() uint32
	encodedLen() int
	encode(e *xdr.Encoder) error
}

// Success carries the procedure results as opaque bytes: everything after
// the accept status, undecoded, borrowed from the parse buffer.
type Success struct {
	Results []byte
}

// ProgramUnavailable: the server has not exported the requested program.
type ProgramUnavailable struct{}

// ProgramMismatch: the requested program version is unsupported. Low and
// High are the versions the server does support.
type ProgramMismatch struct {
	Low  uint32
	High uint32
}

// ProcedureUnavailable: the program does not define the procedure.
type ProcedureUnavailable struct{}

// GarbageArgs: the server could not decode the call arguments.
type GarbageArgs struct{}

// SystemError: a server-side failure unrelated to the call itself.
type SystemError struct{}

// RejectedReply is a reply whose call was denied. Stat says why: either
// an RPC protocol version mismatch or an authentication failure.
type RejectedReply struct {
	Stat RejectedStat
}

// RejectedStat is the reject_stat union inside a denied reply. The
// concrete types are RPCMismatch and AuthError.
type RejectedStat interface {
	rejectStat() uint32
	encodedLen() int
	encode(e *xdr.Encoder) error
}

// RPCMismatch: the server does not speak the requested RPC protocol
// version. Low and High are the versions it does speak.
type RPCMismatch struct {
	Low  uint32
	High uint32
}

// AuthError: the server refused the caller's credentials.
type AuthError struct {
	Status AuthStatus
}

func (r *ReplyBody) messageType() uint32 { return MessageTypeReply }

func (r *AcceptedReply) replyStat() uint32 { return ReplyAccepted }
func (r *RejectedReply) replyStat() uint32 { return ReplyDenied }

func (s *Success) acceptStat() uint32              { return AcceptSuccess }
func (s *ProgramUnavailable) acceptStat() uint32   { return AcceptProgUnavail }
func (s *ProgramMismatch) acceptStat() uint32      { return AcceptProgMismatch }
func (s *ProcedureUnavailable) acceptStat() uint32 { return AcceptProcUnavail }
func (s *GarbageArgs) acceptStat() uint32          { return AcceptGarbageArgs }
func (s *SystemError) acceptStat() uint32          { return AcceptSystemErr }

func (s *RPCMismatch) rejectStat() uint32 { return RejectRPCMismatch }
func (s *AuthError) rejectStat() uint32   { return RejectAuthError }

// ============================================================================
// Decoding
// ============================================================================

// decodeReplyBody reads the reply body fields following the message type.
func decodeReplyBody(d *xdr.Decoder) (*ReplyBody, error) {
	stat, err := d.Uint32()
	if err != nil {
		return nil, fmt.Errorf("reply status: %w", err)
	}

	switch stat {
	case ReplyAccepted:
		accepted, err := decodeAcceptedReply(d)
		if err != nil {
			return nil, err
		}
		return &ReplyBody{Stat: accepted}, nil

	case ReplyDenied:
		rejected, err := decodeRejectedReply(d)
		if err != nil {
			return nil, err
		}
		return &ReplyBody{Stat: rejected}, nil

	default:
		return nil, &DiscriminantError{Kind: "reply status", Value: stat}
	}
}

func decodeAcceptedReply(d *xdr.Decoder) (*AcceptedReply, error) {
	verifier, err := decodeAuth(d)
	if err != nil {
		return nil, fmt.Errorf("reply verifier: %w", err)
	}

	stat, err := d.Uint32()
	if err != nil {
		return nil, fmt.Errorf("accept status: %w", err)
	}

	var status AcceptedStatus
	switch stat {
	case AcceptSuccess:
		status = &Success{Results: d.Rest()}
	case AcceptProgUnavail:
		status = &ProgramUnavailable{}
	case AcceptProgMismatch:
		low, high, err := decodeMismatchInfo(d)
		if err != nil {
			return nil, fmt.Errorf("program mismatch info: %w", err)
		}
		status = &ProgramMismatch{Low: low, High: high}
	case AcceptProcUnavail:
		status = &ProcedureUnavailable{}
	case AcceptGarbageArgs:
		status = &GarbageArgs{}
	case AcceptSystemErr:
		status = &SystemError{}
	default:
		return nil, &DiscriminantError{Kind: "accept status", Value: stat}
	}

	return &AcceptedReply{Verifier: verifier, Status: status}, nil
}

func decodeRejectedReply(d *xdr.Decoder) (*RejectedReply, error) {
	stat, err := d.Uint32()
	if err != nil {
		return nil, fmt.Errorf("reject status: %w", err)
	}

	switch stat {
	case RejectRPCMismatch:
		low, high, err := decodeMismatchInfo(d)
		if err != nil {
			return nil, fmt.Errorf("rpc mismatch info: %w", err)
		}
		return &RejectedReply{Stat: &RPCMismatch{Low: low, High: high}}, nil

	case RejectAuthError:
		code, err := d.Uint32()
		if err != nil {
			return nil, fmt.Errorf("auth status: %w", err)
		}
		if code > uint32(AuthFailed) {
			return nil, &AuthStatusError{Value: code}
		}
		return &RejectedReply{Stat: &AuthError{Status: AuthStatus(code)}}, nil

	default:
		return nil, &DiscriminantError{Kind: "reject status", Value: stat}
	}
}

func decodeMismatchInfo(d *xdr.Decoder) (low, high uint32, err error) {
	low, err = d.Uint32()
	if err != nil {
		return 0, 0, err
	}
	high, err = d.Uint32()
	if err != nil {
		return 0, 0, err
	}
	return low, high, nil
}

// ============================================================================
// Encoding
// ============================================================================

func (r *ReplyBody) encodedLen() int {
	return 4 + r.Stat.encodedLen()
}

func (r *ReplyBody) encode(e *xdr.Encoder) error {
	if err := e.Uint32(r.Stat.replyStat()); err != nil {
		return err
	}
	return r.Stat.encode(e)
}

func (r *AcceptedReply) encodedLen() int {
	return r.Verifier.encodedLen() + 4 + r.Status.encodedLen()
}

func (r *AcceptedReply) encode(e *xdr.Encoder) error {
	if err := r.Verifier.encode(e); err != nil {
		return err
	}
	if err := e.Uint32(r.Status.acceptStat()); err != nil {
		return err
	}
	return r.Status.encode(e)
}

func (s *Success) encodedLen() int { return len(s.Results) }

func (s *Success) encode(e *xdr.Encoder) error {
	// Result bytes go out as-is, same convention as the call payload.
	return e.RawBytes(s.Results)
}

func (s *ProgramUnavailable) encodedLen() int            { return 0 }
func (s *ProgramUnavailable) encode(e *xdr.Encoder) error { return nil }

func (s *ProgramMismatch) encodedLen() int { return 8 }

func (s *ProgramMismatch) encode(e *xdr.Encoder) error {
	if err := e.Uint32(s.Low); err != nil {
		return err
	}
	return e.Uint32(s.High)
}

func (s *ProcedureUnavailable) encodedLen() int            { return 0 }
func (s *ProcedureUnavailable) encode(e *xdr.Encoder) error { return nil }

func (s *GarbageArgs) encodedLen() int            { return 0 }
func (s *GarbageArgs) encode(e *xdr.Encoder) error { return nil }

func (s *SystemError) encodedLen() int            { return 0 }
func (s *SystemError) encode(e *xdr.Encoder) error { return nil }

func (r *RejectedReply) encodedLen() int {
	return 4 + r.Stat.encodedLen()
}

func (r *RejectedReply) encode(e *xdr.Encoder) error {
	if err := e.Uint32(r.Stat.rejectStat()); err != nil {
		return err
	}
	return r.Stat.encode(e)
}

func (s *RPCMismatch) encodedLen() int { return 8 }

func (s *RPCMismatch) encode(e *xdr.Encoder) error {
	if err := e.Uint32(s.Low); err != nil {
		return err
	}
	return e.Uint32(s.High)
}

func (s *AuthError) encodedLen() int { return 4 }

func (s *AuthError) encode(e *xdr.Encoder) error {
	return e.Uint32(uint32(s.Status))
}
