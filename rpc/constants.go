// Package rpc implements the ONC RPC message envelope defined in
// RFC 5531: call and reply bodies, the authentication flavor union, and
// the accepted/rejected reply state space.
//
// The package is a pure codec. It moves bytes to and from Go values and
// does nothing else: no sockets, no transport framing, no program
// dispatch, no matching of replies to calls. Parse borrows subslices of
// the input buffer for all variable-length fields, so a parsed message
// is only valid while the buffer it came from is.
package rpc

// RPCVersion is the ONC RPC protocol version spoken by this package.
//
// Per RFC 5531 Section 9: rpcvers must be 2. Serialization always writes
// it; parsing rejects anything else with a DiscriminantError.
const RPCVersion uint32 = 2

// ============================================================================
// Message Types
// ============================================================================

// Message types discriminating the body union (RFC 5531 Section 9).
const (
	// MessageTypeCall marks a call body.
	MessageTypeCall uint32 = 0

	// MessageTypeReply marks a reply body.
	MessageTypeReply uint32 = 1
)

// ============================================================================
// Reply Discriminants
// ============================================================================

// Reply status values (RFC 5531 Section 9).
const (
	// ReplyAccepted means the server accepted the call. Acceptance does
	// not imply success: the accept status carries the actual outcome.
	ReplyAccepted uint32 = 0

	// ReplyDenied means the server rejected the call outright.
	ReplyDenied uint32 = 1
)

// Accept status values carried inside an accepted reply
// (RFC 5531 Section 9).
const (
	// AcceptSuccess: the procedure executed; results follow.
	AcceptSuccess uint32 = 0

	// AcceptProgUnavail: the remote has not exported the program.
	AcceptProgUnavail uint32 = 1

	// AcceptProgMismatch: the program version is unsupported; the reply
	// carries the lowest and highest versions the server does support.
	AcceptProgMismatch uint32 = 2

	// AcceptProcUnavail: the program does not define the procedure.
	AcceptProcUnavail uint32 = 3

	// AcceptGarbageArgs: the server could not decode the call arguments.
	AcceptGarbageArgs uint32 = 4

	// AcceptSystemErr: a server-side error unrelated to the arguments,
	// such as memory exhaustion.
	AcceptSystemErr uint32 = 5
)

// Reject status values carried inside a denied reply
// (RFC 5531 Section 9).
const (
	// RejectRPCMismatch: the server does not speak the requested RPC
	// protocol version; the reply carries the supported range.
	RejectRPCMismatch uint32 = 0

	// RejectAuthError: the server refused the caller's credentials.
	RejectAuthError uint32 = 1
)

// ============================================================================
// Authentication
// ============================================================================

// Well-known authentication flavor numbers (RFC 5531 Section 8.2).
// Flavors outside this set are preserved losslessly as AuthOther.
const (
	// AuthFlavorNone: no authentication (AUTH_NONE).
	AuthFlavorNone uint32 = 0

	// AuthFlavorUnix: Unix-style credentials (AUTH_SYS, historically
	// AUTH_UNIX): stamp, machine name, uid, gid, supplementary gids.
	AuthFlavorUnix uint32 = 1

	// AuthFlavorShort: an opaque shorthand token previously issued by
	// the server in an AUTH_SYS verifier (AUTH_SHORT).
	AuthFlavorShort uint32 = 2
)

// AuthStatus is the reason a server gave for refusing credentials,
// carried in a denied reply with RejectAuthError (RFC 5531 Section 9).
type AuthStatus uint32

const (
	// AuthOK: success.
	AuthOK AuthStatus = iota

	// AuthBadCredentials: the credential was corrupted.
	AuthBadCredentials

	// AuthRejectedCredentials: the client must begin a new session.
	AuthRejectedCredentials

	// AuthBadVerifier: the verifier was corrupted.
	AuthBadVerifier

	// AuthRejectedVerifier: the verifier expired or was replayed.
	AuthRejectedVerifier

	// AuthTooWeak: the credential was rejected for security reasons.
	AuthTooWeak

	// AuthInvalidResponse: the client found the response verifier
	// invalid.
	AuthInvalidResponse

	// AuthFailed: failure for an unspecified reason.
	AuthFailed
)
