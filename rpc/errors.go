package rpc

import "fmt"

// DiscriminantError reports a union discriminant outside its closed set:
// an unknown message type, reply status, accept status, reject status,
// or an unsupported RPC protocol version. Kind names the field and Value
// carries the raw wire value, so callers can log or branch on exactly
// what was seen.
type DiscriminantError struct {
	Kind  string
	Value uint32
}

func (e *DiscriminantError) Error() string {
	return fmt.Sprintf("invalid rpc %s %d", e.Kind, e.Value)
}

// AuthStatusError reports an auth status code outside the range defined
// by RFC 5531 (0 through 7). The raw value is preserved.
type AuthStatusError struct {
	Value uint32
}

func (e *AuthStatusError) Error() string {
	return fmt.Sprintf("invalid rpc auth status %d", e.Value)
}
