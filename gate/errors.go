package gate

import "errors"

// Sentinel errors returned by Gate.Authorize and Gate.Allow.
var (
	// ErrUnauthenticated means no usable identity claim was presented:
	// the token is missing, malformed, expired, or names an unknown identity.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means the claim is valid but does not carry the required capability.
	ErrForbidden = errors.New("forbidden")
)
