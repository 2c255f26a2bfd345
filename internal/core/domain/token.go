package domain

import "errors"

// Token verification failures. The three are deliberately distinct: an
// expired token must never be reported as a signature failure.
var (
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenMissing          = errors.New("no token provided")
)
