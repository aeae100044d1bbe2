package auth

import "errors"

// Authentication failures. Each verification gate has its own sentinel so
// callers and tests can tell exactly which gate rejected; the handler still
// reports them all with a client-error status. Storage failures are never
// one of these; they come back wrapped and map to a server error.
var (
	ErrInvalidCredentials = errors.New("invalid login request")
	ErrEmailAlreadyExists = errors.New("email is already in use")

	ErrTokenMalformed = errors.New("invalid tokens")
	ErrTokenNotFound  = errors.New("token does not exist")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenUsed      = errors.New("token has been used")
	ErrTokenRevoked   = errors.New("token has been revoked")
	ErrTokenMismatch  = errors.New("token does not match")
)

var authFailures = []error{
	ErrInvalidCredentials,
	ErrEmailAlreadyExists,
	ErrTokenMalformed,
	ErrTokenNotFound,
	ErrTokenExpired,
	ErrTokenUsed,
	ErrTokenRevoked,
	ErrTokenMismatch,
}

// IsAuthFailure reports whether err is a client-attributable authentication
// failure rather than an internal one.
func IsAuthFailure(err error) bool {
	for _, target := range authFailures {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
