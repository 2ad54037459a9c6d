package core

import "errors"

var (
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrUpstream           = errors.New("upstream request failed")
	ErrResponseTooLarge   = errors.New("upstream response too large")
	ErrRequestTooLarge    = errors.New("request body too large")
)

// ValidationError describes a malformed client request
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Is makes errors.Is(err, ErrInvalidRequest) hold for validation errors
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRequest
}
