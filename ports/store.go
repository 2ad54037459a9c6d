package ports

import (
	"context"
	"time"
)

// Store keeps server-side session state: the backend bearer token of each
// live session and the revocation list.
type Store interface {
	// SaveBearerToken keeps the backend credential for ttl
	SaveBearerToken(ctx context.Context, sessionID, bearer string, ttl time.Duration) error
	// BearerToken returns the session's credential, or ok=false when it is
	// unknown or has lapsed
	BearerToken(ctx context.Context, sessionID string) (bearer string, ok bool, err error)

	// RevokeSession blocks the session for expiry and forgets its credential
	RevokeSession(ctx context.Context, sessionID string, expiry time.Duration) error
	IsSessionRevoked(ctx context.Context, sessionID string) (bool, error)
}
