package tokenizer

import "github.com/golang-jwt/jwt/v5"

// SessionClaims combines standard claims with the public session profile.
// The token is readable by the browser; the backend credential stays in the Store.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID    int64  `json:"uid"`
	Address   string `json:"addr,omitempty"`
	PublicKey string `json:"pk,omitempty"`
}
