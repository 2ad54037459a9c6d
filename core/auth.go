package core

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Credentials are the username/password pair exchanged with the backend
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Profile is what the backend returns on a successful login
type Profile struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	JWT       string `json:"jwt"`
	Address   string `json:"address,omitempty"`
	PublicKey string `json:"public_key,omitempty"`
}

// UnmarshalJSON accepts the user ID as a number or a numeric string
func (p *Profile) UnmarshalJSON(data []byte) error {
	type alias Profile
	var raw struct {
		alias
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Profile(raw.alias)

	id := strings.Trim(string(raw.ID), `"`)
	if id == "" || id == "null" {
		return nil
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return err
	}
	p.ID = n
	return nil
}

// Valid reports whether the backend returned enough to open a session.
// The ID keys the activity journal, so a profile without one is rejected.
func (p *Profile) Valid() bool {
	return p.ID > 0 && p.Username != "" && p.JWT != ""
}

// Session represents an authenticated browser session
type Session struct {
	ID          string    // Unique session identifier
	UserID      int64     // Backend user ID
	Username    string    // Backend username
	BearerToken string    // Credential attached to every backend call, loaded from the Store
	Address     string    // XRPL wallet address, if the backend returned one
	PublicKey   string    // Wallet public key, if the backend returned one
	IssuedAt    time.Time // When the session was created
	ExpiresAt   time.Time // When the session expires
}

// User is the public view of a session
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Address   string `json:"address,omitempty"`
	PublicKey string `json:"public_key,omitempty"`
}

// User strips the bearer token from the session
func (s *Session) User() User {
	return User{
		ID:        s.UserID,
		Username:  s.Username,
		Address:   s.Address,
		PublicKey: s.PublicKey,
	}
}

// Identity returns the fields offer partitioning matches on
func (s *Session) Identity() Identity {
	return Identity{Username: s.Username, Address: s.Address}
}
