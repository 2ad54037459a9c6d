package store

import (
	"context"
	"sync"
	"time"

	"github.com/layer-3/tokenasset/ports"
)

type bearerEntry struct {
	token string
	until time.Time
}

// MemoryStore keeps session state in process. Used when no Redis is
// configured, so sessions end with the process and a logout is only seen
// by this instance.
type MemoryStore struct {
	bearers map[string]bearerEntry
	revoked map[string]time.Time
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() ports.Store {
	return &MemoryStore{
		bearers: make(map[string]bearerEntry),
		revoked: make(map[string]time.Time),
	}
}

// SaveBearerToken keeps the backend credential until ttl elapses
func (s *MemoryStore) SaveBearerToken(ctx context.Context, sessionID, bearer string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.bearers[sessionID] = bearerEntry{token: bearer, until: now.Add(ttl)}
	s.sweep(now)
	return nil
}

// BearerToken returns the credential saved for the session
func (s *MemoryStore) BearerToken(ctx context.Context, sessionID string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.bearers[sessionID]
	if !exists || time.Now().After(entry.until) {
		return "", false, nil
	}
	return entry.token, true, nil
}

// RevokeSession marks a session as revoked until expiry elapses
func (s *MemoryStore) RevokeSession(ctx context.Context, sessionID string, expiry time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.bearers, sessionID)
	if expiry <= 0 {
		return nil
	}

	now := time.Now()
	s.revoked[sessionID] = now.Add(expiry)
	s.sweep(now)
	return nil
}

// IsSessionRevoked checks if a session is revoked
func (s *MemoryStore) IsSessionRevoked(ctx context.Context, sessionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	until, exists := s.revoked[sessionID]
	if !exists {
		return false, nil
	}

	return !time.Now().After(until), nil
}

// sweep drops entries whose session would have expired anyway. Callers hold mu.
func (s *MemoryStore) sweep(now time.Time) {
	for id, until := range s.revoked {
		if now.After(until) {
			delete(s.revoked, id)
		}
	}
	for id, entry := range s.bearers {
		if now.After(entry.until) {
			delete(s.bearers, id)
		}
	}
}
