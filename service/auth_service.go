package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/layer-3/tokenasset/core"
	"github.com/layer-3/tokenasset/ports"
)

const (
	loginPath    = "/api/login/"
	registerPath = "/api/register/"

	// DefaultSessionTTL matches the lifetime browsers were used to
	DefaultSessionTTL = 30 * 24 * time.Hour
)

// AuthService handles the session lifecycle on top of the backend's credentials
type AuthService struct {
	tokenizer ports.Tokenizer
	store     ports.Store
	eventPub  ports.EventPublisher
	backend   ports.Backend
	logger    *slog.Logger

	sessionTTL time.Duration
}

// AuthOption configures AuthService
type AuthOption func(*AuthService)

// WithSessionTTL overrides the session lifetime
func WithSessionTTL(ttl time.Duration) AuthOption {
	return func(s *AuthService) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithAuthLogger sets the logger
func WithAuthLogger(logger *slog.Logger) AuthOption {
	return func(s *AuthService) {
		s.logger = logger
	}
}

// NewAuthService creates a new authentication service
func NewAuthService(
	tokenizer ports.Tokenizer,
	store ports.Store,
	eventPub ports.EventPublisher,
	backend ports.Backend,
	opts ...AuthOption,
) *AuthService {
	s := &AuthService{
		tokenizer:  tokenizer,
		store:      store,
		eventPub:   eventPub,
		backend:    backend,
		logger:     slog.Default(),
		sessionTTL: DefaultSessionTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login exchanges credentials with the backend and opens a session
func (s *AuthService) Login(ctx context.Context, creds core.Credentials) (*core.Session, string, error) {
	if creds.Username == "" || creds.Password == "" {
		return nil, "", core.ErrInvalidCredentials
	}

	body, err := json.Marshal(creds)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode credentials: %w", err)
	}

	resp, err := s.backend.Do(ctx, http.MethodPost, loginPath, "", body)
	if err != nil {
		return nil, "", fmt.Errorf("login request failed: %w", err)
	}
	if !resp.OK() {
		return nil, "", core.ErrInvalidCredentials
	}

	var profile core.Profile
	if err := json.Unmarshal(resp.Body, &profile); err != nil || !profile.Valid() {
		return nil, "", core.ErrInvalidCredentials
	}

	now := time.Now()
	session := &core.Session{
		ID:          uuid.New().String(),
		UserID:      profile.ID,
		Username:    profile.Username,
		BearerToken: profile.JWT,
		Address:     profile.Address,
		PublicKey:   profile.PublicKey,
		IssuedAt:    now,
		ExpiresAt:   now.Add(s.sessionTTL),
	}

	// The token travels to the browser, so the backend credential stays here
	if err := s.store.SaveBearerToken(ctx, session.ID, session.BearerToken, s.sessionTTL); err != nil {
		return nil, "", fmt.Errorf("failed to save session: %w", err)
	}

	token, err := s.tokenizer.SessionToToken(session)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create session token: %w", err)
	}

	return session, token, nil
}

// Register creates the account at the backend and logs straight in
func (s *AuthService) Register(ctx context.Context, creds core.Credentials) (*core.Session, string, error) {
	if creds.Username == "" || creds.Password == "" {
		return nil, "", &core.ValidationError{Reason: "username and password are required"}
	}

	body, err := json.Marshal(creds)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode credentials: %w", err)
	}

	resp, err := s.backend.Do(ctx, http.MethodPost, registerPath, "", body)
	if err != nil {
		return nil, "", fmt.Errorf("register request failed: %w", err)
	}
	if !resp.OK() {
		return nil, "", upstreamError(resp)
	}

	return s.Login(ctx, creds)
}

// Logout revokes the session for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, session *core.Session) error {
	remaining := time.Until(session.ExpiresAt)
	if remaining <= 0 {
		return nil
	}

	if err := s.store.RevokeSession(ctx, session.ID, remaining); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	// The revocation is what matters; a lost event only delays other instances
	if err := s.eventPub.PublishLogout(ctx, session); err != nil {
		s.logger.Warn("failed to publish logout event", "session_id", session.ID, "error", err)
	}

	return nil
}

// ValidateToken resolves a session token into a live session
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*core.Session, error) {
	session, err := s.tokenizer.TokenToSession(token)
	if err != nil {
		if errors.Is(err, core.ErrTokenExpired) {
			return nil, core.ErrTokenExpired
		}
		return nil, fmt.Errorf("invalid session token: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		return nil, core.ErrTokenExpired
	}

	revoked, err := s.store.IsSessionRevoked(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check session revocation: %w", err)
	}
	if revoked {
		return nil, core.ErrTokenRevoked
	}

	bearer, ok, err := s.store.BearerToken(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	session.BearerToken = bearer

	return session, nil
}
