package tokenizer

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/layer-3/tokenasset/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession(expiresIn time.Duration) *core.Session {
	now := time.Now().Truncate(time.Second)
	return &core.Session{
		ID:          "sess-1",
		UserID:      42,
		Username:    "alice",
		BearerToken: "backend-jwt",
		Address:     "rAlice",
		PublicKey:   "ED00",
		IssuedAt:    now,
		ExpiresAt:   now.Add(expiresIn),
	}
}

func TestJWTTokenizer_RoundTrip(t *testing.T) {
	tk := NewJWTTokenizer([]byte("secret"))
	session := testSession(time.Hour)

	token, err := tk.SessionToToken(session)
	require.NoError(t, err)

	got, err := tk.TokenToSession(token)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, session.UserID, got.UserID)
	assert.Equal(t, session.Username, got.Username)
	assert.Empty(t, got.BearerToken)
	assert.Equal(t, session.Address, got.Address)
	assert.Equal(t, session.PublicKey, got.PublicKey)
	assert.True(t, session.ExpiresAt.Equal(got.ExpiresAt))
}

func TestJWTTokenizer_Expired(t *testing.T) {
	tk := NewJWTTokenizer([]byte("secret"))

	token, err := tk.SessionToToken(testSession(-time.Minute))
	require.NoError(t, err)

	_, err = tk.TokenToSession(token)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestJWTTokenizer_WrongSecret(t *testing.T) {
	token, err := NewJWTTokenizer([]byte("secret")).SessionToToken(testSession(time.Hour))
	require.NoError(t, err)

	_, err = NewJWTTokenizer([]byte("other")).TokenToSession(token)
	assert.ErrorIs(t, err, core.ErrInvalidToken)
}

func TestJWTTokenizer_Garbage(t *testing.T) {
	_, err := NewJWTTokenizer([]byte("secret")).TokenToSession("not.a.token")
	assert.ErrorIs(t, err, core.ErrInvalidToken)
}

func TestJWTTokenizer_OmitsBearer(t *testing.T) {
	token, err := NewJWTTokenizer([]byte("secret")).SessionToToken(testSession(time.Hour))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"sub":"alice"`)
	assert.NotContains(t, string(payload), "backend-jwt")
}
