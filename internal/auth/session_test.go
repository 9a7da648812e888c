package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dungeon-saves/internal/auth"
	dnderr "github.com/KirkDiggler/dungeon-saves/internal/errors"
)

var signingKey = []byte("test-signing-key")

func signToken(t *testing.T, subject string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(expiresAt.Add(-time.Hour)),
	})
	signed, err := token.SignedString(signingKey)
	require.NoError(t, err)
	return signed
}

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func newSession(c *clock) *auth.Session {
	return auth.NewSession(&auth.SessionConfig{Now: c.Now})
}

func TestSession_IsAuthenticated(t *testing.T) {
	start := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		tokens func(t *testing.T) auth.Tokens
		after  time.Duration
		want   bool
	}{
		{
			name: "fresh tokens",
			tokens: func(t *testing.T) auth.Tokens {
				return auth.Tokens{IDToken: "id-token", AccessToken: signToken(t, "user-1", start.Add(time.Hour))}
			},
			want: true,
		},
		{
			name: "access token expired",
			tokens: func(t *testing.T) auth.Tokens {
				return auth.Tokens{IDToken: "id-token", AccessToken: signToken(t, "user-1", start.Add(time.Hour))}
			},
			after: time.Hour,
			want:  false,
		},
		{
			name: "session older than a day",
			tokens: func(t *testing.T) auth.Tokens {
				return auth.Tokens{IDToken: "id-token", AccessToken: signToken(t, "user-1", start.Add(48*time.Hour))}
			},
			after: 24 * time.Hour,
			want:  false,
		},
		{
			name: "missing id token",
			tokens: func(t *testing.T) auth.Tokens {
				return auth.Tokens{AccessToken: signToken(t, "user-1", start.Add(time.Hour))}
			},
			want: false,
		},
		{
			name: "malformed access token",
			tokens: func(t *testing.T) auth.Tokens {
				return auth.Tokens{IDToken: "id-token", AccessToken: "not-a-jwt"}
			},
			want: false,
		},
		{
			name: "access token without exp",
			tokens: func(t *testing.T) auth.Tokens {
				token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user-1"})
				signed, err := token.SignedString(signingKey)
				require.NoError(t, err)
				return auth.Tokens{IDToken: "id-token", AccessToken: signed}
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &clock{now: start}
			session := newSession(c)
			session.Store(tt.tokens(t))

			c.now = start.Add(tt.after)
			assert.Equal(t, tt.want, session.IsAuthenticated())
		})
	}
}

func TestSession_EmptyIsNotAuthenticated(t *testing.T) {
	session := auth.NewSession(nil)
	assert.False(t, session.IsAuthenticated())

	_, err := session.UserID()
	assert.True(t, dnderr.IsUnauthenticated(err))
}

func TestSession_CustomTTL(t *testing.T) {
	start := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	c := &clock{now: start}
	session := auth.NewSession(&auth.SessionConfig{TTL: time.Minute, Now: c.Now})
	session.Store(auth.Tokens{IDToken: "id-token", AccessToken: signToken(t, "user-1", start.Add(time.Hour))})

	c.now = start.Add(59 * time.Second)
	assert.True(t, session.IsAuthenticated())

	c.now = start.Add(time.Minute)
	assert.False(t, session.IsAuthenticated())
}

func TestSession_AuthorizationHeaders(t *testing.T) {
	start := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	c := &clock{now: start}
	session := newSession(c)
	access := signToken(t, "user-1", start.Add(time.Hour))
	session.Store(auth.Tokens{IDToken: " id-token ", AccessToken: access})

	c.now = start.Add(90 * time.Second)
	headers, err := session.AuthorizationHeaders()
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"Authorization":        "id-token",
		"Content-Type":         "application/json",
		"X-Amz-Date":           "20260102T100130Z",
		"X-Amz-Security-Token": access,
	}, headers)
}

func TestSession_AuthorizationHeadersRequireSignIn(t *testing.T) {
	start := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	c := &clock{now: start}
	session := newSession(c)
	session.Store(auth.Tokens{IDToken: "id-token", AccessToken: signToken(t, "user-1", start.Add(time.Hour))})
	session.Clear()

	headers, err := session.AuthorizationHeaders()
	assert.Nil(t, headers)
	assert.True(t, dnderr.IsUnauthenticated(err))
}

func TestSession_UserID(t *testing.T) {
	start := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	c := &clock{now: start}
	session := newSession(c)
	session.Store(auth.Tokens{IDToken: "id-token", AccessToken: signToken(t, "user-42", start.Add(time.Hour))})

	userID, err := session.UserID()
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}
