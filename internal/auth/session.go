// Package auth holds the token session issued by the hosted identity provider
package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	dnderr "github.com/KirkDiggler/dungeon-saves/internal/errors"
)

// DefaultSessionTTL is how long a stored session is trusted regardless of token expiry
const DefaultSessionTTL = 24 * time.Hour

const amzDateLayout = "20060102T150405Z"

// Tokens is what the identity provider hands back after sign-in
type Tokens struct {
	IDToken     string `json:"idToken"`
	AccessToken string `json:"accessToken"`
}

// SessionConfig configures a Session
type SessionConfig struct {
	TTL time.Duration    // Optional, defaults to DefaultSessionTTL
	Now func() time.Time // Optional, defaults to time.Now
}

// Session is a stored sign-in. It is not safe for concurrent Store calls.
type Session struct {
	tokens  Tokens
	savedAt time.Time
	ttl     time.Duration
	now     func() time.Time
	parser  *jwt.Parser
}

// NewSession creates an empty session
func NewSession(cfg *SessionConfig) *Session {
	s := &Session{
		ttl:    DefaultSessionTTL,
		now:    time.Now,
		parser: jwt.NewParser(),
	}
	if cfg != nil {
		if cfg.TTL > 0 {
			s.ttl = cfg.TTL
		}
		if cfg.Now != nil {
			s.now = cfg.Now
		}
	}
	return s
}

// Store replaces the tokens and restarts the session clock
func (s *Session) Store(tokens Tokens) {
	s.tokens = Tokens{
		IDToken:     strings.TrimSpace(tokens.IDToken),
		AccessToken: strings.TrimSpace(tokens.AccessToken),
	}
	s.savedAt = s.now()
}

// Clear signs the session out
func (s *Session) Clear() {
	s.tokens = Tokens{}
	s.savedAt = time.Time{}
}

// IsAuthenticated reports whether both tokens are present, the access token has not
// expired and the session itself is younger than its TTL
func (s *Session) IsAuthenticated() bool {
	if s.tokens.IDToken == "" || s.tokens.AccessToken == "" {
		return false
	}

	now := s.now()
	if now.Sub(s.savedAt) >= s.ttl {
		return false
	}

	claims, err := s.accessClaims()
	if err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.After(now)
}

// UserID returns the subject of the access token
func (s *Session) UserID() (string, error) {
	if !s.IsAuthenticated() {
		return "", dnderr.Unauthenticated("not signed in")
	}
	claims, err := s.accessClaims()
	if err != nil {
		return "", dnderr.WrapWithCode(err, dnderr.CodeUnauthenticated, "failed to read access token")
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", dnderr.Unauthenticated("access token has no subject")
	}
	return sub, nil
}

// AuthorizationHeaders returns the headers the save API expects on every request
func (s *Session) AuthorizationHeaders() (map[string]string, error) {
	if !s.IsAuthenticated() {
		return nil, dnderr.Unauthenticated("not signed in")
	}
	return map[string]string{
		"Authorization":        s.tokens.IDToken,
		"Content-Type":         "application/json",
		"X-Amz-Date":           s.now().UTC().Format(amzDateLayout),
		"X-Amz-Security-Token": s.tokens.AccessToken,
	}, nil
}

// accessClaims reads the access token without verifying its signature. The
// identity provider verifies it server side.
func (s *Session) accessClaims() (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := s.parser.ParseUnverified(s.tokens.AccessToken, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
