// Package session tracks the signed-in user for the life of the process. It
// is constructed once in main and passed to whatever needs it; there is no
// package-level singleton.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"quiz-client/internal/backend"
	"quiz-client/internal/credentials"
)

// Session is safe for concurrent use. The unauthorized hook clears it from
// whatever goroutine the failing request ran on (debounced fetches included),
// so reads and writes must not race.
type Session struct {
	creds credentials.Store

	mu    sync.Mutex
	user  *backend.User
	token string
}

func New(creds credentials.Store) *Session {
	return &Session{creds: creds}
}

// Restore rebuilds the session from a previously stored token by asking the
// backend who it belongs to. No stored token is not an error; a rejected
// token is (the client's 401 handling will already have cleared it).
func (s *Session) Restore(ctx context.Context, client *backend.Client) error {
	token, err := s.creds.Token()
	if err != nil || token == "" {
		return err
	}

	user, err := client.UserInfo(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	s.token = token
	return nil
}

func (s *Session) SignedIn(result backend.AuthResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := result.User
	s.user = &user
	s.token = result.Token.AccessToken
}

func (s *Session) SignedOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
}

func (s *Session) User() *backend.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	copied := *s.user
	return &copied
}

func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

func (s *Session) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.user.Role == "admin"
}

// ExpiresAt reads the exp claim from the access token. The parse is
// unverified: the client holds no signing key, and the claim is advisory only
// (the backend remains the authority via 401).
func (s *Session) ExpiresAt() (time.Time, bool) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	expires, err := claims.GetExpirationTime()
	if err != nil || expires == nil {
		return time.Time{}, false
	}
	return expires.Time, true
}

func (s *Session) Expired() bool {
	expires, ok := s.ExpiresAt()
	if !ok {
		return false
	}
	return time.Now().After(expires)
}
