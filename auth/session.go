package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidSession means the token is unknown or was revoked.
	ErrInvalidSession = errors.New("invalid session token")

	// ErrSessionExpired means the token was valid but has expired.
	ErrSessionExpired = errors.New("session expired")
)

// Session is an opaque token tied to a logged-in principal.
type Session struct {
	Token     string
	Username  string
	ExpiresAt time.Time
}

// SessionManager issues and validates session tokens. A token is issued on
// successful authentication and stays valid until its TTL elapses or it is
// revoked on logout.
type SessionManager struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]Session
}

// NewSessionManager creates a session manager with the given token lifetime.
func NewSessionManager(ttl time.Duration) *SessionManager {
	return &SessionManager{ttl: ttl, sessions: make(map[string]Session)}
}

// Issue creates a fresh session for the username.
func (s *SessionManager) Issue(username string) Session {
	sess := Session{
		Token:     uuid.New().String(),
		Username:  username,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token] = sess
	return sess
}

// Validate checks a token and returns its session. Expired tokens are
// removed on the spot.
func (s *SessionManager) Validate(token string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return Session{}, ErrInvalidSession
	}
	if time.Now().After(sess.ExpiresAt) {
		delete(s.sessions, token)
		return Session{}, ErrSessionExpired
	}
	return sess, nil
}

// Revoke invalidates a token, typically on logout.
func (s *SessionManager) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}
