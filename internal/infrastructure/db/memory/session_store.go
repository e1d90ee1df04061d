package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"

	"github.com/revature/reimbursement-system/internal/core/domain"
)

// SessionStore keeps sessions in process memory. Sessions do not expire; the
// Redis-backed store is the production choice.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.SessionContext
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domain.SessionContext)}
}

func (s *SessionStore) Establish(_ context.Context, userID int64, username string, role domain.Role) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = domain.SessionContext{
		Token:    token,
		UserID:   userID,
		Username: username,
		Role:     role,
	}
	return token, nil
}

func (s *SessionStore) Current(_ context.Context, token string) (domain.SessionContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return domain.SessionContext{}, nil
	}
	return sess, nil
}

func (s *SessionStore) Invalidate(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *SessionStore) UpdateRole(_ context.Context, token string, role domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil
	}
	sess.Role = role
	s.sessions[token] = sess
	return nil
}

// newToken returns a 32-hex-char opaque session token.
func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
