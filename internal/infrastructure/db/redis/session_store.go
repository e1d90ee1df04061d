package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/revature/reimbursement-system/internal/core/domain"
)

const defaultSessionTTL = 24 * time.Hour

// SessionStore keeps sessions in Redis under session:<token> with a TTL.
// Because the session record is server-side, invalidation and in-place role
// refresh take effect on the very next request.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore. ttl <= 0 falls back to 24h.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

type sessionRecord struct {
	UserID   int64       `json:"user_id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

func (s *SessionStore) Establish(ctx context.Context, userID int64, username string, role domain.Role) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session token: %w", err)
	}
	token := hex.EncodeToString(b)

	payload, err := json.Marshal(sessionRecord{UserID: userID, Username: username, Role: role})
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(token), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Current resolves a token. Unknown or expired tokens yield the anonymous
// context with no error; only transport failures are reported.
func (s *SessionStore) Current(ctx context.Context, token string) (domain.SessionContext, error) {
	payload, err := s.client.Get(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.SessionContext{}, nil
	}
	if err != nil {
		return domain.SessionContext{}, fmt.Errorf("load session: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return domain.SessionContext{}, fmt.Errorf("decode session: %w", err)
	}
	return domain.SessionContext{
		Token:    token,
		UserID:   rec.UserID,
		Username: rec.Username,
		Role:     rec.Role,
	}, nil
}

func (s *SessionStore) Invalidate(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("invalidate session: %w", err)
	}
	return nil
}

// UpdateRole rewrites the session record with the new role, keeping the
// remaining TTL. A vanished session is a no-op.
func (s *SessionStore) UpdateRole(ctx context.Context, token string, role domain.Role) error {
	payload, err := s.client.Get(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return fmt.Errorf("decode session: %w", err)
	}
	rec.Role = role

	updated, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(token), updated, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(token string) string {
	return "session:" + token
}
