package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRepository keeps issued session token IDs in Redis so logout can
// revoke a token before it expires. Entries carry the token TTL and vanish
// on their own.
type SessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new instance of SessionRepository.
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func sessionKey(jti string) string {
	return "session:" + jti
}

// Save registers a session ID for the user with the given lifetime.
func (r *SessionRepository) Save(ctx context.Context, jti string, userID int64, ttl time.Duration) error {
	if err := r.client.Set(ctx, sessionKey(jti), strconv.FormatInt(userID, 10), ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Revoke removes a session ID. Revoking an unknown session is a no-op.
func (r *SessionRepository) Revoke(ctx context.Context, jti string) error {
	if err := r.client.Del(ctx, sessionKey(jti)).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// Active reports whether the session ID is still registered.
func (r *SessionRepository) Active(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, sessionKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}
	return n > 0, nil
}
