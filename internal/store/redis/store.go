package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/ldsnotes/internal/store"
)

// DefaultSessionTTL applies when Save is called without a TTL.
const DefaultSessionTTL = 12 * time.Hour

// Store keeps session tokens in Redis. It implements store.TokenStore.
type Store struct {
	client *redis.Client
}

var _ store.TokenStore = (*Store)(nil)

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Save stores the token of a session. A ttl <= 0 uses DefaultSessionTTL.
func (s *Store) Save(ctx context.Context, sessionID, token string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if err := s.client.Set(ctx, SessionKey(sessionID), token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Get returns the token of a session, or store.ErrSessionNotFound.
func (s *Store) Get(ctx context.Context, sessionID string) (string, error) {
	token, err := s.client.Get(ctx, SessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", store.ErrSessionNotFound
		}
		return "", fmt.Errorf("failed to get session: %w", err)
	}
	return token, nil
}

// Delete removes a session. Deleting an unknown session is not an error.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, SessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Count returns the number of live sessions
func (s *Store) Count(ctx context.Context) (int, error) {
	n := 0
	iter := s.client.Scan(ctx, 0, KeyPrefixSession+"*", 100).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return n, nil
}
