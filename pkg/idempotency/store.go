package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store remembers message tokens in Redis for ttl so a redelivered message can be recognised.
type Store struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	prefix string
}

func NewStore(rdb redis.Cmdable, ttl time.Duration, prefix string) *Store {
	return &Store{rdb: rdb, ttl: ttl, prefix: prefix}
}

func (s *Store) Key(token string) string {
	return fmt.Sprintf("idem:%s:%s", s.prefix, token)
}

// Seen claims token and reports whether it had already been claimed.
func (s *Store) Seen(ctx context.Context, token string) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, s.Key(token), "1", s.ttl).Result()
	if err != nil {
		return false, err
	}

	return !ok, nil
}

// Forget releases a claim so the next delivery of token is processed again.
func (s *Store) Forget(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, s.Key(token)).Err()
}
