// Package resetcode stores password-reset codes in Redis. Codes expire on
// their own via TTL, keeping the token design stateless on the session side.
package resetcode

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/milkwise/mother-care-service/internal/config"
	"github.com/milkwise/mother-care-service/internal/core/domain"
	"github.com/milkwise/mother-care-service/internal/core/ports"
)

const keyPrefix = "resetcode:"

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	cb     *gobreaker.CircuitBreaker
}

var _ ports.ResetCodeStore = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisStore{
		client: client,
		ttl:    ttl,
		cb:     config.NewCircuitBreaker("Redis-ResetCodes"),
	}
}

func (s *RedisStore) Save(ctx context.Context, code string, motherID int64) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.Set(ctx, keyPrefix+code, motherID, s.ttl).Err()
	})
	return err
}

func (s *RedisStore) Lookup(ctx context.Context, code string) (int64, error) {
	res, err := s.cb.Execute(func() (interface{}, error) {
		return s.client.Get(ctx, keyPrefix+code).Result()
	})
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	id, err := strconv.ParseInt(res.(string), 10, 64)
	if err != nil {
		return 0, domain.ErrNotFound
	}
	return id, nil
}
