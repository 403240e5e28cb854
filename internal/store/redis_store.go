package store

import (
	"context"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "aoba:store:"

// RedisStore keeps documents as redis string values. Used when the
// service runs against a shared redis instead of local sqlite.
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, ctx: context.Background()}
}

func (s *RedisStore) Get(key string) ([]byte, error) {
	val, err := s.client.Get(s.ctx, redisKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (s *RedisStore) Set(key string, value []byte) error {
	return s.client.Set(s.ctx, redisKeyPrefix+key, value, 0).Err()
}

func (s *RedisStore) Delete(key string) error {
	return s.client.Del(s.ctx, redisKeyPrefix+key).Err()
}
