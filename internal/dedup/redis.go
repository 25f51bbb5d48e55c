package dedup

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const seenKey = "career-scraper:seen-postings"

// RedisStore shares the seen set between machines through one Redis set.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects using a redis:// URL and pings the server.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{client: client, key: seenKey}, nil
}

func (s *RedisStore) IsSeen(ctx context.Context, url string) (bool, error) {
	return s.client.SIsMember(ctx, s.key, url).Result()
}

func (s *RedisStore) Add(ctx context.Context, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	members := make([]interface{}, len(urls))
	for i, u := range urls {
		members[i] = u
	}
	return s.client.SAdd(ctx, s.key, members...).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
