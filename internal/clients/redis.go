package clients

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/utils"
)

// RedisService is a thin cache wrapper. Every caller must tolerate a miss or
// an error and fall back to the database; the cache is never authoritative.
type RedisService struct {
	client *redis.Client
	log    *logger.Logger
}

func NewRedisService(baseLog *logger.Logger) (*RedisService, error) {
	log := baseLog.With("service", "RedisService")

	addr := utils.GetEnv("REDIS_ADDR", "localhost:6379", log)
	password := utils.GetEnv("REDIS_PASSWORD", "", log)
	db := utils.GetEnvAsInt("REDIS_DB", 0, log)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	log.Info("connected to redis", "addr", addr, "db", db)
	return &RedisService{client: client, log: log}, nil
}

func (s *RedisService) Get(ctx context.Context, key string) (string, bool) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn("cache get failed", "key", key, "error", err)
		}
		return "", false
	}
	return val, true
}

func (s *RedisService) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		s.log.Warn("cache set failed", "key", key, "error", err)
	}
}

func (s *RedisService) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		s.log.Warn("cache delete failed", "keys", keys, "error", err)
	}
}

func (s *RedisService) Close() error {
	return s.client.Close()
}
