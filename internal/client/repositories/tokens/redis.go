package tokens

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/constructhub/internal/client/models"
	"github.com/dmitrijs2005/constructhub/internal/common"
	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "constructhub:session:"

type redisRepository struct {
	client *redis.Client
	prefix string
}

// NewRedis connects to cfg.Redis and verifies the connection with PING.
func NewRedis(cfg Config) (Repository, error) {
	if cfg.Redis == nil {
		return nil, fmt.Errorf("redis configuration missing")
	}
	if cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("redis address required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := cfg.Redis.Prefix
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &redisRepository{client: client, prefix: prefix}, nil
}

func (r *redisRepository) key(name string) string {
	return r.prefix + name
}

func (r *redisRepository) Load(ctx context.Context) (models.Tokens, error) {
	vals, err := r.client.MGet(ctx, r.key(common.AccessTokenKey), r.key(common.RefreshTokenKey)).Result()
	if err != nil {
		return models.Tokens{}, fmt.Errorf("redis load tokens: %w", err)
	}
	var t models.Tokens
	if s, ok := vals[0].(string); ok {
		t.Access = s
	}
	if s, ok := vals[1].(string); ok {
		t.Refresh = s
	}
	return t, nil
}

func (r *redisRepository) Save(ctx context.Context, t models.Tokens) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(common.AccessTokenKey), t.Access, 0)
		pipe.Set(ctx, r.key(common.RefreshTokenKey), t.Refresh, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save tokens: %w", err)
	}
	return nil
}

func (r *redisRepository) SaveAccess(ctx context.Context, access string) error {
	if err := r.client.Set(ctx, r.key(common.AccessTokenKey), access, 0).Err(); err != nil {
		return fmt.Errorf("redis save access token: %w", err)
	}
	return nil
}

func (r *redisRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key(common.AccessTokenKey), r.key(common.RefreshTokenKey)).Err(); err != nil {
		return fmt.Errorf("redis clear tokens: %w", err)
	}
	return nil
}

func (r *redisRepository) Close() error {
	return r.client.Close()
}
