package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"storefront/internal/config"
	repo "storefront/internal/repository"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

var _ repo.ResetTokenRepository = (*ResetTokenStore)(nil)

// ResetTokenStore はパスワード再設定トークン -> ユーザーIDをTTL付きで持つ
type ResetTokenStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewResetTokenStore(rdb *redis.Client, ttl time.Duration) *ResetTokenStore {
	return &ResetTokenStore{rdb: rdb, ttl: ttl}
}

func resetKey(token string) string {
	return "pwreset:" + token
}

func (s *ResetTokenStore) Save(ctx context.Context, token string, userID int64) error {
	return s.rdb.Set(ctx, resetKey(token), userID, s.ttl).Err()
}

func (s *ResetTokenStore) Lookup(ctx context.Context, token string) (int64, error) {
	v, err := s.rdb.Get(ctx, resetKey(token)).Result()
	return userIDFromReply(v, err)
}

// GETDELなので同じトークンを取れるのは1回だけ
func (s *ResetTokenStore) Consume(ctx context.Context, token string) (int64, error) {
	v, err := s.rdb.GetDel(ctx, resetKey(token)).Result()
	return userIDFromReply(v, err)
}

func userIDFromReply(v string, err error) (int64, error) {
	if errors.Is(err, redis.Nil) {
		return 0, repo.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("reset token value: %w", err)
	}
	return id, nil
}
