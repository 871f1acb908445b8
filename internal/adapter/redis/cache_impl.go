package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/user/book-classifier/internal/entity"
	"github.com/user/book-classifier/internal/repository"
	"github.com/user/book-classifier/pkg/utils"
)

const resultKeyPrefix = "analysis:"

// CacheRepoImpl provides a concrete implementation for the ResultCache interface using Redis.
type CacheRepoImpl struct {
	client *redis.Client
}

// NewCacheRepo creates a new instance of CacheRepoImpl.
func NewCacheRepo(client *redis.Client) *CacheRepoImpl {
	return &CacheRepoImpl{client: client}
}

// generateKey creates a consistent Redis key for a title by hashing its normalized form.
func (r *CacheRepoImpl) generateKey(title string) string {
	return fmt.Sprintf("%s%s", resultKeyPrefix, utils.HashTitle(title))
}

// Get returns the cached result for title.
func (r *CacheRepoImpl) Get(ctx context.Context, title string) (*entity.BookResult, error) {
	raw, err := r.client.Get(ctx, r.generateKey(title)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var result entity.BookResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode cached result: %w", err)
	}
	return &result, nil
}

// Set stores the result with a TTL so the key expires on its own.
func (r *CacheRepoImpl) Set(ctx context.Context, title string, result *entity.BookResult, expiry time.Duration) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.generateKey(title), raw, expiry).Err()
}

func (r *CacheRepoImpl) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
