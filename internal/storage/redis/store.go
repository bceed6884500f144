// Package redis stores credential documents as plain redis string keys.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dtroode/hms-console/internal/model"
)

// redisAPI is the subset of *redis.Client the store uses.
type redisAPI interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

var _ model.Storage = (*Store)(nil)

// Store is a Storage on top of redis. Keys are namespaced by prefix.
type Store struct {
	api    redisAPI
	prefix string
}

// Options configures the redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// NewStore connects to redis and verifies the connection with PING.
func NewStore(ctx context.Context, opts Options) (*Store, *redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	s, err := NewStoreWithAPI(ctx, client, opts.Prefix)
	if err != nil {
		client.Close()
		return nil, nil, err
	}

	return s, client, nil
}

// NewStoreWithAPI allows injecting a fake client (used in tests).
func NewStoreWithAPI(ctx context.Context, api redisAPI, prefix string) (*Store, error) {
	if err := api.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &Store{api: api, prefix: prefix}, nil
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.api.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return data, nil
}

// Put stores value under key without expiration.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := s.api.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete removes key; a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.api.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
