// Package presence answers whether a user is currently online.
//
// Presence markers are written by the realtime connection layer; this package
// only reads them.
package presence

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dtroode/lobby-server/internal/model"
)

// Internal adapter interface to enable mocking without a real Redis server.
type redisAPI interface {
	Exists(ctx context.Context, keys ...string) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// Wrapper to adapt *redis.Client to redisAPI.
type redisClientWrapper struct{ c *redis.Client }

func (w redisClientWrapper) Exists(ctx context.Context, keys ...string) (int64, error) {
	return w.c.Exists(ctx, keys...).Result()
}

func (w redisClientWrapper) Ping(ctx context.Context) error {
	return w.c.Ping(ctx).Err()
}

func (w redisClientWrapper) Close() error {
	return w.c.Close()
}

var _ model.PresenceChecker = (*Checker)(nil)

// Checker reads presence markers stored under prefix+userID.
type Checker struct {
	api    redisAPI
	prefix string
}

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// NewChecker connects to Redis and verifies the connection.
func NewChecker(ctx context.Context, opts Options) (*Checker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	c := NewCheckerWithAPI(redisClientWrapper{c: client}, opts.Prefix)
	if err := c.Ping(pingCtx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return c, nil
}

// NewCheckerWithAPI allows injecting a mockable API (used in tests).
func NewCheckerWithAPI(api redisAPI, prefix string) *Checker {
	return &Checker{
		api:    api,
		prefix: prefix,
	}
}

func (c *Checker) key(userID string) string {
	return c.prefix + userID
}

// IsOnline reports whether a presence marker exists for the user.
func (c *Checker) IsOnline(ctx context.Context, userID string) (bool, error) {
	n, err := c.api.Exists(ctx, c.key(userID))
	if err != nil {
		return false, fmt.Errorf("failed to check presence: %w", err)
	}
	return n > 0, nil
}

func (c *Checker) Ping(ctx context.Context) error {
	return c.api.Ping(ctx)
}

func (c *Checker) Close() error {
	return c.api.Close()
}
