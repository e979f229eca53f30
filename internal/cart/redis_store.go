package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pkgredis "github.com/macroplate/macroplate-backend/pkg/redis"
)

type redisAPI interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(token string) string
}

// RedisStore keeps carts in redis as JSON blobs with a sliding TTL.
type RedisStore struct {
	client redisAPI
	ttl    time.Duration
}

// NewRedisStore builds a redis-backed cart store. The pkg/redis Client
// satisfies the client interface in production.
func NewRedisStore(client redisAPI, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cart ttl must be positive")
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

// Get loads the cart for the token. A missing key yields an empty cart.
func (s *RedisStore) Get(ctx context.Context, token string) (*Cart, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(token))
	if err != nil {
		if errors.Is(err, pkgredis.Nil) {
			return &Cart{}, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		// A corrupt blob would otherwise wedge the cart forever. Start fresh.
		return &Cart{}, nil
	}
	return &cart, nil
}

// Save writes the cart back and refreshes the TTL. Saving an empty cart
// deletes the key instead.
func (s *RedisStore) Save(ctx context.Context, token string, cart *Cart) error {
	if cart == nil || cart.IsEmpty() {
		return s.Clear(ctx, token)
	}
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.client.Set(ctx, s.client.CartKey(token), raw, s.ttl); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Clear removes the cart key.
func (s *RedisStore) Clear(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.client.CartKey(token)); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
