package shopify

import (
	"context"
	"errors"
	"time"
)

const (
	defaultMarkTTL = 24 * time.Hour

	idempotencyScope = "shopify-webhook"
)

// markStore is the slice of the Redis client the guard needs.
type markStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	IdempotencyKey(scope, id string) string
	Del(ctx context.Context, keys ...string) error
}

// Guard deduplicates webhook deliveries. Shopify retries deliveries that
// time out, so the same X-Shopify-Webhook-Id can arrive more than once.
type Guard struct {
	store markStore
	ttl   time.Duration
}

// NewGuard builds a delivery guard around the given Redis store.
func NewGuard(store markStore, ttl time.Duration) (*Guard, error) {
	if store == nil {
		return nil, errors.New("redis store is required")
	}
	if ttl <= 0 {
		ttl = defaultMarkTTL
	}
	return &Guard{store: store, ttl: ttl}, nil
}

// CheckAndMark returns true when the delivery was already processed and
// otherwise marks it with the configured TTL.
func (g *Guard) CheckAndMark(ctx context.Context, deliveryID string) (bool, error) {
	if deliveryID == "" {
		return false, errors.New("delivery id is required")
	}
	set, err := g.store.SetNX(ctx, g.store.IdempotencyKey(idempotencyScope, deliveryID), "1", g.ttl)
	if err != nil {
		return false, err
	}
	return !set, nil
}

// Delete drops the mark so a failed delivery can be retried.
func (g *Guard) Delete(ctx context.Context, deliveryID string) error {
	if deliveryID == "" {
		return errors.New("delivery id is required")
	}
	return g.store.Del(ctx, g.store.IdempotencyKey(idempotencyScope, deliveryID))
}
