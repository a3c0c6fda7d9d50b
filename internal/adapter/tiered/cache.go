// Package tiered implements a two-level (L1 + L2) cache adapter.
package tiered

import (
	"context"
	"log/slog"
	"time"

	"github.com/seatwise/seatwise/internal/port/cache"
)

// Cache combines an in-process L1 with a remote L2. Get checks L1 first,
// then L2, backfilling L1 on an L2 hit. L2 failures on reads degrade to a
// miss so a remote outage never takes down callers that can recompute.
type Cache struct {
	l1          cache.Cache
	l2          cache.Cache
	backfillTTL time.Duration
}

// New creates a tiered cache. backfillTTL controls how long entries
// backfilled from L2 live in L1.
func New(l1, l2 cache.Cache, backfillTTL time.Duration) *Cache {
	return &Cache{l1: l1, l2: l2, backfillTTL: backfillTTL}
}

func (c *Cache) Get(ctx context.Context, key string) (data []byte, ok bool, err error) {
	val, found, err := c.l1.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if found {
		return val, true, nil
	}

	val, found, err = c.l2.Get(ctx, key)
	if err != nil {
		slog.Warn("tiered cache: remote get failed", "key", key, "error", err)
		return nil, false, nil
	}
	if !found {
		return nil, false, nil
	}

	_ = c.l1.Set(ctx, key, val, c.backfillTTL)
	return val, true, nil
}

// Set writes to both levels. An L2 write failure is reported so callers can
// decide whether a shared-cache miss matters.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.l1.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	return c.l2.Set(ctx, key, value, ttl)
}

// Delete removes from both levels.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.l1.Delete(ctx, key); err != nil {
		return err
	}
	return c.l2.Delete(ctx, key)
}
