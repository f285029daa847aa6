package wallet

import (
	"context"
	"fmt"
	"log"

	"github.com/example/kudipay/internal/cache"
)

// RemoteSource pulls a fresh balance from the billing provider under the
// user's bearer token.
type RemoteSource interface {
	FetchBalance(ctx context.Context, token string) (*Balance, error)
}

// Cache keeps the last known wallet balance per user so screens can show a
// figure while a refresh is in flight, or when the provider is unreachable.
// A nil balance means "unknown", never "zero": callers must not treat it as
// an empty wallet.
type Cache struct {
	store  *cache.Store
	source RemoteSource
}

// NewCache builds a Cache over the snapshot store and remote source.
func NewCache(store *cache.Store, source RemoteSource) *Cache {
	return &Cache{store: store, source: source}
}

func balanceKey(userID string) string {
	return fmt.Sprintf("wallet:balance:%s", userID)
}

// Load returns the cached balance, or nil when none has ever been stored.
func (c *Cache) Load(ctx context.Context, userID string) *Balance {
	var b Balance
	if !c.store.GetJSON(ctx, balanceKey(userID), &b) {
		return nil
	}
	return &b
}

// Store persists a balance snapshot. The provider's figure always wins; no
// client-side arithmetic is applied to it.
func (c *Cache) Store(ctx context.Context, userID string, b *Balance) {
	if b == nil {
		return
	}
	c.store.SetJSON(ctx, balanceKey(userID), b, 0)
}

// Refresh pulls a fresh balance from the provider and persists it. On any
// remote failure it falls back to the cached snapshot, surfacing no error:
// possibly-stale data beats no data on a balance display.
func (c *Cache) Refresh(ctx context.Context, userID, token string) *Balance {
	fresh, err := c.source.FetchBalance(ctx, token)
	if err != nil {
		log.Printf("balance refresh for %s failed: %v", userID, err)
		return c.Load(ctx, userID)
	}

	c.Store(ctx, userID, fresh)
	return fresh
}

// Clear drops the cached snapshot, used on logout.
func (c *Cache) Clear(ctx context.Context, userID string) {
	c.store.Delete(ctx, balanceKey(userID))
}
