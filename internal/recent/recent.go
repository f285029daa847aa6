// Package recent maintains per-product most-recently-used recipient lists.
package recent

import (
	"context"
	"fmt"
	"time"

	"github.com/example/kudipay/internal/cache"
)

// DefaultCap bounds every recipient list; education e-PIN purchases keep a
// shorter history since they are mostly one-off.
const (
	DefaultCap   = 10
	EducationCap = 5
)

// Entry is one remembered recipient.
type Entry struct {
	Identifier      string `json:"identifier"`
	Label           string `json:"label,omitempty"`
	TimestampMillis int64  `json:"timestamp_millis"`
}

// Store persists recipient lists, newest first, deduplicated by identifier.
type Store struct {
	kv *cache.Store
}

// NewStore wraps the snapshot store.
func NewStore(kv *cache.Store) *Store {
	return &Store{kv: kv}
}

func listKey(userID, productType string) string {
	return fmt.Sprintf("recent:%s:%s", userID, productType)
}

// List returns the remembered recipients for a product, most recent first.
// An empty list is returned when nothing has been stored.
func (s *Store) List(ctx context.Context, userID, productType string) []Entry {
	var entries []Entry
	if !s.kv.GetJSON(ctx, listKey(userID, productType), &entries) {
		return nil
	}
	return entries
}

// Add remembers a recipient at the head of the product's list. An existing
// entry with the same identifier is moved to the head rather than duplicated,
// and the oldest entry is evicted once the list exceeds limit.
func (s *Store) Add(ctx context.Context, userID, productType, identifier, label string, limit int) {
	if identifier == "" {
		return
	}
	if limit <= 0 {
		limit = DefaultCap
	}

	existing := s.List(ctx, userID, productType)

	entries := make([]Entry, 0, len(existing)+1)
	entries = append(entries, Entry{
		Identifier:      identifier,
		Label:           label,
		TimestampMillis: time.Now().UnixMilli(),
	})

	for _, e := range existing {
		if e.Identifier == identifier {
			continue
		}
		entries = append(entries, e)
	}

	if len(entries) > limit {
		entries = entries[:limit]
	}

	s.kv.SetJSON(ctx, listKey(userID, productType), entries, 0)
}

// Clear drops a product's recipient list.
func (s *Store) Clear(ctx context.Context, userID, productType string) {
	s.kv.Delete(ctx, listKey(userID, productType))
}
