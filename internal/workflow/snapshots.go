package workflow

import (
	"context"
	"fmt"

	"github.com/example/kudipay/internal/billing"
	"github.com/example/kudipay/internal/cache"
)

// Snapshots persists per-product form state so an interrupted flow resumes
// where the user left off. Reads are best-effort: a missing or broken
// snapshot just means starting from an empty form.
type Snapshots struct {
	kv *cache.Store
}

// NewSnapshots wraps the snapshot store.
func NewSnapshots(kv *cache.Store) *Snapshots {
	return &Snapshots{kv: kv}
}

func snapshotKey(userID string, t billing.ProductType) string {
	return fmt.Sprintf("form:%s:%s", userID, t)
}

// Save stores the current form state. Validation errors are transient and
// not worth resuming, so they are stripped first.
func (s *Snapshots) Save(ctx context.Context, userID string, form *FormState) {
	saved := *form
	saved.Errors = nil
	s.kv.SetJSON(ctx, snapshotKey(userID, form.Type), &saved, 0)
}

// Load returns the saved form for a product, or nil when none exists.
func (s *Snapshots) Load(ctx context.Context, userID string, t billing.ProductType) *FormState {
	var form FormState
	if !s.kv.GetJSON(ctx, snapshotKey(userID, t), &form) {
		return nil
	}
	return &form
}

// Clear drops the saved form, called on success or explicit cancellation.
func (s *Snapshots) Clear(ctx context.Context, userID string, t billing.ProductType) {
	s.kv.Delete(ctx, snapshotKey(userID, t))
}
