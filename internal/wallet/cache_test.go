package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/example/kudipay/internal/cache"
)

type fakeSource struct {
	balance *Balance
	err     error
	calls   int
}

func (f *fakeSource) FetchBalance(ctx context.Context, token string) (*Balance, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.balance, nil
}

func newTestStore(t *testing.T) *cache.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	return cache.NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestLoadWithoutSnapshotIsNil(t *testing.T) {
	c := NewCache(newTestStore(t), &fakeSource{})

	if b := c.Load(context.Background(), "u1"); b != nil {
		t.Fatalf("Load with empty cache = %+v, want nil", b)
	}
}

func TestRefreshStoresFreshBalance(t *testing.T) {
	source := &fakeSource{balance: &Balance{Total: 5000, Main: 5000, Currency: "NGN"}}
	c := NewCache(newTestStore(t), source)
	ctx := context.Background()

	got := c.Refresh(ctx, "u1", "token")
	if got == nil || got.Total != 5000 {
		t.Fatalf("Refresh = %+v, want total 5000", got)
	}

	cached := c.Load(ctx, "u1")
	if cached == nil || cached.Total != 5000 {
		t.Fatalf("Load after refresh = %+v, want total 5000", cached)
	}
}

func TestRefreshFallsBackToCachedOnFailure(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	healthy := &fakeSource{balance: &Balance{Total: 5000, Currency: "NGN"}}
	c := NewCache(store, healthy)
	c.Refresh(ctx, "u1", "token")

	broken := NewCache(store, &fakeSource{err: errors.New("upstream down")})
	got := broken.Refresh(ctx, "u1", "token")
	if got == nil {
		t.Fatal("Refresh on failure = nil, want previously cached balance")
	}
	if got.Total != 5000 {
		t.Errorf("Refresh on failure total = %d, want unchanged 5000", got.Total)
	}
}

func TestStoreOverwritesWithServerValue(t *testing.T) {
	store := newTestStore(t)
	c := NewCache(store, &fakeSource{})
	ctx := context.Background()

	c.Store(ctx, "u1", &Balance{Total: 5000})
	c.Store(ctx, "u1", &Balance{Total: 4500})

	if got := c.Load(ctx, "u1"); got == nil || got.Total != 4500 {
		t.Fatalf("Load = %+v, want server value 4500", got)
	}
}

func TestClear(t *testing.T) {
	c := NewCache(newTestStore(t), &fakeSource{})
	ctx := context.Background()

	c.Store(ctx, "u1", &Balance{Total: 100})
	c.Clear(ctx, "u1")

	if got := c.Load(ctx, "u1"); got != nil {
		t.Fatalf("Load after clear = %+v, want nil", got)
	}
}
