package workflow

import (
	"context"

	"github.com/example/kudipay/internal/wallet"
)

// SessionAccessor is the authenticated session seen by a purchase flow. It is
// passed in at construction rather than read from ambient state, so flows can
// be exercised against a fake session in tests.
type SessionAccessor interface {
	// Token returns the bearer credential for the billing provider, or ""
	// when the user is not signed in.
	Token() string
	// Balance returns the last known wallet balance; nil means unknown.
	Balance(ctx context.Context) *wallet.Balance
	// RefreshBalance pulls a fresh balance, falling back to the cached one.
	RefreshBalance(ctx context.Context) *wallet.Balance
}

// Session is the default SessionAccessor backed by the wallet cache.
type Session struct {
	UserID   string
	Bearer   string
	Balances *wallet.Cache
}

func (s *Session) Token() string {
	return s.Bearer
}

func (s *Session) Balance(ctx context.Context) *wallet.Balance {
	return s.Balances.Load(ctx, s.UserID)
}

func (s *Session) RefreshBalance(ctx context.Context) *wallet.Balance {
	return s.Balances.Refresh(ctx, s.UserID, s.Bearer)
}
