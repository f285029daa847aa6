package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/kudipay/internal/middleware"
	"github.com/example/kudipay/internal/wallet"
)

// WalletHandler serves cached and refreshed balance snapshots.
type WalletHandler struct {
	balances *wallet.Cache
}

// NewWalletHandler constructs a WalletHandler.
func NewWalletHandler(balances *wallet.Cache) *WalletHandler {
	return &WalletHandler{balances: balances}
}

// Balance refreshes from the provider, falling back to the cached snapshot
// when the provider is unreachable. A null balance means unknown, not zero.
func (h *WalletHandler) Balance(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	balance := h.balances.Refresh(c.UserContext(), userID.String(), middleware.GetCurrentBearer(c))

	return c.JSON(fiber.Map{
		"success": true,
		"balance": balance,
	})
}

// CachedBalance returns the last stored snapshot without touching the
// provider, for instant display while a refresh is in flight.
func (h *WalletHandler) CachedBalance(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"balance": h.balances.Load(c.UserContext(), userID.String()),
	})
}
