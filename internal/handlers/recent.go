package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/kudipay/internal/billing"
	"github.com/example/kudipay/internal/middleware"
	"github.com/example/kudipay/internal/recent"
	"github.com/example/kudipay/internal/workflow"
)

// RecentHandler serves the per-product recent-recipient lists.
type RecentHandler struct {
	recents *recent.Store
}

// NewRecentHandler constructs a RecentHandler.
func NewRecentHandler(recents *recent.Store) *RecentHandler {
	return &RecentHandler{recents: recents}
}

func productParam(c *fiber.Ctx) (billing.ProductType, error) {
	t := billing.ProductType(c.Params("type"))
	if _, ok := workflow.Product(t); !ok {
		return "", fiber.NewError(fiber.StatusBadRequest, "unknown product type")
	}
	return t, nil
}

// List returns remembered recipients for a product, most recent first.
func (h *RecentHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	product, err := productParam(c)
	if err != nil {
		return err
	}

	entries := h.recents.List(c.UserContext(), userID.String(), string(product))
	if entries == nil {
		entries = []recent.Entry{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"entries": entries,
	})
}

// Clear drops the remembered recipients for a product.
func (h *RecentHandler) Clear(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	product, err := productParam(c)
	if err != nil {
		return err
	}

	h.recents.Clear(c.UserContext(), userID.String(), string(product))

	return c.JSON(fiber.Map{"success": true})
}
