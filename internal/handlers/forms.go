package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/kudipay/internal/middleware"
	"github.com/example/kudipay/internal/workflow"
)

// FormHandler saves and restores per-product form snapshots so an
// interrupted purchase flow can be resumed.
type FormHandler struct {
	snapshots *workflow.Snapshots
}

// NewFormHandler constructs a FormHandler.
func NewFormHandler(snapshots *workflow.Snapshots) *FormHandler {
	return &FormHandler{snapshots: snapshots}
}

// Get returns the saved form for a product; form is null when nothing is
// saved.
func (h *FormHandler) Get(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	product, err := productParam(c)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"form":    h.snapshots.Load(c.UserContext(), userID.String(), product),
	})
}

// Save stores the submitted form state for later resumption.
func (h *FormHandler) Save(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	product, err := productParam(c)
	if err != nil {
		return err
	}

	form := workflow.NewFormState(product)
	if err := c.BodyParser(form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	form.Type = product

	h.snapshots.Save(c.UserContext(), userID.String(), form)

	return c.JSON(fiber.Map{"success": true})
}

// Clear drops the saved form for a product.
func (h *FormHandler) Clear(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	product, err := productParam(c)
	if err != nil {
		return err
	}

	h.snapshots.Clear(c.UserContext(), userID.String(), product)

	return c.JSON(fiber.Map{"success": true})
}
