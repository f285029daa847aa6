package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/kudipay/internal/billing"
	"github.com/example/kudipay/internal/middleware"
	"github.com/example/kudipay/internal/network"
	"github.com/example/kudipay/internal/workflow"
)

// PurchaseHandler drives the shared purchase workflow over HTTP. Each
// request reconstructs a flow from the submitted form; the PIN gate's
// transitions happen within the request so a purchase can never be submitted
// with an unchecked form or a stale lockout state.
type PurchaseHandler struct {
	engine    *workflow.Engine
	billing   *billing.Client
	snapshots *workflow.Snapshots
}

// NewPurchaseHandler constructs a PurchaseHandler.
func NewPurchaseHandler(engine *workflow.Engine, client *billing.Client, snapshots *workflow.Snapshots) *PurchaseHandler {
	return &PurchaseHandler{engine: engine, billing: client, snapshots: snapshots}
}

type purchaseForm struct {
	Type      string `json:"type"`
	Recipient string `json:"recipient"`
	Network   string `json:"network"`
	Product   string `json:"product"`
	Amount    int64  `json:"amount"`
	Quantity  int    `json:"quantity"`
	PIN       string `json:"pin"`
}

func (h *PurchaseHandler) flowFromRequest(c *fiber.Ctx, form *purchaseForm) (*workflow.Flow, error) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	session := &workflow.Session{
		UserID:   userID.String(),
		Bearer:   middleware.GetCurrentBearer(c),
		Balances: h.engine.Balances(),
	}

	flow, err := h.engine.NewFlow(session, userID, billing.ProductType(form.Type))
	if err != nil {
		return nil, err
	}

	flow.Form.Recipient = form.Recipient
	flow.Form.Network = form.Network
	flow.Form.Product = form.Product
	flow.Form.Amount = form.Amount
	if form.Quantity > 0 {
		flow.Form.Quantity = form.Quantity
	}

	return flow, nil
}

// Review validates the form without submitting: the client uses it to light
// up field errors and enable the confirm control.
func (h *PurchaseHandler) Review(c *fiber.Ctx) error {
	var form purchaseForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	flow, err := h.flowFromRequest(c, &form)
	if err != nil {
		return respondError(c, err)
	}

	valid := flow.Form.Validate(flow.Config())

	return c.JSON(fiber.Map{
		"success": true,
		"valid":   valid,
		"errors":  flow.Form.Errors,
		"network": flow.Form.Network,
		"amount":  flow.Form.Amount,
	})
}

// Submit runs the whole flow: validation, balance guard, fresh PIN-status
// check, PIN format check and the provider call. The saved form snapshot is
// cleared on success.
func (h *PurchaseHandler) Submit(c *fiber.Ctx) error {
	var form purchaseForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	flow, err := h.flowFromRequest(c, &form)
	if err != nil {
		return respondError(c, err)
	}

	if err := flow.OpenPinEntry(c.UserContext()); err != nil {
		return respondError(c, err)
	}

	receipt, err := flow.Submit(c.UserContext(), form.PIN)
	if err != nil {
		return respondError(c, err)
	}

	userID, _ := middleware.GetCurrentUserID(c)
	h.snapshots.Clear(c.UserContext(), userID.String(), flow.Form.Type)

	resp := fiber.Map{
		"success":     true,
		"transaction": receipt.Transaction,
	}
	if receipt.NewBalance != nil {
		resp["balance"] = receipt.NewBalance
	}

	return c.JSON(resp)
}

// PinStatus proxies the provider's transaction-PIN state. It is fetched
// fresh every time; lockout state is security-sensitive and never cached.
func (h *PurchaseHandler) PinStatus(c *fiber.Ctx) error {
	status, err := h.billing.FetchPinStatus(c.UserContext(), middleware.GetCurrentBearer(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"isPinSet":          status.IsPinSet,
		"isLocked":          status.IsLocked,
		"lockTimeRemaining": status.LockTimeRemaining,
		"attemptsRemaining": status.AttemptsRemaining,
	})
}

// DetectNetwork resolves a phone number's carrier for form auto-fill.
func (h *PurchaseHandler) DetectNetwork(c *fiber.Ctx) error {
	phone := c.Query("phone")

	return c.JSON(fiber.Map{
		"success": true,
		"phone":   phone,
		"network": network.Detect(phone),
	})
}
