package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/kudipay/internal/billing"
	"github.com/example/kudipay/internal/network"
)

// CatalogHandler proxies the provider's product catalogs, with the amount
// field already normalized for the client.
type CatalogHandler struct {
	billing *billing.Client
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(client *billing.Client) *CatalogHandler {
	return &CatalogHandler{billing: client}
}

func listResponse(c *fiber.Ctx, items []billing.CatalogItem, err error) error {
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"items":   items,
	})
}

// DataPlans lists data bundles for a carrier.
func (h *CatalogHandler) DataPlans(c *fiber.Ctx) error {
	carrier := c.Params("network")
	if !network.Valid(carrier) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown network")
	}

	items, err := h.billing.DataPlans(c.UserContext(), carrier)
	return listResponse(c, items, err)
}

// CablePackages lists packages for a cable operator.
func (h *CatalogHandler) CablePackages(c *fiber.Ctx) error {
	items, err := h.billing.CablePackages(c.UserContext(), c.Params("operator"))
	return listResponse(c, items, err)
}

// ElectricityProviders lists supported electricity distributors.
func (h *CatalogHandler) ElectricityProviders(c *fiber.Ctx) error {
	items, err := h.billing.ElectricityProviders(c.UserContext())
	return listResponse(c, items, err)
}

// InternetPlans lists plans for an internet provider.
func (h *CatalogHandler) InternetPlans(c *fiber.Ctx) error {
	items, err := h.billing.InternetPlans(c.UserContext(), c.Params("code"))
	return listResponse(c, items, err)
}

type validateSmartcardForm struct {
	Operator  string `json:"operator"`
	Smartcard string `json:"smartcard"`
}

// ValidateSmartcard resolves a smartcard number to the subscriber's name so
// the user can confirm before paying.
func (h *CatalogHandler) ValidateSmartcard(c *fiber.Ctx) error {
	var form validateSmartcardForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	name, err := h.billing.ValidateSmartcard(c.UserContext(), form.Operator, form.Smartcard)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"customerName": name,
	})
}

type validateMeterForm struct {
	Provider  string `json:"provider"`
	Meter     string `json:"meter"`
	MeterType string `json:"meterType"`
}

// ValidateMeter resolves an electricity meter number to the account holder's
// name.
func (h *CatalogHandler) ValidateMeter(c *fiber.Ctx) error {
	var form validateMeterForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	name, err := h.billing.ValidateMeter(c.UserContext(), form.Provider, form.Meter, form.MeterType)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"customerName": name,
	})
}
