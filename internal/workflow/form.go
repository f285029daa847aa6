package workflow

import (
	"fmt"

	"github.com/example/kudipay/internal/billing"
	"github.com/example/kudipay/internal/network"
)

// FormState holds one screen's user input plus derived validity flags.
// Snapshots of it are persisted per product so an interrupted flow can be
// resumed.
type FormState struct {
	Type         billing.ProductType `json:"type"`
	Recipient    string              `json:"recipient"`
	Network      string              `json:"network,omitempty"`
	Product      string              `json:"product,omitempty"`
	Amount       int64               `json:"amount"`
	Quantity     int                 `json:"quantity,omitempty"`
	CustomerName string              `json:"customer_name,omitempty"`

	// Errors maps field name to validation message after Validate.
	Errors map[string]string `json:"errors,omitempty"`
}

// NewFormState creates an empty form for a product.
func NewFormState(t billing.ProductType) *FormState {
	return &FormState{Type: t, Quantity: 1}
}

// Valid reports whether the last Validate pass found no problems.
func (f *FormState) Valid() bool {
	return len(f.Errors) == 0
}

// Validate checks the form against its product configuration and records the
// derived validity flags. These checks never reach the network; a failing
// form keeps the submit control disabled.
func (f *FormState) Validate(cfg ProductConfig) bool {
	f.Errors = map[string]string{}

	switch cfg.RecipientField {
	case "phone":
		if !validPhone(f.Recipient) {
			f.Errors["recipient"] = "Enter a valid 11-digit phone number"
		} else if cfg.DetectNetwork {
			carrier := network.Detect(f.Recipient)
			if f.Network == "" {
				f.Network = string(carrier)
			}
			if f.Network == string(network.Unknown) {
				f.Errors["network"] = "Could not detect network, select one manually"
			}
		}
	case "smartcard":
		if !allDigits(f.Recipient) || len(f.Recipient) < 10 {
			f.Errors["recipient"] = "Enter a valid smartcard number"
		}
	case "meter":
		if !allDigits(f.Recipient) || len(f.Recipient) < 11 {
			f.Errors["recipient"] = "Enter a valid meter number"
		}
	default:
		if f.Recipient == "" {
			f.Errors["recipient"] = "Recipient is required"
		}
	}

	if cfg.RequiresProduct && f.Product == "" {
		f.Errors["product"] = "Select a product"
	}

	if f.Network != "" && !network.Valid(f.Network) {
		f.Errors["network"] = "Unknown network"
	}

	if !cfg.AmountFromProduct {
		if cfg.MinAmount > 0 && f.Amount < cfg.MinAmount {
			f.Errors["amount"] = fmt.Sprintf("Minimum amount is ₦%d", cfg.MinAmount)
		}
		if cfg.MaxAmount > 0 && f.Amount > cfg.MaxAmount {
			f.Errors["amount"] = fmt.Sprintf("Maximum amount is ₦%d", cfg.MaxAmount)
		}
	} else if f.Amount <= 0 {
		f.Errors["amount"] = "Select a product to set the amount"
	}

	if cfg.RequiresQuantity && f.Quantity < 1 {
		f.Errors["quantity"] = "Quantity must be at least 1"
	}

	return f.Valid()
}

// Request builds the provider purchase payload from validated form input.
// The PIN is attached by the flow at submission time, never stored here.
func (f *FormState) Request(pin string) *billing.PurchaseRequest {
	req := &billing.PurchaseRequest{
		Type:      f.Type,
		Recipient: f.Recipient,
		Product:   f.Product,
		Network:   f.Network,
		Amount:    f.Amount,
		PIN:       pin,
	}
	if f.Quantity > 1 {
		req.Quantity = f.Quantity
	}
	return req
}

func validPhone(phone string) bool {
	return len(phone) == 11 && allDigits(phone)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
