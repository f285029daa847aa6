package workflow

import (
	"github.com/example/kudipay/internal/billing"
	"github.com/example/kudipay/internal/recent"
)

// ProductConfig is the per-screen configuration layered over the shared
// engine: which fields the form needs, its amount bounds and how much
// recipient history to keep.
type ProductConfig struct {
	Type           billing.ProductType
	Label          string
	RecipientField string
	MinAmount      int64
	MaxAmount      int64
	// DetectNetwork derives the carrier from the recipient phone number.
	DetectNetwork bool
	// RequiresProduct means a catalog selection (plan, package, provider)
	// must be made before submission.
	RequiresProduct bool
	// AmountFromProduct means the amount comes from the selected catalog
	// item rather than free entry.
	AmountFromProduct bool
	// RequiresQuantity enables the quantity field (e-PINs, printed cards).
	RequiresQuantity bool
	// HistoryCap bounds the recent-recipients list for this product.
	HistoryCap int
}

var products = map[billing.ProductType]ProductConfig{
	billing.ProductAirtime: {
		Type:           billing.ProductAirtime,
		Label:          "Airtime",
		RecipientField: "phone",
		MinAmount:      50,
		MaxAmount:      50000,
		DetectNetwork:  true,
		HistoryCap:     recent.DefaultCap,
	},
	billing.ProductData: {
		Type:              billing.ProductData,
		Label:             "Data Bundle",
		RecipientField:    "phone",
		DetectNetwork:     true,
		RequiresProduct:   true,
		AmountFromProduct: true,
		HistoryCap:        recent.DefaultCap,
	},
	billing.ProductCableTV: {
		Type:              billing.ProductCableTV,
		Label:             "Cable TV",
		RecipientField:    "smartcard",
		RequiresProduct:   true,
		AmountFromProduct: true,
		HistoryCap:        recent.DefaultCap,
	},
	billing.ProductElectricity: {
		Type:            billing.ProductElectricity,
		Label:           "Electricity",
		RecipientField:  "meter",
		MinAmount:       500,
		MaxAmount:       500000,
		RequiresProduct: true,
		HistoryCap:      recent.DefaultCap,
	},
	billing.ProductInternet: {
		Type:              billing.ProductInternet,
		Label:             "Internet",
		RecipientField:    "customer_id",
		RequiresProduct:   true,
		AmountFromProduct: true,
		HistoryCap:        recent.DefaultCap,
	},
	billing.ProductEducation: {
		Type:              billing.ProductEducation,
		Label:             "Education e-PIN",
		RecipientField:    "phone",
		RequiresProduct:   true,
		AmountFromProduct: true,
		RequiresQuantity:  true,
		HistoryCap:        recent.EducationCap,
	},
	billing.ProductFundBetting: {
		Type:            billing.ProductFundBetting,
		Label:           "Fund Betting Wallet",
		RecipientField:  "account_id",
		MinAmount:       100,
		MaxAmount:       500000,
		RequiresProduct: true,
		HistoryCap:      recent.DefaultCap,
	},
	billing.ProductRecharge: {
		Type:              billing.ProductRecharge,
		Label:             "Recharge Card Printing",
		RecipientField:    "phone",
		MinAmount:         100,
		RequiresProduct:   true,
		AmountFromProduct: true,
		RequiresQuantity:  true,
		HistoryCap:        recent.DefaultCap,
	},
}

// Product looks up the configuration for a product type.
func Product(t billing.ProductType) (ProductConfig, bool) {
	cfg, ok := products[t]
	return cfg, ok
}

// ProductTypes lists every supported product type.
func ProductTypes() []billing.ProductType {
	types := make([]billing.ProductType, 0, len(products))
	for t := range products {
		types = append(types, t)
	}
	return types
}
