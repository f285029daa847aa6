package workflow

import (
	"testing"

	"github.com/example/kudipay/internal/billing"
)

func config(t *testing.T, productType billing.ProductType) ProductConfig {
	t.Helper()
	cfg, ok := Product(productType)
	if !ok {
		t.Fatalf("no config for %s", productType)
	}
	return cfg
}

func TestAirtimeMinimumAmountBoundary(t *testing.T) {
	cfg := config(t, billing.ProductAirtime)

	form := NewFormState(billing.ProductAirtime)
	form.Recipient = "08031234567"
	form.Amount = 49

	if form.Validate(cfg) {
		t.Fatal("amount 49 validated, want rejection")
	}
	if got := form.Errors["amount"]; got != "Minimum amount is ₦50" {
		t.Errorf("amount error = %q, want %q", got, "Minimum amount is ₦50")
	}

	form.Amount = 50
	if !form.Validate(cfg) {
		t.Fatalf("amount 50 rejected: %v", form.Errors)
	}
}

func TestAirtimeNetworkAutoDetected(t *testing.T) {
	cfg := config(t, billing.ProductAirtime)

	form := NewFormState(billing.ProductAirtime)
	form.Recipient = "08031234567"
	form.Amount = 100

	if !form.Validate(cfg) {
		t.Fatalf("validate failed: %v", form.Errors)
	}
	if form.Network != "mtn" {
		t.Errorf("Network = %q, want mtn", form.Network)
	}
}

func TestUnknownPrefixNeedsManualNetwork(t *testing.T) {
	cfg := config(t, billing.ProductAirtime)

	form := NewFormState(billing.ProductAirtime)
	form.Recipient = "07991234567"
	form.Amount = 100

	if form.Validate(cfg) {
		t.Fatal("unknown prefix validated without a manual network")
	}
	if _, ok := form.Errors["network"]; !ok {
		t.Errorf("errors = %v, want network error", form.Errors)
	}

	form.Network = "glo"
	if !form.Validate(cfg) {
		t.Fatalf("manual network still rejected: %v", form.Errors)
	}
}

func TestInvalidPhoneRejected(t *testing.T) {
	cfg := config(t, billing.ProductAirtime)

	for _, phone := range []string{"", "0803123", "080312345678", "0803123456a"} {
		form := NewFormState(billing.ProductAirtime)
		form.Recipient = phone
		form.Amount = 100

		if form.Validate(cfg) {
			t.Errorf("phone %q validated, want rejection", phone)
		}
	}
}

func TestDataPlanRequiresSelection(t *testing.T) {
	cfg := config(t, billing.ProductData)

	form := NewFormState(billing.ProductData)
	form.Recipient = "08031234567"

	if form.Validate(cfg) {
		t.Fatal("data form without a plan validated")
	}
	if _, ok := form.Errors["product"]; !ok {
		t.Errorf("errors = %v, want product error", form.Errors)
	}

	form.Product = "plan-1gb"
	form.Amount = 300
	if !form.Validate(cfg) {
		t.Fatalf("complete data form rejected: %v", form.Errors)
	}
}

func TestSmartcardValidation(t *testing.T) {
	cfg := config(t, billing.ProductCableTV)

	form := NewFormState(billing.ProductCableTV)
	form.Recipient = "12345"
	form.Product = "dstv-compact"
	form.Amount = 9000

	if form.Validate(cfg) {
		t.Fatal("short smartcard validated")
	}

	form.Recipient = "1234567890"
	if !form.Validate(cfg) {
		t.Fatalf("valid smartcard rejected: %v", form.Errors)
	}
}

func TestQuantityRequired(t *testing.T) {
	cfg := config(t, billing.ProductEducation)

	form := NewFormState(billing.ProductEducation)
	form.Recipient = "08031234567"
	form.Product = "waec-pin"
	form.Amount = 3500
	form.Quantity = 0

	if form.Validate(cfg) {
		t.Fatal("zero quantity validated")
	}

	form.Quantity = 2
	if !form.Validate(cfg) {
		t.Fatalf("quantity 2 rejected: %v", form.Errors)
	}
}

func TestRequestCarriesPinButNeverStoresIt(t *testing.T) {
	form := NewFormState(billing.ProductAirtime)
	form.Recipient = "08031234567"
	form.Network = "mtn"
	form.Amount = 500

	req := form.Request("1234")
	if req.PIN != "1234" {
		t.Errorf("req.PIN = %q", req.PIN)
	}
	if req.Amount != 500 || req.Recipient != "08031234567" {
		t.Errorf("req = %+v", req)
	}
}
