package wallet

import (
	"encoding/json"
	"testing"
)

func TestNormalizeLegacyAmountFields(t *testing.T) {
	payloads := []string{
		`{"amount": 4500}`,
		`{"total": 4500}`,
		`{"balance": 4500}`,
		`{"main": 4500}`,
		`{"totalBalance": 4500}`,
		`{"mainBalance": 4500}`,
	}

	for _, payload := range payloads {
		b, err := Normalize(json.RawMessage(payload))
		if err != nil {
			t.Fatalf("Normalize(%s): %v", payload, err)
		}
		if b.Total != 4500 {
			t.Errorf("Normalize(%s).Total = %d, want 4500", payload, b.Total)
		}
		if b.Currency != "NGN" {
			t.Errorf("Normalize(%s).Currency = %q, want NGN", payload, b.Currency)
		}
	}
}

func TestNormalizeMainAndBonus(t *testing.T) {
	b, err := Normalize(json.RawMessage(`{"total": 5000, "main": 4200, "bonus": 800, "currency": "NGN"}`))
	if err != nil {
		t.Fatal(err)
	}

	if b.Main != 4200 || b.Bonus != 800 || b.Total != 5000 {
		t.Errorf("got main=%d bonus=%d total=%d", b.Main, b.Bonus, b.Total)
	}
}

func TestNormalizeDerivesMainFromTotal(t *testing.T) {
	b, err := Normalize(json.RawMessage(`{"amount": 5000, "bonus": 500}`))
	if err != nil {
		t.Fatal(err)
	}

	if b.Main != 4500 {
		t.Errorf("Main = %d, want 4500", b.Main)
	}
}

func TestNormalizeTimestamp(t *testing.T) {
	b, err := Normalize(json.RawMessage(`{"amount": 100, "lastUpdated": "2024-03-01T10:00:00Z"}`))
	if err != nil {
		t.Fatal(err)
	}

	if b.LastUpdatedAt.Year() != 2024 || b.LastUpdatedAt.Month() != 3 {
		t.Errorf("LastUpdatedAt = %v, want parsed 2024-03-01", b.LastUpdatedAt)
	}
}

func TestNormalizeNoAmountField(t *testing.T) {
	if _, err := Normalize(json.RawMessage(`{"currency": "NGN"}`)); err == nil {
		t.Fatal("expected error for payload without an amount field")
	}
}

func TestNormalizeMalformedPayload(t *testing.T) {
	if _, err := Normalize(json.RawMessage(`not json`)); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
