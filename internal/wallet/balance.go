package wallet

import (
	"encoding/json"
	"errors"
	"time"
)

// Balance is the canonical wallet snapshot. Amounts are whole Naira.
// Total is taken from the provider as-is; it is assumed, not enforced,
// that Total == Main + Bonus.
type Balance struct {
	Main          int64     `json:"main"`
	Bonus         int64     `json:"bonus"`
	Total         int64     `json:"total"`
	Currency      string    `json:"currency"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// rawBalance captures every field name the provider has historically used for
// the wallet amount. Older API versions renamed the field more than once.
type rawBalance struct {
	Amount       *float64 `json:"amount"`
	Total        *float64 `json:"total"`
	Balance      *float64 `json:"balance"`
	Main         *float64 `json:"main"`
	TotalBalance *float64 `json:"totalBalance"`
	MainBalance  *float64 `json:"mainBalance"`
	Bonus        *float64 `json:"bonus"`
	BonusBalance *float64 `json:"bonusBalance"`
	Currency     string   `json:"currency"`
	LastUpdated  string   `json:"lastUpdated"`
}

// Normalize decodes a provider balance payload, whichever legacy field the
// amount arrived under, into a canonical Balance.
func Normalize(raw json.RawMessage) (*Balance, error) {
	var rb rawBalance
	if err := json.Unmarshal(raw, &rb); err != nil {
		return nil, err
	}

	amount := firstSet(rb.Amount, rb.Total, rb.Balance, rb.TotalBalance, rb.Main, rb.MainBalance)
	if amount == nil {
		return nil, errors.New("balance payload has no recognizable amount field")
	}

	b := &Balance{
		Total:         int64(*amount),
		Currency:      rb.Currency,
		LastUpdatedAt: time.Now(),
	}

	if b.Currency == "" {
		b.Currency = "NGN"
	}

	if bonus := firstSet(rb.Bonus, rb.BonusBalance); bonus != nil {
		b.Bonus = int64(*bonus)
	}

	if main := firstSet(rb.Main, rb.MainBalance); main != nil {
		b.Main = int64(*main)
	} else {
		b.Main = b.Total - b.Bonus
	}

	if rb.LastUpdated != "" {
		if ts, err := time.Parse(time.RFC3339, rb.LastUpdated); err == nil {
			b.LastUpdatedAt = ts
		}
	}

	return b, nil
}

func firstSet(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
