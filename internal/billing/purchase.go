package billing

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/example/kudipay/internal/wallet"
)

// ProductType discriminates the eight purchase flows. All of them funnel
// through the provider's single purchase endpoint.
type ProductType string

const (
	ProductAirtime     ProductType = "airtime"
	ProductData        ProductType = "data"
	ProductCableTV     ProductType = "cable_tv"
	ProductElectricity ProductType = "electricity"
	ProductInternet    ProductType = "internet"
	ProductEducation   ProductType = "education"
	ProductFundBetting ProductType = "fund_betting"
	ProductRecharge    ProductType = "recharge"
)

// PurchaseRequest is constructed fresh per submission and never persisted.
// Recipient is the product-specific identifier: phone number, meter number,
// smartcard number or betting account ID.
type PurchaseRequest struct {
	Type      ProductType `json:"type"`
	Recipient string      `json:"recipient"`
	Product   string      `json:"product,omitempty"`
	Network   string      `json:"network,omitempty"`
	Amount    int64       `json:"amount"`
	Quantity  int         `json:"quantity,omitempty"`
	PIN       string      `json:"pin"`
}

// Receipt is what a successful purchase hands back: the provider's opaque
// transaction record, plus the post-debit balance when the provider embeds
// one.
type Receipt struct {
	Transaction json.RawMessage
	NewBalance  *wallet.Balance
}

type purchaseResponse struct {
	Transaction json.RawMessage `json:"transaction"`
	NewBalance  json.RawMessage `json:"newBalance"`
}

// Submit sends the purchase under the caller's bearer token and returns a
// Receipt or a classified *Failure.
func (c *Client) Submit(ctx context.Context, token string, req *PurchaseRequest) (*Receipt, error) {
	resp, err := c.doUser(ctx, http.MethodPost, "/purchase", nil, req, token)
	if err != nil {
		return nil, err
	}

	var body purchaseResponse
	if err := decodeEnvelope(resp, &body); err != nil {
		return nil, err
	}

	receipt := &Receipt{Transaction: body.Transaction}

	if len(body.NewBalance) > 0 {
		// A malformed embedded balance must not fail a purchase that
		// already went through; the next refresh will reconcile.
		if balance, err := wallet.Normalize(body.NewBalance); err == nil {
			receipt.NewBalance = balance
		}
	}

	return receipt, nil
}

// PinStatus mirrors the provider's transaction-PIN state. It is fetched fresh
// on every screen visit and never cached; lockout state must not be stale.
type PinStatus struct {
	IsPinSet          bool `json:"isPinSet"`
	IsLocked          bool `json:"isLocked"`
	LockTimeRemaining int  `json:"lockTimeRemaining"`
	AttemptsRemaining int  `json:"attemptsRemaining"`
}

// FetchPinStatus pulls the caller's current PIN state.
func (c *Client) FetchPinStatus(ctx context.Context, token string) (*PinStatus, error) {
	resp, err := c.doUser(ctx, http.MethodGet, "/purchase/pin-status", nil, nil, token)
	if err != nil {
		return nil, err
	}

	var status PinStatus
	if err := decodeEnvelope(resp, &status); err != nil {
		return nil, err
	}

	return &status, nil
}

type balanceResponse struct {
	Balance json.RawMessage `json:"balance"`
}

// FetchBalance pulls the caller's wallet balance and normalizes the
// provider's shape into the canonical form.
func (c *Client) FetchBalance(ctx context.Context, token string) (*wallet.Balance, error) {
	resp, err := c.doUser(ctx, http.MethodGet, "/balance", nil, nil, token)
	if err != nil {
		return nil, err
	}

	var body balanceResponse
	if err := decodeEnvelope(resp, &body); err != nil {
		return nil, err
	}

	if len(body.Balance) == 0 {
		return nil, &Failure{Kind: FailServerError, Message: "balance response missing balance payload", Status: resp.Status}
	}

	balance, err := wallet.Normalize(body.Balance)
	if err != nil {
		return nil, &Failure{Kind: FailServerError, Message: err.Error(), Status: resp.Status}
	}

	return balance, nil
}
