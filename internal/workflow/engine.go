// Package workflow hosts the shared purchase engine: form validation, the
// PIN gate, submission and post-purchase bookkeeping. The eight product
// screens are thin ProductConfig layers over one Flow.
package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/kudipay/internal/billing"
	"github.com/example/kudipay/internal/models"
	"github.com/example/kudipay/internal/pin"
	"github.com/example/kudipay/internal/recent"
	"github.com/example/kudipay/internal/wallet"
)

// Requester is the slice of the billing client a flow needs.
type Requester interface {
	Submit(ctx context.Context, token string, req *billing.PurchaseRequest) (*billing.Receipt, error)
	FetchPinStatus(ctx context.Context, token string) (*billing.PinStatus, error)
}

// Engine wires the shared collaborators every flow uses.
type Engine struct {
	requester Requester
	balances  *wallet.Cache
	recents   *recent.Store
	db        *gorm.DB
}

// NewEngine constructs the purchase engine.
func NewEngine(requester Requester, balances *wallet.Cache, recents *recent.Store, db *gorm.DB) *Engine {
	return &Engine{
		requester: requester,
		balances:  balances,
		recents:   recents,
		db:        db,
	}
}

// Balances exposes the wallet cache for session construction.
func (e *Engine) Balances() *wallet.Cache {
	return e.balances
}

// Recents exposes the recipient history store.
func (e *Engine) Recents() *recent.Store {
	return e.recents
}

// Flow is one screen's purchase session: form, PIN gate and submission. Only
// one submission can be in flight at a time; the gate's Validating state is
// the mutex.
type Flow struct {
	engine  *Engine
	session SessionAccessor
	userID  uuid.UUID
	cfg     ProductConfig
	Form    *FormState
	gate    *pin.Gate
}

// NewFlow starts a purchase flow for a product type.
func (e *Engine) NewFlow(session SessionAccessor, userID uuid.UUID, t billing.ProductType) (*Flow, error) {
	cfg, ok := Product(t)
	if !ok {
		return nil, billing.NewFailure(billing.FailValidation, fmt.Sprintf("unsupported product type %q", t))
	}

	return &Flow{
		engine:  e,
		session: session,
		userID:  userID,
		cfg:     cfg,
		Form:    NewFormState(t),
		gate:    pin.NewGate(),
	}, nil
}

// Config returns the flow's product configuration.
func (f *Flow) Config() ProductConfig {
	return f.cfg
}

// Gate exposes the PIN gate state for rendering.
func (f *Flow) Gate() *pin.Gate {
	return f.gate
}

// OpenPinEntry runs the review step: validates the form, applies the balance
// guard, re-fetches the PIN status and opens the gate. The status is always
// fetched fresh because lockout state must not be stale.
func (f *Flow) OpenPinEntry(ctx context.Context) error {
	if !f.Form.Validate(f.cfg) {
		return billing.NewFailure(billing.FailValidation, "fix the highlighted fields before continuing")
	}

	if !f.hasEnoughBalance(ctx) {
		return billing.NewFailure(billing.FailInsufficientBalance, "Insufficient balance, fund your wallet to continue")
	}

	token := f.session.Token()
	if token == "" {
		return billing.NewFailure(billing.FailAuthRequired, "sign in to continue")
	}

	status, err := f.engine.requester.FetchPinStatus(ctx, token)
	if err != nil {
		return err
	}

	return f.gate.Open(status)
}

// Dismiss cancels PIN entry; ignored while a submission is in flight.
func (f *Flow) Dismiss() bool {
	return f.gate.Dismiss()
}

// Submit validates the entered PIN format, sends the purchase and settles the
// gate from the outcome. On success the embedded balance is pushed into the
// cache (the provider's figure wins, no client-side arithmetic) and the
// recipient is remembered.
func (f *Flow) Submit(ctx context.Context, enteredPIN string) (*billing.Receipt, error) {
	if err := f.gate.Begin(enteredPIN); err != nil {
		return nil, err
	}

	req := f.Form.Request(f.gate.PIN())
	receipt, err := f.engine.requester.Submit(ctx, f.session.Token(), req)
	if err != nil {
		if failure, ok := billing.AsFailure(err); ok && failure.RetriesPin() {
			f.gate.Reject(failure.Message)
		} else {
			f.gate.Abort(err.Error())
		}
		f.record(req, "failed", err.Error(), nil)
		return nil, err
	}

	f.gate.Succeed()

	if receipt.NewBalance != nil {
		f.engine.balances.Store(ctx, f.userID.String(), receipt.NewBalance)
	}

	if f.cfg.HistoryCap > 0 {
		f.engine.recents.Add(ctx, f.userID.String(), string(f.cfg.Type), req.Recipient, f.Form.CustomerName, f.cfg.HistoryCap)
	}

	f.record(req, "success", "", receipt.Transaction)
	return receipt, nil
}

// hasEnoughBalance is a UX guard only. When no balance has ever loaded (nil
// snapshot, or a zero total) the purchase is allowed to proceed and the
// provider stays authoritative on funds.
// TODO: confirm with product whether the zero-total bypass should instead
// block until a balance loads.
func (f *Flow) hasEnoughBalance(ctx context.Context) bool {
	b := f.session.Balance(ctx)
	if b == nil || b.Total == 0 {
		return true
	}

	total := f.Form.Amount
	if f.cfg.RequiresQuantity && f.Form.Quantity > 1 {
		total *= int64(f.Form.Quantity)
	}

	return b.Total >= total
}

// record persists a history row for the purchase attempt. History is
// best-effort; a write failure never disturbs the purchase outcome.
func (f *Flow) record(req *billing.PurchaseRequest, status, failReason string, transaction json.RawMessage) {
	if f.engine.db == nil {
		return
	}

	row := models.PurchaseRecord{
		UserID:     f.userID,
		Type:       string(req.Type),
		Recipient:  req.Recipient,
		Product:    req.Product,
		Network:    req.Network,
		Amount:     req.Amount,
		Currency:   "NGN",
		Status:     status,
		Reference:  transactionReference(transaction),
		FailReason: failReason,
		PlacedAt:   time.Now(),
	}

	if err := f.engine.db.Create(&row).Error; err != nil {
		log.Printf("failed to record purchase for %s: %v", f.userID, err)
	}
}

// transactionReference pulls the provider's reference out of the opaque
// transaction record when one is present, otherwise mints a local one so the
// uniqueness constraint holds.
func transactionReference(transaction json.RawMessage) string {
	if len(transaction) > 0 {
		var probe struct {
			Reference string `json:"reference"`
			Ref       string `json:"ref"`
			ID        string `json:"id"`
		}
		if err := json.Unmarshal(transaction, &probe); err == nil {
			if ref := firstNonEmpty(probe.Reference, probe.Ref, probe.ID); ref != "" {
				return ref
			}
		}
	}
	return "local-" + uuid.NewString()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
