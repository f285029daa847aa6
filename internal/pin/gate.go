// Package pin implements the state machine that guards purchase submission
// behind the 4-digit transaction PIN.
package pin

import (
	"fmt"

	"github.com/example/kudipay/internal/billing"
)

// State is the gate's current position in the entry flow.
type State string

const (
	StateHidden     State = "hidden"
	StatePrompting  State = "prompting"
	StateValidating State = "validating"
	StateSuccess    State = "success"
	// StateInvalidFormat is a terminal guard only: format is checked before
	// Validating is ever entered, so this state is unreachable from it.
	StateInvalidFormat State = "invalid_format"
	StateRejected      State = "rejected"
)

// Gate tracks one screen's PIN-entry session. It holds no PIN value beyond
// the lifetime of a single submission attempt.
type Gate struct {
	state   State
	message string
	pin     string
}

// NewGate starts hidden.
func NewGate() *Gate {
	return &Gate{state: StateHidden}
}

// State returns the current state.
func (g *Gate) State() State {
	return g.state
}

// Message returns the message attached to the last refusal or rejection.
func (g *Gate) Message() string {
	return g.message
}

// PIN returns the digits captured for the in-flight attempt.
func (g *Gate) PIN() string {
	return g.pin
}

// Open moves Hidden to Prompting, but only when a PIN is configured and the
// account is not locked. Each precondition failure carries its own message so
// the user knows whether to set a PIN or wait out the lock.
func (g *Gate) Open(status *billing.PinStatus) error {
	if g.state != StateHidden {
		return fmt.Errorf("pin gate cannot open from %s", g.state)
	}

	if !status.IsPinSet {
		g.message = "PIN Required: set a transaction PIN before making purchases"
		return billing.NewFailure(billing.FailValidation, g.message)
	}

	if status.IsLocked {
		g.message = fmt.Sprintf("PIN entry is temporarily locked, %d minutes remaining", status.LockTimeRemaining)
		return billing.NewFailure(billing.FailAccountLocked, g.message)
	}

	g.state = StatePrompting
	g.message = ""
	return nil
}

// Begin moves Prompting to Validating once the entered PIN is exactly four
// digits. Anything else stays in Prompting with a local format error and
// never touches the network.
func (g *Gate) Begin(entered string) error {
	if g.state != StatePrompting {
		return fmt.Errorf("pin gate cannot validate from %s", g.state)
	}

	if !ValidFormat(entered) {
		g.message = "PIN must be exactly 4 digits"
		return billing.NewFailure(billing.FailPinFormat, g.message)
	}

	g.state = StateValidating
	g.pin = entered
	g.message = ""
	return nil
}

// Succeed resolves Validating after a successful purchase. The gate returns
// to Hidden; the receipt travels back to the caller separately.
func (g *Gate) Succeed() {
	if g.state != StateValidating {
		return
	}
	g.state = StateHidden
	g.pin = ""
	g.message = ""
}

// Reject resolves Validating after a PIN or lockout failure. The gate
// re-enters Prompting with the message attached and the PIN field cleared, so
// the user can retry without leaving the screen.
func (g *Gate) Reject(message string) {
	if g.state != StateValidating {
		return
	}
	g.state = StatePrompting
	g.pin = ""
	g.message = message
}

// Abort resolves Validating for failures unrelated to the PIN. The modal
// closes and the message surfaces to the caller as an alert.
func (g *Gate) Abort(message string) {
	if g.state != StateValidating {
		return
	}
	g.state = StateHidden
	g.pin = ""
	g.message = message
}

// Dismiss cancels PIN entry. Allowed any time while Prompting; ignored while
// Validating so a submitted purchase cannot be abandoned mid-flight. Returns
// whether the dismissal took effect.
func (g *Gate) Dismiss() bool {
	if g.state != StatePrompting {
		return false
	}
	g.state = StateHidden
	g.pin = ""
	g.message = ""
	return true
}

// ValidFormat reports whether entered is exactly four numeric characters.
func ValidFormat(entered string) bool {
	if len(entered) != 4 {
		return false
	}
	for _, r := range entered {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
