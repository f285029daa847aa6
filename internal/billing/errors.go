package billing

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// FailureKind enumerates the reasons a billing operation can fail. The kind is
// decided once, at the HTTP boundary, so callers never re-parse message text.
type FailureKind string

const (
	FailAuthRequired        FailureKind = "auth_required"
	FailSessionExpired      FailureKind = "session_expired"
	FailNetworkUnreachable  FailureKind = "network_unreachable"
	FailServerError         FailureKind = "server_error"
	FailValidation          FailureKind = "validation_error"
	FailPinFormat           FailureKind = "pin_format_error"
	FailPinRejected         FailureKind = "pin_rejected"
	FailAccountLocked       FailureKind = "account_locked"
	FailServiceUnavailable  FailureKind = "service_unavailable"
	FailInsufficientBalance FailureKind = "insufficient_balance"
)

// Failure is a classified billing error.
type Failure struct {
	Kind    FailureKind
	Message string
	Status  int
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// NewFailure builds a Failure with an explicit kind.
func NewFailure(kind FailureKind, message string) *Failure {
	return &Failure{Kind: kind, Message: message}
}

// AsFailure unwraps err into a Failure when possible.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// RetriesPin reports whether the failure should re-open PIN entry in place
// instead of abandoning the purchase flow.
func (f *Failure) RetriesPin() bool {
	return f.Kind == FailPinRejected || f.Kind == FailAccountLocked
}

// classify maps an upstream HTTP status plus message text onto a FailureKind.
// The provider reports failure subtypes only through free-form messages, so
// substring matching is the only signal available. It happens here and
// nowhere else.
func classify(status int, message string) *Failure {
	if status == http.StatusUnauthorized {
		return &Failure{Kind: FailSessionExpired, Message: "session expired, please sign in again", Status: status}
	}

	if message == "" {
		message = fmt.Sprintf("purchase failed with status %d", status)
	}

	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "locked") || strings.Contains(lower, "attempts remaining"):
		return &Failure{Kind: FailAccountLocked, Message: message, Status: status}
	case strings.Contains(lower, "pin"):
		return &Failure{Kind: FailPinRejected, Message: message, Status: status}
	case strings.Contains(lower, "insufficient"):
		return &Failure{Kind: FailInsufficientBalance, Message: message, Status: status}
	case strings.Contains(lower, "unavailable") || strings.Contains(lower, "maintenance") || status == http.StatusServiceUnavailable:
		return &Failure{Kind: FailServiceUnavailable, Message: message, Status: status}
	default:
		return &Failure{Kind: FailServerError, Message: message, Status: status}
	}
}
