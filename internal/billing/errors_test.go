package billing

import (
	"net/http"
	"testing"
)

func TestClassifyPinMessage(t *testing.T) {
	f := classify(http.StatusOK, "PIN invalid")
	if f.Kind != FailPinRejected {
		t.Fatalf("kind = %s, want %s", f.Kind, FailPinRejected)
	}
	if f.Message != "PIN invalid" {
		t.Errorf("message = %q, want original text", f.Message)
	}
}

func TestClassify401IgnoresBody(t *testing.T) {
	for _, message := range []string{"", "PIN invalid", "account locked", "anything at all"} {
		f := classify(http.StatusUnauthorized, message)
		if f.Kind != FailSessionExpired {
			t.Errorf("classify(401, %q) = %s, want %s", message, f.Kind, FailSessionExpired)
		}
	}
}

func TestClassifyLockoutBeatsPin(t *testing.T) {
	f := classify(http.StatusForbidden, "PIN locked, 2 attempts remaining")
	if f.Kind != FailAccountLocked {
		t.Fatalf("kind = %s, want %s", f.Kind, FailAccountLocked)
	}
}

func TestClassifyInsufficientBalance(t *testing.T) {
	f := classify(http.StatusBadRequest, "Insufficient wallet balance")
	if f.Kind != FailInsufficientBalance {
		t.Fatalf("kind = %s, want %s", f.Kind, FailInsufficientBalance)
	}
}

func TestClassifyServiceUnavailable(t *testing.T) {
	if f := classify(http.StatusOK, "Service temporarily unavailable"); f.Kind != FailServiceUnavailable {
		t.Errorf("kind = %s, want %s", f.Kind, FailServiceUnavailable)
	}
	if f := classify(http.StatusServiceUnavailable, ""); f.Kind != FailServiceUnavailable {
		t.Errorf("bare 503 kind = %s, want %s", f.Kind, FailServiceUnavailable)
	}
}

func TestClassifyDefaultsToServerError(t *testing.T) {
	f := classify(http.StatusInternalServerError, "something broke")
	if f.Kind != FailServerError {
		t.Fatalf("kind = %s, want %s", f.Kind, FailServerError)
	}
}

func TestClassifySynthesizesMessageFromStatus(t *testing.T) {
	f := classify(http.StatusBadGateway, "")
	if f.Message == "" {
		t.Fatal("expected a synthesized message for an empty body")
	}
}

func TestRetriesPin(t *testing.T) {
	cases := map[FailureKind]bool{
		FailPinRejected:         true,
		FailAccountLocked:       true,
		FailServerError:         false,
		FailSessionExpired:      false,
		FailInsufficientBalance: false,
	}

	for kind, want := range cases {
		f := &Failure{Kind: kind}
		if got := f.RetriesPin(); got != want {
			t.Errorf("RetriesPin(%s) = %v, want %v", kind, got, want)
		}
	}
}
