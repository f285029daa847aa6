package billing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/example/kudipay/internal/config"
)

func testClient(baseURL string) *Client {
	return NewClient(&config.Config{
		BillingBaseURL: baseURL,
		BillingAuthURL: baseURL + "/auth/login",
		BillingSecret:  "test-secret",
		HTTPTimeout:    5 * time.Second,
	})
}

func TestSubmitSuccessWithEmbeddedBalance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/purchase" {
			t.Errorf("path = %s, want /purchase", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer user-token" {
			t.Errorf("Authorization = %q, want user bearer", got)
		}

		var req PurchaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Type != ProductAirtime || req.Amount != 500 || req.PIN != "1234" {
			t.Errorf("unexpected payload: %+v", req)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"success":     true,
			"transaction": map[string]any{"reference": "TX-1", "status": "completed"},
			"newBalance":  map[string]any{"amount": 4500},
		})
	}))
	defer server.Close()

	client := testClient(server.URL)
	receipt, err := client.Submit(context.Background(), "user-token", &PurchaseRequest{
		Type:      ProductAirtime,
		Recipient: "08031234567",
		Network:   "mtn",
		Amount:    500,
		PIN:       "1234",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(receipt.Transaction) == 0 {
		t.Error("receipt missing transaction record")
	}
	if receipt.NewBalance == nil || receipt.NewBalance.Total != 4500 {
		t.Errorf("NewBalance = %+v, want total 4500", receipt.NewBalance)
	}
}

func TestSubmitWithoutTokenMakesNoNetworkCall(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.Submit(context.Background(), "", &PurchaseRequest{Type: ProductAirtime})

	failure, ok := AsFailure(err)
	if !ok || failure.Kind != FailAuthRequired {
		t.Fatalf("err = %v, want %s failure", err, FailAuthRequired)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Errorf("upstream hit %d times, want 0", hits)
	}
}

func TestSubmitFailureEnvelopeClassified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "PIN invalid",
		})
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.Submit(context.Background(), "user-token", &PurchaseRequest{Type: ProductAirtime, PIN: "0000"})

	failure, ok := AsFailure(err)
	if !ok {
		t.Fatalf("err = %v, want *Failure", err)
	}
	if failure.Kind != FailPinRejected {
		t.Errorf("kind = %s, want %s", failure.Kind, FailPinRejected)
	}
}

func TestSubmit401IsSessionExpired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "whatever"})
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.Submit(context.Background(), "stale-token", &PurchaseRequest{Type: ProductData})

	failure, ok := AsFailure(err)
	if !ok || failure.Kind != FailSessionExpired {
		t.Fatalf("err = %v, want %s failure", err, FailSessionExpired)
	}
}

func TestSubmitNetworkErrorClassified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := testClient(server.URL)
	_, err := client.Submit(context.Background(), "user-token", &PurchaseRequest{Type: ProductAirtime})

	failure, ok := AsFailure(err)
	if !ok || failure.Kind != FailNetworkUnreachable {
		t.Fatalf("err = %v, want %s failure", err, FailNetworkUnreachable)
	}
}

func TestSubmitMalformedSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.Submit(context.Background(), "user-token", &PurchaseRequest{Type: ProductAirtime})

	failure, ok := AsFailure(err)
	if !ok || failure.Kind != FailServerError {
		t.Fatalf("err = %v, want %s failure", err, FailServerError)
	}
}

func TestSubmitIgnoresBrokenEmbeddedBalance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success":     true,
			"transaction": map[string]any{"reference": "TX-2"},
			"newBalance":  map[string]any{"currency": "NGN"},
		})
	}))
	defer server.Close()

	client := testClient(server.URL)
	receipt, err := client.Submit(context.Background(), "user-token", &PurchaseRequest{Type: ProductAirtime})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if receipt.NewBalance != nil {
		t.Errorf("NewBalance = %+v, want nil for unreadable payload", receipt.NewBalance)
	}
}

func TestFetchPinStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/purchase/pin-status" {
			t.Errorf("path = %s, want /purchase/pin-status", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success":           true,
			"isPinSet":          true,
			"isLocked":          true,
			"lockTimeRemaining": 12,
			"attemptsRemaining": 0,
		})
	}))
	defer server.Close()

	client := testClient(server.URL)
	status, err := client.FetchPinStatus(context.Background(), "user-token")
	if err != nil {
		t.Fatalf("FetchPinStatus: %v", err)
	}

	if !status.IsPinSet || !status.IsLocked || status.LockTimeRemaining != 12 {
		t.Errorf("status = %+v", status)
	}
}

func TestFetchBalanceNormalizesLegacyShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"balance": map[string]any{"totalBalance": 7250, "currency": "NGN"},
		})
	}))
	defer server.Close()

	client := testClient(server.URL)
	balance, err := client.FetchBalance(context.Background(), "user-token")
	if err != nil {
		t.Fatalf("FetchBalance: %v", err)
	}
	if balance.Total != 7250 {
		t.Errorf("Total = %d, want 7250", balance.Total)
	}
}

func TestServiceTokenRefreshOn401(t *testing.T) {
	var authCalls, catalogCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&authCalls, 1)
		token := "token-1"
		if n > 1 {
			token = "token-2"
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"access_token": token, "expires_in": 3600},
		})
	})
	mux.HandleFunc("/electricity/providers", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&catalogCalls, 1)
		if r.Header.Get("Authorization") == "Bearer token-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"items":   []map[string]any{{"code": "ikeja", "name": "Ikeja Electric"}},
		})
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client := testClient(server.URL)
	items, err := client.ElectricityProviders(context.Background())
	if err != nil {
		t.Fatalf("ElectricityProviders: %v", err)
	}

	if len(items) != 1 || items[0].Code != "ikeja" {
		t.Errorf("items = %+v", items)
	}
	if atomic.LoadInt32(&authCalls) != 2 {
		t.Errorf("auth calls = %d, want refresh after 401", authCalls)
	}
	if atomic.LoadInt32(&catalogCalls) != 2 {
		t.Errorf("catalog calls = %d, want retried once", catalogCalls)
	}
}
