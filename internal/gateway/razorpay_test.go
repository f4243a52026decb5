package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateOrderSendsAuthenticatedRequest(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	var gotUser, gotPass string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":       "order_Nxy123",
			"amount":   99900,
			"currency": "INR",
			"receipt":  "alpha1_1_abcdefg",
			"status":   "created",
		})
	}))
	defer server.Close()

	client := NewClient("rzp_test_key", "rzp_test_secret", server.URL)
	order, err := client.CreateOrder(context.Background(), CreateOrderRequest{
		AmountMinor: 99900,
		Currency:    "INR",
		Receipt:     "alpha1_1_abcdefg",
		Notes:       map[string]string{"email": "a@x.com"},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if gotPath != "/v1/orders" {
		t.Fatalf("expected /v1/orders, got %s", gotPath)
	}
	if gotUser != "rzp_test_key" || gotPass != "rzp_test_secret" {
		t.Fatalf("expected basic auth credentials, got %s:%s", gotUser, gotPass)
	}
	if gotBody["amount"].(float64) != 99900 {
		t.Fatalf("expected amount 99900, got %v", gotBody["amount"])
	}
	if gotBody["currency"] != "INR" {
		t.Fatalf("expected INR, got %v", gotBody["currency"])
	}
	if order.ID != "order_Nxy123" {
		t.Fatalf("expected order_Nxy123, got %s", order.ID)
	}
}

func TestCreateOrderSurfacesGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"description":"Authentication failed"}}`))
	}))
	defer server.Close()

	client := NewClient("bad", "creds", server.URL)
	if _, err := client.CreateOrder(context.Background(), CreateOrderRequest{AmountMinor: 100, Currency: "INR"}); err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestCreateOrderRejectsMissingCredentials(t *testing.T) {
	client := NewClient("", "", "http://localhost:0")
	if _, err := client.CreateOrder(context.Background(), CreateOrderRequest{AmountMinor: 100, Currency: "INR"}); err == nil {
		t.Fatal("expected error without credentials")
	}
}

func TestCreateOrderRejectsResponseWithoutOrderID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient("k", "s", server.URL)
	if _, err := client.CreateOrder(context.Background(), CreateOrderRequest{AmountMinor: 100, Currency: "INR"}); err == nil {
		t.Fatal("expected error for response without order id")
	}
}

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignatureAcceptsValidSignature(t *testing.T) {
	body := []byte(`{"event":"payment.captured","payload":{}}`)
	secret := "whsec_test"

	if !VerifyWebhookSignature(body, signBody(body, secret), secret) {
		t.Fatal("expected valid signature to verify")
	}
}

func TestVerifyWebhookSignatureRejectsTamperedBody(t *testing.T) {
	body := []byte(`{"event":"payment.captured","amount":99900}`)
	secret := "whsec_test"
	signature := signBody(body, secret)

	for i := range body {
		tampered := make([]byte, len(body))
		copy(tampered, body)
		tampered[i] ^= 0x01
		if VerifyWebhookSignature(tampered, signature, secret) {
			t.Fatalf("tampered byte at offset %d still verified", i)
		}
	}
}

func TestVerifyWebhookSignatureRejectsMissingInputs(t *testing.T) {
	body := []byte(`{}`)
	if VerifyWebhookSignature(body, "", "secret") {
		t.Fatal("empty signature must not verify")
	}
	if VerifyWebhookSignature(body, signBody(body, "secret"), "") {
		t.Fatal("empty secret must not verify")
	}
	if VerifyWebhookSignature(body, signBody(body, "other"), "secret") {
		t.Fatal("signature from wrong secret must not verify")
	}
}
