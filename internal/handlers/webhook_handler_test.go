package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/mithil0407/playernumberone/internal/gateway"
	"github.com/mithil0407/playernumberone/internal/services"
)

type stubWebhookProcessor struct {
	err           error
	lastBody      []byte
	lastSignature string
}

func (s *stubWebhookProcessor) Process(_ context.Context, rawBody []byte, signature string) error {
	s.lastBody = append([]byte(nil), rawBody...)
	s.lastSignature = signature
	return s.err
}

func TestHandleWebhookAcksAndForwardsRawBody(t *testing.T) {
	processor := &stubWebhookProcessor{}
	handler := &WebhookHandler{service: processor, appEnv: "test"}

	app := fiber.New()
	app.Post("/api/payment/webhook", handler.HandleWebhook)

	// Whitespace must survive to the verifier untouched.
	raw := `{"event": "payment.captured",  "payload": {} }`
	req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook", strings.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(gateway.SignatureHeader, "deadbeef")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if string(processor.lastBody) != raw {
		t.Fatalf("raw body altered before verification: %q", processor.lastBody)
	}
	if processor.lastSignature != "deadbeef" {
		t.Fatalf("expected signature header forwarded, got %q", processor.lastSignature)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Status != "success" {
		t.Fatalf("expected success ack, got %q", body.Status)
	}
}

func TestHandleWebhookAcksEvenWhenProcessingFails(t *testing.T) {
	for _, procErr := range []error{services.ErrInvalidSignature, errors.New("database down")} {
		processor := &stubWebhookProcessor{err: procErr}
		handler := &WebhookHandler{service: processor, appEnv: "test"}

		app := fiber.New()
		app.Post("/api/payment/webhook", handler.HandleWebhook)

		req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook", strings.NewReader(`{}`))
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("webhook must always ack 200, got %d for %v", resp.StatusCode, procErr)
		}
	}
}

func TestVerifyWebhookEchoesChallenge(t *testing.T) {
	handler := &WebhookHandler{service: &stubWebhookProcessor{}, appEnv: "test"}

	app := fiber.New()
	app.Get("/api/payment/webhook", handler.VerifyWebhook)

	req := httptest.NewRequest(http.MethodGet, "/api/payment/webhook?challenge=abc123", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Challenge string `json:"challenge"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Challenge != "abc123" {
		t.Fatalf("expected challenge echoed, got %q", body.Challenge)
	}
}

func TestVerifyWebhookReportsStatusWithoutChallenge(t *testing.T) {
	handler := &WebhookHandler{service: &stubWebhookProcessor{}, appEnv: "production"}

	app := fiber.New()
	app.Get("/api/payment/webhook", handler.VerifyWebhook)

	req := httptest.NewRequest(http.MethodGet, "/api/payment/webhook", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Status      string `json:"status"`
		Environment string `json:"environment"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Status != "active" {
		t.Fatalf("expected active status, got %q", body.Status)
	}
	if body.Environment != "production" {
		t.Fatalf("expected environment reported, got %q", body.Environment)
	}
}
