package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mithil0407/playernumberone/internal/gateway"
	"github.com/mithil0407/playernumberone/internal/services"
)

type WebhookHandler struct {
	service webhookProcessor
	appEnv  string
}

type webhookProcessor interface {
	Process(ctx context.Context, rawBody []byte, signature string) error
}

func NewWebhookHandler(service *services.WebhookService, appEnv string) *WebhookHandler {
	return &WebhookHandler{service: service, appEnv: appEnv}
}

// HandleWebhook always acks with 200 so the gateway does not retry-storm us;
// rejected signatures and processing failures are logged for reconciliation.
func (h *WebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	signature := c.Get(gateway.SignatureHeader)

	if err := h.service.Process(c.Context(), c.Body(), signature); err != nil {
		log.Printf("webhook processing failed: %v", err)
	}

	return c.JSON(fiber.Map{"status": "success"})
}

// VerifyWebhook answers the gateway's endpoint-verification probe.
func (h *WebhookHandler) VerifyWebhook(c *fiber.Ctx) error {
	if challenge := c.Query("challenge"); challenge != "" {
		return c.JSON(fiber.Map{"challenge": challenge})
	}

	return c.JSON(fiber.Map{
		"status":      "active",
		"message":     "Alpha1 payment webhook endpoint",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.appEnv,
	})
}
