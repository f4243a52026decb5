package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/mithil0407/playernumberone/internal/gateway"
	"github.com/mithil0407/playernumberone/internal/models"
	"github.com/mithil0407/playernumberone/internal/repository"
)

var ErrInvalidSignature = errors.New("invalid webhook signature")

// Gateway event names this service reacts to. payment.authorized is the
// test-mode counterpart of payment.captured.
const (
	EventPaymentCaptured   = "payment.captured"
	EventPaymentAuthorized = "payment.authorized"
	EventPaymentFailed     = "payment.failed"
	EventOrderPaid         = "order.paid"
)

type paymentEntity struct {
	ID               string  `json:"id"`
	OrderID          string  `json:"order_id"`
	Amount           int64   `json:"amount"`
	Method           string  `json:"method"`
	ErrorCode        *string `json:"error_code"`
	ErrorDescription *string `json:"error_description"`
}

type orderEntity struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
}

type eventEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity paymentEntity `json:"entity"`
		} `json:"payment"`
		Order struct {
			Entity orderEntity `json:"entity"`
		} `json:"order"`
	} `json:"payload"`
}

type WebhookService struct {
	secret string
	orders orderUpserter
}

func NewWebhookService(secret string, orders orderUpserter) *WebhookService {
	return &WebhookService{secret: secret, orders: orders}
}

// Process verifies and applies one webhook delivery. rawBody must be the
// request body exactly as it came off the wire; the signature is an HMAC over
// those bytes. The caller acks the gateway regardless of the returned error,
// which exists for logging and reconciliation only.
func (s *WebhookService) Process(ctx context.Context, rawBody []byte, signature string) error {
	if !gateway.VerifyWebhookSignature(rawBody, signature, s.secret) {
		return ErrInvalidSignature
	}

	var envelope eventEnvelope
	if err := json.Unmarshal(rawBody, &envelope); err != nil {
		return fmt.Errorf("parse webhook envelope: %w", err)
	}

	switch envelope.Event {
	case EventPaymentCaptured, EventPaymentAuthorized:
		return s.applyPayment(ctx, envelope.Event, envelope.Payload.Payment.Entity, models.OrderStatusCompleted)
	case EventPaymentFailed:
		return s.applyPayment(ctx, envelope.Event, envelope.Payload.Payment.Entity, models.OrderStatusFailed)
	case EventOrderPaid:
		return s.applyOrderPaid(ctx, envelope.Payload.Order.Entity, envelope.Payload.Payment.Entity)
	default:
		log.Printf("webhook: ignoring event %q", envelope.Event)
		return nil
	}
}

func (s *WebhookService) applyPayment(ctx context.Context, event string, payment paymentEntity, status string) error {
	if payment.OrderID == "" {
		return fmt.Errorf("webhook %s: payment entity has no order id", event)
	}

	input := repository.UpsertOrderInput{
		Amount:          minorToWhole(payment.Amount),
		Status:          status,
		ExternalOrderID: payment.OrderID,
	}
	if payment.ID != "" {
		input.ExternalPaymentID = &payment.ID
	}
	if payment.Method != "" {
		input.PaymentMethod = &payment.Method
	}
	if status == models.OrderStatusFailed {
		input.ErrorCode = payment.ErrorCode
		input.ErrorDescription = payment.ErrorDescription
	}

	storeCtx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	if _, err := s.orders.UpsertByExternalOrderID(storeCtx, input); err != nil {
		return fmt.Errorf("webhook %s: update order %s: %w", event, payment.OrderID, err)
	}

	log.Printf("webhook %s: order %s -> %s", event, payment.OrderID, status)
	return nil
}

func (s *WebhookService) applyOrderPaid(ctx context.Context, order orderEntity, payment paymentEntity) error {
	if order.ID == "" {
		return fmt.Errorf("webhook %s: order entity has no id", EventOrderPaid)
	}

	input := repository.UpsertOrderInput{
		Amount:          minorToWhole(order.Amount),
		Status:          models.OrderStatusPaid,
		ExternalOrderID: order.ID,
	}
	if payment.ID != "" {
		input.ExternalPaymentID = &payment.ID
	}
	if payment.Method != "" {
		input.PaymentMethod = &payment.Method
	}

	storeCtx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	if _, err := s.orders.UpsertByExternalOrderID(storeCtx, input); err != nil {
		return fmt.Errorf("webhook %s: update order %s: %w", EventOrderPaid, order.ID, err)
	}

	log.Printf("webhook %s: order %s -> %s", EventOrderPaid, order.ID, models.OrderStatusPaid)
	return nil
}

func minorToWhole(amountMinor int64) int64 {
	return int64(math.Round(float64(amountMinor) / 100))
}
