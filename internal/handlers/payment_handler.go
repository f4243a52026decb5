package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mithil0407/playernumberone/internal/models"
	"github.com/mithil0407/playernumberone/internal/services"
)

type PaymentHandler struct {
	service checkoutService
}

type checkoutService interface {
	CreateCheckout(ctx context.Context, input services.CreateCheckoutInput) (*services.Checkout, error)
	GetOrderStatus(ctx context.Context, gatewayOrderID string) (*models.Order, error)
}

func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// The checkout page posts addOn in camel case; add_on is kept for callers
// that snake-case the whole body.
type createPaymentRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	AddOn      bool    `json:"addOn"`
	AddOnSnake bool    `json:"add_on"`
	Amount     float64 `json:"amount"`
}

func (h *PaymentHandler) CreatePayment(c *fiber.Ctx) error {
	var req createPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	checkout, err := h.service.CreateCheckout(c.Context(), services.CreateCheckoutInput{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		AddOn:  req.AddOn || req.AddOnSnake,
		Amount: req.Amount,
	})
	if err != nil {
		return mapPaymentError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"order_id":         checkout.OrderReference,
		"gateway_order_id": checkout.GatewayOrderID,
		"amount":           checkout.AmountMinor,
		"currency":         checkout.Currency,
		"client_key":       checkout.ClientKey,
		"customer_id":      checkout.CustomerID,
		"db_order_id":      checkout.DBOrderID,
	})
}

// GetOrderStatus serves the success page's poll for whether the payment
// webhook has been applied yet.
func (h *PaymentHandler) GetOrderStatus(c *fiber.Ctx) error {
	order, err := h.service.GetOrderStatus(c.Context(), c.Params("gatewayOrderID"))
	if err != nil {
		return mapPaymentError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"gateway_order_id": order.ExternalOrderID,
		"status":           order.Status,
		"amount":           order.Amount,
		"add_on":           order.AddOn,
	})
}

func mapPaymentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrMissingFields), errors.Is(err, services.ErrInvalidAmount):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	case errors.Is(err, services.ErrOrderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Order not found",
		})
	case errors.Is(err, services.ErrGatewayFailure):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   "Payment initialization failed. Please try again.",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Internal server error",
		})
	}
}
