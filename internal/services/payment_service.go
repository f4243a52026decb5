package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mithil0407/playernumberone/internal/gateway"
	"github.com/mithil0407/playernumberone/internal/models"
	"github.com/mithil0407/playernumberone/internal/repository"
	"github.com/mithil0407/playernumberone/pkg/utils"
)

var (
	ErrMissingFields  = errors.New("missing required fields")
	ErrInvalidAmount  = errors.New("amount must be greater than 0")
	ErrGatewayFailure = errors.New("payment initialization failed")
)

// Currency is fixed; the program is sold in INR only.
const Currency = "INR"

const storageTimeout = 5 * time.Second

type orderCreator interface {
	CreateOrder(ctx context.Context, input gateway.CreateOrderRequest) (*gateway.Order, error)
	KeyID() string
}

type customerWriter interface {
	Create(ctx context.Context, input repository.CreateCustomerInput) (*models.Customer, error)
}

type orderUpserter interface {
	UpsertByExternalOrderID(ctx context.Context, input repository.UpsertOrderInput) (*models.Order, error)
}

type orderStore interface {
	orderUpserter
	GetByExternalOrderID(ctx context.Context, externalOrderID string) (*models.Order, error)
}

type PaymentService struct {
	gateway   orderCreator
	customers customerWriter
	orders    orderStore
}

func NewPaymentService(gw orderCreator, customers customerWriter, orders orderStore) *PaymentService {
	return &PaymentService{
		gateway:   gw,
		customers: customers,
		orders:    orders,
	}
}

type CreateCheckoutInput struct {
	Name   string
	Email  string
	Phone  string
	AddOn  bool
	Amount float64
}

// Checkout is everything the browser needs to open the gateway's hosted
// payment UI, plus the identifiers the success page stores for the later
// booking step.
type Checkout struct {
	OrderReference string
	GatewayOrderID string
	AmountMinor    int64
	Currency       string
	ClientKey      string
	CustomerID     string
	DBOrderID      string
}

// CreateCheckout mints a gateway order for the given customer details and
// persists the pending customer/order pair. A persistence failure fails the
// whole call: a payment we cannot record is a liability, so there is no
// partial-success path and no fabricated fallback response.
func (s *PaymentService) CreateCheckout(ctx context.Context, input CreateCheckoutInput) (*Checkout, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	phone := strings.TrimSpace(input.Phone)

	missing := make([]string, 0, 4)
	if name == "" {
		missing = append(missing, "name")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if phone == "" {
		missing = append(missing, "phone")
	}
	if input.Amount == 0 {
		missing = append(missing, "amount")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}
	if input.Amount < 0 {
		return nil, ErrInvalidAmount
	}

	reference := utils.NewOrderReference()
	amountMinor := int64(math.Round(input.Amount * 100))

	gatewayOrder, err := s.gateway.CreateOrder(ctx, gateway.CreateOrderRequest{
		AmountMinor: amountMinor,
		Currency:    Currency,
		Receipt:     reference,
		Notes: map[string]string{
			"name":    name,
			"email":   email,
			"phone":   phone,
			"receipt": reference,
		},
	})
	if err != nil {
		log.Printf("gateway order creation failed (receipt %s): %v", reference, err)
		return nil, ErrGatewayFailure
	}

	storeCtx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	customer, err := s.customers.Create(storeCtx, repository.CreateCustomerInput{
		Name:  name,
		Email: email,
		Phone: phone,
	})
	if err != nil {
		return nil, fmt.Errorf("persist customer: %w", err)
	}

	order, err := s.orders.UpsertByExternalOrderID(storeCtx, repository.UpsertOrderInput{
		CustomerID:      &customer.ID,
		Amount:          int64(math.Round(input.Amount)),
		AddOn:           input.AddOn,
		Status:          models.OrderStatusPending,
		ExternalOrderID: gatewayOrder.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	return &Checkout{
		OrderReference: reference,
		GatewayOrderID: gatewayOrder.ID,
		AmountMinor:    amountMinor,
		Currency:       Currency,
		ClientKey:      s.gateway.KeyID(),
		CustomerID:     customer.ID,
		DBOrderID:      order.ID,
	}, nil
}

// GetOrderStatus looks up an order by the gateway's order id so the success
// page can show whether the webhook has landed yet.
func (s *PaymentService) GetOrderStatus(ctx context.Context, gatewayOrderID string) (*models.Order, error) {
	gatewayOrderID = strings.TrimSpace(gatewayOrderID)
	if gatewayOrderID == "" {
		return nil, fmt.Errorf("%w: gateway_order_id", ErrMissingFields)
	}

	storeCtx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	order, err := s.orders.GetByExternalOrderID(storeCtx, gatewayOrderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	return order, nil
}
