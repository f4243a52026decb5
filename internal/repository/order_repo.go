package repository

import (
	"context"

	"github.com/mithil0407/playernumberone/internal/models"
)

type UpsertOrderInput struct {
	CustomerID        *string
	Amount            int64
	AddOn             bool
	Status            string
	ExternalOrderID   string
	ExternalPaymentID *string
	PaymentMethod     *string
	ErrorCode         *string
	ErrorDescription  *string
}

type OrderRepository struct {
	db DBTX
}

func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

// UpsertByExternalOrderID inserts an order for the gateway order id, or
// updates the existing row in place. It is a single conditional write on the
// external_order_id unique index, so two concurrent webhook deliveries for
// the same gateway order cannot produce two rows.
//
// COALESCE keeps fields a later delivery omits: a payment.failed webhook
// carries no customer id, and an order.paid webhook carries no error fields.
func (r *OrderRepository) UpsertByExternalOrderID(ctx context.Context, input UpsertOrderInput) (*models.Order, error) {
	query := `
		INSERT INTO orders (customer_id, amount, add_on, status, external_order_id,
		                    external_payment_id, payment_method, error_code, error_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (external_order_id) DO UPDATE SET
			customer_id         = COALESCE(EXCLUDED.customer_id, orders.customer_id),
			amount              = EXCLUDED.amount,
			status              = EXCLUDED.status,
			external_payment_id = COALESCE(EXCLUDED.external_payment_id, orders.external_payment_id),
			payment_method      = COALESCE(EXCLUDED.payment_method, orders.payment_method),
			error_code          = EXCLUDED.error_code,
			error_description   = EXCLUDED.error_description
		RETURNING id, customer_id, amount, add_on, status, external_order_id,
		          external_payment_id, payment_method, error_code, error_description, created_at
	`

	var order models.Order
	err := r.db.QueryRow(
		ctx,
		query,
		input.CustomerID,
		input.Amount,
		input.AddOn,
		input.Status,
		input.ExternalOrderID,
		input.ExternalPaymentID,
		input.PaymentMethod,
		input.ErrorCode,
		input.ErrorDescription,
	).Scan(
		&order.ID,
		&order.CustomerID,
		&order.Amount,
		&order.AddOn,
		&order.Status,
		&order.ExternalOrderID,
		&order.ExternalPaymentID,
		&order.PaymentMethod,
		&order.ErrorCode,
		&order.ErrorDescription,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	query := `
		SELECT id, customer_id, amount, add_on, status, external_order_id,
		       external_payment_id, payment_method, error_code, error_description, created_at
		FROM orders
		WHERE id = $1
	`
	return r.scanOne(ctx, query, id)
}

func (r *OrderRepository) GetByExternalOrderID(ctx context.Context, externalOrderID string) (*models.Order, error) {
	query := `
		SELECT id, customer_id, amount, add_on, status, external_order_id,
		       external_payment_id, payment_method, error_code, error_description, created_at
		FROM orders
		WHERE external_order_id = $1
	`
	return r.scanOne(ctx, query, externalOrderID)
}

func (r *OrderRepository) scanOne(ctx context.Context, query string, arg any) (*models.Order, error) {
	var order models.Order
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&order.ID,
		&order.CustomerID,
		&order.Amount,
		&order.AddOn,
		&order.Status,
		&order.ExternalOrderID,
		&order.ExternalPaymentID,
		&order.PaymentMethod,
		&order.ErrorCode,
		&order.ErrorDescription,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
