package models

import "time"

// Order statuses. Pending is set at checkout; the webhook moves an order to
// one of the terminal statuses. No client-facing endpoint writes these.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusPaid      = "paid"
	OrderStatusFailed    = "failed"
)

type Order struct {
	ID                string    `json:"id"`
	CustomerID        *string   `json:"customer_id"`
	Amount            int64     `json:"amount"`
	AddOn             bool      `json:"add_on"`
	Status            string    `json:"status"`
	ExternalOrderID   string    `json:"external_order_id"`
	ExternalPaymentID *string   `json:"external_payment_id"`
	PaymentMethod     *string   `json:"payment_method"`
	ErrorCode         *string   `json:"error_code"`
	ErrorDescription  *string   `json:"error_description"`
	CreatedAt         time.Time `json:"created_at"`
}
