package orders

import "github.com/shopspring/decimal"

// OrderItem mirrors one cart line in the placement payload.
type OrderItem struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"qty" validate:"min=1"`
	SizeID    string          `json:"size_id,omitempty"`
	ExtraIDs  []string        `json:"extra_ids,omitempty"`
	Total     decimal.Decimal `json:"total"`
}

// PlaceOrderInput is the payload sent at checkout. Pricing is re-validated
// server-side; the client total is informational.
type PlaceOrderInput struct {
	ProviderID     string          `json:"provider_id" validate:"required"`
	AddressID      string          `json:"address_id" validate:"required"`
	PaymentMethod  string          `json:"payment_method" validate:"required,oneof=cash wallet card"`
	Notes          string          `json:"notes,omitempty"`
	Items          []OrderItem     `json:"items" validate:"required,min=1,dive"`
	Total          decimal.Decimal `json:"total"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
}

// Confirmation is the backend's acknowledgment of a placed order.
type Confirmation struct {
	OrderID string          `json:"order_id"`
	Status  string          `json:"status"`
	Total   decimal.Decimal `json:"total"`
}

// Summary is one row in the order history list.
type Summary struct {
	ID           string          `json:"id"`
	ProviderName string          `json:"provider_name"`
	Status       string          `json:"status"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    string          `json:"created_at"`
}

// Detail is the full order view.
type Detail struct {
	Summary
	AddressID     string      `json:"address_id"`
	PaymentMethod string      `json:"payment_method"`
	Notes         string      `json:"notes"`
	Items         []OrderItem `json:"items"`
}
