package orders

import "time"

type Order struct {
	ID         int64       `json:"order_id"`
	UserID     int64       `json:"user_id"`
	Items      []OrderItem `json:"items"`
	TotalCents int         `json:"total_cents"`
	Status     Status      `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}

// OrderItem is immutable once the order is placed; it has no identity
// outside its parent order.
type OrderItem struct {
	ProductID  int64 `json:"product_id"`
	Qty        int   `json:"qty"`
	PriceCents int   `json:"price_cents"`
}

// ItemInput is the client-supplied line item for order placement.
type ItemInput struct {
	ProductID  int64 `json:"product_id"`
	Qty        int   `json:"qty"`
	PriceCents int   `json:"price_cents"`
}
