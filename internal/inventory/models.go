package inventory

import "time"

// Product is the catalog entry; AvailableQty is the stock ledger counter the
// reconciler adjusts.
type Product struct {
	ID           int64     `json:"product_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Unit         string    `json:"unit"`
	PriceCents   int       `json:"price_cents"`
	AvailableQty int       `json:"available_qty"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
