package redisx

import "time"

const (
	// Cache a user's order list: user_orders:{user_id} -> JSON array
	KeyUserOrders = "user_orders:%d"

	// Cache product detail: product:{product_id} -> JSON product
	KeyProduct = "product:%d"
)

var (
	TTLOrdersCache  = time.Minute
	TTLProductCache = 5 * time.Minute
)
