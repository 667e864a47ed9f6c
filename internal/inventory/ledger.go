package inventory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StockAdjuster is the atomic adjust-by-delta operation on the stock counter.
type StockAdjuster interface {
	AdjustStock(ctx context.Context, productID int64, delta int) (int, error)
}

// Ledger applies signed deltas to products.available_qty. The guarded UPDATE
// makes the read-modify-write atomic per product: two concurrent decrements
// can never both observe the same starting quantity.
type Ledger struct{ DB *pgxpool.Pool }

var _ StockAdjuster = (*Ledger)(nil)

func (l *Ledger) AdjustStock(ctx context.Context, productID int64, delta int) (int, error) {
	var newQty int
	err := l.DB.QueryRow(ctx, `
		UPDATE products
		SET available_qty = available_qty + $2, updated_at = now()
		WHERE id = $1 AND available_qty + $2 >= 0
		RETURNING available_qty`,
		productID, delta,
	).Scan(&newQty)
	if err == nil {
		return newQty, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	// no row matched: either the product is missing or the delta would go negative
	var exists bool
	if err := l.DB.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id=$1)`, productID).Scan(&exists); err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrProductNotFound
	}
	return 0, ErrInsufficientStock
}
