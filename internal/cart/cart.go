package cart

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrItemNotFound = errors.New("item not found in cart")

type Cart struct {
	ID     int64  `json:"cart_id"`
	UserID int64  `json:"user_id"`
	Items  []Item `json:"items"`
}

type Item struct {
	ProductID  int64     `json:"product_id"`
	Qty        int       `json:"quantity"`
	PriceCents int       `json:"price_cents"`
	DateAdded  time.Time `json:"date_added"`
}

type Repo struct{ DB *pgxpool.Pool }

// GetOrCreate returns the user's cart, creating an empty one on first use.
func (r *Repo) GetOrCreate(ctx context.Context, userID int64) (Cart, error) {
	c := Cart{UserID: userID}
	err := r.DB.QueryRow(ctx, `SELECT id FROM carts WHERE user_id=$1`, userID).Scan(&c.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		err = r.DB.QueryRow(ctx, `
			INSERT INTO carts(user_id) VALUES ($1)
			ON CONFLICT (user_id) DO UPDATE SET user_id=EXCLUDED.user_id
			RETURNING id`, userID).Scan(&c.ID)
	}
	if err != nil {
		return Cart{}, err
	}
	c.Items, err = r.items(ctx, c.ID)
	if err != nil {
		return Cart{}, err
	}
	return c, nil
}

// AddItem upserts a line item: an existing product id accumulates quantity.
func (r *Repo) AddItem(ctx context.Context, userID int64, it Item) (Cart, error) {
	c, err := r.GetOrCreate(ctx, userID)
	if err != nil {
		return Cart{}, err
	}
	_, err = r.DB.Exec(ctx, `
		INSERT INTO cart_items(cart_id, product_id, qty, price_cents)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET qty = cart_items.qty + EXCLUDED.qty`,
		c.ID, it.ProductID, it.Qty, it.PriceCents)
	if err != nil {
		return Cart{}, err
	}
	return r.GetOrCreate(ctx, userID)
}

func (r *Repo) UpdateItemQty(ctx context.Context, userID, productID int64, qty int) (Cart, error) {
	c, err := r.GetOrCreate(ctx, userID)
	if err != nil {
		return Cart{}, err
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE cart_items SET qty=$3 WHERE cart_id=$1 AND product_id=$2`,
		c.ID, productID, qty)
	if err != nil {
		return Cart{}, err
	}
	if ct.RowsAffected() == 0 {
		return Cart{}, ErrItemNotFound
	}
	return r.GetOrCreate(ctx, userID)
}

func (r *Repo) RemoveItem(ctx context.Context, userID, productID int64) (Cart, error) {
	c, err := r.GetOrCreate(ctx, userID)
	if err != nil {
		return Cart{}, err
	}
	if _, err := r.DB.Exec(ctx, `
		DELETE FROM cart_items WHERE cart_id=$1 AND product_id=$2`,
		c.ID, productID); err != nil {
		return Cart{}, err
	}
	return r.GetOrCreate(ctx, userID)
}

// Clear empties the cart, used after its items become an order.
func (r *Repo) Clear(ctx context.Context, userID int64) error {
	c, err := r.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, c.ID)
	return err
}

func (r *Repo) items(ctx context.Context, cartID int64) ([]Item, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT product_id, qty, price_cents, date_added
		FROM cart_items WHERE cart_id=$1 ORDER BY date_added, product_id`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Qty, &it.PriceCents, &it.DateAdded); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
