package inventory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo is the product catalog store.
type Repo struct{ DB *pgxpool.Pool }

const productCols = `id, name, description, category, unit, price_cents, available_qty, image_url, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Unit,
		&p.PriceCents, &p.AvailableQty, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *Repo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+productCols+` FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id int64) (Product, error) {
	p, err := scanProduct(r.DB.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *Repo) Add(ctx context.Context, p Product) (Product, error) {
	err := r.DB.QueryRow(ctx, `
		INSERT INTO products(name, description, category, unit, price_cents, available_qty, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+productCols,
		p.Name, p.Description, p.Category, p.Unit, p.PriceCents, p.AvailableQty, p.ImageURL,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Unit,
		&p.PriceCents, &p.AvailableQty, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *Repo) Update(ctx context.Context, id int64, p Product) (Product, error) {
	row := r.DB.QueryRow(ctx, `
		UPDATE products
		SET name=$2, description=$3, category=$4, unit=$5, price_cents=$6,
		    available_qty=$7, image_url=$8, updated_at=now()
		WHERE id=$1
		RETURNING `+productCols,
		id, p.Name, p.Description, p.Category, p.Unit, p.PriceCents, p.AvailableQty, p.ImageURL)
	out, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrProductNotFound
	}
	return out, err
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}
