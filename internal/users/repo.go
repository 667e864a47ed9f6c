package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

var _ Store = (*Repo)(nil)

const userCols = `id, username, first_name, last_name, email, address, avatar, role, password_hash`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName,
		&u.Email, &u.Address, &u.Avatar, &u.Role, &u.PasswordHash)
	return u, err
}

func (r *Repo) Insert(ctx context.Context, u User) (User, error) {
	err := r.DB.QueryRow(ctx, `
		INSERT INTO users(username, first_name, last_name, email, address, avatar, role, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		u.Username, u.FirstName, u.LastName, u.Email, u.Address, u.Avatar, u.Role, u.PasswordHash,
	).Scan(&u.ID)
	return u, err
}

func (r *Repo) GetByID(ctx context.Context, id int64) (User, error) {
	u, err := scanUser(r.DB.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (User, error) {
	u, err := scanUser(r.DB.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE username=$1`, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *Repo) Update(ctx context.Context, u User) (User, error) {
	ct, err := r.DB.Exec(ctx, `
		UPDATE users SET first_name=$2, last_name=$3, email=$4, address=$5, avatar=$6
		WHERE id=$1`,
		u.ID, u.FirstName, u.LastName, u.Email, u.Address, u.Avatar)
	if err != nil {
		return User{}, err
	}
	if ct.RowsAffected() == 0 {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *Repo) List(ctx context.Context) ([]User, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+userCols+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
