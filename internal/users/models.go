package users

import (
	"errors"

	"github.com/npc2425/wiprotrainjul2025/internal/auth"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"user_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email_id"`
	Address      string    `json:"address"`
	Avatar       string    `json:"avatar"`
	Role         auth.Role `json:"role"`
	PasswordHash string    `json:"-"`
}
