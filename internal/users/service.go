package users

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/npc2425/wiprotrainjul2025/internal/auth"
)

type Store interface {
	Insert(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Update(ctx context.Context, u User) (User, error)
	List(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	Store Store
}

// Registration is the input for creating an account.
type Registration struct {
	Username  string `json:"user_id"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email_id"`
	Address   string `json:"address"`
	Avatar    string `json:"avatar"`
}

func (s *Service) Register(ctx context.Context, reg Registration) (User, error) {
	return s.create(ctx, reg, auth.RoleCustomer)
}

func (s *Service) CreateAdmin(ctx context.Context, reg Registration) (User, error) {
	return s.create(ctx, reg, auth.RoleAdmin)
}

func (s *Service) create(ctx context.Context, reg Registration, role auth.Role) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	return s.Store.Insert(ctx, User{
		Username:     reg.Username,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Email:        reg.Email,
		Address:      reg.Address,
		Avatar:       reg.Avatar,
		Role:         role,
		PasswordHash: string(hash),
	})
}

// Authenticate checks username/password and returns the stored user. It is
// the only place credentials are validated; everything downstream trusts the
// identity minted from the result.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	u, err := s.Store.GetByUsername(ctx, username)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (User, error) {
	return s.Store.GetByID(ctx, id)
}

// UpdateProfile changes the fields a user may edit about themselves. Role and
// credentials are untouched.
func (s *Service) UpdateProfile(ctx context.Context, id int64, reg Registration) (User, error) {
	u, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	u.FirstName = reg.FirstName
	u.LastName = reg.LastName
	u.Email = reg.Email
	u.Address = reg.Address
	return s.Store.Update(ctx, u)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.Store.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.Store.Delete(ctx, id)
}
