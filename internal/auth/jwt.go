package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Manager mints and verifies the bearer tokens carrying caller identity.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 10 * time.Hour
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

func (m *Manager) Issue(id Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": id.UserID,
		"role":   string(id.Role),
		"iat":    now.Unix(),
		"exp":    now.Add(m.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) Verify(token string) (Identity, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	uid, ok := claims["userId"].(float64)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	role, ok := claims["role"].(string)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: int64(uid), Role: Role(role)}, nil
}
