package orders

import "errors"

var (
	ErrNotFound     = errors.New("order not found")
	ErrForbidden    = errors.New("order belongs to another user")
	ErrInvalidState = errors.New("order cannot be cancelled")
)
