package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/npc2425/wiprotrainjul2025/internal/cart"
	"github.com/npc2425/wiprotrainjul2025/internal/inventory"
	"github.com/npc2425/wiprotrainjul2025/internal/orders"
	"github.com/npc2425/wiprotrainjul2025/internal/users"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

// statusFor maps the domain error taxonomy onto HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, orders.ErrNotFound),
		errors.Is(err, users.ErrNotFound),
		errors.Is(err, inventory.ErrProductNotFound),
		errors.Is(err, cart.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, orders.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, orders.ErrInvalidState),
		errors.Is(err, inventory.ErrInsufficientStock):
		return http.StatusBadRequest
	case errors.Is(err, users.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
