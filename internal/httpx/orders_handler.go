package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/npc2425/wiprotrainjul2025/internal/auth"
	"github.com/npc2425/wiprotrainjul2025/internal/orders"
	"github.com/npc2425/wiprotrainjul2025/internal/redisx"
)

type OrdersHandler struct {
	Svc   *orders.Service
	Redis *redis.Client
}

type createOrderReq struct {
	Items []orders.ItemInput `json:"items"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Route("/order", func(r chi.Router) {
		r.With(auth.RequireRole(auth.RoleCustomer)).Post("/", h.createOrder)
		r.With(auth.RequireRole(auth.RoleAdmin)).Get("/", h.listAllOrders)
		r.With(auth.RequireAuth).Get("/user/{userId}", h.listUserOrders)
		r.With(auth.RequireAuth).Put("/{orderId}/cancel", h.cancelOrder)
	})
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.FromContext(r.Context())

	var req createOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.Svc.PlaceOrder(ctx, caller, req.Items)
	if err != nil {
		writeError(w, err)
		return
	}
	h.invalidateOrders(ctx, caller.UserID)
	writeJSON(w, http.StatusCreated, o)
}

func (h *OrdersHandler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.FromContext(r.Context())

	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.Svc.CancelOrder(ctx, caller, orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	h.invalidateOrders(ctx, caller.UserID)
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) listUserOrders(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.FromContext(r.Context())

	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}
	if !caller.CanAccessUser(userID) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	key := fmt.Sprintf(redisx.KeyUserOrders, userID)
	if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(s))
		return
	}

	list, err := h.Svc.ListOrdersForUser(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []orders.Order{}
	}
	if b, err := json.Marshal(list); err == nil {
		_ = h.Redis.Set(ctx, key, b, redisx.TTLOrdersCache).Err()
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OrdersHandler) listAllOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	list, err := h.Svc.ListAllOrders(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []orders.Order{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OrdersHandler) invalidateOrders(ctx context.Context, userID int64) {
	_ = h.Redis.Del(ctx, fmt.Sprintf(redisx.KeyUserOrders, userID)).Err()
}
