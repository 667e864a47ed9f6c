package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/npc2425/wiprotrainjul2025/internal/auth"
	"github.com/npc2425/wiprotrainjul2025/internal/cart"
)

type CartHandler struct {
	Repo *cart.Repo
}

func (h *CartHandler) Register(r *chi.Mux) {
	r.Route("/cart", func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Get("/{userId}", h.viewCart)
		r.Post("/{userId}/add", h.addItem)
		r.Put("/{userId}/update/{productId}", h.updateQty)
		r.Delete("/{userId}/delete/{productId}", h.removeItem)
	})
}

// cart routes are owner-only (admins included, matching order reads)
func (h *CartHandler) ownerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	caller, _ := auth.FromContext(r.Context())
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return 0, false
	}
	if !caller.CanAccessUser(userID) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
		return 0, false
	}
	return userID, true
}

func (h *CartHandler) viewCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ownerID(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.Repo.GetOrCreate(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ownerID(w, r)
	if !ok {
		return
	}
	var it cart.Item
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if it.ProductID == 0 || it.Qty <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing product or qty"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.Repo.AddItem(ctx, userID, it)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CartHandler) updateQty(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ownerID(w, r)
	if !ok {
		return
	}
	productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	qty, err := strconv.Atoi(r.URL.Query().Get("quantity"))
	if err != nil || qty <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid quantity"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.Repo.UpdateItemQty(ctx, userID, productID, qty)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ownerID(w, r)
	if !ok {
		return
	}
	productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.Repo.RemoveItem(ctx, userID, productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
