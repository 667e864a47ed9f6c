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
	"github.com/npc2425/wiprotrainjul2025/internal/inventory"
	"github.com/npc2425/wiprotrainjul2025/internal/redisx"
)

type ProductsHandler struct {
	Repo   *inventory.Repo
	Ledger inventory.StockAdjuster
	Redis  *redis.Client
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Route("/product", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Get("/{id}", h.getProduct)
		r.With(auth.RequireRole(auth.RoleAdmin)).Post("/", h.addProduct)
		r.With(auth.RequireRole(auth.RoleAdmin)).Put("/{id}", h.updateProduct)
		r.With(auth.RequireRole(auth.RoleAdmin)).Delete("/{id}", h.deleteProduct)
		r.With(auth.RequireRole(auth.RoleAdmin)).Put("/stock", h.adjustStock)
	})
}

func (h *ProductsHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Repo.List(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []inventory.Product{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ProductsHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	key := fmt.Sprintf(redisx.KeyProduct, id)
	if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(s))
		return
	}

	p, err := h.Repo.Get(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if b, err := json.Marshal(p); err == nil {
		_ = h.Redis.Set(ctx, key, b, redisx.TTLProductCache).Err()
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) addProduct(w http.ResponseWriter, r *http.Request) {
	var p inventory.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if p.Name == "" || p.AvailableQty < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing name or negative qty"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	out, err := h.Repo.Add(ctx, p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *ProductsHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	var p inventory.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	out, err := h.Repo.Update(ctx, id, p)
	if err != nil {
		writeError(w, err)
		return
	}
	h.invalidate(ctx, id)
	writeJSON(w, http.StatusOK, out)
}

func (h *ProductsHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Repo.Delete(ctx, id); err != nil {
		writeError(w, err)
		return
	}
	h.invalidate(ctx, id)
	w.WriteHeader(http.StatusNoContent)
}

// adjustStock is the manual operator path onto the same atomic ledger
// operation the event consumer uses.
func (h *ProductsHandler) adjustStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID int64 `json:"productId"`
		Delta     int   `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	newQty, err := h.Ledger.AdjustStock(ctx, req.ProductID, req.Delta)
	if err != nil {
		writeError(w, err)
		return
	}
	h.invalidate(ctx, req.ProductID)
	writeJSON(w, http.StatusOK, map[string]any{"productId": req.ProductID, "available_qty": newQty})
}

func (h *ProductsHandler) invalidate(ctx context.Context, productID int64) {
	_ = h.Redis.Del(ctx, fmt.Sprintf(redisx.KeyProduct, productID)).Err()
}
