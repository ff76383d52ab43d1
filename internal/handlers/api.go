package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ubermelon/shop/internal/cart"
	"github.com/ubermelon/shop/internal/catalog"
	"github.com/ubermelon/shop/internal/platform/httpx"
)

// APIListMelons returns the full catalog as JSON.
func (h *Handlers) APIListMelons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"melons": h.catalog.List(),
	})
}

// APIGetMelon returns one catalog item as JSON.
func (h *Handlers) APIGetMelon(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "melonID"))
	if err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_melon_id", "melon id must be an integer", http.StatusBadRequest))
		return
	}

	item, err := h.catalog.GetByID(id)
	if err != nil {
		if errors.Is(err, catalog.ErrItemNotFound) {
			httpx.WriteError(r.Context(), w, httpx.NewError("melon_not_found", fmt.Sprintf("no melon with id %d", id), http.StatusNotFound))
			return
		}
		h.logger.Error("melon lookup failed", zap.Int("id", id), zap.Error(err))
		httpx.WriteError(r.Context(), w, httpx.NewError("internal_error", "melon lookup failed", http.StatusInternalServerError))
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// APICart returns the current session's aggregated order as JSON.
func (h *Handlers) APICart(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)

	order, err := cart.Aggregate(sess.Session.Cart, h.catalog)
	if err != nil {
		h.logger.Error("cart aggregation failed", zap.Ints("cart", sess.Session.Cart), zap.Error(err))
		httpx.WriteError(r.Context(), w, httpx.NewError("cart_integrity", "cart references an unknown melon", http.StatusInternalServerError))
		return
	}

	h.saveSession(w, sess)
	writeJSON(w, http.StatusOK, order)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
