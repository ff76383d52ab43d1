package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ubermelon/shop/internal/cart"
	"github.com/ubermelon/shop/internal/catalog"
)

// ShowCart renders the aggregated cart page.
func (h *Handlers) ShowCart(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)

	order, err := cart.Aggregate(sess.Session.Cart, h.catalog)
	if err != nil {
		// A cart id missing from the catalog is a data-integrity fault,
		// not a user error. Surface it instead of dropping the line.
		h.logger.Error("cart aggregation failed", zap.Ints("cart", sess.Session.Cart), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	vm := h.pageData("Shopping cart", sess)
	vm.Order = orderViewOf(order)
	h.saveSession(w, sess)
	h.renderer.Render(w, "page_cart", vm)
}

// AddToCart appends one unit of the melon to the session cart and
// redirects to the cart page.
func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "melonID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	item, err := h.catalog.GetByID(id)
	if err != nil {
		if errors.Is(err, catalog.ErrItemNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("melon lookup failed", zap.Int("id", id), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	sess := h.sessions.Load(r)
	sess.Session.AddItem(item.ID)
	sess.Flash(fmt.Sprintf("%s successfully added to cart.", item.CommonName))
	sess.MarkDirty()
	h.saveSession(w, sess)

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
