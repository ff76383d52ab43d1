package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ubermelon/shop/internal/catalog"
	"github.com/ubermelon/shop/internal/session"
)

// Home renders the landing page.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	vm := h.pageData("Ubermelon", sess)
	h.saveSession(w, sess)
	h.renderer.Render(w, "page_home", vm)
}

// ListMelons renders the catalog listing.
func (h *Handlers) ListMelons(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	vm := h.pageData("All melons", sess)
	vm.Items = h.itemViews(h.catalog.List())
	h.saveSession(w, sess)
	h.renderer.Render(w, "page_melons", vm)
}

// ShowMelon renders the detail page for one melon.
func (h *Handlers) ShowMelon(w http.ResponseWriter, r *http.Request) {
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
	vm := h.pageData(item.CommonName, sess)
	view := h.itemView(item)
	vm.Item = &view
	h.saveSession(w, sess)
	h.renderer.Render(w, "page_melon_detail", vm)
}

// pageData assembles the shared view model and drains flash messages.
func (h *Handlers) pageData(title string, sess *session.Data) pageData {
	return pageData{
		Title:     title,
		Email:     sess.Session.Email,
		Flashes:   sess.ConsumeFlashes(),
		CartUnits: len(sess.Session.Cart),
	}
}
