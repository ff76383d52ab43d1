package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ubermelon/shop/internal/identity"
)

// LoginForm renders the login page.
func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	vm := h.pageData("Log in", sess)
	h.saveSession(w, sess)
	h.renderer.Render(w, "page_login", vm)
}

// Login authenticates the submitted credentials. Failures flash the
// rejection reason and leave the session identity unchanged.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	sess := h.sessions.Load(r)

	customer, err := h.identity.Login(&sess.Session, email, password)
	switch {
	case errors.Is(err, identity.ErrUnknownEmail):
		sess.Flash("No such email.")
		sess.MarkDirty()
		h.saveSession(w, sess)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	case errors.Is(err, identity.ErrBadCredential):
		sess.Flash("Incorrect password.")
		sess.MarkDirty()
		h.saveSession(w, sess)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	case err != nil:
		h.logger.Error("login failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	sess.Flash("Login successful. Welcome back, " + customer.FirstName + ".")
	sess.MarkDirty()
	h.saveSession(w, sess)
	http.Redirect(w, r, "/melons", http.StatusSeeOther)
}

// Logout detaches the identity. Logging out while anonymous is a no-op
// rather than an error; the cart survives either way.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	h.identity.Logout(&sess.Session)
	sess.Flash("Logout successful.")
	sess.MarkDirty()
	h.saveSession(w, sess)
	http.Redirect(w, r, "/melons", http.StatusSeeOther)
}
