package handlers

import (
	"fmt"
	"net/http"

	"github.com/oklog/ulid/v2"
)

// Checkout is a stub: payment and fulfilment are out of scope. It mints
// a draft order reference for the flash message and leaves the cart
// untouched.
func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)

	ref := ulid.Make().String()
	sess.Flash(fmt.Sprintf("Sorry! Checkout will be implemented in a future version (draft order %s).", ref))
	sess.MarkDirty()
	h.saveSession(w, sess)

	http.Redirect(w, r, "/melons", http.StatusSeeOther)
}
