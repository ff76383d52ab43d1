// Package handlers wires the storefront's HTML pages and JSON API onto
// a chi router.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ubermelon/shop/internal/catalog"
	"github.com/ubermelon/shop/internal/identity"
	"github.com/ubermelon/shop/internal/platform/httpx"
	"github.com/ubermelon/shop/internal/platform/observability"
	"github.com/ubermelon/shop/internal/session"
)

const (
	apiPrefix      = "/api/v1"
	requestTimeout = 30 * time.Second
)

// Deps bundles everything the handlers need.
type Deps struct {
	Catalog  *catalog.Store
	Identity *identity.Service
	Sessions *session.Manager
	Renderer *Renderer
	Logger   *zap.Logger

	// AssetsDir, when set, is served under /assets/.
	AssetsDir string
}

// Handlers serves the storefront routes.
type Handlers struct {
	catalog   *catalog.Store
	identity  *identity.Service
	sessions  *session.Manager
	renderer  *Renderer
	logger    *zap.Logger
	assetsDir string
}

// New constructs the handler set, enforcing dependency validation.
func New(deps Deps) (*Handlers, error) {
	if deps.Catalog == nil {
		return nil, errors.New("handlers: catalog store is required")
	}
	if deps.Identity == nil {
		return nil, errors.New("handlers: identity service is required")
	}
	if deps.Sessions == nil {
		return nil, errors.New("handlers: session manager is required")
	}
	if deps.Renderer == nil {
		return nil, errors.New("handlers: renderer is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		catalog:   deps.Catalog,
		identity:  deps.Identity,
		sessions:  deps.Sessions,
		renderer:  deps.Renderer,
		logger:    logger,
		assetsDir: deps.AssetsDir,
	}, nil
}

// Router builds the chi router with shared middleware and all routes.
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.RequestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	if h.assetsDir != "" {
		assets := http.StripPrefix("/assets/", http.FileServer(http.Dir(h.assetsDir)))
		r.Handle("/assets/*", assets)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/", h.Home)
	r.Get("/melons", h.ListMelons)
	r.Get("/melons/{melonID}", h.ShowMelon)
	r.Get("/cart", h.ShowCart)
	r.Post("/cart/items/{melonID}", h.AddToCart)
	r.Get("/login", h.LoginForm)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Post("/checkout", h.Checkout)

	r.Route(apiPrefix, func(api chi.Router) {
		api.Get("/melons", h.APIListMelons)
		api.Get("/melons/{melonID}", h.APIGetMelon)
		api.Get("/cart", h.APICart)

		api.NotFound(func(w http.ResponseWriter, req *http.Request) {
			httpx.WriteError(req.Context(), w, httpx.NewError("route_not_found", fmt.Sprintf("no route for %s", req.URL.Path), http.StatusNotFound))
		})
		api.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
			httpx.WriteError(req.Context(), w, httpx.NewError("method_not_allowed", fmt.Sprintf("method %s not allowed on %s", req.Method, req.URL.Path), http.StatusMethodNotAllowed))
		})
	})

	return r
}

// saveSession persists the session cookie, logging rather than failing
// the request on encode errors.
func (h *Handlers) saveSession(w http.ResponseWriter, data *session.Data) {
	if err := h.sessions.Save(w, data); err != nil {
		h.logger.Error("session save failed", zap.Error(err))
	}
}
