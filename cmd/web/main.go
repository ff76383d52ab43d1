package main

import (
	"context"
	"crypto/rand"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ubermelon/shop/internal/catalog"
	"github.com/ubermelon/shop/internal/customers"
	"github.com/ubermelon/shop/internal/handlers"
	"github.com/ubermelon/shop/internal/identity"
	"github.com/ubermelon/shop/internal/platform/config"
	"github.com/ubermelon/shop/internal/platform/observability"
	"github.com/ubermelon/shop/internal/session"
)

func main() {
	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()
	logger := baseLogger.Named("web")

	var addrFlag string
	flag.StringVar(&addrFlag, "addr", "", "HTTP listen address (overrides SHOP_ADDR)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	if addrFlag != "" {
		cfg.Server.Addr = addrFlag
	}

	catalogStore, err := catalog.LoadFile(cfg.Data.CatalogPath)
	if err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}
	logger.Info("catalog loaded", zap.String("path", cfg.Data.CatalogPath), zap.Int("melons", catalogStore.Len()))

	customerStore, err := customers.LoadFile(cfg.Data.CustomersPath)
	if err != nil {
		logger.Fatal("failed to load customers", zap.Error(err))
	}
	logger.Info("customers loaded", zap.String("path", cfg.Data.CustomersPath), zap.Int("customers", customerStore.Len()))

	hashKey := []byte(cfg.Session.HashKey)
	if len(hashKey) == 0 {
		hashKey = make([]byte, 32)
		if _, err := rand.Read(hashKey); err != nil {
			logger.Fatal("failed to generate session hash key", zap.Error(err))
		}
		logger.Warn("using ephemeral session hash key; set SHOP_SESSION_HASH_KEY for production")
	}
	var blockKey []byte
	if cfg.Session.BlockKey != "" {
		blockKey = []byte(cfg.Session.BlockKey)
	}

	sessions, err := session.NewManager(session.Config{
		CookieName:   cfg.Session.CookieName,
		HashKey:      hashKey,
		BlockKey:     blockKey,
		CookieSecure: cfg.Session.Secure,
	})
	if err != nil {
		logger.Fatal("failed to initialise session manager", zap.Error(err))
	}

	identitySvc, err := identity.NewService(identity.ServiceDeps{
		Credentials: customerStore,
		Logger:      logger.Named("identity"),
	})
	if err != nil {
		logger.Fatal("failed to initialise identity service", zap.Error(err))
	}

	renderer, err := handlers.NewRenderer(cfg.Server.TemplatesDir)
	if err != nil {
		logger.Fatal("failed to parse templates", zap.Error(err))
	}

	h, err := handlers.New(handlers.Deps{
		Catalog:   catalogStore,
		Identity:  identitySvc,
		Sessions:  sessions,
		Renderer:  renderer,
		Logger:    logger,
		AssetsDir: cfg.Server.AssetsDir,
	})
	if err != nil {
		logger.Fatal("failed to initialise handlers", zap.Error(err))
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      h.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("ubermelon storefront listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
