package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/dashmarket/storefront/modules/shop"
	"github.com/dashmarket/storefront/pkg/backend"
	"github.com/dashmarket/storefront/pkg/config"
	"github.com/dashmarket/storefront/pkg/guard"
	"github.com/dashmarket/storefront/pkg/httpserver"
	"github.com/dashmarket/storefront/pkg/logger"
	"github.com/dashmarket/storefront/pkg/ratelimiter"
	"github.com/dashmarket/storefront/pkg/storage"
	"github.com/dashmarket/storefront/pkg/visitor"
)

const storageCheckInterval = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.App.Env, cfg.App.Name),
		logger.WithContextExtractors(logger.RequestIDExtractor, logger.VisitorIDExtractor),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closeStorage, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := closeStorage(); err != nil {
			log.Error("failed to close storage", logger.Error(err))
		}
	}()

	routes, err := loadRoutes(cfg.RoutesFile)
	if err != nil {
		return err
	}

	visitors, err := visitor.New(cfg.Visitor)
	if err != nil {
		return fmt.Errorf("visitor cookies: %w", err)
	}

	clients, err := shop.NewClients(st, cfg.Clients.Capacity, log,
		shop.WithLoadTimeout(cfg.Clients.LoadTimeout),
	)
	if err != nil {
		return err
	}

	limiter, err := ratelimiter.New(cfg.LoginLimit)
	if err != nil {
		return err
	}

	health := storage.Healthcheck(st)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Mount("/", shop.Router(shop.Options{
		Clients:  clients,
		Backend:  backend.New(cfg.Backend),
		Visitors: visitors,
		Routes:   routes,
		Logger:   log,
		Health:   health,

		LoginLimiter: limiter,
	}))

	log.Info("starting storefront",
		slog.String("storage", cfg.Storage.Driver),
		slog.String("backend", cfg.Backend.BaseURL),
		slog.Int("routes", len(routes)),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.New(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, r)
	})
	g.Go(func() error {
		watchStorage(ctx, log, health)
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func loadRoutes(path string) ([]guard.Route, error) {
	if path == "" {
		return guard.DefaultRoutes(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open route table: %w", err)
	}
	defer f.Close()
	return guard.LoadRoutes(f)
}

// watchStorage logs when storage becomes unreachable and when it recovers.
func watchStorage(ctx context.Context, log *slog.Logger, check func(context.Context) error) {
	ticker := time.NewTicker(storageCheckInterval)
	defer ticker.Stop()

	healthy := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		err := check(ctx)
		switch {
		case err != nil && healthy:
			log.WarnContext(ctx, "storage unreachable, carts and sessions are memory-only", logger.Error(err))
		case err == nil && !healthy:
			log.InfoContext(ctx, "storage reachable again")
		}
		healthy = err == nil
	}
}
