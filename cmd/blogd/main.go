// Command blogd serves the blog over HTTP.
//
//	@title						Blog API
//	@version					1.0
//	@description				Posts, identities and pagination for the blog.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inkpost/blog-system/internal/api"
	"github.com/inkpost/blog-system/internal/core/service"
	"github.com/inkpost/blog-system/internal/infrastructure/config"
	"github.com/inkpost/blog-system/internal/infrastructure/db"
	"github.com/inkpost/blog-system/internal/infrastructure/db/redis"
	"github.com/inkpost/blog-system/internal/infrastructure/http/handlers"
	"github.com/inkpost/blog-system/internal/infrastructure/markdown"
	"github.com/inkpost/blog-system/internal/infrastructure/notify"
	"github.com/inkpost/blog-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "blogd:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}

	logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment(), Service: "blogd"})
	log := logger.Get()

	backend, err := db.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := backend.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("closing storage")
		}
	}()
	log.Info().Str("backend", backend.Name).Msg("storage ready")

	// Notifications are delivered off the request path.
	workers, stopWorkers := context.WithCancel(context.Background())
	dispatcher := notify.NewDispatcher(cfg.NotifyWorkers, logger.Component("notify"), notify.NewLogSink(logger.Component("notification")))
	dispatcher.Start(workers)
	defer func() {
		stopWorkers()
		dispatcher.Wait()
	}()

	now := time.Now().UTC()
	identity, err := service.NewIdentityService(backend.Store, dispatcher, service.DemoDirectory(now), logger.Component("identity"))
	if err != nil {
		return err
	}
	if err := identity.Restore(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	var contentOpts []service.ContentOption
	if cfg.SeedSamplePosts {
		contentOpts = append(contentOpts, service.WithSeed(service.SamplePosts(now)))
	}
	content := service.NewContentService(backend.Store, identity, dispatcher, logger.Component("content"), contentOpts...)
	if err := content.Load(ctx); err != nil {
		return fmt.Errorf("load posts: %w", err)
	}

	deps := api.Dependencies{
		Identity:      identity,
		Content:       content,
		Tokens:        service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Renderer:      markdown.NewRenderer(cfg.RenderSanitize),
		Probes:        map[string]handlers.Pinger{"storage:" + backend.Name: backend.Store},
		JWTSecret:     cfg.JWTSecret,
		PageSize:      cfg.PageSize,
		FeaturedCount: cfg.FeaturedCount,
		Log:           logger.Component("http"),
	}
	if backend.Redis != nil {
		deps.Idempotency = redis.NewIdempotencyKeys(backend.Redis, cfg.Redis.KeyPrefix)
	}
	if !cfg.RenderSanitize {
		log.Warn().Msg("RENDER_SANITIZE=false: raw HTML in posts is served unsanitised")
	}

	e := api.NewRouter(deps)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
