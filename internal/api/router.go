package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/inkpost/blog-system/internal/api/docs"
	"github.com/inkpost/blog-system/internal/api/handler"
	"github.com/inkpost/blog-system/internal/api/middleware"
	"github.com/inkpost/blog-system/internal/core/ports"
	"github.com/inkpost/blog-system/internal/infrastructure/http/handlers"
)

// Dependencies are the services the router exposes.
type Dependencies struct {
	Identity ports.IdentityService
	Content  ports.ContentService
	Tokens   ports.TokenIssuer
	Renderer ports.MarkdownRenderer
	// Idempotency is optional; nil disables Idempotency-Key handling.
	Idempotency ports.IdempotencyStore
	// Probes are pinged by GET /health/ready, keyed by reported name.
	Probes map[string]handlers.Pinger

	JWTSecret     string
	PageSize      int
	FeaturedCount int
	Log           zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// HTTP metrics go to a per-router registry; /metrics serves it together
	// with the default registry holding the domain metrics.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "blog",
		Subsystem:  "http",
		Registerer: reg,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Identity, deps.Tokens)
	postHandler := handler.NewPostHandler(deps.Content, deps.Renderer, handler.PostHandlerConfig{
		PageSize:      deps.PageSize,
		FeaturedCount: deps.FeaturedCount,
		Idempotency:   deps.Idempotency,
	}, deps.Log)
	authenticated := []echo.MiddlewareFunc{
		middleware.Auth(deps.JWTSecret),
		middleware.Session(deps.Identity),
	}

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authenticated...)
	e.GET("/auth/me", authHandler.Me, authenticated...)

	// --- Post routes ---
	e.GET("/posts", postHandler.List)
	e.GET("/posts/featured", postHandler.Featured)
	e.GET("/posts/:id", postHandler.Get)
	e.GET("/posts/:id/html", postHandler.HTML)
	e.GET("/me/posts", postHandler.Mine, authenticated...)
	e.POST("/posts", postHandler.Create, authenticated...)
	e.PUT("/posts/:id", postHandler.Update, authenticated...)
	e.DELETE("/posts/:id", postHandler.Delete, authenticated...)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Probes)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – is storage reachable?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, reg},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
