package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/aurorastore/shop-backend/docs"
	"github.com/aurorastore/shop-backend/internal/api/handler"
	"github.com/aurorastore/shop-backend/internal/api/middleware"
	"github.com/aurorastore/shop-backend/internal/core/domain"
	"github.com/aurorastore/shop-backend/internal/core/ports"
	"github.com/aurorastore/shop-backend/internal/core/service"
	"github.com/aurorastore/shop-backend/internal/infrastructure/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil when the replay guard is disabled; notifier may be nil when
// bot notifications are off.
func NewRouter(cfg *config.Config, store ports.Store, guard service.ReplayGuard, notifier ports.Notifier, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Dependencies ---
	tokens := service.NewTokenSource()
	authService := service.NewAuthService(store, guard, cfg.BotToken, cfg.AdminHandle, cfg.SessionSecret, 24*time.Hour, log)
	projectionService := service.NewProjectionService(store, log)
	orderService := service.NewOrderService(store, tokens, log)
	ticketService := service.NewTicketService(store, tokens, notifier, log)

	authHandler := handler.NewAuthHandler(authService)
	dataHandler := handler.NewDataHandler(projectionService)
	orderHandler := handler.NewOrderHandler(orderService)
	ticketHandler := handler.NewTicketHandler(ticketService)
	adminHandler := handler.NewAdminHandler(ticketService)

	// --- Auth routes ---
	e.GET("/auth/telegram/callback", authHandler.Callback)

	// --- API routes ---
	apiGroup := e.Group("/api", middleware.Session(cfg.SessionSecret))
	apiGroup.GET("/data/:userId", dataHandler.Get)
	apiGroup.POST("/orders", orderHandler.Create)
	apiGroup.PUT("/orders/:orderId", orderHandler.Update)
	apiGroup.POST("/tickets", ticketHandler.Create)
	apiGroup.POST("/tickets/:ticketId/reply", ticketHandler.Reply)

	adminGroup := apiGroup.Group("/admin")
	if cfg.EnforceSessions {
		adminGroup.Use(middleware.RequireSession(cfg.SessionSecret), middleware.RBAC(domain.RoleAdmin))
	}
	adminGroup.POST("/message", adminHandler.Message)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(store, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
