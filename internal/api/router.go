package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/ecosphere/ecosphere-api/docs"
	"github.com/ecosphere/ecosphere-api/internal/api/handler"
	"github.com/ecosphere/ecosphere-api/internal/api/middleware"
	"github.com/ecosphere/ecosphere-api/internal/core/domain"
	"github.com/ecosphere/ecosphere-api/internal/core/ports"
	"github.com/ecosphere/ecosphere-api/internal/infrastructure/http/handlers"
)

// Deps carries everything the router needs to register routes.
type Deps struct {
	Auth        ports.AuthService
	Actions     ports.ActionService
	Reminders   ports.ReminderService
	Events      ports.EventService
	Impact      ports.ImpactService
	Leaderboard ports.LeaderboardService
	Receipts    ports.ReceiptService
	Recompute   ports.RecomputeService

	Mongo     *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Logger    zerolog.Logger

	// Metrics defaults to the global Prometheus registerer. Tests inject
	// a private registry so multiple routers can coexist in one process.
	Metrics prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	registerer := deps.Metrics
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "ecosphere",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	actionHandler := handler.NewActionHandler(deps.Actions)
	reminderHandler := handler.NewReminderHandler(deps.Reminders)
	eventHandler := handler.NewEventHandler(deps.Events)
	impactHandler := handler.NewImpactHandler(deps.Impact)
	leaderboardHandler := handler.NewLeaderboardHandler(deps.Leaderboard)
	receiptHandler := handler.NewReceiptHandler(deps.Receipts)
	adminHandler := handler.NewAdminHandler(deps.Recompute)

	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Health probes and operational surfaces (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/refresh", authHandler.Refresh)

	// --- Authenticated API ---
	apiGroup := e.Group("/api", authMiddleware)

	apiGroup.GET("/auth/profile", authHandler.Profile)
	apiGroup.PATCH("/auth/profile", authHandler.UpdateProfile)

	apiGroup.POST("/actions", actionHandler.Create)
	apiGroup.GET("/actions", actionHandler.List)
	apiGroup.GET("/actions/:id", actionHandler.Get)
	apiGroup.PUT("/actions/:id", actionHandler.Update)
	apiGroup.DELETE("/actions/:id", actionHandler.Delete)

	apiGroup.POST("/reminders", reminderHandler.Create)
	apiGroup.GET("/reminders", reminderHandler.List)
	apiGroup.GET("/reminders/:id", reminderHandler.Get)
	apiGroup.PUT("/reminders/:id", reminderHandler.Update)
	apiGroup.DELETE("/reminders/:id", reminderHandler.Delete)

	apiGroup.POST("/events", eventHandler.Create)
	apiGroup.GET("/events", eventHandler.List)
	apiGroup.GET("/events/:id", eventHandler.Get)
	apiGroup.PUT("/events/:id", eventHandler.Update)
	apiGroup.DELETE("/events/:id", eventHandler.Delete)
	apiGroup.POST("/events/:id/join", eventHandler.Join)
	apiGroup.POST("/events/:id/complete", eventHandler.Complete)
	apiGroup.POST("/events/:id/cancel", eventHandler.Cancel)

	apiGroup.GET("/impact", impactHandler.Summary)
	apiGroup.GET("/leaderboard", leaderboardHandler.Top)
	apiGroup.POST("/uploads/receipt", receiptHandler.Upload)

	// --- Admin routes ---
	adminGroup := apiGroup.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	adminGroup.POST("/recompute", adminHandler.Recompute)

	return e
}
