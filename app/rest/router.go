package rest

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"willvault-auth/app/cache"
	"willvault-auth/app/port"
	"willvault-auth/app/rest/handlers"
	custommw "willvault-auth/app/rest/middleware"
)

// RouterConfig holds router configuration
type RouterConfig struct {
	Logger      *slog.Logger
	Passcodes   port.PasscodeUsecase
	Registry    *cache.Registry
	Database    handlers.DatabaseChecker
	EnableDebug bool
}

// NewRouter creates and configures the Echo router
func NewRouter(config RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Debug = config.EnableDebug

	authHandler := handlers.NewAuthHandler(config.Passcodes, config.Registry, config.Logger)
	sessionHandler := handlers.NewSessionHandler(config.Registry, config.Logger)
	healthHandler := handlers.NewHealthHandler(config.Database, config.Logger)

	rateLimiter := custommw.NewRateLimiter()

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(custommw.DefaultCORS())
	e.Use(custommw.SecurityHeaders())
	e.Use(rateLimiter.RateLimit())
	e.Use(custommw.IdentityContext())

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "method=${method}, uri=${uri}, status=${status}, latency=${latency_human}, error=${error}\n",
	}))

	v1 := e.Group("/v1")

	// Health endpoints (no auth required)
	v1.GET("/health", healthHandler.HealthCheck)
	v1.GET("/ready", healthHandler.ReadinessCheck)
	v1.GET("/live", healthHandler.LivenessCheck)

	// Passcode step-up endpoints
	auth := v1.Group("/auth")
	auth.POST("/passcode", authHandler.IssuePasscode)
	auth.POST("/passcode/verify", authHandler.VerifyPasscode)
	auth.POST("/logout", authHandler.Logout)

	// Session endpoints backed by the per-session cache
	session := v1.Group("/session")
	session.GET("/me", sessionHandler.Me)
	session.POST("/refresh", sessionHandler.Refresh)

	return e
}
