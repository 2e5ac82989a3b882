package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/soulflow/wellness-platform/internal/api/handler"
	"github.com/soulflow/wellness-platform/internal/api/middleware"
	"github.com/soulflow/wellness-platform/internal/core/service"
	"github.com/soulflow/wellness-platform/internal/infrastructure/http/handlers"
	"github.com/soulflow/wellness-platform/internal/pkg/config"

	mongodb "github.com/soulflow/wellness-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/soulflow/wellness-platform/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("soulflow"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowCredentials: true,
	}))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	sessionRepo := mongodb.NewSessionRepository(db)
	limiter := redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)

	authService := service.NewAuthService(userRepo, limiter, cfg.JWTSecret, cfg.JWTTTL, log)
	sessionService := service.NewSessionService(sessionRepo, userRepo, log)

	cookies := handler.CookieConfig{
		Name:   cfg.AuthCookie,
		TTL:    cfg.JWTTTL,
		Secure: cfg.IsProduction(),
	}
	authHandler := handler.NewAuthHandler(authService, cookies)
	sessionHandler := handler.NewSessionHandler(sessionService)

	authGuard := middleware.Auth(cfg.JWTSecret, cfg.AuthCookie)
	optionalGuard := middleware.OptionalAuth(cfg.JWTSecret, cfg.AuthCookie)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, authGuard)
	auth.GET("/me", authHandler.Me, authGuard)

	// --- Session routes ---
	// Static my-sessions routes must be registered so they win over /:id.
	sessions := e.Group("/api/sessions")
	sessions.GET("", sessionHandler.ListPublic, optionalGuard)
	sessions.GET("/my-sessions", sessionHandler.ListMine, authGuard)
	sessions.GET("/my-sessions/:id", sessionHandler.GetMine, authGuard)
	sessions.POST("/my-sessions/save-draft", sessionHandler.SaveDraft, authGuard)
	sessions.POST("/my-sessions/publish", sessionHandler.Publish, authGuard)
	sessions.GET("/:id", sessionHandler.GetPublic, optionalGuard)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operational surface ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
