// Package router contains routing setup for the HTTP delivery.
package router

import (
	"expensegst/config"
	"expensegst/internal/delivery/http/middleware"
	"expensegst/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
)

type RouterParams struct {
	fx.In

	Config         *config.Config
	AuthHandler    *handler.AuthHandler
	HealthHandler  *handler.HealthHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg            *config.Config
	authHandler    *handler.AuthHandler
	healthHandler  *handler.HealthHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:            params.Config,
		authHandler:    params.AuthHandler,
		healthHandler:  params.HealthHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint, outside the rate-limited API group.
	e.GET("/health", r.healthHandler.Health)

	api := e.Group("/api")
	api.Use(echomw.RateLimiter(newLimiterStore(r.globalRate())))

	api.GET("", r.healthHandler.Index)

	// Credential endpoints carry a stricter limiter against brute force.
	authGroup := api.Group("/auth")
	authGroup.Use(echomw.RateLimiter(newLimiterStore(r.authRate())))
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/me", r.authHandler.GetMe, r.authMiddleware.Authenticate)
	}
}

func newLimiterStore(limit rate.Limit, burst int) echomw.RateLimiterStore {
	return echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:  limit,
		Burst: burst,
	})
}

func (r *router) globalRate() (rate.Limit, int) {
	if r.cfg.RateLimit != nil && r.cfg.RateLimit.Rate > 0 {
		return rate.Limit(r.cfg.RateLimit.Rate), r.cfg.RateLimit.Burst
	}

	return rate.Limit(100), 20
}

func (r *router) authRate() (rate.Limit, int) {
	if r.cfg.RateLimit != nil && r.cfg.RateLimit.AuthRate > 0 {
		return rate.Limit(r.cfg.RateLimit.AuthRate), r.cfg.RateLimit.AuthBurst
	}

	return rate.Limit(5), 5
}
