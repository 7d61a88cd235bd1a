package router

import (
	"fmt"
	"log/slog"

	"moviehub/internal/microservices/http-api/handler"
	"moviehub/internal/microservices/http-api/middleware"
	"moviehub/internal/microservices/http-api/service"
	"moviehub/internal/microservices/http-api/templates"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Movies  service.MovieService
	Ping    handler.PingFunc
	Limiter *middleware.RateLimiter // nil disables rate limiting
	Logger  *slog.Logger

	// TrustedProxies may set X-Forwarded-For; with none the peer address is the client IP
	TrustedProxies []string
}

// New builds the gin engine with templates, middleware and every route.
func New(deps Deps) (*gin.Engine, error) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	tmpl, err := templates.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	if err := r.SetTrustedProxies(deps.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.SetHTMLTemplate(tmpl)
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(gin.Recovery())
	if deps.Limiter != nil {
		r.Use(deps.Limiter.Middleware())
	}

	handler.NewMovieHandler(deps.Movies, deps.Logger).RegisterRoutes(r)
	if deps.Ping != nil {
		handler.NewHealthHandler(deps.Ping).RegisterRoutes(r)
	}

	return r, nil
}
