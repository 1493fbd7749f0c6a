package rest

import (
	"net/http"

	"github.com/resourcegate/resourcegate/internal/api/rest/middlewares"
)

type RouterConfig struct {
	SignInHandler            http.Handler
	DecisionHandler          http.Handler
	AuthenticationMiddleware middlewares.Middleware
}

// NewMuxWithHandlers initializes a new HTTP mux with routes defined by the given RouterConfig.
func NewMuxWithHandlers(cfg *RouterConfig) *http.ServeMux {
	router := http.NewServeMux()

	router.Handle("POST /auth/signin", cfg.SignInHandler)
	router.Handle("POST /v1/decisions", cfg.AuthenticationMiddleware.Handle(cfg.DecisionHandler))

	return router
}
