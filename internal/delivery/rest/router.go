// Package rest exposes the chat pipeline and catalog views over HTTP.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/yourusername/store-assistant/internal/observability"
	"github.com/yourusername/store-assistant/internal/usecase"
)

// RouterConfig dependencies of the HTTP surface
type RouterConfig struct {
	Chat        usecase.ChatUseCase
	Products    usecase.ProductUseCase
	Metrics     *observability.Metrics
	Logger      zerolog.Logger
	CORSOrigins []string
}

// NewRouter creates the API router with every route configured.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(CORS(cfg.CORSOrigins))

	h := NewHandler(cfg.Chat, cfg.Products, cfg.Logger)

	r.Get("/health", h.Health)
	r.Post("/chat", h.Chat)
	r.Get("/trending", h.Trending)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	return r
}
