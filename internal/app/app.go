// Package app builds the object graph once at startup.
package app

import (
	"context"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/yourusername/store-assistant/config"
	"github.com/yourusername/store-assistant/internal/delivery/rest"
	"github.com/yourusername/store-assistant/internal/domain/repository"
	"github.com/yourusername/store-assistant/internal/infrastructure/gemini"
	"github.com/yourusername/store-assistant/internal/infrastructure/openai"
	"github.com/yourusername/store-assistant/internal/infrastructure/search"
	"github.com/yourusername/store-assistant/internal/infrastructure/storage"
	"github.com/yourusername/store-assistant/internal/observability"
	"github.com/yourusername/store-assistant/internal/usecase"
)

// App immutable after New, safe for concurrent use
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Metrics  *observability.Metrics
	Catalog  repository.CatalogRepository
	Chat     usecase.ChatUseCase
	Products usecase.ProductUseCase

	assistant repository.AIRepository
}

// Options replaceable collaborators, zero values mean the production ones
type Options struct {
	Loader    repository.CatalogLoader
	Assistant repository.AIRepository
}

// New loads the catalog and wires every tier. Only a catalog failure is fatal.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger, opts Options) (*App, error) {
	metrics := observability.NewMetrics()

	loader := opts.Loader
	if loader == nil {
		loader = storage.NewCatalogLoader(logger)
	}
	loaded, err := loader.Load(ctx, cfg.Catalog.Source)
	if err != nil {
		return nil, err
	}
	catalog := storage.NewMemoryCatalogRepository(loaded)
	metrics.SetCatalogSize(catalog.Len())

	assistant := opts.Assistant
	if assistant == nil {
		assistant = NewAssistant(cfg.Assistant)
	}
	logger.Info().
		Str("provider", assistant.Provider()).
		Bool("credential_set", cfg.APIKey() != "").
		Dur("timeout", cfg.Assistant.Timeout).
		Msg("assistant configured")

	chat := usecase.NewChatUseCase(usecase.ChatDeps{
		Catalog:   catalog,
		Keyword:   search.NewKeywordMatcher(),
		Fuzzy:     search.NewFuzzyMatcher(search.DefaultCutoff),
		Fallback:  usecase.NewFallbackDispatcher(assistant, cfg.Assistant.Timeout, logger, metrics),
		Formatter: usecase.NewResponseFormatter(cfg.Catalog.Currency),
		Logger:    logger,
		Metrics:   metrics,
	})

	return &App{
		Config:    cfg,
		Logger:    logger,
		Metrics:   metrics,
		Catalog:   catalog,
		Chat:      chat,
		Products:  usecase.NewProductUseCase(catalog),
		assistant: assistant,
	}, nil
}

// NewAssistant the configured provider. No network access happens here.
func NewAssistant(cfg config.AssistantConfig) repository.AIRepository {
	if cfg.Provider == config.ProviderGemini {
		return gemini.NewGeminiClient(gemini.Config{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.Model,
		})
	}
	return openai.NewOpenAIClient(openai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.Model,
		BaseURL: cfg.OpenAIBaseURL,
	})
}

// Router HTTP handler with every route
func (a *App) Router() http.Handler {
	return rest.NewRouter(rest.RouterConfig{
		Chat:        a.Chat,
		Products:    a.Products,
		Metrics:     a.Metrics,
		Logger:      a.Logger,
		CORSOrigins: a.Config.Server.CORSOrigins,
	})
}

// Close releases the assistant client when it holds one
func (a *App) Close() error {
	if c, ok := a.assistant.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
