package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/yourusername/store-assistant/internal/domain/entity"
	"github.com/yourusername/store-assistant/internal/domain/repository"
	"github.com/yourusername/store-assistant/internal/observability"
)

// ChatUseCase resolves one shopper message into a reply
type ChatUseCase interface {
	// Resolve runs keyword, fuzzy and fallback tiers in order and stops at the first hit
	Resolve(ctx context.Context, raw string) entity.Resolution

	// ProcessMessage reply text only
	ProcessMessage(ctx context.Context, raw string) string
}

type chatUseCase struct {
	catalog   repository.CatalogRepository
	keyword   repository.Matcher
	fuzzy     repository.Matcher
	fallback  FallbackDispatcher
	formatter ResponseFormatter
	logger    zerolog.Logger
	metrics   *observability.Metrics
}

// ChatDeps collaborators of the chat pipeline
type ChatDeps struct {
	Catalog   repository.CatalogRepository
	Keyword   repository.Matcher
	Fuzzy     repository.Matcher
	Fallback  FallbackDispatcher
	Formatter ResponseFormatter
	Logger    zerolog.Logger
	Metrics   *observability.Metrics
}

// NewChatUseCase wires the tiers. Both matchers are required.
func NewChatUseCase(deps ChatDeps) ChatUseCase {
	return &chatUseCase{
		catalog:   deps.Catalog,
		keyword:   deps.Keyword,
		fuzzy:     deps.Fuzzy,
		fallback:  deps.Fallback,
		formatter: deps.Formatter,
		logger:    deps.Logger.With().Str("component", "pipeline").Logger(),
		metrics:   deps.Metrics,
	}
}

// Resolve never fails, the fallback tier always produces text
func (u *chatUseCase) Resolve(ctx context.Context, raw string) entity.Resolution {
	started := time.Now()
	query := entity.NewQuery(raw)

	res := u.resolve(ctx, query)

	elapsed := time.Since(started)
	u.metrics.ObserveResolution(string(res.Tier), elapsed)
	evt := u.logger.Debug().
		Str("tier", string(res.Tier)).
		Int("tokens", len(query.Tokens)).
		Dur("elapsed", elapsed)
	if res.Product != nil {
		evt = evt.Str("product", res.Product.Name)
	}
	evt.Msg("query resolved")

	return res
}

// ProcessMessage reply text of Resolve
func (u *chatUseCase) ProcessMessage(ctx context.Context, raw string) string {
	return u.Resolve(ctx, raw).Reply
}

func (u *chatUseCase) resolve(ctx context.Context, query entity.Query) entity.Resolution {
	tiers := []struct {
		tier    entity.Tier
		matcher repository.Matcher
	}{
		{entity.TierKeyword, u.keyword},
		{entity.TierFuzzy, u.fuzzy},
	}

	for _, t := range tiers {
		product, err := t.matcher.Match(u.catalog, query)
		if err == nil {
			return entity.Resolution{
				Reply:   u.formatter.Format(product),
				Tier:    t.tier,
				Product: &product,
			}
		}
		if !errors.Is(err, entity.ErrNoMatch) {
			u.logger.Error().Err(err).Str("tier", string(t.tier)).Msg("matcher failed, trying next tier")
		}
	}

	return entity.Resolution{
		Reply: u.fallback.Dispatch(ctx, query.Raw),
		Tier:  entity.TierFallback,
	}
}
