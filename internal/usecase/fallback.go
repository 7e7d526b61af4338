package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yourusername/store-assistant/internal/domain/entity"
	"github.com/yourusername/store-assistant/internal/domain/repository"
	"github.com/yourusername/store-assistant/internal/observability"
)

// SystemPrompt persona sent with every fallback request
const SystemPrompt = "You are a helpful retail assistant for a smart store. " +
	"You help users locate products, tell them aisle numbers, give availability info, " +
	"and make product suggestions using friendly and clear language."

// ErrorReplyPrefix starts every reply built from a failed assistant call
const ErrorReplyPrefix = "Assistant error: "

// FallbackDispatcher answers queries the catalog could not
type FallbackDispatcher interface {
	// Dispatch always returns reply text, failures included
	Dispatch(ctx context.Context, raw string) string
}

type fallbackDispatcher struct {
	aiRepo  repository.AIRepository
	timeout time.Duration
	logger  zerolog.Logger
	metrics *observability.Metrics
}

// NewFallbackDispatcher timeout <= 0 leaves only the caller's context deadline
func NewFallbackDispatcher(
	aiRepo repository.AIRepository,
	timeout time.Duration,
	logger zerolog.Logger,
	metrics *observability.Metrics,
) FallbackDispatcher {
	return &fallbackDispatcher{
		aiRepo:  aiRepo,
		timeout: timeout,
		logger:  logger.With().Str("component", "fallback").Str("provider", aiRepo.Provider()).Logger(),
		metrics: metrics,
	}
}

// Dispatch sends the raw message once. Errors and panics become reply text.
func (d *fallbackDispatcher) Dispatch(ctx context.Context, raw string) (reply string) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			err := &entity.ExternalServiceError{
				Provider: d.aiRepo.Provider(),
				Kind:     entity.KindUnknown,
				Err:      fmt.Errorf("panic: %v", r),
			}
			reply = d.failure(err)
		}
	}()

	text, err := d.aiRepo.Complete(ctx, SystemPrompt, raw)
	if err != nil {
		return d.failure(asServiceError(d.aiRepo.Provider(), err))
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return d.failure(&entity.ExternalServiceError{
			Provider: d.aiRepo.Provider(),
			Kind:     entity.KindMalformed,
			Err:      errors.New("empty completion"),
		})
	}
	return text
}

func (d *fallbackDispatcher) failure(err *entity.ExternalServiceError) string {
	d.metrics.ObserveFallbackError(string(err.Kind))
	d.logger.Warn().Err(err.Err).Str("kind", string(err.Kind)).Msg("assistant call failed")
	return ErrorReplyPrefix + err.Error()
}

// asServiceError keeps provider errors as they are and classifies anything else
func asServiceError(provider string, err error) *entity.ExternalServiceError {
	var svcErr *entity.ExternalServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	kind, ok := entity.TransportKind(err)
	if !ok {
		kind = entity.KindUnknown
	}
	return &entity.ExternalServiceError{Provider: provider, Kind: kind, Err: err}
}
