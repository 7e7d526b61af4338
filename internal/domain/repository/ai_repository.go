package repository

import "context"

// AIRepository generative assistant used for unmatched queries
type AIRepository interface {
	// Complete sends one system instruction and one user message and returns the reply text.
	// Errors are *entity.ExternalServiceError.
	Complete(ctx context.Context, systemPrompt, message string) (string, error)

	// Provider short provider name for logs and metrics
	Provider() string
}
