// Package openai answers unmatched queries with the OpenAI chat completions API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/yourusername/store-assistant/internal/domain/entity"
	"github.com/yourusername/store-assistant/internal/domain/repository"
)

const (
	providerName = "openai"

	// DefaultModel chat model used when none is configured
	DefaultModel = openai.GPT3Dot5Turbo
)

var (
	errNoAPIKey  = errors.New("OPENAI_API_KEY is not set")
	errNoChoices = errors.New("response has no choices")
)

// Config client settings. BaseURL is only needed for proxies and tests.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

type openAIClient struct {
	client *openai.Client
	model  string
	hasKey bool
}

// NewOpenAIClient builds the client without contacting the API.
// A missing key is reported on the first Complete call.
func NewOpenAIClient(cfg Config) repository.AIRepository {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &openAIClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
		hasKey: cfg.APIKey != "",
	}
}

// Complete one system message plus one user message, single attempt
func (o *openAIClient) Complete(ctx context.Context, systemPrompt, message string) (string, error) {
	if !o.hasKey {
		return "", &entity.ExternalServiceError{Provider: providerName, Kind: entity.KindAuth, Err: errNoAPIKey}
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	})
	if err != nil {
		return "", &entity.ExternalServiceError{Provider: providerName, Kind: classify(err), Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &entity.ExternalServiceError{Provider: providerName, Kind: entity.KindMalformed, Err: errNoChoices}
	}

	return resp.Choices[0].Message.Content, nil
}

// Provider short name
func (o *openAIClient) Provider() string {
	return providerName
}

func classify(err error) entity.ErrorKind {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if code, ok := apiErr.Code.(string); ok && code == "insufficient_quota" {
			return entity.KindQuota
		}
		return statusKind(apiErr.HTTPStatusCode)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if kind, ok := entity.TransportKind(reqErr.Err); ok {
			return kind
		}
		if reqErr.HTTPStatusCode >= http.StatusOK && reqErr.HTTPStatusCode < http.StatusMultipleChoices {
			return entity.KindMalformed
		}
		return statusKind(reqErr.HTTPStatusCode)
	}

	if kind, ok := entity.TransportKind(err); ok {
		return kind
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return entity.KindMalformed
	}
	return entity.KindUnknown
}

func statusKind(status int) entity.ErrorKind {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return entity.KindAuth
	case status == http.StatusTooManyRequests:
		return entity.KindQuota
	case status == http.StatusGatewayTimeout, status == http.StatusRequestTimeout:
		return entity.KindTimeout
	case status >= http.StatusInternalServerError:
		return entity.KindNetwork
	default:
		return entity.KindUnknown
	}
}

