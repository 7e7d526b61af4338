package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/yourusername/store-assistant/internal/domain/entity"
	"github.com/yourusername/store-assistant/internal/domain/repository"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	providerName = "gemini"

	// DefaultModel model used when none is configured
	DefaultModel = "gemini-2.0-flash"
)

var (
	errNoAPIKey     = errors.New("GEMINI_API_KEY is not set")
	errNoCandidates = errors.New("no response candidates")
)

// Config client settings. Endpoint and HTTPClient are only needed for proxies and tests.
type Config struct {
	APIKey     string
	Model      string
	Endpoint   string
	HTTPClient *http.Client
}

type geminiClient struct {
	apiKey     string
	modelName  string
	endpoint   string
	httpClient *http.Client

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiClient prepares a Gemini client. The SDK client is created on the first call.
func NewGeminiClient(cfg Config) repository.AIRepository {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &geminiClient{
		apiKey:     cfg.APIKey,
		modelName:  model,
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		httpClient: cfg.HTTPClient,
	}
}

// Complete one generation with the system instruction, single attempt
func (g *geminiClient) Complete(ctx context.Context, systemPrompt, message string) (string, error) {
	client, err := g.sdk(ctx)
	if err != nil {
		return "", err
	}

	// fresh model per call, SystemInstruction must not be shared between goroutines
	model := client.GenerativeModel(g.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(message))
	if err != nil {
		return "", &entity.ExternalServiceError{Provider: providerName, Kind: classify(err), Err: fmt.Errorf("generate content: %w", err)}
	}

	if len(resp.Candidates) == 0 {
		return "", &entity.ExternalServiceError{Provider: providerName, Kind: entity.KindMalformed, Err: errNoCandidates}
	}

	return extractText(resp), nil
}

// Provider short name
func (g *geminiClient) Provider() string {
	return providerName
}

// Close releases the SDK client if one was created
func (g *geminiClient) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client == nil {
		return nil
	}
	err := g.client.Close()
	g.client = nil
	return err
}

func (g *geminiClient) sdk(ctx context.Context) (*genai.Client, error) {
	if g.apiKey == "" {
		return nil, &entity.ExternalServiceError{Provider: providerName, Kind: entity.KindAuth, Err: errNoAPIKey}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}

	opts := []option.ClientOption{option.WithAPIKey(g.apiKey)}
	if g.endpoint != "" {
		opts = append(opts, option.WithEndpoint(g.endpoint))
	}
	if g.httpClient != nil {
		opts = append(opts, option.WithHTTPClient(g.httpClient))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, &entity.ExternalServiceError{Provider: providerName, Kind: classify(err), Err: fmt.Errorf("create client: %w", err)}
	}
	g.client = client
	return client, nil
}

// extractText joins the text parts of every candidate
func extractText(resp *genai.GenerateContentResponse) string {
	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				result.WriteString(string(text))
			}
		}
	}
	return result.String()
}

func classify(err error) entity.ErrorKind {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return entity.KindMalformed
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusUnauthorized, apiErr.Code == http.StatusForbidden:
			return entity.KindAuth
		case apiErr.Code == http.StatusTooManyRequests:
			return entity.KindQuota
		case apiErr.Code == http.StatusBadRequest && strings.Contains(strings.ToLower(apiErr.Message), "api key"):
			return entity.KindAuth
		case apiErr.Code >= http.StatusInternalServerError:
			return entity.KindNetwork
		}
		return entity.KindUnknown
	}

	if kind, ok := entity.TransportKind(err); ok {
		return kind
	}
	return entity.KindUnknown
}
