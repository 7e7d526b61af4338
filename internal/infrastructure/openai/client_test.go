package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/store-assistant/internal/domain/entity"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *openAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewOpenAIClient(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1/"}).(*openAIClient)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"message": message, "type": "error", "code": code},
	})
}

func TestCompleteSuccess(t *testing.T) {
	var got openai.ChatCompletionRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: " Aisle 4 "}},
			},
		})
	})

	reply, err := client.Complete(context.Background(), "be helpful", "Where is rice?")
	require.NoError(t, err)
	assert.Equal(t, " Aisle 4 ", reply)

	assert.Equal(t, DefaultModel, got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, got.Messages[0].Role)
	assert.Equal(t, "be helpful", got.Messages[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, got.Messages[1].Role)
	assert.Equal(t, "Where is rice?", got.Messages[1].Content)
}

func TestCompleteModelOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "gpt-4o-mini", req.Model)
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: "ok"}}},
		})
	}))
	defer srv.Close()

	client := NewOpenAIClient(Config{APIKey: "k", Model: "gpt-4o-mini", BaseURL: srv.URL})
	reply, err := client.Complete(context.Background(), "sys", "hi")
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
}

func TestCompleteErrors(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantKind entity.ErrorKind
	}{
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeError(w, http.StatusUnauthorized, "invalid_api_key", "Incorrect API key provided")
			},
			wantKind: entity.KindAuth,
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "Rate limit reached")
			},
			wantKind: entity.KindQuota,
		},
		{
			name: "quota",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeError(w, http.StatusTooManyRequests, "insufficient_quota", "You exceeded your current quota")
			},
			wantKind: entity.KindQuota,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeError(w, http.StatusBadGateway, "", "upstream failed")
			},
			wantKind: entity.KindNetwork,
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{})
			},
			wantKind: entity.KindMalformed,
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>oops</html>"))
			},
			wantKind: entity.KindMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			_, err := client.Complete(context.Background(), "sys", "hi")
			require.Error(t, err)

			var svcErr *entity.ExternalServiceError
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, "openai", svcErr.Provider)
			assert.Equal(t, tt.wantKind, svcErr.Kind)
		})
	}
}

func TestCompleteMissingKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := NewOpenAIClient(Config{BaseURL: srv.URL}).Complete(context.Background(), "sys", "hi")

	var svcErr *entity.ExternalServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, entity.KindAuth, svcErr.Kind)
	assert.ErrorIs(t, err, errNoAPIKey)
	assert.False(t, called)
}

func TestCompleteTimeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Complete(ctx, "sys", "hi")

	var svcErr *entity.ExternalServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, entity.KindTimeout, svcErr.Kind)
}

func TestCompleteNetworkDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewOpenAIClient(Config{APIKey: "k", BaseURL: url}).Complete(context.Background(), "sys", "hi")

	var svcErr *entity.ExternalServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, entity.KindNetwork, svcErr.Kind)
}

func TestClassifyFallsBackToUnknown(t *testing.T) {
	assert.Equal(t, entity.KindUnknown, classify(errors.New("strange")))
	assert.Equal(t, "openai", NewOpenAIClient(Config{}).Provider())
}
