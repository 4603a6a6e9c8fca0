package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "gosupply/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewOpenAIClient(Config{
		APIKey:  "sk-test",
		BaseURL: srv.URL + "/",
		Model:   "gpt-4o-mini",
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func TestOpenAIClientCompleteJSON(t *testing.T) {
	var got map[string]any
	client := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"product_id\":\"P1\"}"}}]}`))
	})

	out, err := client.CompleteJSON(context.Background(), "Extract arguments.", "move P1")
	require.NoError(t, err)
	assert.Equal(t, `{"product_id":"P1"}`, out)

	assert.Equal(t, "gpt-4o-mini", got["model"])
	assert.Equal(t, map[string]any{"type": "json_object"}, got["response_format"])
	messages := got["messages"].([]any)
	require.Len(t, messages, 2)
	system := messages[0].(map[string]any)
	assert.Equal(t, "system", system["role"])
	assert.Contains(t, system["content"], "JSON object")
	assert.EqualValues(t, 1024, got["max_tokens"])
}

func TestOpenAIClientHTTPError(t *testing.T) {
	client := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	})

	_, err := client.CompleteJSON(context.Background(), "json please", "q")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeExternalService, apperrors.GetCode(err))
	assert.Contains(t, err.Error(), "http 429")
}

func TestOpenAIClientMissingChoices(t *testing.T) {
	client := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := client.CompleteJSON(context.Background(), "json please", "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing choices")
}

func TestNewOpenAIClientRequiresKeyAndModel(t *testing.T) {
	_, err := NewOpenAIClient(Config{Model: "gpt-4o-mini"})
	assert.Equal(t, apperrors.CodeConfigInvalid, apperrors.GetCode(err))

	_, err = NewOpenAIClient(Config{APIKey: "k"})
	assert.Equal(t, apperrors.CodeConfigInvalid, apperrors.GetCode(err))

	c, err := NewOpenAIClient(Config{APIKey: "k", Model: "m"})
	require.NoError(t, err)
	assert.Equal(t, defaultOpenAIBaseURL, c.BaseURL)
	assert.Equal(t, "openai", c.Provider())
}
