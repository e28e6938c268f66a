package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{
		APIKey:    "test-key",
		BaseURL:   srv.URL,
		Model:     "gpt-4o-mini",
		MaxTokens: 200,
		Timeout:   2 * time.Second,
	})
	return srv, client
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	var gotReq Request
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		fmt.Fprint(w, `{
			"choices": [
				{"index": 0, "message": {"role": "assistant", "content": "  2024-01-01T00:00:00Z  "}},
				{"index": 1, "message": {"role": "assistant", "content": "second choice ignored"}}
			]
		}`)
	})

	out, err := client.Complete(context.Background(), "What time is it?")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01T00:00:00Z", out, "first choice text is trimmed")

	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	assert.Equal(t, 200, gotReq.MaxTokens)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
}

func TestCompleteMissingKey(t *testing.T) {
	client := NewClient(ClientConfig{Model: "gpt-4o-mini"})

	assert.False(t, client.HasKey())
	_, err := client.Complete(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not configured")
}

func TestCompleteNon200(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusTooManyRequests)
	})

	_, err := client.Complete(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestCompleteAPIErrorBody(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error": {"message": "model not found", "type": "invalid_request_error"}}`)
	})

	_, err := client.Complete(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not found")
}

func TestCompleteEmptyChoices(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices": []}`)
	})

	_, err := client.Complete(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no completion returned")
}

func TestCompleteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(3 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "gpt-4o-mini",
		Timeout: 300 * time.Millisecond,
	})

	start := time.Now()
	_, err := client.Complete(context.Background(), "hello")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second, "client timeout must bound the call")
	assert.True(t, strings.Contains(err.Error(), "request failed") || strings.Contains(err.Error(), "context deadline"))
}
