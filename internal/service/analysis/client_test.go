package analysis

import (
	"context"
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"job-traveler/internal/config"
	"job-traveler/internal/service/traveler"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newMessagesServer(t *testing.T, status int, body string, calls *int32) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		var req map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-test", req["model"])
		assert.Equal(t, 1234.0, req["max_tokens"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func newTestClient(baseURL, key string) *Client {
	return NewClient(config.Analysis{
		APIKey:    key,
		Model:     "claude-test",
		MaxTokens: 1234,
		Timeout:   5 * time.Second,
		BaseURL:   baseURL,
	})
}

func TestClient_Analyze(t *testing.T) {
	var calls int32
	srv := newMessagesServer(t, http.StatusOK, `{
		"id": "msg_01",
		"type": "message",
		"role": "assistant",
		"model": "claude-test",
		"content": [
			{"type": "text", "text": "## Job Health Assessment\n"},
			{"type": "text", "text": "Close setup op 0."}
		],
		"stop_reason": "end_turn",
		"stop_sequence": null,
		"usage": {"input_tokens": 10, "output_tokens": 8}
	}`, &calls)

	text, err := newTestClient(srv.URL, "test-key").Analyze(context.Background(), testReport())
	require.NoError(t, err)

	assert.Equal(t, "## Job Health Assessment\nClose setup op 0.", text)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_Analyze_APIError(t *testing.T) {
	var calls int32
	srv := newMessagesServer(t, http.StatusInternalServerError,
		`{"type": "error", "error": {"type": "api_error", "message": "overloaded"}}`, &calls)

	_, err := newTestClient(srv.URL, "test-key").Analyze(context.Background(), testReport())

	require.Error(t, err)
	assert.ErrorIs(t, err, traveler.ErrUpstream)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "no retries inside the client")
}

func TestClient_Analyze_EmptyResponse(t *testing.T) {
	var calls int32
	srv := newMessagesServer(t, http.StatusOK, `{
		"id": "msg_02",
		"type": "message",
		"role": "assistant",
		"model": "claude-test",
		"content": [],
		"stop_reason": "end_turn",
		"stop_sequence": null,
		"usage": {"input_tokens": 10, "output_tokens": 0}
	}`, &calls)

	_, err := newTestClient(srv.URL, "test-key").Analyze(context.Background(), testReport())

	assert.ErrorIs(t, err, traveler.ErrUpstream)
}

func TestClient_Analyze_NoAPIKey(t *testing.T) {
	_, err := newTestClient("http://127.0.0.1:1", "").Analyze(context.Background(), testReport())

	assert.ErrorIs(t, err, traveler.ErrUpstream)
	assert.Contains(t, err.Error(), "api key")
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(config.Analysis{APIKey: "k"})

	assert.Equal(t, defaultModel, c.model)
	assert.Equal(t, int64(defaultMaxTokens), c.maxTokens)
	assert.Equal(t, defaultTimeout, c.timeout)
}
