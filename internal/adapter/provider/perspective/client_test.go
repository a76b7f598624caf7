package perspective

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWithURL(srv.URL, "test-key", []string{"en", "ja"}, slog.Default())
}

func scoresBody(toxicity, insult float64) map[string]any {
	return map[string]any{
		"attributeScores": map[string]any{
			"TOXICITY": map[string]any{"summaryScore": map[string]any{"value": toxicity}},
			"INSULT":   map[string]any{"summaryScore": map[string]any{"value": insult}},
		},
	}
}

func TestScore_Success(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req analyzeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello world", req.Comment.Text)
		assert.Equal(t, []string{"en", "ja"}, req.Languages)
		assert.Contains(t, req.RequestedAttributes, "SEVERE_TOXICITY")

		json.NewEncoder(w).Encode(scoresBody(0.12, 0.45))
	})

	result, err := client.Score(context.Background(), "hello world")
	require.NoError(t, err)
	assert.InDelta(t, 0.12, result.Toxicity, 1e-9)
	assert.InDelta(t, 0.45, result.Insult, 1e-9)
	// Unscored attributes default to zero.
	assert.Zero(t, result.Threat)
}

func TestScore_EmptyScoresIsError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{})
	})

	_, err := client.Score(context.Background(), "text")
	require.Error(t, err)
}

func TestScore_Non200IsError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.Score(context.Background(), "text")
	require.Error(t, err)
}

func TestScore_RetriesOnceOn5xx(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		// The retried request must carry the body again.
		var req analyzeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "retry me", req.Comment.Text)
		json.NewEncoder(w).Encode(scoresBody(0.5, 0.1))
	})

	result, err := client.Score(context.Background(), "retry me")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, result.Toxicity, 1e-9)
	assert.Equal(t, int32(2), calls.Load())
}
