// Package perspective implements the toxicity-scoring provider on the
// Perspective comment-analysis REST API.
package perspective

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/kotaeba/kotaeba-backend/internal/config"
	"github.com/kotaeba/kotaeba-backend/internal/provider"
)

// Client scores text via the comments:analyze endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	languages  []string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client from moderation config.
func NewClient(cfg config.ModerationConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		languages:  cfg.Languages,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "perspective"),
	}
}

// NewClientWithURL creates a Client with a custom base URL (for testing).
func NewClientWithURL(baseURL, apiKey string, languages []string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		languages:  languages,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.With("adapter", "perspective"),
	}
}

// Score returns per-attribute toxicity scores for the given text.
// Any transport failure, non-200 status, or undecodable body is an error;
// the caller treats it as a hard moderation failure, never a default pass.
func (c *Client) Score(ctx context.Context, text string) (provider.ToxicityResult, error) {
	body, err := json.Marshal(analyzeRequest{
		Comment:             analyzeComment{Text: text},
		Languages:           c.languages,
		RequestedAttributes: requestedAttributes(),
	})
	if err != nil {
		return provider.ToxicityResult{}, fmt.Errorf("perspective: marshal request: %w", err)
	}

	reqURL := c.baseURL + "/comments:analyze?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return provider.ToxicityResult{}, fmt.Errorf("perspective: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.doWithRetry(ctx, req, body)
	if err != nil {
		c.log.ErrorContext(ctx, "perspective request failed", slog.String("error", err.Error()))
		return provider.ToxicityResult{}, fmt.Errorf("perspective: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return provider.ToxicityResult{}, fmt.Errorf("perspective: unexpected status %d", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return provider.ToxicityResult{}, fmt.Errorf("perspective: read body: %w", err)
	}

	var decoded analyzeResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return provider.ToxicityResult{}, fmt.Errorf("perspective: decode json: %w", err)
	}
	if len(decoded.AttributeScores) == 0 {
		return provider.ToxicityResult{}, fmt.Errorf("perspective: response contains no attribute scores")
	}

	result := provider.ToxicityResult{
		Toxicity:       decoded.score(attrToxicity),
		SevereToxicity: decoded.score(attrSevereToxicity),
		Insult:         decoded.score(attrInsult),
		Profanity:      decoded.score(attrProfanity),
		Threat:         decoded.score(attrThreat),
		IdentityAttack: decoded.score(attrIdentityAttack),
	}

	c.log.DebugContext(ctx, "perspective response",
		slog.Float64("toxicity", result.Toxicity),
		slog.Float64("insult", result.Insult),
		slog.Float64("profanity", result.Profanity),
	)

	return result, nil
}

func (r analyzeResponse) score(attr string) float64 {
	return r.AttributeScores[attr].SummaryScore.Value
}

// doWithRetry executes the request with a single retry on 5xx or network
// errors. The body is replayed from the buffered bytes.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, body []byte) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "perspective retry", slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	retryReq := req.Clone(ctx)
	retryReq.Body = io.NopCloser(bytes.NewReader(body))
	return c.httpClient.Do(retryReq)
}
