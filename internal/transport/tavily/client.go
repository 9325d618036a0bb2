// Package tavily adapts the Tavily search API to the domain WebSearcher
// interface. Tavily has no official Go SDK, so this is a thin net/http client
// over its JSON endpoint.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/askroute/askroute/internal/domain"
	"github.com/askroute/askroute/internal/metrics"
)

const providerName = "tavily"

// Client is a Tavily search API client.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	maxResults int
	logger     *zap.Logger
}

// Config holds the Tavily client settings.
type Config struct {
	APIKey     string
	BaseURL    string
	MaxResults int
	Timeout    time.Duration
	Logger     *zap.Logger
}

// New creates a Tavily search client.
func New(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		maxResults: cfg.MaxResults,
		logger:     cfg.Logger,
	}
}

type searchRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

type searchResponse struct {
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

// Search implements domain.WebSearcher. Results come back in provider ranking
// order; entries without a URL or content are dropped.
func (c *Client) Search(ctx context.Context, query string) ([]domain.WebResult, error) {
	body, err := json.Marshal(searchRequest{
		APIKey:      c.apiKey,
		Query:       query,
		SearchDepth: "basic",
		MaxResults:  c.maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()

	resp, err := c.httpClient.Do(req)

	duration := time.Since(start)

	if err != nil {
		metrics.WebSearchRequestsTotal.WithLabelValues(providerName, "error").Inc()
		return nil, fmt.Errorf("search request failed: %w", domain.ErrSearchUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.WebSearchRequestsTotal.WithLabelValues(providerName, "error").Inc()
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("search API error %d: %s: %w",
			resp.StatusCode, strings.TrimSpace(string(detail)), domain.ErrSearchUnavailable)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.WebSearchRequestsTotal.WithLabelValues(providerName, "error").Inc()
		return nil, fmt.Errorf("decode search response: %w", domain.ErrSearchUnavailable)
	}

	metrics.WebSearchRequestsTotal.WithLabelValues(providerName, "success").Inc()
	metrics.WebSearchRequestDuration.WithLabelValues(providerName).Observe(duration.Seconds())

	results := make([]domain.WebResult, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		if r.URL == "" || r.Content == "" {
			continue
		}
		results = append(results, domain.WebResult{
			Snippet: r.Content,
			URL:     r.URL,
		})
	}
	return results, nil
}
