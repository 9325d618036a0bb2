package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 120 * time.Second

// Client talks to the askroute HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// Option configures the Client.
type Option func(*Client)

// WithAPIKey sets the Bearer token for authenticated deployments.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates an API client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Answer is the agent's reply to a query.
type Answer struct {
	Query    string   `json:"query"`
	Decision string   `json:"decision"`
	Result   string   `json:"result"`
	Sources  []string `json:"sources"`
	Status   string   `json:"status"`
}

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	// Decision is set when routing succeeded before the failure.
	Decision string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("askroute: %s (%s, http %d)", e.Message, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("askroute: %s (http %d)", e.Message, e.StatusCode)
}

// apiBody covers both failure shapes: the validation error object
// {code, message} and the failure envelope {query, decision, ..., error}.
type apiBody struct {
	Query    string   `json:"query"`
	Decision string   `json:"decision"`
	Result   string   `json:"result"`
	Sources  []string `json:"sources"`
	Status   string   `json:"status"`
	Err      string   `json:"error"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
}

// Ask sends a query and returns the agent's answer.
func (c *Client) Ask(ctx context.Context, query string) (*Answer, error) {
	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("askroute: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("askroute: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("askroute: request failed: %w", err)
	}
	defer resp.Body.Close()

	var body apiBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("askroute: decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apiErrorFrom(resp.StatusCode, body)
	}

	return &Answer{
		Query:    body.Query,
		Decision: body.Decision,
		Result:   body.Result,
		Sources:  body.Sources,
		Status:   body.Status,
	}, nil
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health reports component health. A degraded service returns the report
// without an error; only transport and decoding problems are errors.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("askroute: build request: %w", err)
	}
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("askroute: request failed: %w", err)
	}
	defer resp.Body.Close()

	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("askroute: decode response: %w", err)
	}
	return &status, nil
}

func (c *Client) setAuth(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func apiErrorFrom(status int, body apiBody) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Code:       body.Code,
		Message:    body.Message,
		Decision:   body.Decision,
	}
	if apiErr.Message == "" {
		apiErr.Message = body.Err
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
