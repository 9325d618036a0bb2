package tavily

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"go.uber.org/zap"

	"github.com/askroute/askroute/internal/domain"
	"github.com/askroute/askroute/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterAdapterMetrics()
	os.Exit(m.Run())
}

func newTestClient(url string) *Client {
	return New(&Config{
		APIKey:     "test-key",
		BaseURL:    url,
		MaxResults: 3,
		Logger:     zap.NewNop(),
	})
}

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}

		var req struct {
			APIKey      string `json:"api_key"`
			Query       string `json:"query"`
			SearchDepth string `json:"search_depth"`
			MaxResults  int    `json:"max_results"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.APIKey != "test-key" {
			t.Errorf("api_key = %q", req.APIKey)
		}
		if req.Query != "latest AI news" {
			t.Errorf("query = %q", req.Query)
		}
		if req.SearchDepth != "basic" {
			t.Errorf("search_depth = %q", req.SearchDepth)
		}
		if req.MaxResults != 3 {
			t.Errorf("max_results = %d", req.MaxResults)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"title": "A", "url": "https://a.example.com", "content": "snippet a", "score": 0.9},
				{"title": "B", "url": "https://b.example.com", "content": "snippet b", "score": 0.5},
			},
		})
	}))
	defer server.Close()

	results, err := newTestClient(server.URL).Search(context.Background(), "latest AI news")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].URL != "https://a.example.com" || results[0].Snippet != "snippet a" {
		t.Errorf("unexpected first result: %+v", results[0])
	}
	if results[1].URL != "https://b.example.com" {
		t.Errorf("unexpected second result: %+v", results[1])
	}
}

func TestSearch_DropsIncompleteEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"title": "no url", "content": "snippet"},
				{"title": "no content", "url": "https://a.example.com"},
				{"title": "ok", "url": "https://b.example.com", "content": "snippet b"},
			},
		})
	}))
	defer server.Close()

	results, err := newTestClient(server.URL).Search(context.Background(), "query")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].URL != "https://b.example.com" {
		t.Errorf("unexpected result: %+v", results[0])
	}
}

func TestSearch_EmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"results": []map[string]any{}})
	}))
	defer server.Close()

	results, err := newTestClient(server.URL).Search(context.Background(), "query")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestSearch_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"invalid api key"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Search(context.Background(), "query")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if !errors.Is(err, domain.ErrSearchUnavailable) {
		t.Errorf("expected ErrSearchUnavailable, got %v", err)
	}
}

func TestSearch_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newTestClient(server.URL).Search(context.Background(), "query")
	if err == nil {
		t.Fatal("expected error for closed server")
	}
	if !errors.Is(err, domain.ErrSearchUnavailable) {
		t.Errorf("expected ErrSearchUnavailable, got %v", err)
	}
}
