package metrics

import "github.com/prometheus/client_golang/prometheus"

// Adapter and orchestration Prometheus metrics.
var (
	LLMRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "askroute",
			Name:      "llm_requests_total",
			Help:      "Total number of LLM requests",
		},
		[]string{"provider", "model", "kind", "status"}, // kind: "chat" / "embedding"
	)

	LLMRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "askroute",
			Name:      "llm_request_duration_seconds",
			Help:      "LLM request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"provider", "model", "kind"},
	)

	LLMTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "askroute",
			Name:      "llm_tokens_total",
			Help:      "Total LLM tokens consumed",
		},
		[]string{"provider", "model", "type"}, // type: "prompt" / "completion" / "total"
	)

	WebSearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "askroute",
			Name:      "websearch_requests_total",
			Help:      "Total number of web search requests",
		},
		[]string{"provider", "status"},
	)

	WebSearchRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "askroute",
			Name:      "websearch_request_duration_seconds",
			Help:      "Web search request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider"},
	)

	AgentRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "askroute",
			Name:      "agent_runs_total",
			Help:      "Total orchestration runs by routing decision and outcome",
		},
		[]string{"decision", "status"},
	)

	AgentRunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "askroute",
			Name:      "agent_run_duration_seconds",
			Help:      "End-to-end orchestration run duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"decision"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "askroute",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var adapterMetricsRegistered bool

// RegisterAdapterMetrics registers adapter and run metrics. Must be called once from main.
func RegisterAdapterMetrics() {
	if adapterMetricsRegistered {
		return
	}
	prometheus.MustRegister(LLMRequestsTotal)
	prometheus.MustRegister(LLMRequestDuration)
	prometheus.MustRegister(LLMTokensTotal)
	prometheus.MustRegister(WebSearchRequestsTotal)
	prometheus.MustRegister(WebSearchRequestDuration)
	prometheus.MustRegister(AgentRunsTotal)
	prometheus.MustRegister(AgentRunDuration)
	prometheus.MustRegister(EmbeddingCacheTotal)
	adapterMetricsRegistered = true
}
