package health

import "context"

// DBPinger checks store connectivity.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// LLMChecker probes the LLM provider.
type LLMChecker interface {
	HealthCheck(ctx context.Context) error
}
