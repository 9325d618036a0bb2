package agent

import (
	"context"

	"github.com/askroute/askroute/internal/domain/decision"
)

// Router classifies a query into a retrieval strategy.
type Router interface {
	Route(ctx context.Context, query string) (decision.Decision, error)
}

// Executor runs one retrieval strategy end to end and returns the answer
// text and its sources.
type Executor interface {
	Execute(ctx context.Context, query string) (result string, sources []string, err error)
}
