// Package agent orchestrates a query run: route, execute, envelope.
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/askroute/askroute/internal/domain"
	"github.com/askroute/askroute/internal/domain/decision"
	"github.com/askroute/askroute/internal/metrics"
)

// Service runs the routing pipeline. Each run carries fresh state; nothing is
// shared between runs. Exactly one executor handles a query, with no
// cross-strategy fallback.
type Service struct {
	router Router
	rag    Executor
	web    Executor
	logger *zap.Logger
}

// New creates the orchestration service.
func New(router Router, rag, web Executor, logger *zap.Logger) *Service {
	return &Service{router: router, rag: rag, web: web, logger: logger}
}

// Run processes one query end to end. On failure the returned envelope still
// carries the query and, once routing has happened, the decision; the error
// says which stage failed.
func (s *Service) Run(ctx context.Context, query string) (domain.Envelope, error) {
	start := time.Now()

	env, err := s.run(ctx, query)

	label := "none"
	if env.Decision != "" {
		label = env.Decision.String()
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.AgentRunsTotal.WithLabelValues(label, status).Inc()
	metrics.AgentRunDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())

	return env, err
}

func (s *Service) run(ctx context.Context, query string) (domain.Envelope, error) {
	env := domain.Envelope{
		Query:  query,
		Status: domain.StatusError,
	}

	if strings.TrimSpace(query) == "" {
		return env, domain.ErrEmptyQuery
	}

	d, err := s.router.Route(ctx, query)
	if err != nil {
		return env, err
	}
	env.Decision = d

	s.logger.Info("Query routed",
		zap.String("decision", d.String()))

	var exec Executor
	switch d {
	case decision.RAG:
		exec = s.rag
	case decision.Web:
		exec = s.web
	default:
		return env, fmt.Errorf("%w: unknown decision %q", domain.ErrRoutingFailed, d)
	}

	result, sources, err := exec.Execute(ctx, query)
	if err != nil {
		return env, err
	}

	env.Result = result
	env.Sources = sources
	env.Status = domain.StatusSuccess
	return env, nil
}
