package router

import (
	"context"

	"github.com/askroute/askroute/internal/domain"
)

// Generator produces the classification label via an LLM.
type Generator interface {
	Generate(ctx context.Context, prompt string) (domain.GenerationResult, error)
}
