package domain

import "github.com/askroute/askroute/internal/domain/decision"

// Status is the terminal outcome of an orchestration run.
type Status string

const (
	// StatusSuccess indicates the run produced an answer.
	StatusSuccess Status = "success"
	// StatusError indicates the run aborted before producing an answer.
	StatusError Status = "error"
)

// Envelope is the output contract of one orchestration run.
// Decision is empty only when the run aborted before routing completed.
type Envelope struct {
	Query    string            `json:"query"`
	Decision decision.Decision `json:"decision"`
	Result   string            `json:"result"`
	Sources  []string          `json:"sources"`
	Status   Status            `json:"status"`
}
