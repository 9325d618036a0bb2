// Package chi exposes the agent over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	chiv5 "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/askroute/askroute/internal/domain"
	"github.com/askroute/askroute/internal/version"

	agentuc "github.com/askroute/askroute/internal/usecase/agent"
	healthuc "github.com/askroute/askroute/internal/usecase/health"
)

const maxQueryLen = 1000

// Error response codes.
const (
	codeBadRequest            = "bad_request"
	codeValidationFailed      = "validation_failed"
	codeRoutingFailed         = "routing_failed"
	codeRetrievalFailed       = "retrieval_failed"
	codeSynthesisFailed       = "synthesis_failed"
	codeGenerationUnavailable = "generation_unavailable"
	codeSearchUnavailable     = "search_unavailable"
	codeInternalError         = "internal_error"
)

// sentinelStatus maps domain sentinels to HTTP statuses and response codes.
// Order matters: more specific sentinels first.
var sentinelStatus = []struct {
	sentinel error
	status   int
	code     string
}{
	{domain.ErrEmptyQuery, http.StatusBadRequest, codeValidationFailed},
	{domain.ErrGenerationUnavailable, http.StatusBadGateway, codeGenerationUnavailable},
	{domain.ErrSearchUnavailable, http.StatusBadGateway, codeSearchUnavailable},
	{domain.ErrRoutingFailed, http.StatusBadGateway, codeRoutingFailed},
	{domain.ErrRetrievalFailed, http.StatusBadGateway, codeRetrievalFailed},
	{domain.ErrSynthesisFailed, http.StatusBadGateway, codeSynthesisFailed},
}

// Server handles the HTTP API.
type Server struct {
	agent  *agentuc.Service
	health *healthuc.Service
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(agent *agentuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{agent: agent, health: health, logger: logger}
}

// Register mounts the API routes on the router.
func (s *Server) Register(r chiv5.Router) {
	r.Get("/", s.ServiceInfo)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Post("/chat", s.Chat)
}

type chatRequest struct {
	Query string `json:"query"`
}

// chatResponse is the envelope with an optional error message on failure.
type chatResponse struct {
	Query    string   `json:"query"`
	Decision string   `json:"decision,omitempty"`
	Result   string   `json:"result,omitempty"`
	Sources  []string `json:"sources"`
	Status   string   `json:"status"`
	Code     string   `json:"code,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func envelopeToResponse(env domain.Envelope) chatResponse {
	sources := env.Sources
	if sources == nil {
		sources = []string{}
	}
	return chatResponse{
		Query:    env.Query,
		Decision: env.Decision.String(),
		Result:   env.Result,
		Sources:  sources,
		Status:   string(env.Status),
	}
}

// Chat handles POST /chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Query) > maxQueryLen {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query exceeds maximum length")
		return
	}

	env, err := s.agent.Run(r.Context(), req.Query)
	if err != nil {
		s.handleRunError(w, env, err)
		return
	}

	writeJSON(w, http.StatusOK, envelopeToResponse(env))
}

// handleRunError writes the failure envelope with a safe error message and
// the HTTP status mapped from the domain sentinel.
func (s *Server) handleRunError(w http.ResponseWriter, env domain.Envelope, err error) {
	s.logger.Warn("run error", zap.Error(err))

	resp := envelopeToResponse(env)
	for _, m := range sentinelStatus {
		if errors.Is(err, m.sentinel) {
			resp.Result = m.sentinel.Error()
			resp.Code = m.code
			resp.Error = m.sentinel.Error()
			writeJSON(w, m.status, resp)
			return
		}
	}

	s.logger.Error("internal error", zap.Error(err))
	resp.Result = "internal error"
	resp.Code = codeInternalError
	resp.Error = "internal error"
	writeJSON(w, http.StatusInternalServerError, resp)
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// ServiceInfo handles GET /.
func (s *Server) ServiceInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "askroute",
		"version": version.Version,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
