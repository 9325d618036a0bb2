package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/askroute/askroute/internal/config"
	"github.com/askroute/askroute/internal/db"
	dbMemory "github.com/askroute/askroute/internal/db/memory"
	dbRedis "github.com/askroute/askroute/internal/db/redis"
	"github.com/askroute/askroute/internal/domain"
	logpkg "github.com/askroute/askroute/internal/logger"
	"github.com/askroute/askroute/internal/metrics"
	"github.com/askroute/askroute/internal/repository/corpus"
	"github.com/askroute/askroute/internal/repository/embcache"
	chiTransport "github.com/askroute/askroute/internal/transport/chi"
	openaiTransport "github.com/askroute/askroute/internal/transport/openai"
	"github.com/askroute/askroute/internal/transport/tavily"
	agentuc "github.com/askroute/askroute/internal/usecase/agent"
	healthuc "github.com/askroute/askroute/internal/usecase/health"
	raguc "github.com/askroute/askroute/internal/usecase/rag"
	routeruc "github.com/askroute/askroute/internal/usecase/router"
	webuc "github.com/askroute/askroute/internal/usecase/web"
	"github.com/askroute/askroute/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting askroute API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Create corpus store based on driver
	var store db.Store
	switch cfg.Database.Driver {
	case "memory":
		store = dbMemory.NewStore()
	case "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create database store", zap.Error(err))
		}
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to corpus store")

	// Register adapter metrics explicitly (no init())
	metrics.RegisterAdapterMetrics()

	// LLM adapters share one provider config
	llmCfg := &openaiTransport.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		ChatModel:      cfg.LLM.ChatModel,
		Temperature:    cfg.LLM.Temperature,
		EmbeddingModel: cfg.LLM.EmbeddingModel,
		Dimensions:     cfg.LLM.Dimensions,
		Provider:       "openai",
		Logger:         logger,
	}
	generator := openaiTransport.NewGenerator(llmCfg)

	// Embedder chain: OpenAI -> Cached
	var embedder domain.Embedder = openaiTransport.NewEmbedder(llmCfg)
	embedder = embcache.New(embedder, store, cfg.Retrieval.KeyPrefix, metrics.EmbeddingCacheTotal, logger)

	logger.Info("LLM adapters created",
		zap.String("chat_model", cfg.LLM.ChatModel),
		zap.String("embedding_model", cfg.LLM.EmbeddingModel),
		zap.Int("dimensions", cfg.LLM.Dimensions),
	)

	searcher := tavily.New(&tavily.Config{
		APIKey:     cfg.WebSearch.APIKey,
		BaseURL:    cfg.WebSearch.BaseURL,
		MaxResults: cfg.WebSearch.MaxResults,
		Timeout:    time.Duration(cfg.WebSearch.TimeoutSec) * time.Second,
		Logger:     logger,
	})

	// Corpus repository and sample data
	corpusRepo := corpus.New(store, cfg.Retrieval.KeyPrefix)
	if err := corpusRepo.EnsureIndex(ctx, cfg.LLM.Dimensions); err != nil {
		logger.Fatal("Failed to ensure corpus index", zap.Error(err))
	}
	if cfg.Corpus.Seed {
		if err := seedCorpus(ctx, corpusRepo, embedder, logger); err != nil {
			logger.Fatal("Failed to seed corpus", zap.Error(err))
		}
	}

	// Use case services
	routerSvc := routeruc.New(generator, logger)
	ragSvc := raguc.New(corpusRepo, embedder, generator, cfg.Retrieval.TopK, logger)
	webSvc := webuc.New(searcher, generator, logger)
	agentSvc := agentuc.New(routerSvc, ragSvc, webSvc, logger)
	healthSvc := healthuc.New(store, generator)

	// HTTP server
	server := chiTransport.NewServer(agentSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// seedCorpus populates the sample documents when the store is empty.
func seedCorpus(ctx context.Context, repo *corpus.Repo, embedder domain.Embedder, logger *zap.Logger) error {
	empty, err := repo.Empty(ctx)
	if err != nil {
		return fmt.Errorf("check corpus: %w", err)
	}
	if !empty {
		logger.Info("Corpus already populated, skipping seed")
		return nil
	}

	docs := corpus.SampleCorpus()
	if err := repo.Seed(ctx, embedder, docs); err != nil {
		return fmt.Errorf("seed corpus: %w", err)
	}
	logger.Info("Seeded sample corpus", zap.Int("documents", len(docs)))
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
