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
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/kailas-cloud/smuseum/internal/config"
	dbRedis "github.com/kailas-cloud/smuseum/internal/db/redis"
	"github.com/kailas-cloud/smuseum/internal/domain"
	logpkg "github.com/kailas-cloud/smuseum/internal/logger"
	"github.com/kailas-cloud/smuseum/internal/metrics"
	"github.com/kailas-cloud/smuseum/internal/repository/snapshot"
	chiTransport "github.com/kailas-cloud/smuseum/internal/transport/chi"
	gen "github.com/kailas-cloud/smuseum/internal/transport/generated"
	"github.com/kailas-cloud/smuseum/internal/transport/museum"
	healthuc "github.com/kailas-cloud/smuseum/internal/usecase/health"
	lookupuc "github.com/kailas-cloud/smuseum/internal/usecase/lookup"
	"github.com/kailas-cloud/smuseum/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	museumDef := museumFromConfig(cfg.Museum)

	logger.Info("Starting smuseum API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("museum", museumDef.Name),
		zap.Strings("cache_addrs", cfg.Cache.Addrs),
	)

	// Register metrics explicitly (no init())
	metrics.Register()

	// Record snapshots: Redis/Valkey when configured, in-process otherwise.
	// cachePinger stays a nil interface without a store (typed nil would pass != nil).
	var snapshots lookupuc.Snapshotter
	var cachePinger healthuc.CachePinger
	if cfg.Cache.Enabled() {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		ctx := context.Background()
		if err := store.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		logger.Info("Connected to cache")

		snapshots = snapshot.New(
			store, cfg.Cache.KeyPrefix, time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.SnapshotTotal, logger,
		).WithKeep(cfg.Cache.Keep)
		cachePinger = store
	} else {
		logger.Info("No cache configured, snapshotting records in memory")
		snapshots = snapshot.NewMemory(metrics.SnapshotTotal)
	}

	client := museum.NewClient(&museum.Config{
		Museum:  museumDef,
		Timeout: time.Duration(cfg.Museum.TimeoutSec) * time.Second,
		Logger:  logger,
	})

	// Create use case services
	lookupSvc := lookupuc.New(client, snapshots, client.Museum().Name).
		WithFetchConcurrency(cfg.Museum.FetchConcurrency).
		WithFailurePolicy(lookupuc.FailurePolicy(cfg.Museum.FetchFailure)).
		WithMaxObjects(cfg.Museum.MaxObjects)
	healthSvc := healthuc.New(cachePinger, client)

	// Create chi server
	server := chiTransport.NewServer(lookupSvc, healthSvc, logger).
		WithDocsURL(cfg.HTTP.DocsURL)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(corsHandler(cfg.HTTP.CORSAllowedOrigins))
	r.Use(metrics.Middleware())
	gen.HandlerWithOptions(server, gen.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: server.HandleParamError,
	})

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

// museumFromConfig builds the backend definition. Empty values fall back to the MET.
func museumFromConfig(mc config.MuseumConfig) domain.Museum {
	return domain.Museum{
		Name:      mc.Name,
		SearchURL: mc.SearchURL,
		ObjectURL: mc.ObjectURL,
		Fields: domain.MuseumFields{
			Title:     mc.Fields.Title,
			Total:     mc.Fields.Total,
			ObjectIDs: mc.Fields.ObjectIDs,
			Image:     mc.Fields.Image,
		},
	}.WithDefaults()
}

// corsHandler allows reads from the configured origins. Credentials are never allowed.
func corsHandler(origins []string) func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})
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
					_ = json.NewEncoder(w).Encode(gen.ErrorResponse{
						Code:    gen.ErrorResponseCodeInternalError,
						Message: "internal error",
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
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
