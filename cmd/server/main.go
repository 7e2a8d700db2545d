package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"agent_backend/agent"
	"agent_backend/cache"
	redisCache "agent_backend/cache/redis"
	openaiCompletion "agent_backend/completion/openai"
	"agent_backend/config"
	"agent_backend/server"
	"agent_backend/store/postgres"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("fail to load config")
	}

	logger := newLogger(cfg.LogLevel)

	// The interaction log is the one hard startup dependency: without
	// it no request can ever succeed.
	logStore, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("fail to connect to postgres")
	}
	defer func() {
		if err := logStore.Close(); err != nil {
			logger.Error().Err(err).Msg("fail to close postgres")
		}
	}()
	logger.Info().Msg("connected to postgres, schema initialized")

	// An unreachable cache degrades to a no-op, never a fatal condition.
	var cacheSvc cache.Service
	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	redisSvc, err := redisCache.New(startupCtx, cfg.RedisURL)
	cancel()
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, caching disabled")
		cacheSvc = cache.Noop{}
	} else {
		defer redisSvc.Close()
		cacheSvc = redisSvc
		logger.Info().Msg("connected to redis")
	}

	if cfg.GroqAPIKey == "" {
		logger.Warn().Msg("GROQ_API_KEY not set, inference will fail")
	}
	completionSvc := openaiCompletion.New(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel)

	ag := agent.New(cacheSvc, completionSvc, logStore, logger)
	srv := server.New(ag, logStore, logger)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Router(),
	}

	go func() {
		logger.Info().Str("addr", cfg.ListenAddr).Msg("starting http server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("fail to run http server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("fail to shut down http server")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
