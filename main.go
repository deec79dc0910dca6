package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Soptik1290/restaurant-menu-summarizer/ai"
	"github.com/Soptik1290/restaurant-menu-summarizer/api"
	"github.com/Soptik1290/restaurant-menu-summarizer/cache"
	"github.com/Soptik1290/restaurant-menu-summarizer/config"
	"github.com/Soptik1290/restaurant-menu-summarizer/docscan"
	"github.com/Soptik1290/restaurant-menu-summarizer/extract"
	"github.com/Soptik1290/restaurant-menu-summarizer/fetcher"
	"github.com/Soptik1290/restaurant-menu-summarizer/menu"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	log := newLogger()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal().Msg("OPENAI_API_KEY is required")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_ADDR", config.DefaultRedisAddr),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       envInt("REDIS_DB", 0),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to connect to Redis; every request will run the full pipeline")
	}
	cancel()

	var aiOpts []ai.Option
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		aiOpts = append(aiOpts, ai.WithBaseURL(baseURL))
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		aiOpts = append(aiOpts, ai.WithModel(model))
	}

	scanner := docscan.New(envOr("DOCSCAN_BASE_URL", config.DefaultDocScanBaseURL))
	summarizer := menu.NewSummarizer(
		cache.NewStore(rdb, log),
		fetcher.New(log),
		extract.New(scanner, log),
		ai.NewClient(apiKey, log, aiOpts...),
		log,
	)

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	r := api.NewRouter(summarizer, log)
	log.Info().Str("addr", addr).Msg("Starting API server")
	log.Info().Msg("API endpoints available:")
	log.Info().Msg("  POST /menu/summarize")
	log.Info().Msg("  GET  /api/health")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if parsed, err := zerolog.ParseLevel(v); err == nil {
			level = parsed
		}
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
