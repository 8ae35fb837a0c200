package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"learnhub"
)

func main() {
	cfg, err := learnhub.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := learnhub.NewLogger(cfg.Mode, cfg.Verbose)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if err := cfg.Validate(true); err != nil {
		logger.Fatal("Invalid configuration", "error", err)
	}

	store, err := learnhub.OpenStore(cfg.StoreDriver, cfg.SQLiteDSN, cfg.SessionTTL)
	if err != nil {
		logger.Fatal("Failed to open store", "driver", cfg.StoreDriver, "error", err)
	}
	defer store.Close()

	transcript, err := learnhub.NewLLMLogger(cfg.LLMLogDir, "webserver-"+time.Now().Format("20060102-150405"))
	if err != nil {
		// Continue without a transcript rather than failing
		logger.Warn("Failed to create LLM transcript", "error", err)
	}
	defer transcript.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := learnhub.NewMetrics(reg)
	metrics.WatchSessions(store)

	ctx := context.Background()
	gen := learnhub.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)

	articles, err := learnhub.NewGoogleArticleSearch(ctx, cfg.SearchAPIKey, cfg.SearchEngineID)
	if err != nil {
		logger.Fatal("Failed to create article search", "error", err)
	}
	videos, err := learnhub.NewYouTubeVideoSearch(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		logger.Fatal("Failed to create video search", "error", err)
	}

	quizzes, err := learnhub.NewQuizManager(gen, store, metrics, transcript, logger)
	if err != nil {
		logger.Fatal("Failed to create quiz manager", "error", err)
	}

	server, err := NewServer(ServerConfig{
		Aggregator:     learnhub.NewAggregator(gen, articles, videos, metrics, transcript, logger),
		Quizzes:        quizzes,
		Registry:       learnhub.NewRegistry(store, metrics, logger),
		History:        NewSearchHistory(cfg.SessionSecret),
		Metrics:        promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Logger:         logger,
		RequestTimeout: cfg.RequestTimeout,
		CORSOrigins:    cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatal("Failed to create server", "error", err)
	}

	logger.Info("Starting server", "port", cfg.Port, "store", cfg.StoreDriver, "session_ttl", cfg.SessionTTL.String())
	if err := http.ListenAndServe(":"+cfg.Port, server.Router()); err != nil {
		logger.Fatal("Server stopped", "error", err)
	}
}
