package main

import (
	"context"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fxblog/internal/analyzer"
	"fxblog/internal/config"
	"fxblog/internal/market"
	"fxblog/internal/news"
	"fxblog/internal/pipeline"
	"fxblog/internal/publisher"
	"fxblog/internal/schedule"
)

// runTimeout bounds a single posting cycle end to end
const runTimeout = 10 * time.Minute

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("received interrupt signal, shutting down")
		cancel()
	}()

	// Wire the pipeline
	llm, err := analyzer.NewClient(cfg.DeepSeekAPIKey, cfg.DeepSeekBaseURL, cfg.DeepSeekModel)
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}

	tags := analyzer.NewTagExtractor(rand.New(rand.NewSource(time.Now().UnixNano())))
	rates := market.NewRateFetcher(cfg.AlphaVantageAPIKey, "USD", "KRW", cfg.AlphaVantageBaseURL)
	newsFetcher := news.NewFetcher(cfg.AlphaVantageAPIKey, cfg.AlphaVantageBaseURL)

	var pub publisher.Publisher = publisher.NewLogPublisher()
	if cfg.BlogAccessToken != "" {
		pub = publisher.NewHTTPPublisher(cfg.BlogBaseURL, cfg.BlogAccessToken)
	}

	pipe := pipeline.New(rates, newsFetcher, analyzer.New(llm, tags), pub)

	sched, err := schedule.New(cfg.PostingTimes)
	if err != nil {
		log.Fatalf("Failed to build posting schedule: %v", err)
	}

	slog.Info("scheduler started", "slots", cfg.PostingTimes)

	for {
		next := sched.Next(time.Now())
		slog.Info("waiting for next posting slot", "at", next)

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Until(next)):
		}

		// The FX market is closed over the weekend; slots still fire
		// but runs are skipped, matching the posting calendar.
		if schedule.InQuietPeriod(time.Now()) {
			slog.Info("quiet period, skipping run")
			continue
		}

		runCtx, cancelRun := context.WithTimeout(ctx, runTimeout)
		if err := pipe.Run(runCtx); err != nil {
			slog.Error("pipeline run failed", "error", err)
		}
		cancelRun()
	}
}
