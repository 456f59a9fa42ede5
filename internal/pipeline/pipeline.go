// Package pipeline runs one end-to-end posting cycle: collect the
// exchange rate and news, analyze, publish.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"fxblog/internal/analyzer"
	"fxblog/internal/market"
	"fxblog/internal/news"
	"fxblog/internal/publisher"
)

// RateSource provides the current exchange-rate snapshot
type RateSource interface {
	Fetch(ctx context.Context) (market.Snapshot, error)
}

// NewsSource provides collected news, most important first
type NewsSource interface {
	Fetch(ctx context.Context) ([]news.Item, error)
}

// Pipeline wires the collectors, the analyzer and the publisher into a
// strictly sequential run. Nothing overlaps: the title call depends on
// the commentary text, and the publisher consumes the finished result.
type Pipeline struct {
	rates    RateSource
	news     NewsSource
	analyzer *analyzer.Analyzer
	pub      publisher.Publisher
}

// New creates a pipeline
func New(rates RateSource, newsSource NewsSource, a *analyzer.Analyzer, pub publisher.Publisher) *Pipeline {
	return &Pipeline{
		rates:    rates,
		news:     newsSource,
		analyzer: a,
		pub:      pub,
	}
}

// Run executes one posting cycle. A rate-collection failure aborts the
// run; a news-collection failure only degrades it, the analysis then
// runs without news.
func (p *Pipeline) Run(ctx context.Context) error {
	slog.Info("collecting exchange-rate data")
	snap, err := p.rates.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("collecting exchange rate: %w", err)
	}
	slog.Info("collected exchange rate",
		"rate", snap.Rate, "change", snap.Change, "change_percent", snap.ChangePercent)

	items, err := p.news.Fetch(ctx)
	if err != nil {
		slog.Warn("news collection failed, analyzing without news", "error", err)
		items = nil
	}
	slog.Info("collected news", "count", len(items))

	result := p.analyzer.AnalyzeMarketTrend(ctx, snap, items)
	slog.Info("analysis complete",
		"title", result.Title,
		"commentary_length", len(result.Commentary),
		"tags", len(result.Tags))

	if err := p.pub.Publish(ctx, publisher.Post{
		Title:   result.Title,
		Content: result.Commentary,
		Tags:    result.Tags,
	}); err != nil {
		return fmt.Errorf("publishing post: %w", err)
	}

	return nil
}
