package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fxblog/internal/market"
	"fxblog/internal/news"
)

// maxPromptNews caps how many news items are rendered into the prompt
const maxPromptNews = 5

// Result is the terminal output of the analysis pipeline. Title and
// Commentary are never empty: irrecoverable failures substitute
// template fallback content instead.
type Result struct {
	Title      string
	Commentary string
	Tags       []string
}

// TextGenerator is the LLM client surface the orchestrator depends on
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, kind RequestKind) string
}

// Analyzer sequences prompt building, LLM generation and tag extraction
// into a single analysis run.
type Analyzer struct {
	llm  TextGenerator
	tags *TagExtractor

	// now is swapped out by tests for deterministic fallback dates
	now func() time.Time
}

// New creates an analyzer
func New(llm TextGenerator, tags *TagExtractor) *Analyzer {
	return &Analyzer{
		llm:  llm,
		tags: tags,
		now:  time.Now,
	}
}

// AnalyzeMarketTrend produces commentary, title and tags for the given
// snapshot and news. Each stage gates on the previous one:
//
//   - invalid snapshot: fallback content, stop early
//   - commentary failure sentinel: fallback content, stop early
//   - title failure sentinel: fallback title, continue (commentary is
//     the primary artifact)
//   - tag failure: already degraded inside the extractor
//
// Retries live inside the LLM client; nothing is retried here.
func (a *Analyzer) AnalyzeMarketTrend(ctx context.Context, snap market.Snapshot, items []news.Item) Result {
	now := a.now().In(kst)

	if !snap.Valid() {
		slog.Error("market snapshot is incomplete, using fallback content",
			"rate", snap.Rate, "timestamp", snap.Timestamp)
		return a.fallbackContent(snap, items, now)
	}

	slog.Info("generating market commentary")
	commentary := a.llm.GenerateText(ctx, CommentaryPrompt(snap, news.TopN(items, maxPromptNews), now), KindCommentary)
	if IsFailure(commentary) {
		slog.Error("commentary generation failed, using fallback content")
		return a.fallbackContent(snap, items, now)
	}

	slog.Info("generating title")
	title := a.llm.GenerateText(ctx, TitlePrompt(commentary, now), KindTitle)
	if IsFailure(title) {
		slog.Error("title generation failed, using fallback title")
		title = fallbackTitle(snap, now)
	}

	slog.Info("extracting tags")
	return Result{
		Title:      title,
		Commentary: commentary,
		Tags:       a.tags.Extract(title, commentary),
	}
}

// fallbackContent builds template title and commentary from whatever
// snapshot fields are usable. With nothing usable at all, a generic
// analysis-unavailable message is returned.
func (a *Analyzer) fallbackContent(snap market.Snapshot, items []news.Item, now time.Time) Result {
	date := now.Format("2006-01-02")

	if !snap.HasRate() && len(items) == 0 {
		return Result{
			Title:      "오늘의 시장 동향 분석 - " + date,
			Commentary: "시스템 오류로 인해 분석을 완료하지 못했습니다. 잠시 후 다시 시도해 주시기 바랍니다.",
		}
	}

	var b strings.Builder
	b.WriteString("오늘의 시장 동향을 분석해보겠습니다.\n\n주요 시장 지표:\n")
	if snap.HasRate() {
		fmt.Fprintf(&b, "- 현재 환율: %.2f원\n", snap.Rate)
		fmt.Fprintf(&b, "- 전일 대비 변동폭: %+.2f%%\n", snap.ChangePercent)
	}
	if len(items) > 0 {
		b.WriteString("\n주요 시장 뉴스:\n")
		for _, item := range items {
			fmt.Fprintf(&b, "- %s\n", item.Title)
		}
	}

	return Result{
		Title:      date + " 글로벌 시장 동향",
		Commentary: b.String(),
	}
}

// fallbackTitle synthesizes a title from the snapshot when only the
// title generation failed.
func fallbackTitle(snap market.Snapshot, now time.Time) string {
	date := now.Format("2006-01-02")
	if snap.HasRate() {
		return date + " 글로벌 시장: 환율 동향 분석"
	}
	return date + " 글로벌 시장 동향"
}
