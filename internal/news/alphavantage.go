package news

import (
	"context"
	"fmt"

	"resty.dev/v3"

	"fxblog/internal/fetcher"
	"fxblog/internal/ratelimit"
)

// NewsResponse represents the AlphaVantage NEWS_SENTIMENT response
type NewsResponse struct {
	Feed []struct {
		Title   string `json:"title"`
		Summary string `json:"summary"`
		URL     string `json:"url"`
		Source  string `json:"source"`
	} `json:"feed"`
}

// Fetcher collects market news from AlphaVantage, classified and
// sorted so the most commentary-relevant items come first.
type Fetcher struct {
	apiKey string
	limit  int
	client *resty.Client
}

// NewFetcher creates a news fetcher
func NewFetcher(apiKey, baseURL string) *Fetcher {
	return &Fetcher{
		apiKey: apiKey,
		limit:  50,
		client: fetcher.NewHTTPClient(baseURL),
	}
}

// Fetch retrieves the latest financial news and returns it high-importance first
func (f *Fetcher) Fetch(ctx context.Context) ([]Item, error) {
	if err := ratelimit.GetLimiter().Wait(ctx, ratelimit.APIAlphaVantage); err != nil {
		return nil, err
	}

	var result NewsResponse

	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function": "NEWS_SENTIMENT",
			"topics":   "economy_monetary,financial_markets",
			"sort":     "LATEST",
			"limit":    fmt.Sprintf("%d", f.limit),
			"apikey":   f.apiKey,
		}).
		SetResult(&result).
		Get("")

	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fetcher.ClassifyHTTPError(resp.StatusCode())
	}

	items := make([]Item, 0, len(result.Feed))
	for _, entry := range result.Feed {
		if entry.Title == "" {
			continue
		}
		items = append(items, Item{
			Title:      entry.Title,
			Content:    entry.Summary,
			Link:       entry.URL,
			Source:     entry.Source,
			Importance: Classify(entry.Title),
		})
	}

	SortByImportance(items)
	return items, nil
}

// Key returns a hierarchical identifier for this fetcher, used in logs
func (f *Fetcher) Key() string {
	return "news:alphavantage"
}
