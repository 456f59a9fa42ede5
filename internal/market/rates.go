package market

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"resty.dev/v3"

	"fxblog/internal/fetcher"
	"fxblog/internal/ratelimit"
)

var kst = time.FixedZone("KST", 9*60*60)

// FXDailyResponse represents the AlphaVantage FX_DAILY response
type FXDailyResponse struct {
	Series map[string]struct {
		Close string `json:"4. close"`
	} `json:"Time Series FX (Daily)"`
}

// RateFetcher fetches the current exchange rate and its day-over-day
// change from AlphaVantage.
type RateFetcher struct {
	apiKey     string
	fromSymbol string
	toSymbol   string
	client     *resty.Client
}

// NewRateFetcher creates a new exchange-rate fetcher for a currency pair
func NewRateFetcher(apiKey, fromSymbol, toSymbol, baseURL string) *RateFetcher {
	return &RateFetcher{
		apiKey:     apiKey,
		fromSymbol: fromSymbol,
		toSymbol:   toSymbol,
		client:     fetcher.NewHTTPClient(baseURL),
	}
}

// Fetch retrieves the latest close for the pair and derives the change
// versus the previous close. With only one trading day available, change
// is reported as zero.
func (f *RateFetcher) Fetch(ctx context.Context) (Snapshot, error) {
	if err := ratelimit.GetLimiter().Wait(ctx, ratelimit.APIAlphaVantage); err != nil {
		return Snapshot{}, err
	}

	var result FXDailyResponse

	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function":    "FX_DAILY",
			"from_symbol": f.fromSymbol,
			"to_symbol":   f.toSymbol,
			"outputsize":  "compact",
			"apikey":      f.apiKey,
		}).
		SetResult(&result).
		Get("")

	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to fetch %s/%s rate: %w", f.fromSymbol, f.toSymbol, err)
	}

	if !resp.IsSuccess() {
		return Snapshot{}, fetcher.ClassifyHTTPError(resp.StatusCode())
	}

	if len(result.Series) == 0 {
		return Snapshot{}, fetcher.NewValidationError(
			fmt.Sprintf("no daily series in response for %s/%s", f.fromSymbol, f.toSymbol))
	}

	// Series keys are ISO dates; newest first after a descending sort
	days := make([]string, 0, len(result.Series))
	for day := range result.Series {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	rate, err := strconv.ParseFloat(result.Series[days[0]].Close, 64)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse close %q: %w", result.Series[days[0]].Close, err)
	}

	timestamp, err := time.ParseInLocation("2006-01-02", days[0], kst)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse trading day %q: %w", days[0], err)
	}

	snap := Snapshot{
		Rate:      rate,
		Timestamp: timestamp,
	}

	if len(days) > 1 {
		prev, err := strconv.ParseFloat(result.Series[days[1]].Close, 64)
		if err != nil {
			return Snapshot{}, fmt.Errorf("failed to parse previous close %q: %w", result.Series[days[1]].Close, err)
		}
		if prev > 0 {
			snap.Change = rate - prev
			snap.ChangePercent = (rate - prev) / prev * 100
		}
	}

	return snap, nil
}

// Key returns a hierarchical identifier for this fetcher, used in logs
func (f *RateFetcher) Key() string {
	return fmt.Sprintf("rates:alphavantage:%s%s", f.fromSymbol, f.toSymbol)
}
