package market

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

const fxDailyBody = `{
	"Time Series FX (Daily)": {
		"2024-05-01": {"1. open": "1462.0000", "4. close": "1456.2000"},
		"2024-04-30": {"1. open": "1470.1000", "4. close": "1468.5000"},
		"2024-04-29": {"1. open": "1465.3000", "4. close": "1470.1000"}
	}
}`

func TestNewRateFetcher(t *testing.T) {
	f := NewRateFetcher("test_key", "USD", "KRW", "http://localhost")

	if f == nil {
		t.Fatal("NewRateFetcher() returned nil")
	}
	if f.apiKey != "test_key" {
		t.Errorf("apiKey = %q, want %q", f.apiKey, "test_key")
	}
	if f.client == nil {
		t.Error("client is nil")
	}
}

func TestRateFetcher_Key(t *testing.T) {
	f := NewRateFetcher("test_key", "USD", "KRW", "http://localhost")
	if got := f.Key(); got != "rates:alphavantage:USDKRW" {
		t.Errorf("Key() = %q, want %q", got, "rates:alphavantage:USDKRW")
	}
}

func TestRateFetcher_Fetch_Success(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("function"); got != "FX_DAILY" {
			t.Errorf("function = %q, want FX_DAILY", got)
		}
		if got := r.URL.Query().Get("from_symbol"); got != "USD" {
			t.Errorf("from_symbol = %q, want USD", got)
		}
		if got := r.URL.Query().Get("to_symbol"); got != "KRW" {
			t.Errorf("to_symbol = %q, want KRW", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(fxDailyBody))
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	f := NewRateFetcher("test_key", "USD", "KRW", server.URL)
	snap, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() returned unexpected error: %v", err)
	}

	if snap.Rate != 1456.20 {
		t.Errorf("Rate = %.4f, want 1456.20", snap.Rate)
	}
	if math.Abs(snap.Change-(-12.30)) > 1e-9 {
		t.Errorf("Change = %.4f, want -12.30", snap.Change)
	}
	wantPct := -12.30 / 1468.50 * 100
	if math.Abs(snap.ChangePercent-wantPct) > 1e-9 {
		t.Errorf("ChangePercent = %.4f, want %.4f", snap.ChangePercent, wantPct)
	}
	if got := snap.Timestamp.Format("2006-01-02"); got != "2024-05-01" {
		t.Errorf("Timestamp = %s, want 2024-05-01", got)
	}
	if !snap.Valid() {
		t.Error("fetched snapshot is not Valid()")
	}
}

func TestRateFetcher_Fetch_SingleDay(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"Time Series FX (Daily)": {
				"2024-05-01": {"4. close": "1456.2000"}
			}
		}`))
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	f := NewRateFetcher("test_key", "USD", "KRW", server.URL)
	snap, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() returned unexpected error: %v", err)
	}

	if snap.Rate != 1456.20 {
		t.Errorf("Rate = %.4f, want 1456.20", snap.Rate)
	}
	if snap.Change != 0 || snap.ChangePercent != 0 {
		t.Errorf("Change = %.4f / %.4f%%, want zero with a single day", snap.Change, snap.ChangePercent)
	}
}

func TestRateFetcher_Fetch_EmptySeries(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	f := NewRateFetcher("test_key", "USD", "KRW", server.URL)
	_, err := f.Fetch(context.Background())
	if err == nil {
		t.Error("Fetch() expected error for empty series, got nil")
	}
}

func TestRateFetcher_Fetch_InvalidClose(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"Time Series FX (Daily)": {
				"2024-05-01": {"4. close": "not_a_number"}
			}
		}`))
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	f := NewRateFetcher("test_key", "USD", "KRW", server.URL)
	_, err := f.Fetch(context.Background())
	if err == nil {
		t.Error("Fetch() expected error for invalid close, got nil")
	}
}

func TestRateFetcher_Fetch_HTTPError(t *testing.T) {
	// 404 is not retried by the shared client, keeping the test fast
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	f := NewRateFetcher("test_key", "USD", "KRW", server.URL)
	_, err := f.Fetch(context.Background())
	if err == nil {
		t.Error("Fetch() expected error, got nil")
	}
}

func TestRateFetcher_Fetch_ContextCancellation(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	f := NewRateFetcher("test_key", "USD", "KRW", server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Fetch(ctx)
	if err == nil {
		t.Error("Fetch() expected error for cancelled context, got nil")
	}
}
