package testutil

import (
	"context"
	"sync"

	"fxblog/internal/market"
	"fxblog/internal/news"
	"fxblog/internal/publisher"
)

// MockRateSource is a mock exchange-rate source for testing
type MockRateSource struct {
	Snapshot market.Snapshot
	Err      error
}

// Fetch implements pipeline.RateSource
func (m *MockRateSource) Fetch(ctx context.Context) (market.Snapshot, error) {
	return m.Snapshot, m.Err
}

// MockNewsSource is a mock news source for testing
type MockNewsSource struct {
	Items []news.Item
	Err   error
}

// Fetch implements pipeline.NewsSource
func (m *MockNewsSource) Fetch(ctx context.Context) ([]news.Item, error) {
	return m.Items, m.Err
}

// MockPublisher records published posts for assertions
type MockPublisher struct {
	mu    sync.Mutex
	Posts []publisher.Post
	Err   error
}

// Publish implements publisher.Publisher
func (m *MockPublisher) Publish(ctx context.Context, post publisher.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Posts = append(m.Posts, post)
	return nil
}

// Published returns a copy of the recorded posts
func (m *MockPublisher) Published() []publisher.Post {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]publisher.Post(nil), m.Posts...)
}
