package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"resty.dev/v3"

	"fxblog/internal/fetcher"
	"fxblog/internal/ratelimit"
)

// Post is the finished article handed to the blog.
type Post struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// Publisher delivers a finished post somewhere.
type Publisher interface {
	Publish(ctx context.Context, post Post) error
}

// HTTPPublisher posts articles to a blog HTTP API with bearer auth.
type HTTPPublisher struct {
	client *resty.Client
}

// NewHTTPPublisher creates a publisher for the given blog endpoint
func NewHTTPPublisher(baseURL, accessToken string) *HTTPPublisher {
	client := fetcher.NewHTTPClient(baseURL).
		SetAuthToken(accessToken)

	return &HTTPPublisher{client: client}
}

// Publish sends the post as JSON to the blog's posts endpoint
func (p *HTTPPublisher) Publish(ctx context.Context, post Post) error {
	if post.Title == "" || post.Content == "" {
		return fetcher.NewValidationError("post must have a title and content")
	}

	if err := ratelimit.GetLimiter().Wait(ctx, ratelimit.APIBlog); err != nil {
		return err
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(post).
		Post("/posts")

	if err != nil {
		return fmt.Errorf("failed to publish post: %w", err)
	}

	if !resp.IsSuccess() {
		return fetcher.ClassifyHTTPError(resp.StatusCode())
	}

	slog.Info("post published", "title", post.Title, "tags", len(post.Tags))
	return nil
}

// LogPublisher writes the post to the log instead of a blog. Used when
// no blog access token is configured.
type LogPublisher struct{}

// NewLogPublisher creates a log-only publisher
func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

// Publish logs the post
func (p *LogPublisher) Publish(ctx context.Context, post Post) error {
	slog.Info("publishing disabled, logging post instead",
		"title", post.Title,
		"content_length", len(post.Content),
		"tags", strings.Join(post.Tags, ","))
	return nil
}
