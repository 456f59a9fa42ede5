package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"resty.dev/v3"

	"fxblog/internal/ratelimit"
)

// RequestKind tells the client what it is generating. Title requests
// skip the refinement pass; sniffing the prompt text for this would be
// brittle, so callers state it explicitly.
type RequestKind int

const (
	KindCommentary RequestKind = iota
	KindTitle
)

const (
	defaultMaxRetries  = 3
	defaultTimeout     = 60 * time.Second
	defaultTemperature = 0.7
	defaultMaxTokens   = 1500
)

// Failure sentinels returned in place of an error when generation is
// exhausted. Callers detect them with IsFailure and fall back to
// template content instead of aborting the pipeline.
const (
	failureGeneric = "시장 분석 생성에 실패했습니다. 잠시 후 다시 시도해 주세요."
	failureTimeout = "시장 분석 생성에 실패했습니다. 서버 응답이 지연되고 있습니다."
	failureSystem  = "시장 분석 생성에 실패했습니다. 시스템 오류가 발생했습니다."

	// Shared prefix of all sentinels, used for detection
	failureMarker = "시장 분석 생성에 실패"
)

// IsFailure reports whether a generated text is one of the failure sentinels
func IsFailure(text string) bool {
	return strings.Contains(text, failureMarker)
}

// Client issues chat-completion requests to a DeepSeek-compatible
// endpoint with bounded retry and exponential backoff. Commentary
// requests are chained through a second stylistic refinement call.
type Client struct {
	apiKey     string
	model      string
	maxRetries int
	client     *resty.Client

	// sleep is swapped out by tests to observe backoff timing
	sleep func(time.Duration)
}

// NewClient creates a chat-completion client. The API key must be
// non-empty; its absence is a configuration error, not a runtime one.
func NewClient(apiKey, baseURL, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("deepseek API key is required")
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(apiKey).
		SetTimeout(defaultTimeout)

	return &Client{
		apiKey:     apiKey,
		model:      model,
		maxRetries: defaultMaxRetries,
		client:     client,
		sleep:      time.Sleep,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// statusError is a non-2xx response from the chat endpoint
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("chat API returned status %d: %s", e.code, e.body)
}

// GenerateText generates text for the given prompt. Commentary requests
// are refined by a second call; a refinement failure degrades to the
// unrefined draft rather than failing the operation. After maxRetries
// failed attempts the result is a failure sentinel, never an error.
//
// The wait before retry attempt k (1-indexed) is 2^(k-1) seconds.
func (c *Client) GenerateText(ctx context.Context, prompt string, kind RequestKind) string {
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		slog.Info("generating analysis", "attempt", attempt, "max_retries", c.maxRetries, "kind", kind)

		text, err := c.complete(ctx, prompt)
		if err == nil {
			// Asterisks are disallowed decoration per the style policy
			text = strings.ReplaceAll(text, "*", "")

			if kind == KindTitle {
				return text
			}

			refined, rerr := c.complete(ctx, refinementPrompt(text))
			if rerr != nil {
				slog.Error("refinement call failed, keeping unrefined draft", "error", rerr)
				return text
			}
			return strings.ReplaceAll(refined, "*", "")
		}

		lastErr = err
		slog.Error("chat completion failed", "attempt", attempt, "error", err)

		if attempt < c.maxRetries {
			wait := time.Duration(1<<(attempt-1)) * time.Second
			slog.Info("waiting before retry", "wait", wait)
			c.sleep(wait)
		}
	}

	var se *statusError
	switch {
	case isTimeout(lastErr):
		return failureTimeout
	case errors.As(lastErr, &se):
		return failureGeneric
	default:
		return failureSystem
	}
}

// complete issues a single chat-completion request
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	if err := ratelimit.GetLimiter().Wait(ctx, ratelimit.APIDeepSeek); err != nil {
		return "", err
	}

	var result chatResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:       c.model,
			Messages:    []chatMessage{{Role: "user", Content: prompt}},
			Temperature: defaultTemperature,
			MaxTokens:   defaultMaxTokens,
		}).
		SetResult(&result).
		Post("/chat/completions")

	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	if !resp.IsSuccess() {
		return "", &statusError{code: resp.StatusCode(), body: resp.String()}
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in chat response")
	}

	return result.Choices[0].Message.Content, nil
}

// isTimeout reports whether err is a request timeout
func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
