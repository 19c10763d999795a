package interview

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	applog "github.com/careercanvas/career-canvas-api/internal/platform/logging"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
	userAgent      = "career-canvas-api"
	maxTokens      = 800
)

// Client errors
var (
	ErrNotConfigured = errors.New("ai client has no api key")
	ErrRateLimited   = errors.New("ai rate limit exceeded")
	ErrUpstream      = errors.New("ai upstream error")
	ErrEmptyReply    = errors.New("ai returned no content")
)

// UpstreamError includes response metadata for logging.
type UpstreamError struct {
	Status     int
	RetryAfter string
	cause      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("ai upstream error (status=%d): %v", e.Status, e.cause)
}

// Unwrap enables errors.Is against the client sentinels.
func (e *UpstreamError) Unwrap() error {
	return e.cause
}

// Message is one chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer produces a chat completion.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Client calls an OpenAI-compatible chat completions endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithAPIKey sets the Bearer key.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithModel selects the model.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// NewClient creates a chat completions client.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
		model:      defaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Complete implements Completer.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling chat completions: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		cause := ErrUpstream
		if resp.StatusCode == http.StatusTooManyRequests {
			cause = ErrRateLimited
		}
		retryAfter := strings.TrimSpace(resp.Header.Get("Retry-After"))
		applog.LogWarn(ctx, "ai request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("Retry-After", retryAfter),
		)
		return "", &UpstreamError{Status: resp.StatusCode, RetryAfter: retryAfter, cause: cause}
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", ErrEmptyReply
	}
	return out.Choices[0].Message.Content, nil
}

var _ Completer = (*Client)(nil)
