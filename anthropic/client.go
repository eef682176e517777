// Package anthropic provides a provider.Client backed by the official
// Anthropic Go SDK. Requests are sent through the Messages API with the
// system prompt carried as a top-level system block.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/puntorigen/junior/provider"
)

// DefaultMaxTokens bounds completions when the caller does not set one.
// The Messages API requires max_tokens on every request.
const DefaultMaxTokens = 4096

// Client talks to the Anthropic Messages API.
type Client struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

// NewClient builds an Anthropic client from cfg. The API key is required.
func NewClient(cfg provider.Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, provider.NewError(provider.Anthropic, "new", provider.ErrMissingCredential, false)
	}
	if cfg.Model == "" {
		return nil, provider.NewError(provider.Anthropic, "new", provider.ErrInvalidRequest, false)
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	maxTokens := cfg.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	return &Client{
		client:    anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: maxTokens,
	}, nil
}

// Complete sends the prompt and returns the concatenated text blocks of
// the reply.
func (c *Client) Complete(ctx context.Context, req provider.Request) (*provider.Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemPrompt}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	start := time.Now()
	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		wrapped, retryable := classify(err)
		return nil, provider.NewError(provider.Anthropic, "complete", wrapped, retryable)
	}

	var content string
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			content += text.Text
		}
	}
	if content == "" {
		return nil, provider.NewError(provider.Anthropic, "complete", provider.ErrEmptyResponse, false)
	}

	return &provider.Response{
		Content:      content,
		Model:        string(msg.Model),
		FinishReason: string(msg.StopReason),
		Usage: provider.TokenUsage{
			InputTokens:  int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
			TotalTokens:  int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		},
		Duration: time.Since(start),
	}, nil
}

// classify maps an SDK error onto the provider sentinels and decides
// retryability from the HTTP status: rate limits and server errors are
// retryable, other API rejections are not. Transport-level failures
// carry no status and are treated as retryable.
func classify(err error) (error, bool) {
	var apierr *anthropic.Error
	if !errors.As(err, &apierr) {
		return err, true
	}
	switch {
	case apierr.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", provider.ErrRateLimited, err), true
	case apierr.StatusCode >= 500:
		return fmt.Errorf("%w: %v", provider.ErrUnavailable, err), true
	default:
		return fmt.Errorf("%w: %v", provider.ErrInvalidRequest, err), false
	}
}

// Name reports the provider identity.
func (c *Client) Name() provider.Name { return provider.Anthropic }

// Model reports the configured model identifier.
func (c *Client) Model() string { return c.model }

// Close releases client resources. The SDK holds no persistent
// connections beyond the shared HTTP transport, so this is a no-op.
func (c *Client) Close() error { return nil }
