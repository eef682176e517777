// Package gemini provides a provider.Client backed by the Google Gen AI
// SDK, using the Gemini API backend.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/puntorigen/junior/provider"
)

// Client talks to the Gemini generateContent API.
type Client struct {
	client    *genai.Client
	model     string
	maxTokens int
}

// NewClient builds a Gemini client from cfg. The API key is required.
func NewClient(cfg provider.Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, provider.NewError(provider.Gemini, "new", provider.ErrMissingCredential, false)
	}
	if cfg.Model == "" {
		return nil, provider.NewError(provider.Gemini, "new", provider.ErrInvalidRequest, false)
	}

	cli, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, provider.NewError(provider.Gemini, "new", err, false)
	}

	return &Client{
		client:    cli,
		model:     cfg.Model,
		maxTokens: cfg.MaxOutputTokens,
	}, nil
}

// Complete sends the prompt and returns the first candidate's text.
// Responses are requested as JSON so structured callers get a clean
// payload without markdown fencing.
func (c *Client) Complete(ctx context.Context, req provider.Request) (*provider.Response, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	if req.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		}
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}
	if maxTokens > 0 {
		config.MaxOutputTokens = int32(maxTokens)
	}
	if req.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(req.Temperature))
	}

	contents := []*genai.Content{
		{Parts: []*genai.Part{{Text: req.Prompt}}},
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		wrapped, retryable := classify(err)
		return nil, provider.NewError(provider.Gemini, "complete", wrapped, retryable)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, provider.NewError(provider.Gemini, "complete", provider.ErrEmptyResponse, false)
	}

	var content string
	for _, part := range resp.Candidates[0].Content.Parts {
		content += part.Text
	}
	if content == "" {
		return nil, provider.NewError(provider.Gemini, "complete", provider.ErrEmptyResponse, false)
	}

	usage := provider.TokenUsage{}
	if resp.UsageMetadata != nil {
		usage.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		usage.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}

	return &provider.Response{
		Content:      content,
		Model:        c.model,
		FinishReason: string(resp.Candidates[0].FinishReason),
		Usage:        usage,
		Duration:     time.Since(start),
	}, nil
}

// classify maps an API error onto the provider sentinels and decides
// retryability from its status code: rate limits and server errors are
// retryable, other rejections are not. Transport-level failures carry
// no code and are treated as retryable.
func classify(err error) (error, bool) {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err, true
	}
	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", provider.ErrRateLimited, err), true
	case apiErr.Code >= 500:
		return fmt.Errorf("%w: %v", provider.ErrUnavailable, err), true
	default:
		return fmt.Errorf("%w: %v", provider.ErrInvalidRequest, err), false
	}
}

// Name reports the provider identity.
func (c *Client) Name() provider.Name { return provider.Gemini }

// Model reports the configured model identifier.
func (c *Client) Model() string { return c.model }

// Close releases client resources.
func (c *Client) Close() error { return nil }
