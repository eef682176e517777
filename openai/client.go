// Package openai implements the provider client for OpenAI's chat
// completions API and for the OpenAI-compatible endpoints exposed by Groq
// and the local Ollama runtime. The groq and ollama packages register thin
// factories that point this client at their base URLs.
//
// Structured output uses JSON mode (response_format json_object); the
// schema itself travels in the system prompt.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/puntorigen/junior/provider"
)

// DefaultBaseURL is the OpenAI API endpoint.
const DefaultBaseURL = "https://api.openai.com/v1"

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	name       provider.Name
	model      string
	apiKey     string
	baseURL    string
	maxTokens  int
	jsonMode   bool
	httpClient *http.Client
}

// NewClient creates a client for the given provider name against an
// OpenAI-compatible endpoint. Used directly by this package's factory and
// reused by the groq and ollama factories.
func NewClient(name provider.Name, cfg provider.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, provider.NewError(name, "new", err, false)
	}
	if cfg.APIKey == "" {
		return nil, provider.NewError(name, "new", provider.ErrMissingCredential, false)
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = provider.DefaultTimeout
	}

	return &Client{
		name:       name,
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		maxTokens:  cfg.MaxOutputTokens,
		jsonMode:   cfg.GetBoolOption("json_mode", true),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// chatRequest is the wire format for POST /chat/completions.
type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    *float64        `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete implements provider.Client.
func (c *Client) Complete(ctx context.Context, req provider.Request) (*provider.Response, error) {
	body := chatRequest{
		Model:     c.model,
		MaxTokens: req.MaxTokens,
	}
	if body.MaxTokens == 0 {
		body.MaxTokens = c.maxTokens
	}
	if req.Temperature > 0 {
		body.Temperature = &req.Temperature
	}
	if c.jsonMode {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	if req.SystemPrompt != "" {
		body.Messages = append(body.Messages, chatMessage{Role: "system", Content: req.SystemPrompt})
	}
	body.Messages = append(body.Messages, chatMessage{Role: "user", Content: req.Prompt})

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, provider.NewError(c.name, "complete", err, false)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, provider.NewError(c.name, "complete", err, false)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, provider.NewError(c.name, "complete", err, true)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, provider.NewError(c.name, "complete", err, true)
	}

	if err := statusError(resp.StatusCode, data); err != nil {
		return nil, provider.NewError(c.name, "complete", err, provider.IsRetryable(err))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, provider.NewError(c.name, "complete", fmt.Errorf("decode response: %w", err), false)
	}
	if parsed.Error != nil {
		return nil, provider.NewError(c.name, "complete",
			fmt.Errorf("%s: %s", parsed.Error.Type, parsed.Error.Message), false)
	}
	if len(parsed.Choices) == 0 {
		return nil, provider.NewError(c.name, "complete", provider.ErrEmptyResponse, false)
	}

	choice := parsed.Choices[0]
	respModel := parsed.Model
	if respModel == "" {
		respModel = c.model
	}

	return &provider.Response{
		Content:      choice.Message.Content,
		Model:        respModel,
		FinishReason: choice.FinishReason,
		Duration:     time.Since(start),
		Usage: provider.TokenUsage{
			InputTokens:  parsed.Usage.PromptTokens,
			OutputTokens: parsed.Usage.CompletionTokens,
			TotalTokens:  parsed.Usage.TotalTokens,
		},
	}, nil
}

// Name implements provider.Client.
func (c *Client) Name() provider.Name { return c.name }

// Model implements provider.Client.
func (c *Client) Model() string { return c.model }

// Close implements provider.Client.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// statusError maps HTTP status codes onto the provider sentinel errors.
func statusError(status int, body []byte) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", provider.ErrRateLimited, firstLine(body))
	case status >= 500:
		return fmt.Errorf("%w: status %d: %s", provider.ErrUnavailable, status, firstLine(body))
	default:
		return fmt.Errorf("%w: status %d: %s", provider.ErrInvalidRequest, status, firstLine(body))
	}
}

func firstLine(body []byte) string {
	s := strings.TrimSpace(string(body))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
