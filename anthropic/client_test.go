package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/puntorigen/junior/provider"
)

func TestNewClient_RequiresCredential(t *testing.T) {
	_, err := NewClient(provider.Config{Provider: provider.Anthropic, Model: "claude-sonnet-4-20250514"})
	if !errors.Is(err, provider.ErrMissingCredential) {
		t.Errorf("expected ErrMissingCredential, got %v", err)
	}
}

func TestNewClient_RequiresModel(t *testing.T) {
	_, err := NewClient(provider.Config{Provider: provider.Anthropic, APIKey: "sk-ant"})
	if !errors.Is(err, provider.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["model"] != "claude-sonnet-4-20250514" {
			t.Errorf("model = %v", body["model"])
		}
		if _, ok := body["system"]; !ok {
			t.Error("expected a system block")
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":    "msg_test",
			"type":  "message",
			"role":  "assistant",
			"model": "claude-sonnet-4-20250514",
			"content": []map[string]any{
				{"type": "text", "text": `{"summary": "done"}`},
			},
			"stop_reason": "end_turn",
			"usage":       map[string]any{"input_tokens": 20, "output_tokens": 8},
		})
	}))
	defer srv.Close()

	client, err := NewClient(provider.Config{
		Provider: provider.Anthropic,
		Model:    "claude-sonnet-4-20250514",
		APIKey:   "sk-ant-test",
		BaseURL:  srv.URL,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	resp, err := client.Complete(context.Background(), provider.Request{
		SystemPrompt: "Answer in JSON.",
		Prompt:       "Summarize.",
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if resp.Content != `{"summary": "done"}` {
		t.Errorf("Content = %q", resp.Content)
	}
	if resp.Usage.InputTokens != 20 || resp.Usage.OutputTokens != 8 {
		t.Errorf("Usage = %+v", resp.Usage)
	}
	if resp.FinishReason != "end_turn" {
		t.Errorf("FinishReason = %q", resp.FinishReason)
	}
}

func TestComplete_InvalidRequestNotRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"type": "error",
			"error": map[string]any{
				"type":    "invalid_request_error",
				"message": "max_tokens is too large",
			},
		})
	}))
	defer srv.Close()

	client, err := NewClient(provider.Config{
		Provider: provider.Anthropic,
		Model:    "claude-sonnet-4-20250514",
		APIKey:   "sk-ant-test",
		BaseURL:  srv.URL,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.Complete(context.Background(), provider.Request{Prompt: "hi"})
	if !errors.Is(err, provider.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
	if provider.IsRetryable(err) {
		t.Error("a rejected request must not be retryable")
	}
}
