package provider

import "time"

// Request configures a single completion call.
// This is the provider-agnostic request format used across all clients.
type Request struct {
	// SystemPrompt sets the system message that guides the model's behavior.
	SystemPrompt string `json:"system_prompt,omitempty"`

	// Prompt is the user prompt to send to the model.
	Prompt string `json:"prompt"`

	// MaxTokens limits the response length. 0 uses the client's default.
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature controls response randomness (0.0 = deterministic).
	Temperature float64 `json:"temperature,omitempty"`
}

// Response is the output of a completion call.
type Response struct {
	// Content is the text response from the model. For clients running in a
	// structured-output mode this is the raw JSON payload before coercion.
	Content string `json:"content"`

	// Model is the actual model used (may differ from requested).
	Model string `json:"model"`

	// FinishReason indicates why the model stopped generating.
	// Common values: "stop", "length".
	FinishReason string `json:"finish_reason,omitempty"`

	// Usage tracks token consumption reported by the provider.
	// Zero when the provider does not report usage.
	Usage TokenUsage `json:"usage"`

	// Duration is the time taken for the completion.
	Duration time.Duration `json:"duration"`
}

// TokenUsage tracks token consumption for one call.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Add combines token usage from another TokenUsage.
func (u *TokenUsage) Add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.TotalTokens += other.TotalTokens
}
