package provider

import (
	"fmt"
	"strings"
)

// Name identifies a supported provider. The set is closed; use ParseName to
// turn configuration strings into a Name.
type Name string

// The supported providers.
const (
	OpenAI    Name = "openai"
	Anthropic Name = "anthropic"
	Groq      Name = "groq"
	Gemini    Name = "gemini"
	Ollama    Name = "ollama"
)

// Known returns all supported provider names in a fixed order.
func Known() []Name {
	return []Name{OpenAI, Anthropic, Groq, Gemini, Ollama}
}

// ParseName converts a configuration string into a Name.
// Matching is case-insensitive. Returns ErrUnknownProvider for anything
// outside the supported set.
func ParseName(s string) (Name, error) {
	switch Name(strings.ToLower(strings.TrimSpace(s))) {
	case OpenAI:
		return OpenAI, nil
	case Anthropic:
		return Anthropic, nil
	case Groq:
		return Groq, nil
	case Gemini:
		return Gemini, nil
	case Ollama:
		return Ollama, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownProvider, s)
	}
}

// ParseIdentifier splits a "provider/model" identifier as used in settings
// and the capability catalogue (e.g. "openai/gpt-4o", "ollama/llama3.2").
func ParseIdentifier(id string) (Name, string, error) {
	head, model, ok := strings.Cut(id, "/")
	if !ok || model == "" {
		return "", "", fmt.Errorf("%w: %q (want provider/model)", ErrInvalidIdentifier, id)
	}
	name, err := ParseName(head)
	if err != nil {
		return "", "", err
	}
	return name, model, nil
}
