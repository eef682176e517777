// Package settings loads junior's configuration: provider credentials, the
// local model list, and the location of the capability catalogue.
//
// The settings file is TOML. Credential values support ${VAR} expansion so
// keys can stay out of the file itself:
//
//	catalog = "models.yaml"
//	local_container = "junior-ollama"
//
//	[llm.remote]
//	"openai/gpt-4o" = "${OPENAI_API_KEY}"
//	"anthropic/claude-sonnet-4-20250514" = "${ANTHROPIC_API_KEY}"
//
//	[llm.local]
//	"ollama/llama3.2" = true
//
// An empty credential (unset environment variable included) means the
// provider is simply not initialized; it is not an error.
package settings

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LLM holds the two model sections, both keyed by "provider/model"
// identifiers matching the capability catalogue.
type LLM struct {
	// Remote maps identifiers to API credentials. Empty values are kept so
	// the caller can tell "configured without key" from "not configured".
	Remote map[string]string `toml:"remote"`

	// Local lists locally served models. A false value disables the entry
	// without deleting it.
	Local map[string]bool `toml:"local"`
}

// Settings is the full configuration structure.
type Settings struct {
	// Catalog is the path to the YAML capability catalogue.
	Catalog string `toml:"catalog"`

	// LocalContainer is the name of the container running the local model
	// runtime. Defaults to DefaultLocalContainer.
	LocalContainer string `toml:"local_container"`

	// OllamaHost overrides the local runtime endpoint.
	// Defaults to DefaultOllamaHost.
	OllamaHost string `toml:"ollama_host"`

	LLM LLM `toml:"llm"`
}

// Defaults for optional fields.
const (
	DefaultLocalContainer = "junior-ollama"
	DefaultOllamaHost     = "http://localhost:11434/v1"
)

// Load reads and expands a TOML settings file.
func Load(path string) (*Settings, error) {
	var s Settings
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	s.expand()
	s.applyDefaults()
	return &s, nil
}

// Parse decodes settings from TOML source text.
func Parse(data string) (*Settings, error) {
	var s Settings
	if _, err := toml.Decode(data, &s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	s.expand()
	s.applyDefaults()
	return &s, nil
}

// expand resolves ${VAR} references in credential values.
func (s *Settings) expand() {
	for id, key := range s.LLM.Remote {
		s.LLM.Remote[id] = os.ExpandEnv(key)
	}
}

func (s *Settings) applyDefaults() {
	if s.LocalContainer == "" {
		s.LocalContainer = DefaultLocalContainer
	}
	if s.OllamaHost == "" {
		s.OllamaHost = DefaultOllamaHost
	}
	if s.LLM.Remote == nil {
		s.LLM.Remote = make(map[string]string)
	}
	if s.LLM.Local == nil {
		s.LLM.Local = make(map[string]bool)
	}
}

// HasLocalModels reports whether any local model is enabled.
func (s *Settings) HasLocalModels() bool {
	for _, enabled := range s.LLM.Local {
		if enabled {
			return true
		}
	}
	return false
}

// Credential returns the expanded credential for a remote identifier.
// The second return is false when the identifier is not configured at all.
func (s *Settings) Credential(identifier string) (string, bool) {
	key, ok := s.LLM.Remote[identifier]
	return key, ok
}
