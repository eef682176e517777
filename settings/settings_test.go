package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
catalog = "models.yaml"
local_container = "my-ollama"

[llm.remote]
"openai/gpt-4o" = "sk-test"
"anthropic/claude-sonnet-4-20250514" = "${JUNIOR_TEST_ANTHROPIC_KEY}"
"groq/llama-3.3-70b" = ""

[llm.local]
"ollama/llama3.2" = true
"ollama/phi3" = false
`

func TestParse(t *testing.T) {
	t.Setenv("JUNIOR_TEST_ANTHROPIC_KEY", "ak-expanded")

	s, err := Parse(sampleTOML)
	require.NoError(t, err)

	assert.Equal(t, "models.yaml", s.Catalog)
	assert.Equal(t, "my-ollama", s.LocalContainer)
	assert.Equal(t, DefaultOllamaHost, s.OllamaHost)

	key, ok := s.Credential("openai/gpt-4o")
	require.True(t, ok)
	assert.Equal(t, "sk-test", key)

	key, ok = s.Credential("anthropic/claude-sonnet-4-20250514")
	require.True(t, ok)
	assert.Equal(t, "ak-expanded", key, "credentials expand ${VAR} references")

	key, ok = s.Credential("groq/llama-3.3-70b")
	require.True(t, ok, "configured-without-key differs from not configured")
	assert.Empty(t, key)

	_, ok = s.Credential("gemini/gemini-2.5-flash")
	assert.False(t, ok)

	assert.True(t, s.HasLocalModels())
	assert.True(t, s.LLM.Local["ollama/llama3.2"])
	assert.False(t, s.LLM.Local["ollama/phi3"])
}

func TestParse_UnsetEnvBecomesEmpty(t *testing.T) {
	s, err := Parse("[llm.remote]\n\"openai/gpt-4o\" = \"${JUNIOR_TEST_MISSING_KEY}\"\n")
	require.NoError(t, err)

	key, ok := s.Credential("openai/gpt-4o")
	require.True(t, ok)
	assert.Empty(t, key)
}

func TestParse_Defaults(t *testing.T) {
	s, err := Parse("")
	require.NoError(t, err)

	assert.Equal(t, DefaultLocalContainer, s.LocalContainer)
	assert.Equal(t, DefaultOllamaHost, s.OllamaHost)
	assert.NotNil(t, s.LLM.Remote)
	assert.NotNil(t, s.LLM.Local)
	assert.False(t, s.HasLocalModels())
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("[llm\nbroken")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTOML), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "models.yaml", s.Catalog)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte(`catalog = "first.yaml"`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Settings, 4)
	require.NoError(t, Watch(ctx, path, func(s *Settings) {
		changes <- s
	}))

	require.NoError(t, os.WriteFile(path, []byte(`catalog = "second.yaml"`), 0o644))

	select {
	case s := <-changes:
		assert.Equal(t, "second.yaml", s.Catalog)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for settings reload")
	}
}
