package brain

import (
	"context"
	"errors"
	"testing"

	"github.com/puntorigen/junior/model"
	"github.com/puntorigen/junior/provider"
	"github.com/puntorigen/junior/settings"
)

// installFactory registers a recording factory for a provider name and
// removes it when the test ends.
func installFactory(t *testing.T, name provider.Name, calls *[]provider.Config) {
	t.Helper()
	provider.Register(name, func(cfg provider.Config) (provider.Client, error) {
		*calls = append(*calls, cfg)
		return &mockClient{name: name, model: cfg.Model}, nil
	})
	t.Cleanup(func() { provider.Unregister(name) })
}

func TestNew_RemoteWinsOverLocal(t *testing.T) {
	var calls []provider.Config
	installFactory(t, provider.Ollama, &calls)

	catalog, err := model.NewCatalog([]model.Config{{
		Identifier:          "ollama/llama3.2",
		Local:               true,
		ContextWindowTokens: 8192,
		MaxOutputTokens:     512,
		ExpertFor:           []string{"code"},
	}})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	// The same identifier appears in both sections; the remote entry
	// must win and the local pass must not overwrite it.
	s, err := settings.Parse(`
[llm.remote]
"ollama/llama3.2" = "remote-key"

[llm.local]
"ollama/llama3.2" = true
`)
	if err != nil {
		t.Fatalf("Parse settings: %v", err)
	}

	b, err := New(context.Background(), s, catalog)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if len(calls) != 1 {
		t.Fatalf("factory invoked %d times, want 1", len(calls))
	}
	if calls[0].APIKey != "remote-key" {
		t.Errorf("APIKey = %q, want the remote credential", calls[0].APIKey)
	}
	if got := b.Models(); len(got) != 1 {
		t.Errorf("Models() = %v", got)
	}
}

func TestNew_MissingCredentialIsSilentAbsence(t *testing.T) {
	var calls []provider.Config
	installFactory(t, provider.OpenAI, &calls)

	catalog, err := model.NewCatalog([]model.Config{{
		Identifier:          "openai/gpt-4o",
		ContextWindowTokens: 8192,
		MaxOutputTokens:     512,
		ExpertFor:           []string{"code"},
	}})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	// Configured with an empty credential (unset env var).
	s, err := settings.Parse(`
[llm.remote]
"openai/gpt-4o" = ""
`)
	if err != nil {
		t.Fatalf("Parse settings: %v", err)
	}

	b, err := New(context.Background(), s, catalog)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(calls) != 0 {
		t.Error("no factory call expected without a credential")
	}
	if got := b.Models(); len(got) != 0 {
		t.Errorf("Models() = %v, want none", got)
	}
}

func TestNew_FailingFactoryIsSkipped(t *testing.T) {
	provider.Register(provider.OpenAI, func(provider.Config) (provider.Client, error) {
		return nil, errors.New("bad config")
	})
	t.Cleanup(func() { provider.Unregister(provider.OpenAI) })

	catalog, err := model.NewCatalog([]model.Config{{
		Identifier:          "openai/gpt-4o",
		ContextWindowTokens: 8192,
		MaxOutputTokens:     512,
	}})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	s, err := settings.Parse(`
[llm.remote]
"openai/gpt-4o" = "sk-test"
`)
	if err != nil {
		t.Fatalf("Parse settings: %v", err)
	}

	b, err := New(context.Background(), s, catalog)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := b.Models(); len(got) != 0 {
		t.Errorf("Models() = %v, want the failing model absent", got)
	}
}

type stubRuntime struct {
	err    error
	called bool
}

func (r *stubRuntime) EnsureRunning(context.Context) error {
	r.called = true
	return r.err
}

func TestNew_LocalModelsStartRuntime(t *testing.T) {
	var calls []provider.Config
	installFactory(t, provider.Ollama, &calls)

	catalog, err := model.NewCatalog([]model.Config{{
		Identifier:          "ollama/llama3.2",
		Local:               true,
		ContextWindowTokens: 8192,
		MaxOutputTokens:     512,
	}})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	s, err := settings.Parse(`
ollama_host = "http://localhost:11434/v1"

[llm.local]
"ollama/llama3.2" = true
`)
	if err != nil {
		t.Fatalf("Parse settings: %v", err)
	}

	rt := &stubRuntime{}
	b, err := New(context.Background(), s, catalog, WithRuntime(rt))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if !rt.called {
		t.Error("runtime should be ensured when local models are enabled")
	}
	if len(calls) != 1 || calls[0].BaseURL != "http://localhost:11434/v1" {
		t.Errorf("local client config = %+v", calls)
	}
	if got := b.Models(); len(got) != 1 {
		t.Errorf("Models() = %v", got)
	}
}

func TestNew_RuntimeFailureSkipsLocalModels(t *testing.T) {
	var calls []provider.Config
	installFactory(t, provider.Ollama, &calls)

	catalog, err := model.NewCatalog([]model.Config{{
		Identifier:          "ollama/llama3.2",
		Local:               true,
		ContextWindowTokens: 8192,
		MaxOutputTokens:     512,
	}})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	s, err := settings.Parse(`
[llm.local]
"ollama/llama3.2" = true
`)
	if err != nil {
		t.Fatalf("Parse settings: %v", err)
	}

	rt := &stubRuntime{err: errors.New("daemon down")}
	b, err := New(context.Background(), s, catalog, WithRuntime(rt))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(calls) != 0 {
		t.Error("no local client should be built when the runtime is down")
	}
	if got := b.Models(); len(got) != 0 {
		t.Errorf("Models() = %v, want none", got)
	}
}
