//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package registry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coffeehaus/brew-rag-server/internal/config"
	"github.com/coffeehaus/brew-rag-server/internal/llm"
	"github.com/coffeehaus/brew-rag-server/internal/llm/ollama"
)

// fakeProvider records the request it received.
type fakeProvider struct {
	content string
	err     error

	gotReq llm.CompletionRequest
}

func (f *fakeProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResponse{Content: f.content}, nil
}

func (f *fakeProvider) ModelName() string { return "fake" }

// testRegistry builds a registry around injected providers, bypassing
// construction from config.
func testRegistry(defaultID string, providers map[string]llm.CompletionProvider) *Registry {
	return &Registry{
		providers:   providers,
		defaultID:   defaultID,
		maxTokens:   1000,
		temperature: 0.7,
		timeout:     5 * time.Second,
	}
}

func TestNewMissingKey(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Providers.Enabled = []string{config.ProviderGemini}

	_, err := New(cfg, &config.LoadedKeys{})

	var confErr *llm.ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("err = %v, want *llm.ConfigurationError", err)
	}
	if confErr.Provider != config.ProviderGemini {
		t.Errorf("Provider = %q, want %q", confErr.Provider, config.ProviderGemini)
	}
}

func TestNewUnknownProvider(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Providers.Enabled = []string{"mystery"}

	_, err := New(cfg, &config.LoadedKeys{})

	var confErr *llm.ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("err = %v, want *llm.ConfigurationError", err)
	}
}

func TestNewHostedProviders(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Providers.Enabled = []string{config.ProviderOpenAI, config.ProviderGemini}
	cfg.Providers.Default = config.ProviderGemini

	r, err := New(cfg, &config.LoadedKeys{OpenAI: "sk-test", Gemini: "g-test"})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	for _, id := range []string{config.ProviderOpenAI, config.ProviderGemini} {
		if _, err := r.Get(id); err != nil {
			t.Errorf("Get(%q) error: %v", id, err)
		}
	}
	if r.DefaultID() != config.ProviderGemini {
		t.Errorf("DefaultID() = %q, want %q", r.DefaultID(), config.ProviderGemini)
	}
}

func TestGet(t *testing.T) {
	fake := &fakeProvider{content: "hi"}
	r := testRegistry("fake", map[string]llm.CompletionProvider{"fake": fake})

	t.Run("empty id resolves to default", func(t *testing.T) {
		p, err := r.Get("")
		if err != nil {
			t.Fatalf("Get(\"\") error: %v", err)
		}
		if p != fake {
			t.Error("Get(\"\") did not return the default provider")
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		if _, err := r.Get("FAKE"); err != nil {
			t.Errorf("Get(\"FAKE\") error: %v", err)
		}
	})

	t.Run("unknown id is a provider error", func(t *testing.T) {
		_, err := r.Get("nope")

		var provErr *llm.Error
		if !errors.As(err, &provErr) {
			t.Fatalf("err = %v, want *llm.Error", err)
		}
	})
}

func TestGenerate(t *testing.T) {
	t.Run("applies generation parameters", func(t *testing.T) {
		fake := &fakeProvider{content: "  a latte answer \n"}
		r := testRegistry("fake", map[string]llm.CompletionProvider{"fake": fake})

		got, err := r.Generate(context.Background(), "", "the prompt")
		if err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		if got != "a latte answer" {
			t.Errorf("Generate() = %q, want trimmed text", got)
		}
		if fake.gotReq.Prompt != "the prompt" {
			t.Errorf("Prompt = %q, want %q", fake.gotReq.Prompt, "the prompt")
		}
		if fake.gotReq.MaxTokens != 1000 {
			t.Errorf("MaxTokens = %d, want 1000", fake.gotReq.MaxTokens)
		}
		if fake.gotReq.Temperature != 0.7 {
			t.Errorf("Temperature = %v, want 0.7", fake.gotReq.Temperature)
		}
	})

	t.Run("provider error passes through", func(t *testing.T) {
		provErr := &llm.Error{Provider: "fake", Code: llm.ErrCodeRateLimit}
		fake := &fakeProvider{err: provErr}
		r := testRegistry("fake", map[string]llm.CompletionProvider{"fake": fake})

		_, err := r.Generate(context.Background(), "fake", "p")
		if !errors.Is(err, provErr) {
			t.Errorf("err = %v, want the provider error unchanged", err)
		}
	})

	t.Run("deadline maps to timeout error", func(t *testing.T) {
		fake := &fakeProvider{err: context.DeadlineExceeded}
		r := testRegistry("fake", map[string]llm.CompletionProvider{"fake": fake})

		_, err := r.Generate(context.Background(), "fake", "p")

		var provErr *llm.Error
		if !errors.As(err, &provErr) {
			t.Fatalf("err = %v, want *llm.Error", err)
		}
		if provErr.Code != llm.ErrCodeTimeout {
			t.Errorf("Code = %q, want %q", provErr.Code, llm.ErrCodeTimeout)
		}
		if !provErr.Retryable {
			t.Error("timeout should be retryable")
		}
	})

	// A real provider client reports an exceeded deadline as a
	// transport-level llm.Error; the classification must still come
	// out as a timeout, not a generic network error.
	t.Run("deadline maps to timeout through a real client", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(500 * time.Millisecond)
			_, _ = w.Write([]byte(`{"response": "too late", "done": true}`))
		}))
		defer srv.Close()

		client := ollama.NewClient(ollama.WithBaseURL(srv.URL))
		provider := ollama.NewCompletionProvider(ollama.WithCompletionClient(client))

		r := testRegistry("ollama", map[string]llm.CompletionProvider{"ollama": provider})
		r.timeout = 50 * time.Millisecond

		start := time.Now()
		_, err := r.Generate(context.Background(), "ollama", "p")
		if err == nil {
			t.Fatal("expected error")
		}
		if time.Since(start) >= 500*time.Millisecond {
			t.Error("call was not bounded by the registry deadline")
		}

		var provErr *llm.Error
		if !errors.As(err, &provErr) {
			t.Fatalf("err = %v, want *llm.Error", err)
		}
		if provErr.Code != llm.ErrCodeTimeout {
			t.Errorf("Code = %q, want %q", provErr.Code, llm.ErrCodeTimeout)
		}
		if !provErr.Retryable {
			t.Error("timeout should be retryable")
		}
	})

	t.Run("unknown provider fails without invoking anything", func(t *testing.T) {
		fake := &fakeProvider{content: "hi"}
		r := testRegistry("fake", map[string]llm.CompletionProvider{"fake": fake})

		if _, err := r.Generate(context.Background(), "nope", "p"); err == nil {
			t.Error("expected error for unknown provider")
		}
		if fake.gotReq.Prompt != "" {
			t.Error("no provider should have been invoked")
		}
	})
}
