//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package registry constructs generation providers from configuration
// and dispatches rendered prompts to them.
package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coffeehaus/brew-rag-server/internal/config"
	"github.com/coffeehaus/brew-rag-server/internal/llm"
	"github.com/coffeehaus/brew-rag-server/internal/llm/gemini"
	"github.com/coffeehaus/brew-rag-server/internal/llm/ollama"
	"github.com/coffeehaus/brew-rag-server/internal/llm/openai"
)

// ollamaProbeTimeout bounds the reachability check for the local
// backend at construction time.
const ollamaProbeTimeout = 5 * time.Second

// Registry holds one provider instance per configured identifier.
//
// Providers are constructed once at startup and reused for every query,
// so expensive initialization (HTTP clients, local model residency) is
// paid once. The registry is safe for concurrent use: hosted providers
// allow unrestricted concurrent invocation, and the local provider
// serializes internally.
type Registry struct {
	providers   map[string]llm.CompletionProvider
	defaultID   string
	maxTokens   int
	temperature float64
	timeout     time.Duration
}

// New builds every enabled provider from configuration. A provider that
// cannot be constructed (missing credentials, unreachable local
// backend) fails the whole registry with a ConfigurationError: that is
// a deployment problem, not a per-query condition.
func New(cfg *config.Config, keys *config.LoadedKeys) (*Registry, error) {
	r := &Registry{
		providers:   make(map[string]llm.CompletionProvider, len(cfg.Providers.Enabled)),
		defaultID:   strings.ToLower(cfg.Providers.Default),
		maxTokens:   cfg.Generation.MaxTokens,
		temperature: *cfg.Generation.Temperature,
		timeout:     time.Duration(cfg.Generation.TimeoutSeconds) * time.Second,
	}

	for _, id := range cfg.Providers.Enabled {
		id = strings.ToLower(id)
		provider, err := buildProvider(id, cfg, keys)
		if err != nil {
			return nil, err
		}
		r.providers[id] = provider
	}

	return r, nil
}

// buildProvider constructs a single provider by identifier.
func buildProvider(
	id string,
	cfg *config.Config,
	keys *config.LoadedKeys,
) (llm.CompletionProvider, error) {
	switch id {
	case config.ProviderOpenAI:
		if keys == nil || keys.OpenAI == "" {
			return nil, &llm.ConfigurationError{
				Provider: id,
				Reason:   "OpenAI API key not configured",
			}
		}
		opts := []openai.CompletionOption{}
		if cfg.Providers.OpenAI.Model != "" {
			opts = append(opts, openai.WithCompletionModel(cfg.Providers.OpenAI.Model))
		}
		return openai.NewCompletionProvider(keys.OpenAI, opts...), nil

	case config.ProviderGemini:
		if keys == nil || keys.Gemini == "" {
			return nil, &llm.ConfigurationError{
				Provider: id,
				Reason:   "Gemini API key not configured",
			}
		}
		opts := []gemini.CompletionOption{}
		if cfg.Providers.Gemini.Model != "" {
			opts = append(opts, gemini.WithCompletionModel(cfg.Providers.Gemini.Model))
		}
		return gemini.NewCompletionProvider(keys.Gemini, opts...), nil

	case config.ProviderOllama:
		clientOpts := []ollama.ClientOption{}
		if cfg.Providers.Ollama.BaseURL != "" {
			clientOpts = append(clientOpts, ollama.WithBaseURL(cfg.Providers.Ollama.BaseURL))
		}
		client := ollama.NewClient(clientOpts...)

		// The local backend holds the model assets; verify it is
		// actually there before accepting queries for it.
		ctx, cancel := context.WithTimeout(context.Background(), ollamaProbeTimeout)
		defer cancel()
		if err := client.Ping(ctx); err != nil {
			return nil, &llm.ConfigurationError{
				Provider: id,
				Reason:   fmt.Sprintf("local backend unreachable: %v", err),
			}
		}

		opts := []ollama.CompletionOption{ollama.WithCompletionClient(client)}
		if cfg.Providers.Ollama.Model != "" {
			opts = append(opts, ollama.WithCompletionModel(cfg.Providers.Ollama.Model))
		}
		return ollama.NewCompletionProvider(opts...), nil

	default:
		return nil, &llm.ConfigurationError{
			Provider: id,
			Reason:   "unknown provider",
		}
	}
}

// Get returns the provider for the given identifier, or the default
// provider when id is empty.
func (r *Registry) Get(id string) (llm.CompletionProvider, error) {
	if id == "" {
		id = r.defaultID
	}

	provider, ok := r.providers[strings.ToLower(id)]
	if !ok {
		return nil, &llm.Error{
			Provider: id,
			Code:     llm.ErrCodeModelError,
			Message:  fmt.Sprintf("unknown provider: %s", id),
		}
	}
	return provider, nil
}

// DefaultID returns the identifier of the default provider.
func (r *Registry) DefaultID() string {
	return r.defaultID
}

// Generate dispatches a rendered prompt to the selected provider,
// enforcing the process-wide generation parameters and a bounded wait.
// An exceeded deadline surfaces as a timeout provider error instead of
// blocking the pipeline indefinitely.
func (r *Registry) Generate(ctx context.Context, providerID, prompt string) (string, error) {
	provider, err := r.Get(providerID)
	if err != nil {
		return "", err
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	resp, err := provider.Complete(ctx, llm.CompletionRequest{
		Prompt:      prompt,
		MaxTokens:   r.maxTokens,
		Temperature: r.temperature,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &llm.Error{
				Provider:  providerID,
				Code:      llm.ErrCodeTimeout,
				Message:   "generation timed out",
				Retryable: true,
			}
		}
		return "", err
	}

	return strings.TrimSpace(resp.Content), nil
}
