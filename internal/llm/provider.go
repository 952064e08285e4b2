//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Portions copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package llm provides the generation-provider contract and its
// implementations' shared types.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// CompletionProvider generates text completions. Concrete providers
// differ only in transport and authentication, never in this surface.
type CompletionProvider interface {
	// Complete generates a completion for the given request.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// ModelName returns the name of the model being used.
	ModelName() string
}

// CompletionRequest represents a request to a provider for completion.
type CompletionRequest struct {
	// Prompt is the fully rendered prompt text.
	Prompt string

	// MaxTokens is the maximum number of tokens to generate.
	// If 0, uses the provider's default.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	// If negative, uses the provider's default.
	Temperature float64
}

// CompletionResponse represents a completion response.
type CompletionResponse struct {
	Content      string
	FinishReason string
	Usage        TokenUsage
}

// TokenUsage represents token consumption for a request.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Error codes for provider failures.
const (
	ErrCodeRateLimit    = "rate_limit"
	ErrCodeInvalidKey   = "invalid_api_key"
	ErrCodeModelError   = "model_error"
	ErrCodeTimeout      = "timeout"
	ErrCodeNetworkError = "network_error"
)

// Error is a per-query provider failure: transport, credential, or
// inference. The pipeline surfaces it as a degraded result rather than
// propagating it past the orchestration boundary.
type Error struct {
	Provider   string
	Code       string
	Message    string
	StatusCode int
	Retryable  bool

	// Cause is the underlying transport error, if any. Kept so
	// errors.Is can still see context cancellation and deadlines
	// through the provider classification.
	Cause error
}

func (e *Error) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsProviderError reports whether err is (or wraps) a provider Error.
func IsProviderError(err error) bool {
	var pe *Error
	return errors.As(err, &pe)
}

// ConfigurationError indicates a provider could not be constructed:
// missing credentials or absent local model assets. Unlike Error it is
// a deployment problem, raised at startup and never retried.
type ConfigurationError struct {
	Provider string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("provider %s misconfigured: %s", e.Provider, e.Reason)
}
