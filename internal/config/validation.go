//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Portions copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}

// ValidationError represents a single configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// knownProviders are the provider identifiers the registry can build.
var knownProviders = map[string]bool{
	ProviderOpenAI: true,
	ProviderGemini: true,
	ProviderOllama: true,
}

// Validate checks the configuration for errors and returns all
// validation errors found.
func (c *Config) Validate() error {
	var errs ValidationErrors

	errs = append(errs, c.validateServer()...)
	errs = append(errs, c.validateDatabase()...)
	errs = append(errs, c.validateProviders()...)
	errs = append(errs, c.validateGeneration()...)
	errs = append(errs, c.validateRetrieval()...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// validateServer validates server configuration.
func (c *Config) validateServer() ValidationErrors {
	var errs ValidationErrors

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, ValidationError{
			Field:   "server.port",
			Message: "must be between 1 and 65535",
		})
	}

	if c.Server.TLS.Enabled {
		if c.Server.TLS.CertFile == "" {
			errs = append(errs, ValidationError{
				Field:   "server.tls.cert_file",
				Message: "required when TLS is enabled",
			})
		} else if _, err := os.Stat(expandPath(c.Server.TLS.CertFile)); err != nil {
			errs = append(errs, ValidationError{
				Field:   "server.tls.cert_file",
				Message: fmt.Sprintf("file not found: %s", c.Server.TLS.CertFile),
			})
		}

		if c.Server.TLS.KeyFile == "" {
			errs = append(errs, ValidationError{
				Field:   "server.tls.key_file",
				Message: "required when TLS is enabled",
			})
		} else if _, err := os.Stat(expandPath(c.Server.TLS.KeyFile)); err != nil {
			errs = append(errs, ValidationError{
				Field:   "server.tls.key_file",
				Message: fmt.Sprintf("file not found: %s", c.Server.TLS.KeyFile),
			})
		}
	}

	return errs
}

// validateDatabase validates database configuration.
func (c *Config) validateDatabase() ValidationErrors {
	var errs ValidationErrors

	if c.Database.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "database.host",
			Message: "required",
		})
	}

	if c.Database.Database == "" {
		errs = append(errs, ValidationError{
			Field:   "database.database",
			Message: "required",
		})
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		errs = append(errs, ValidationError{
			Field:   "database.port",
			Message: "must be between 1 and 65535",
		})
	}

	validSSLModes := map[string]bool{
		"disable":     true,
		"allow":       true,
		"prefer":      true,
		"require":     true,
		"verify-ca":   true,
		"verify-full": true,
	}
	if c.Database.SSLMode != "" && !validSSLModes[c.Database.SSLMode] {
		errs = append(errs, ValidationError{
			Field:   "database.ssl_mode",
			Message: "must be one of: disable, allow, prefer, require, verify-ca, verify-full",
		})
	}

	return errs
}

// validateProviders validates the provider selection.
func (c *Config) validateProviders() ValidationErrors {
	var errs ValidationErrors

	if len(c.Providers.Enabled) == 0 {
		errs = append(errs, ValidationError{
			Field:   "providers.enabled",
			Message: "at least one provider must be enabled",
		})
		return errs
	}

	enabled := make(map[string]bool)
	for i, provider := range c.Providers.Enabled {
		p := strings.ToLower(provider)
		if !knownProviders[p] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("providers.enabled[%d]", i),
				Message: fmt.Sprintf("unknown provider: %s", provider),
			})
			continue
		}
		if enabled[p] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("providers.enabled[%d]", i),
				Message: fmt.Sprintf("duplicate provider: %s", provider),
			})
		}
		enabled[p] = true
	}

	if c.Providers.Default == "" {
		errs = append(errs, ValidationError{
			Field:   "providers.default",
			Message: "required",
		})
	} else if !enabled[strings.ToLower(c.Providers.Default)] {
		errs = append(errs, ValidationError{
			Field:   "providers.default",
			Message: fmt.Sprintf("default provider %q is not enabled", c.Providers.Default),
		})
	}

	return errs
}

// validateGeneration validates generation parameters.
func (c *Config) validateGeneration() ValidationErrors {
	var errs ValidationErrors

	if c.Generation.MaxTokens < 0 {
		errs = append(errs, ValidationError{
			Field:   "generation.max_tokens",
			Message: "must be non-negative",
		})
	}

	if c.Generation.Temperature != nil && *c.Generation.Temperature < 0 {
		errs = append(errs, ValidationError{
			Field:   "generation.temperature",
			Message: "must be non-negative",
		})
	}

	if c.Generation.TimeoutSeconds < 0 {
		errs = append(errs, ValidationError{
			Field:   "generation.timeout_seconds",
			Message: "must be non-negative",
		})
	}

	return errs
}

// validateRetrieval validates retrieval settings.
func (c *Config) validateRetrieval() ValidationErrors {
	var errs ValidationErrors

	if c.Retrieval.TopK < 0 {
		errs = append(errs, ValidationError{
			Field:   "retrieval.top_k",
			Message: "must be non-negative",
		})
	}

	if c.Retrieval.CandidateLimit < 0 {
		errs = append(errs, ValidationError{
			Field:   "retrieval.candidate_limit",
			Message: "must be non-negative",
		})
	}

	return errs
}
