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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadKey_FromEnvironment(t *testing.T) {
	t.Setenv(EnvOpenAIAPIKey, "sk-test-env")

	loader := NewAPIKeyLoader(APIKeysConfig{})
	key, err := loader.LoadOpenAIKey()
	if err != nil {
		t.Fatalf("failed to load key: %v", err)
	}
	if key != "sk-test-env" {
		t.Errorf("expected key 'sk-test-env', got '%s'", key)
	}
}

func TestLoadKey_FromConfiguredFile(t *testing.T) {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "gemini.key")
	if err := os.WriteFile(keyFile, []byte("  gm-test-file\n"), 0600); err != nil {
		t.Fatalf("failed to write key file: %v", err)
	}

	// The configured file wins even when the environment variable is set.
	t.Setenv(EnvGeminiAPIKey, "gm-test-env")

	loader := NewAPIKeyLoader(APIKeysConfig{Gemini: keyFile})
	key, err := loader.LoadGeminiKey()
	if err != nil {
		t.Fatalf("failed to load key: %v", err)
	}
	if key != "gm-test-file" {
		t.Errorf("expected trimmed key 'gm-test-file', got '%s'", key)
	}
}

func TestLoadKey_ConfiguredFileMissing(t *testing.T) {
	loader := NewAPIKeyLoader(APIKeysConfig{
		OpenAI: filepath.Join(t.TempDir(), "missing.key"),
	})

	_, err := loader.LoadOpenAIKey()
	if err == nil {
		t.Fatal("expected error for missing key file")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected 'not found' error, got: %v", err)
	}
}

func TestLoadKey_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "empty.key")
	if err := os.WriteFile(keyFile, []byte("   \n"), 0600); err != nil {
		t.Fatalf("failed to write key file: %v", err)
	}

	loader := NewAPIKeyLoader(APIKeysConfig{OpenAI: keyFile})
	_, err := loader.LoadOpenAIKey()
	if err == nil {
		t.Fatal("expected error for empty key file")
	}
	if !strings.Contains(err.Error(), "empty") {
		t.Errorf("expected 'empty' error, got: %v", err)
	}
}

func TestLoadKey_DefaultFileLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvGeminiAPIKey, "")

	keyFile := filepath.Join(home, DefaultGeminiKeyFile)
	if err := os.WriteFile(keyFile, []byte("gm-test-home\n"), 0600); err != nil {
		t.Fatalf("failed to write key file: %v", err)
	}

	loader := NewAPIKeyLoader(APIKeysConfig{})
	key, err := loader.LoadGeminiKey()
	if err != nil {
		t.Fatalf("failed to load key: %v", err)
	}
	if key != "gm-test-home" {
		t.Errorf("expected key 'gm-test-home', got '%s'", key)
	}
}

func TestLoadRequiredKeys_OnlyEnabled(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvOpenAIAPIKey, "")
	t.Setenv(EnvGeminiAPIKey, "gm-test-env")

	loader := NewAPIKeyLoader(APIKeysConfig{})

	// Only gemini is enabled, so the missing OpenAI key must not matter.
	keys, err := loader.LoadRequiredKeys([]string{"Gemini", ProviderOllama})
	if err != nil {
		t.Fatalf("failed to load required keys: %v", err)
	}
	if keys.Gemini != "gm-test-env" {
		t.Errorf("expected gemini key 'gm-test-env', got '%s'", keys.Gemini)
	}
	if keys.OpenAI != "" {
		t.Errorf("expected no openai key, got '%s'", keys.OpenAI)
	}
}

func TestLoadRequiredKeys_MissingKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvOpenAIAPIKey, "")

	loader := NewAPIKeyLoader(APIKeysConfig{})
	_, err := loader.LoadRequiredKeys([]string{ProviderOpenAI})
	if err == nil {
		t.Fatal("expected error for missing openai key")
	}
	if !strings.Contains(err.Error(), EnvOpenAIAPIKey) {
		t.Errorf("expected error naming %s, got: %v", EnvOpenAIAPIKey, err)
	}
}
