//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Portions copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration loading and validation for the
// Brew RAG Server.
package config

// Provider identifiers accepted in configuration.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// Config is the root configuration structure for the server.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	APIKeys    APIKeysConfig    `yaml:"api_keys"`
	Providers  ProvidersConfig  `yaml:"providers"`
	Generation GenerationConfig `yaml:"generation"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	ListenAddress string     `yaml:"listen_address"`
	Port          int        `yaml:"port"`
	TLS           TLSConfig  `yaml:"tls"`
	CORS          CORSConfig `yaml:"cors"`
}

// CORSConfig contains CORS (Cross-Origin Resource Sharing) settings.
type CORSConfig struct {
	Enabled        bool     `yaml:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins"` // Origins to allow, or ["*"] for all
}

// TLSConfig contains TLS/HTTPS settings.
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// DatabaseConfig contains PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
}

// APIKeysConfig contains paths to files containing API keys for hosted
// generation providers. If not specified, keys are loaded from
// environment variables or default file locations
// (~/.openai-api-key, ~/.gemini-api-key).
type APIKeysConfig struct {
	OpenAI string `yaml:"openai"` // Path to file containing OpenAI API key
	Gemini string `yaml:"gemini"` // Path to file containing Gemini API key
}

// ProvidersConfig selects which generation providers are constructed
// and which one answers queries that don't name a provider.
type ProvidersConfig struct {
	Default string   `yaml:"default"`
	Enabled []string `yaml:"enabled"`

	OpenAI HostedProviderConfig `yaml:"openai"`
	Gemini HostedProviderConfig `yaml:"gemini"`
	Ollama OllamaProviderConfig `yaml:"ollama"`
}

// HostedProviderConfig contains settings for a hosted provider.
type HostedProviderConfig struct {
	Model string `yaml:"model"`
}

// OllamaProviderConfig contains settings for the local Ollama provider.
type OllamaProviderConfig struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// GenerationConfig contains generation parameters enforced uniformly
// across all providers.
type GenerationConfig struct {
	MaxTokens      int      `yaml:"max_tokens"`
	Temperature    *float64 `yaml:"temperature"` // Pointer so 0.0 is distinguishable from unset
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

// RetrievalConfig contains settings for catalog retrieval.
type RetrievalConfig struct {
	TopK           int `yaml:"top_k"`           // Passages included in generation context
	CandidateLimit int `yaml:"candidate_limit"` // Catalog rows considered for ranking
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	temp := 0.7
	return &Config{
		Server: ServerConfig{
			ListenAddress: "0.0.0.0",
			Port:          8080,
			TLS: TLSConfig{
				Enabled: false,
			},
		},
		Database: DatabaseConfig{
			Port:    5432,
			SSLMode: "prefer",
		},
		Providers: ProvidersConfig{
			Default: ProviderGemini,
			Enabled: []string{ProviderGemini},
		},
		Generation: GenerationConfig{
			MaxTokens:      1000,
			Temperature:    &temp,
			TimeoutSeconds: 60,
		},
		Retrieval: RetrievalConfig{
			TopK:           5,
			CandidateLimit: 200,
		},
	}
}
