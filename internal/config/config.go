// Package config provides application configuration management with
// multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.atrium/config.yaml or ./config.yaml)
//  3. Default values
//
// Validation is fail-fast: Load returns an error built from the sentinel
// errors below, so callers can classify failures with errors.Is().
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

var (
	// ErrInvalidProvider indicates the AI provider is not supported.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrInvalidModelName indicates the model name is empty.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidTemperature indicates the temperature value is out of range.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidMaxTokens indicates the max tokens value is out of range.
	ErrInvalidMaxTokens = errors.New("invalid max tokens")

	// ErrInvalidEmbedderModel indicates the embedder model is empty.
	ErrInvalidEmbedderModel = errors.New("invalid embedder model")

	// ErrInvalidTopK indicates the retrieval result limit is out of range.
	ErrInvalidTopK = errors.New("invalid retrieval top-k")

	// ErrInvalidRelevanceFloor indicates the cosine-distance cutoff is out
	// of the valid [0, 2] distance range.
	ErrInvalidRelevanceFloor = errors.New("invalid relevance floor")

	// ErrInvalidChunking indicates the chunk window/overlap combination
	// cannot make progress.
	ErrInvalidChunking = errors.New("invalid chunking parameters")
)

// AI provider identifiers used in Config.Provider.
const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// Retrieval defaults. The relevance floor and top-k materially affect which
// chunks reach the generator, so both are configurable rather than
// hard-coded at the call sites.
const (
	DefaultTopK           = 4
	DefaultRelevanceFloor = 0.85
	DefaultChunkWords     = 600
	DefaultChunkOverlap   = 100
	DefaultMinChunkChars  = 50
)

// Config stores application configuration.
type Config struct {
	// AI provider and model configuration
	Provider    string  `mapstructure:"provider" json:"provider"`
	ModelName   string  `mapstructure:"model_name" json:"model_name"`
	Temperature float32 `mapstructure:"temperature" json:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens" json:"max_tokens"`

	// Ollama configuration (only used when provider is "ollama")
	OllamaHost string `mapstructure:"ollama_host" json:"ollama_host"`

	// Embedding configuration
	EmbedderModel string `mapstructure:"embedder_model" json:"embedder_model"`

	// Retrieval configuration
	TopK           int     `mapstructure:"top_k" json:"top_k"`
	RelevanceFloor float64 `mapstructure:"relevance_floor" json:"relevance_floor"`
	ChunkWords     int     `mapstructure:"chunk_words" json:"chunk_words"`
	ChunkOverlap   int     `mapstructure:"chunk_overlap" json:"chunk_overlap"`
	MinChunkChars  int     `mapstructure:"min_chunk_chars" json:"min_chunk_chars"`

	// Storage paths
	SQLitePath string `mapstructure:"sqlite_path" json:"sqlite_path"`
	IndexPath  string `mapstructure:"index_path" json:"index_path"`

	// Dispatcher configuration
	CompanyName string `mapstructure:"company_name" json:"company_name"`
	MaxHistory  int    `mapstructure:"max_history" json:"max_history"`

	// HTTP server
	HTTPAddr string `mapstructure:"http_addr" json:"http_addr"`
}

// Load loads configuration.
// Priority: Environment variables > Configuration file > Default values
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".atrium")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	setDefaults(v, configDir)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is not an error; defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using default values",
			"search_paths", []string{configDir, "."})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns a Config populated with defaults only. Used by tests and
// by components that need sensible values without touching the filesystem.
func Default() *Config {
	home, _ := os.UserHomeDir()
	configDir := filepath.Join(home, ".atrium")

	v := viper.New()
	setDefaults(v, configDir)

	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("provider", ProviderGemini)
	v.SetDefault("model_name", "gemini-2.5-flash")
	v.SetDefault("temperature", 0.2)
	v.SetDefault("max_tokens", 1500)
	v.SetDefault("ollama_host", "http://localhost:11434")

	v.SetDefault("embedder_model", "gemini-embedding-001")

	v.SetDefault("top_k", DefaultTopK)
	v.SetDefault("relevance_floor", DefaultRelevanceFloor)
	v.SetDefault("chunk_words", DefaultChunkWords)
	v.SetDefault("chunk_overlap", DefaultChunkOverlap)
	v.SetDefault("min_chunk_chars", DefaultMinChunkChars)

	v.SetDefault("sqlite_path", filepath.Join(configDir, "atrium.db"))
	v.SetDefault("index_path", filepath.Join(configDir, "knowledge.idx"))

	v.SetDefault("company_name", "Acme Corp")
	v.SetDefault("max_history", 6)

	v.SetDefault("http_addr", "127.0.0.1:3500")
}

// bindEnvVariables binds environment variables explicitly.
// Only the overrides operators actually reach for are bound; everything
// else goes through the config file.
func bindEnvVariables(v *viper.Viper) {
	_ = v.BindEnv("provider", "ATRIUM_PROVIDER")
	_ = v.BindEnv("model_name", "ATRIUM_MODEL")
	_ = v.BindEnv("ollama_host", "OLLAMA_HOST")
	_ = v.BindEnv("sqlite_path", "ATRIUM_SQLITE_PATH")
	_ = v.BindEnv("index_path", "ATRIUM_INDEX_PATH")
	_ = v.BindEnv("http_addr", "ATRIUM_HTTP_ADDR")
}
