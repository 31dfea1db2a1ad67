package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the QA assistant.
type Config struct {
	Build      BuildConfig      `yaml:"build"`
	Index      IndexConfig      `yaml:"index"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Retrieve   RetrieveConfig   `yaml:"retrieve"`
	Generation GenerationConfig `yaml:"generation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// BuildConfig controls corpus ingestion and chunking.
type BuildConfig struct {
	DocsDir      string   `yaml:"docs_dir"`
	Includes     []string `yaml:"includes"`
	Excludes     []string `yaml:"excludes"`
	ChunkSize    int      `yaml:"chunk_size"`
	ChunkOverlap int      `yaml:"chunk_overlap"`
	MaxChars     int      `yaml:"max_chars"`
}

// IndexConfig locates the persisted index.
type IndexConfig struct {
	Path string `yaml:"path"`
}

// EmbeddingConfig holds embedding provider configuration.
type EmbeddingConfig struct {
	Provider    string `yaml:"provider"`    // "openai", "jina", "ollama", "mock"
	Model       string `yaml:"model"`       // e.g., "text-embedding-3-small"
	APIKeyEnv   string `yaml:"api_key_env"` // Environment variable for API key
	BaseURL     string `yaml:"base_url"`
	Dimension   int    `yaml:"dimension"`
	BatchSize   int    `yaml:"batch_size"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// RetrieveConfig holds retrieval configuration.
type RetrieveConfig struct {
	TopK int `yaml:"top_k"`
}

// GenerationConfig holds answer generator configuration.
type GenerationConfig struct {
	Provider    string  `yaml:"provider"` // "openai", "ollama", "mock"
	Model       string  `yaml:"model"`    // e.g., "gpt-3.5-turbo"
	APIKeyEnv   string  `yaml:"api_key_env"`
	BaseURL     string  `yaml:"base_url"`
	Temperature float64 `yaml:"temperature"`
	TimeoutSecs int     `yaml:"timeout_secs"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Build: BuildConfig{
			DocsDir:      "data/raw_docs",
			Includes:     []string{"**/*.txt", "**/*.md"},
			Excludes:     []string{"**/.*/**"},
			ChunkSize:    500,
			ChunkOverlap: 50,
			MaxChars:     7500,
		},
		Index: IndexConfig{
			Path: "index",
		},
		Embedding: EmbeddingConfig{
			Provider:    "openai",
			Model:       "text-embedding-3-small",
			APIKeyEnv:   "OPENAI_API_KEY",
			Dimension:   1536,
			BatchSize:   100,
			TimeoutSecs: 60,
		},
		Retrieve: RetrieveConfig{
			TopK: 5,
		},
		Generation: GenerationConfig{
			Provider:    "openai",
			Model:       "gpt-3.5-turbo",
			APIKeyEnv:   "OPENAI_API_KEY",
			Temperature: 0.2,
			TimeoutSecs: 120,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for docqa.yaml).
func LoadFromDir(dir string) (*Config, error) {
	// Try docqa.yaml in the directory
	path := filepath.Join(dir, "docqa.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Try .docqa/config.yaml
	path = filepath.Join(dir, ".docqa", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Return defaults
	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ResolvePath joins a configured path with the root directory unless it is
// already absolute.
func ResolvePath(rootDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(rootDir, path)
}
