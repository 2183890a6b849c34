// Package config loads runtime configuration from the environment, an
// optional .env file, and an optional YAML file. Environment variables
// win over the YAML file; YAML wins over built-in defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/trialbase-ai/go-trialqa/pkg/helpers"
)

// Deployment environments.
const (
	EnvLocal = "local"
	EnvCloud = "cloud"
)

// Config is the resolved runtime configuration.
type Config struct {
	// DeploymentEnv selects backend wiring: "local" uses Ollama,
	// "cloud" uses OpenAI.
	DeploymentEnv string `yaml:"deployment_env"`

	// Vector store
	QdrantURL    string `yaml:"qdrant_url"`
	QdrantAPIKey string `yaml:"qdrant_api_key"`
	Collection   string `yaml:"collection"`
	VectorDim    int    `yaml:"vector_dim"`

	// Models
	ChatModel  string `yaml:"chat_model"`
	EmbedModel string `yaml:"embed_model"`
	OllamaHost string `yaml:"ollama_host"`

	// Retrieval and generation
	TopK              int           `yaml:"top_k"`
	GenerationTimeout time.Duration `yaml:"generation_timeout"`

	// Indexing and sampling
	BatchSize      int   `yaml:"batch_size"`
	DemoSampleSize int   `yaml:"demo_sample_size"`
	SampleSeed     int64 `yaml:"sample_seed"`

	// Answer cache
	CacheEnabled bool          `yaml:"cache_enabled"`
	CachePath    string        `yaml:"cache_path"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DeploymentEnv:     EnvLocal,
		QdrantURL:         "http://localhost:6334",
		Collection:        "clinical_trials",
		VectorDim:         768,
		ChatModel:         "llama2",
		EmbedModel:        "nomic-embed-text",
		TopK:              5,
		GenerationTimeout: 10 * time.Second,
		BatchSize:         500,
		DemoSampleSize:    5000,
		SampleSeed:        42,
		CacheEnabled:      false,
		CachePath:         "data/answer_cache",
		CacheTTL:          time.Hour,
	}
}

// Load resolves the configuration.
//
// A .env file in the working directory is loaded first when present.
// When yamlPath is non-empty the file must exist and parse. Environment
// variables override everything.
func Load(yamlPath string) (*Config, error) {
	// Missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	cfg := Default()

	if yamlPath != "" {
		raw, err := os.ReadFile(yamlPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if cfg.DeploymentEnv != EnvLocal && cfg.DeploymentEnv != EnvCloud {
		return nil, fmt.Errorf("invalid DEPLOYMENT_ENV %q: must be %q or %q", cfg.DeploymentEnv, EnvLocal, EnvCloud)
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.DeploymentEnv = helpers.GetStringFromEnv("DEPLOYMENT_ENV", c.DeploymentEnv)
	c.QdrantURL = helpers.GetStringFromEnv("QDRANT_URL", c.QdrantURL)
	c.QdrantAPIKey = helpers.GetStringFromEnv("QDRANT_API_KEY", c.QdrantAPIKey)
	c.Collection = helpers.GetStringFromEnv("COLLECTION", c.Collection)
	c.VectorDim = helpers.GetIntFromEnv("VECTOR_DIM", c.VectorDim)
	c.ChatModel = helpers.GetStringFromEnv("CHAT_MODEL", c.ChatModel)
	c.EmbedModel = helpers.GetStringFromEnv("EMBED_MODEL", c.EmbedModel)
	c.OllamaHost = helpers.GetStringFromEnv("OLLAMA_HOST", c.OllamaHost)
	c.TopK = helpers.GetIntFromEnv("TOP_K", c.TopK)
	c.GenerationTimeout = helpers.GetDurationFromEnv("GENERATION_TIMEOUT", c.GenerationTimeout)
	c.BatchSize = helpers.GetIntFromEnv("BATCH_SIZE", c.BatchSize)
	c.DemoSampleSize = helpers.GetIntFromEnv("DEMO_SAMPLE_SIZE", c.DemoSampleSize)
	c.SampleSeed = helpers.GetInt64FromEnv("SAMPLE_SEED", c.SampleSeed)
	c.CacheEnabled = helpers.GetBoolFromEnv("ANSWER_CACHE", c.CacheEnabled)
	c.CachePath = helpers.GetStringFromEnv("ANSWER_CACHE_PATH", c.CachePath)
	c.CacheTTL = helpers.GetDurationFromEnv("ANSWER_CACHE_TTL", c.CacheTTL)
}
