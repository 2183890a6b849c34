// Package ollama provides chat generation and embeddings backed by a
// local Ollama server. It is the default provider for local
// deployments: the trial corpus never leaves the machine.
package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/trialbase-ai/go-trialqa/pkg/helpers"
	"github.com/trialbase-ai/go-trialqa/pkg/vectorstore"
)

// Client wraps the Ollama API for chat generation and embeddings.
//
// Implements llm.Generator and vectorstore.EmbeddingProvider so a
// single client can serve both the assistant and the indexer.
//
// Example:
//
//	client, _ := ollama.New()
//	answer, err := client.Generate(ctx, prompt)
type Client struct {
	client *api.Client
	config *Config
}

// Config holds Ollama-specific configuration.
//
// All fields are optional with sensible defaults.
type Config struct {
	// Optional. Ollama server host (defaults to localhost:11434 or OLLAMA_HOST env)
	Host string

	// Optional. Chat model name (defaults to "llama2")
	ChatModel string

	// Optional. Embedding model name (defaults to "nomic-embed-text")
	EmbedModel string

	// Optional. Controls randomness in token selection (0.0-2.0)
	Temperature *float32

	// Optional. Controls how long the model stays loaded in memory (e.g. "5m", "1h")
	KeepAlive string
}

// Option interface for functional options pattern
type Option interface {
	Apply(*Config)
}

// configOption implements Option
type configOption struct{ config *Config }

func (o configOption) Apply(opts *Config) {
	if o.config.Host != "" {
		opts.Host = o.config.Host
	}
	if o.config.ChatModel != "" {
		opts.ChatModel = o.config.ChatModel
	}
	if o.config.EmbedModel != "" {
		opts.EmbedModel = o.config.EmbedModel
	}
	if o.config.Temperature != nil {
		opts.Temperature = o.config.Temperature
	}
	if o.config.KeepAlive != "" {
		opts.KeepAlive = o.config.KeepAlive
	}
}

// WithConfig sets custom Ollama configuration.
//
// Input: *Config with Ollama settings
// Output: Option for client creation
// Behavior: Non-zero fields override defaults
//
// Example:
//
//	client, _ := ollama.New(ollama.WithConfig(&ollama.Config{ChatModel: "llama3.2"}))
func WithConfig(config *Config) Option {
	return configOption{config: config}
}

// DefaultConfig returns sensible defaults for Ollama.
//
// Input: none
// Output: *Config with default settings
// Behavior: Creates config for localhost Ollama server
//
// Sets llama2 for chat, nomic-embed-text for embeddings, 5m keep-alive.
func DefaultConfig() *Config {
	return &Config{
		Host:        "", // Will use ClientFromEnvironment() default
		ChatModel:   "llama2",
		EmbedModel:  "nomic-embed-text",
		Temperature: helpers.PtrOf(float32(0.7)),
		KeepAlive:   "5m",
	}
}

// New creates a new Ollama client with optional configuration.
//
// Input: optional config Options
// Output: *Client, error
// Behavior: Initializes HTTP client for Ollama server
//
// Requires Ollama server running with the configured models pulled.
// Use 'ollama list' to see available models.
//
// Example:
//
//	client, err := ollama.New()
//	if err != nil { log.Fatal(err) }
func New(opts ...Option) (*Client, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt.Apply(config)
	}

	var client *api.Client
	var err error

	if config.Host == "" {
		// Use environment-based client (checks OLLAMA_HOST env var)
		client, err = api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("failed to create client from environment: %w", err)
		}
	} else {
		u, err := url.Parse(config.Host)
		if err != nil {
			return nil, fmt.Errorf("invalid host URL: %w", err)
		}
		client = api.NewClient(u, http.DefaultClient)
	}

	return &Client{
		client: client,
		config: config,
	}, nil
}

// Generate returns the complete chat response for a prompt.
//
// Input: prompt text
// Output: full response string
// Behavior: BUFFERED - disables streaming and collects the response
//
// Example:
//
//	answer, err := client.Generate(ctx, prompt)
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	req := &api.ChatRequest{
		Model: c.config.ChatModel,
		Messages: []api.Message{
			{Role: "user", Content: prompt},
		},
		Stream:  helpers.PtrOf(false),
		Options: make(map[string]any),
	}
	if c.config.Temperature != nil {
		req.Options["temperature"] = *c.config.Temperature
	}
	if c.config.KeepAlive != "" {
		req.Options["keep_alive"] = c.config.KeepAlive
	}

	var response strings.Builder
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		response.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to chat with ollama: %w", err)
	}

	return response.String(), nil
}

// Embed generates an embedding vector for text content.
//
// Input: text to embed
// Output: embedding vector from the configured embedding model
// Behavior: Single-input embed request
//
// Example:
//
//	vec, err := client.Embed(ctx, doc.Content)
func (c *Client) Embed(ctx context.Context, text string) (vectorstore.EmbeddingVector, error) {
	resp, err := c.client.Embed(ctx, &api.EmbedRequest{
		Model: c.config.EmbedModel,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to embed with ollama: %w", err)
	}
	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("ollama returned no embeddings for model %s", c.config.EmbedModel)
	}

	return vectorstore.EmbeddingVector(resp.Embeddings[0]), nil
}

// Health verifies the Ollama server is reachable.
func (c *Client) Health(ctx context.Context) error {
	if err := c.client.Heartbeat(ctx); err != nil {
		return fmt.Errorf("ollama health check failed: %w", err)
	}
	return nil
}
