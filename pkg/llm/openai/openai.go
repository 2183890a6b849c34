// Package openai provides chat generation and embeddings backed by the
// OpenAI API. It is the provider for cloud deployments where no local
// Ollama server is available.
package openai

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"

	"github.com/trialbase-ai/go-trialqa/pkg/vectorstore"
)

// Client wraps the OpenAI API for chat generation and embeddings.
//
// Implements llm.Generator and vectorstore.EmbeddingProvider.
//
// Example:
//
//	client, _ := openai.New()
//	answer, err := client.Generate(ctx, prompt)
type Client struct {
	client *openai.Client
	config *Config
}

// Config holds OpenAI-specific configuration.
type Config struct {
	// Required. API key for OpenAI authentication
	// (defaults to OPENAI_API_KEY env)
	APIKey string

	// Optional. Base URL for OpenAI API (defaults to official OpenAI API)
	BaseURL string

	// Optional. Chat model name (defaults to "gpt-4o-mini")
	ChatModel string

	// Optional. Embedding model name (defaults to "text-embedding-3-small")
	EmbedModel string
}

// Option interface for functional options pattern
type Option interface {
	Apply(*Config)
}

// configOption implements Option
type configOption struct{ config *Config }

func (o configOption) Apply(opts *Config) {
	if o.config.APIKey != "" {
		opts.APIKey = o.config.APIKey
	}
	if o.config.BaseURL != "" {
		opts.BaseURL = o.config.BaseURL
	}
	if o.config.ChatModel != "" {
		opts.ChatModel = o.config.ChatModel
	}
	if o.config.EmbedModel != "" {
		opts.EmbedModel = o.config.EmbedModel
	}
}

// WithConfig sets custom OpenAI configuration.
//
// Input: *Config with OpenAI settings
// Output: Option for client creation
// Behavior: Non-zero fields override defaults
func WithConfig(config *Config) Option {
	return configOption{config: config}
}

// DefaultConfig returns sensible defaults for OpenAI.
//
// Input: none
// Output: *Config with default settings
// Behavior: Creates config with OPENAI_API_KEY from env
func DefaultConfig() *Config {
	return &Config{
		APIKey:     os.Getenv("OPENAI_API_KEY"),
		ChatModel:  "gpt-4o-mini",
		EmbedModel: "text-embedding-3-small",
	}
}

// New creates a new OpenAI client with optional configuration.
//
// Input: optional config Options
// Output: *Client, error
// Behavior: Initializes authenticated OpenAI client
//
// Requires OPENAI_API_KEY environment variable or config.APIKey.
//
// Example:
//
//	client, err := openai.New()
//	if err != nil { log.Fatal(err) }
func New(opts ...Option) (*Client, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt.Apply(config)
	}

	if config.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set or provided in config")
	}

	clientOptions := []option.RequestOption{option.WithAPIKey(config.APIKey)}
	if config.BaseURL != "" {
		clientOptions = append(clientOptions, option.WithBaseURL(config.BaseURL))
	}

	openaiClient := openai.NewClient(clientOptions...)

	return &Client{
		client: &openaiClient,
		config: config,
	}, nil
}

// Generate returns the complete chat response for a prompt.
//
// Input: prompt text
// Output: full response string
// Behavior: BUFFERED - non-streaming chat completion
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.config.ChatModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices for model %s", c.config.ChatModel)
	}

	return completion.Choices[0].Message.Content, nil
}

// Embed generates an embedding vector for text content.
//
// Input: text to embed
// Output: embedding vector from the configured embedding model
// Behavior: Single-input embedding request
func (c *Client) Embed(ctx context.Context, text string) (vectorstore.EmbeddingVector, error) {
	resp, err := c.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(c.config.EmbedModel),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai embedding failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai returned no embeddings for model %s", c.config.EmbedModel)
	}

	vec := make(vectorstore.EmbeddingVector, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}

// Health verifies the API key by listing available models.
func (c *Client) Health(ctx context.Context) error {
	if _, err := c.client.Models.List(ctx); err != nil {
		return fmt.Errorf("openai health check failed: %w", err)
	}
	return nil
}
