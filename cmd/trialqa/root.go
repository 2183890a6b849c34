package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/trialbase-ai/go-trialqa/pkg/config"
	"github.com/trialbase-ai/go-trialqa/pkg/llm"
	"github.com/trialbase-ai/go-trialqa/pkg/llm/ollama"
	"github.com/trialbase-ai/go-trialqa/pkg/llm/openai"
	"github.com/trialbase-ai/go-trialqa/pkg/vectorstore"
	"github.com/trialbase-ai/go-trialqa/pkg/vectorstore/qdrant"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "trialqa",
	Short: "Question answering over clinical trial data",
	Long: `trialqa answers natural-language questions about clinical trials.
Trial records are embedded into a vector store; queries retrieve the
most relevant trials and a language model produces a cited answer.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// newProvider wires the model backend selected by DEPLOYMENT_ENV. Both
// providers serve generation and embeddings.
func newProvider() (llm.Generator, vectorstore.EmbeddingProvider, error) {
	switch cfg.DeploymentEnv {
	case config.EnvLocal:
		client, err := ollama.New(ollama.WithConfig(&ollama.Config{
			Host:       cfg.OllamaHost,
			ChatModel:  cfg.ChatModel,
			EmbedModel: cfg.EmbedModel,
		}))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		return client, client, nil
	case config.EnvCloud:
		client, err := openai.New()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		return client, client, nil
	default:
		return nil, nil, fmt.Errorf("unknown deployment env %q", cfg.DeploymentEnv)
	}
}

// newStore connects to the configured Qdrant server.
func newStore(embedder vectorstore.EmbeddingProvider) (vectorstore.Store, error) {
	store, err := qdrant.New(&qdrant.Config{
		URL:               cfg.QdrantURL,
		APIKey:            cfg.QdrantAPIKey,
		VectorDimension:   cfg.VectorDim,
		EmbeddingProvider: embedder,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to vector store: %w", err)
	}
	return store, nil
}
