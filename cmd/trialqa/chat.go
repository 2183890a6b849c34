package main

import (
	"bufio"
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/trialbase-ai/go-trialqa/pkg/assistant"
	"github.com/trialbase-ai/go-trialqa/pkg/cache"
)

var (
	chatResults     int
	chatMetricsAddr string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive question answering over the trial index",
	Long: `Starts an interactive session. Each question is answered from the
vector index with trial citations. When the vector store or model
backend is unreachable, a keyword-matching fallback answers instead.

Type "clear" to reset the conversation and "exit" to leave.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().IntVarP(&chatResults, "results", "n", 0, "number of sources to report per answer")
	chatCmd.Flags().StringVar(&chatMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	if chatMetricsAddr != "" {
		go serveMetrics(chatMetricsAddr)
	}

	bot, cleanup, err := newAssistant(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	nResults := chatResults
	if nResults <= 0 {
		nResults = cfg.TopK
	}

	session := assistant.NewSession()
	logger.Debug().Str("session_id", session.ID()).Msg("chat session started")

	cmd.Println("Clinical trial assistant. Ask a question, or type 'exit' to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())

		switch question {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "clear":
			session.Clear()
			cmd.Println("Conversation cleared.")
			continue
		}

		session.AddUserTurn(question)
		resp, err := bot.Query(ctx, question, nResults)
		if err != nil {
			cmd.Printf("Sorry, something went wrong: %v\n", err)
			continue
		}
		session.AddAssistantTurn(resp)

		cmd.Println()
		cmd.Println(resp.Answer)
		cmd.Println()
	}

	return scanner.Err()
}

// serveMetrics exposes the default Prometheus registry for scraping.
func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logger.Info().Str("addr", addr).Msg("serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn().Err(err).Msg("metrics server stopped")
	}
}

// newAssistant wires the store, model, and optional answer cache. The
// returned cleanup closes whatever was opened.
func newAssistant(ctx context.Context) (assistant.Assistant, func(), error) {
	model, embedder, err := newProvider()
	if err != nil {
		return nil, nil, err
	}

	store, err := newStore(embedder)
	if err != nil {
		// No vector store at all; the keyword fallback still works.
		logger.Warn().Err(err).Msg("vector store unavailable")
		store = nil
	}

	var answerCache cache.Store
	if cfg.CacheEnabled {
		answerCache, err = cache.NewBadger(cfg.CachePath)
		if err != nil {
			logger.Warn().Err(err).Msg("answer cache unavailable, continuing without it")
			answerCache = nil
		}
	}

	bot := assistant.New(ctx, &assistant.Config{
		Store:             store,
		Collection:        cfg.Collection,
		Model:             model,
		GenerationTimeout: cfg.GenerationTimeout,
		Cache:             answerCache,
		CacheTTL:          cfg.CacheTTL,
		Logger:            &logger,
	})

	cleanup := func() {
		if store != nil {
			if err := store.Close(); err != nil {
				logger.Warn().Err(err).Msg("failed to close vector store")
			}
		}
		if answerCache != nil {
			if err := answerCache.Close(); err != nil {
				logger.Warn().Err(err).Msg("failed to close answer cache")
			}
		}
	}
	return bot, cleanup, nil
}
