package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trialbase-ai/go-trialqa/pkg/assistant"
	"github.com/trialbase-ai/go-trialqa/pkg/evaluate"
)

var evalK int

var evalCmd = &cobra.Command{
	Use:   "eval [test-cases-json]",
	Short: "Measure retrieval accuracy against labeled test cases",
	Long: `Runs each test case question against the retriever and reports
hit-rate@k and precision@k. Answer generation is not involved.`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().IntVar(&evalK, "k", 0, "retrieval cutoff (defaults to the configured top-k)")
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cases, err := evaluate.LoadTestCases(args[0])
	if err != nil {
		return err
	}

	_, embedder, err := newProvider()
	if err != nil {
		return err
	}
	store, err := newStore(embedder)
	if err != nil {
		return err
	}
	defer store.Close()

	k := evalK
	if k <= 0 {
		k = cfg.TopK
	}

	retriever := assistant.NewRetriever(store, cfg.Collection)
	report, err := evaluate.Run(ctx, retriever, cases, k)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	cmd.Printf("Evaluated %d cases\n%s\n", report.Cases, report)
	return nil
}
