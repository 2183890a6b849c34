package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trialbase-ai/go-trialqa/pkg/index"
	"github.com/trialbase-ai/go-trialqa/pkg/sample"
	"github.com/trialbase-ai/go-trialqa/pkg/trial"
)

var indexDemo bool

var indexCmd = &cobra.Command{
	Use:   "index [csv-file]",
	Short: "Build the trial search index from a CSV export",
	Long: `Reads trial records from a CSV file, embeds them, and rebuilds the
vector index. The previous index keeps serving queries until the new
one is complete. Without a file the built-in sample trials are indexed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexDemo, "demo", false, "sample the input down to the demo size before indexing")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var records []trial.Record
	if len(args) == 1 {
		var err error
		records, err = trial.ReadCSVFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read trial data: %w", err)
		}
	} else {
		records = trial.SampleRecords()
	}

	if indexDemo && len(records) > cfg.DemoSampleSize {
		var err error
		records, err = sample.Sample(records, cfg.DemoSampleSize, &sample.Config{
			Seed:   cfg.SampleSeed,
			Logger: &logger,
		})
		if err != nil {
			return fmt.Errorf("failed to sample records: %w", err)
		}
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

	builder := index.NewBuilder(store, &index.Config{
		BatchSize: cfg.BatchSize,
		Logger:    &logger,
	})

	count, err := builder.Build(ctx, cfg.Collection, records)
	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	cmd.Printf("Indexed %d trials into %s\n", count, cfg.Collection)
	return nil
}
