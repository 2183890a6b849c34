package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trialbase-ai/go-trialqa/pkg/sample"
	"github.com/trialbase-ai/go-trialqa/pkg/trial"
)

var (
	sampleSize int
	sampleSeed int64
)

var sampleCmd = &cobra.Command{
	Use:   "sample [input-csv] [output-csv]",
	Short: "Derive a phase-balanced demo subset of a trial CSV",
	Long: `Draws a deterministic subset of the input trials, preserving the
phase distribution. The same input, size, and seed always produce the
same subset.`,
	Args: cobra.ExactArgs(2),
	RunE: runSample,
}

func init() {
	sampleCmd.Flags().IntVar(&sampleSize, "size", 0, "target sample size (defaults to the configured demo size)")
	sampleCmd.Flags().Int64Var(&sampleSeed, "seed", 0, "random seed (defaults to the configured seed)")
	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, args []string) error {
	records, err := trial.ReadCSVFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read trial data: %w", err)
	}

	size := sampleSize
	if size <= 0 {
		size = cfg.DemoSampleSize
	}
	seed := sampleSeed
	if seed == 0 {
		seed = cfg.SampleSeed
	}

	subset, err := sample.Sample(records, size, &sample.Config{Seed: seed, Logger: &logger})
	if err != nil {
		return fmt.Errorf("sampling failed: %w", err)
	}

	if err := trial.WriteCSVFile(args[1], subset); err != nil {
		return fmt.Errorf("failed to write sample: %w", err)
	}

	cmd.Printf("Sampled %d of %d trials into %s\n", len(subset), len(records), args[1])
	return nil
}
