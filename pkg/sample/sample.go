// Package sample derives a smaller representative demo subset from a
// full clinical trials dataset, preserving the phase distribution of the
// input as closely as the target size allows.
package sample

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/rs/zerolog"

	"github.com/trialbase-ai/go-trialqa/pkg/trial"
)

// DefaultSeed is the fixed random seed used for reproducible sampling.
const DefaultSeed = 42

// DefaultSize is the default demo sample size.
const DefaultSize = 5000

// Config controls sampling behavior.
type Config struct {
	// Seed for the deterministic random source. Same input and same
	// seed always produce the same output set.
	Seed int64

	// Logger for sampling progress. Defaults to a no-op logger.
	Logger *zerolog.Logger
}

// DefaultConfig returns the sampling defaults: the fixed seed and no
// logging.
func DefaultConfig() *Config {
	return &Config{Seed: DefaultSeed}
}

// Sample draws a deterministic, phase-balanced subset of records.
//
// Input: source records and a target size
// Output: at most targetSize records, in original input order
// Behavior: Stratified by phase with a fixed-seed top-up
//
// The per-phase quota is targetSize divided by the number of distinct
// phase values (integer division). Each phase contributes
// min(quota, groupSize) records drawn with the configured seed. If the
// union falls short of targetSize the remainder is drawn from records
// not yet selected, with the same seed sequence.
//
// When targetSize is smaller than the number of distinct phases the
// quota is zero and the whole sample comes from the top-up draw, so
// phase coverage is NOT guaranteed in that regime. For any
// targetSize >= distinct phase count, every phase present in the input
// is represented at least once.
//
// Fails with *trial.DataShapeError on an empty record set.
func Sample(records []trial.Record, targetSize int, cfg *Config) ([]trial.Record, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if len(records) == 0 {
		return nil, &trial.DataShapeError{Reason: "cannot sample an empty record set"}
	}
	if targetSize <= 0 {
		return nil, fmt.Errorf("target size must be positive, got %d", targetSize)
	}
	if targetSize >= len(records) {
		out := make([]trial.Record, len(records))
		copy(out, records)
		return out, nil
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	// Group row indices by phase, phases in first-encounter order so the
	// draw sequence is stable across runs.
	var phases []string
	groups := make(map[string][]int)
	for i, rec := range records {
		if _, ok := groups[rec.Phase]; !ok {
			phases = append(phases, rec.Phase)
		}
		groups[rec.Phase] = append(groups[rec.Phase], i)
	}

	quota := targetSize / len(phases)
	selected := make(map[int]bool, targetSize)

	for _, phase := range phases {
		group := groups[phase]
		n := quota
		if n > len(group) {
			n = len(group)
		}
		for _, j := range rng.Perm(len(group))[:n] {
			selected[group[j]] = true
		}
	}

	// Top up from unselected records to reach the target size.
	if len(selected) < targetSize {
		var remaining []int
		for i := range records {
			if !selected[i] {
				remaining = append(remaining, i)
			}
		}
		need := targetSize - len(selected)
		for _, j := range rng.Perm(len(remaining))[:need] {
			selected[remaining[j]] = true
		}
	}

	// Emit in original input order for a stable, diffable output file.
	indices := make([]int, 0, len(selected))
	for i := range selected {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	out := make([]trial.Record, 0, len(indices))
	for _, i := range indices {
		out = append(out, records[i])
	}

	if cfg.Logger != nil {
		cfg.Logger.Info().
			Int("input", len(records)).
			Int("sampled", len(out)).
			Int("phases", len(phases)).
			Int("per_phase_quota", quota).
			Msg("demo sample drawn")
	}

	return out, nil
}
