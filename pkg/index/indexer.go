// Package index builds the trial search index inside a vector store.
//
// A rebuild is destructive from the caller's point of view but never
// from the reader's: documents are written into a temporary collection
// and the serving alias is swapped only after every batch lands. A
// failed build leaves the previous index untouched.
package index

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/trialbase-ai/go-trialqa/pkg/trial"
	"github.com/trialbase-ai/go-trialqa/pkg/vectorstore"
)

// DefaultBatchSize is the number of documents sent per upsert.
const DefaultBatchSize = 500

// BuildError reports a failed rebuild, identifying the batch where the
// failure happened. The temporary collection has already been dropped
// when this error is returned.
type BuildError struct {
	Collection string // Target collection or alias name
	BatchStart int    // First record index of the failing batch
	BatchEnd   int    // One past the last record index of the failing batch
	Err        error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("index build for %s failed on batch [%d:%d]: %v",
		e.Collection, e.BatchStart, e.BatchEnd, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// Builder rebuilds trial collections in a vector store.
type Builder struct {
	store     vectorstore.Store
	batchSize int
	logger    zerolog.Logger
}

// Config holds builder configuration.
type Config struct {
	// Optional. Documents per upsert batch (defaults to 500)
	BatchSize int

	// Optional. Structured logger for build progress
	Logger *zerolog.Logger
}

// NewBuilder creates a builder writing to the given store.
func NewBuilder(store vectorstore.Store, config *Config) *Builder {
	if config == nil {
		config = &Config{}
	}
	batchSize := config.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}

	return &Builder{
		store:     store,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Build rebuilds the index for name from the given records.
//
// Input: collection (or alias) name, trial records
// Output: number of documents indexed
// Behavior: build into a temporary collection, then swap the alias
//
// Records become documents with the record's formatted text as content,
// its metadata map as payload, and the row position as ID. On any batch
// failure the temporary collection is dropped and a *BuildError is
// returned; the previously served index keeps answering queries. On
// success the alias is swapped and the previously served collection is
// dropped.
func (b *Builder) Build(ctx context.Context, name string, records []trial.Record) (int, error) {
	if len(records) == 0 {
		return 0, &trial.DataShapeError{Reason: "no records to index"}
	}

	temp := tempCollectionName(name)
	start := time.Now()

	b.logger.Info().
		Str("collection", name).
		Str("build_collection", temp).
		Int("records", len(records)).
		Msg("starting index build")

	if err := b.store.CreateCollection(ctx, temp); err != nil {
		return 0, fmt.Errorf("failed to create build collection %s: %w", temp, err)
	}

	for batchStart := 0; batchStart < len(records); batchStart += b.batchSize {
		batchEnd := batchStart + b.batchSize
		if batchEnd > len(records) {
			batchEnd = len(records)
		}

		documents := make([]vectorstore.Document, 0, batchEnd-batchStart)
		for i := batchStart; i < batchEnd; i++ {
			documents = append(documents, vectorstore.Document{
				ID:       fmt.Sprintf("%d", i),
				Content:  records[i].DocumentText(),
				Metadata: records[i].Metadata(),
			})
		}

		if err := b.store.Upsert(ctx, temp, documents); err != nil {
			b.logger.Error().
				Err(err).
				Str("collection", name).
				Int("batch_start", batchStart).
				Int("batch_end", batchEnd).
				Msg("index build failed, dropping build collection")

			if dropErr := b.store.DropCollection(ctx, temp); dropErr != nil {
				b.logger.Warn().Err(dropErr).Str("build_collection", temp).
					Msg("failed to drop build collection after build failure")
			}
			return 0, &BuildError{
				Collection: name,
				BatchStart: batchStart,
				BatchEnd:   batchEnd,
				Err:        err,
			}
		}

		b.logger.Debug().
			Str("collection", name).
			Int("indexed", batchEnd).
			Int("total", len(records)).
			Msg("indexed batch")
	}

	previous, err := b.store.ResolveAlias(ctx, name)
	if err != nil {
		if dropErr := b.store.DropCollection(ctx, temp); dropErr != nil {
			b.logger.Warn().Err(dropErr).Str("build_collection", temp).
				Msg("failed to drop build collection after alias resolve failure")
		}
		return 0, fmt.Errorf("failed to resolve alias %s: %w", name, err)
	}

	if err := b.store.SwapAlias(ctx, name, temp); err != nil {
		if dropErr := b.store.DropCollection(ctx, temp); dropErr != nil {
			b.logger.Warn().Err(dropErr).Str("build_collection", temp).
				Msg("failed to drop build collection after alias swap failure")
		}
		return 0, fmt.Errorf("failed to swap alias %s to %s: %w", name, temp, err)
	}

	if previous != "" && previous != temp {
		if err := b.store.DropCollection(ctx, previous); err != nil {
			b.logger.Warn().Err(err).Str("collection", previous).
				Msg("failed to drop previous index collection")
		}
	}

	b.logger.Info().
		Str("collection", name).
		Int("documents", len(records)).
		Dur("elapsed", time.Since(start)).
		Msg("index build complete")

	return len(records), nil
}

// tempCollectionName derives a unique build collection name so
// concurrent or crashed builds never collide.
func tempCollectionName(name string) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return name + "_build_" + suffix
}
