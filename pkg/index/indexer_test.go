package index

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"reflect"
	"strings"
	"testing"

	"github.com/trialbase-ai/go-trialqa/pkg/trial"
	"github.com/trialbase-ai/go-trialqa/pkg/vectorstore"
	"github.com/trialbase-ai/go-trialqa/pkg/vectorstore/memory"
)

// hashEmbedder is a deterministic bag-of-words embedder for tests.
type hashEmbedder struct{}

func (hashEmbedder) Embed(_ context.Context, text string) (vectorstore.EmbeddingVector, error) {
	vec := make(vectorstore.EmbeddingVector, 64)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(token))
		vec[h.Sum32()%64]++
	}
	return vec, nil
}

// failingStore wraps a store and fails Upsert after a number of calls.
type failingStore struct {
	vectorstore.Store
	upserts   int
	failAfter int
}

func (f *failingStore) Upsert(ctx context.Context, collection string, docs []vectorstore.Document) error {
	f.upserts++
	if f.upserts > f.failAfter {
		return fmt.Errorf("simulated upsert failure")
	}
	return f.Store.Upsert(ctx, collection, docs)
}

func TestBuildIndexesAllRecords(t *testing.T) {
	t.Parallel()

	store := memory.New(hashEmbedder{})
	builder := NewBuilder(store, &Config{BatchSize: 2})

	count, err := builder.Build(context.Background(), "clinical_trials", trial.SampleRecords())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if count != 5 {
		t.Errorf("Build() = %d, want 5", count)
	}

	got, err := store.Count(context.Background(), "clinical_trials")
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if got != 5 {
		t.Errorf("alias count = %d, want 5", got)
	}
}

func TestBuildSearchableAfterSwap(t *testing.T) {
	t.Parallel()

	store := memory.New(hashEmbedder{})
	builder := NewBuilder(store, nil)

	if _, err := builder.Build(context.Background(), "clinical_trials", trial.SampleRecords()); err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	result, err := store.Search(context.Background(), vectorstore.SearchQuery{
		Collection: "clinical_trials",
		Text:       "type 2 diabetes",
		Limit:      1,
	})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(result.Documents) != 1 {
		t.Fatalf("got %d documents, want 1", len(result.Documents))
	}
	if got := result.Documents[0].Metadata[trial.MetaNCTID]; got != "NCT87654321" {
		t.Errorf("top result = %s, want NCT87654321", got)
	}
}

// metadataSnapshot captures the id -> metadata mapping served by a
// collection.
func metadataSnapshot(t *testing.T, store vectorstore.Store, collection string) map[string]map[string]string {
	t.Helper()
	result, err := store.Search(context.Background(), vectorstore.SearchQuery{
		Collection: collection,
		Text:       "trial",
		Limit:      100,
	})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	snapshot := make(map[string]map[string]string, len(result.Documents))
	for _, doc := range result.Documents {
		snapshot[doc.ID] = doc.Metadata
	}
	return snapshot
}

func TestRebuildIdempotentMapping(t *testing.T) {
	t.Parallel()

	store := memory.New(hashEmbedder{})
	builder := NewBuilder(store, nil)
	ctx := context.Background()
	records := trial.SampleRecords()

	if _, err := builder.Build(ctx, "clinical_trials", records); err != nil {
		t.Fatalf("first Build() error: %v", err)
	}
	first := metadataSnapshot(t, store, "clinical_trials")

	if _, err := builder.Build(ctx, "clinical_trials", records); err != nil {
		t.Fatalf("second Build() error: %v", err)
	}
	second := metadataSnapshot(t, store, "clinical_trials")

	if len(second) != len(records) {
		t.Errorf("document count after rebuild = %d, want %d", len(second), len(records))
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("id to metadata mapping changed across rebuilds:\nfirst:  %v\nsecond: %v", first, second)
	}
}

func TestRebuildReplacesIndex(t *testing.T) {
	t.Parallel()

	store := memory.New(hashEmbedder{})
	builder := NewBuilder(store, nil)
	ctx := context.Background()
	records := trial.SampleRecords()

	if _, err := builder.Build(ctx, "clinical_trials", records); err != nil {
		t.Fatalf("first Build() error: %v", err)
	}
	if _, err := builder.Build(ctx, "clinical_trials", records[:2]); err != nil {
		t.Fatalf("second Build() error: %v", err)
	}

	count, err := store.Count(ctx, "clinical_trials")
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if count != 2 {
		t.Errorf("count after rebuild = %d, want 2", count)
	}
}

func TestBuildFailureKeepsPreviousIndex(t *testing.T) {
	t.Parallel()

	inner := memory.New(hashEmbedder{})
	ctx := context.Background()
	records := trial.SampleRecords()

	if _, err := NewBuilder(inner, nil).Build(ctx, "clinical_trials", records); err != nil {
		t.Fatalf("initial Build() error: %v", err)
	}

	// Second build fails on its second batch.
	failing := &failingStore{Store: inner, failAfter: 1}
	builder := NewBuilder(failing, &Config{BatchSize: 2})

	_, err := builder.Build(ctx, "clinical_trials", records)
	if err == nil {
		t.Fatal("expected build error")
	}

	var buildErr *BuildError
	if !errors.As(err, &buildErr) {
		t.Fatalf("error type = %T, want *BuildError", err)
	}
	if buildErr.BatchStart != 2 || buildErr.BatchEnd != 4 {
		t.Errorf("failing batch = [%d:%d], want [2:4]", buildErr.BatchStart, buildErr.BatchEnd)
	}

	// Previous index still serves all five documents.
	count, err := inner.Count(ctx, "clinical_trials")
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if count != 5 {
		t.Errorf("count after failed rebuild = %d, want 5", count)
	}
}

// aliasFailStore fails alias resolution and records dropped collections.
type aliasFailStore struct {
	vectorstore.Store
	dropped []string
}

func (a *aliasFailStore) ResolveAlias(context.Context, string) (string, error) {
	return "", fmt.Errorf("simulated alias lookup failure")
}

func (a *aliasFailStore) DropCollection(ctx context.Context, name string) error {
	a.dropped = append(a.dropped, name)
	return a.Store.DropCollection(ctx, name)
}

func TestBuildAliasResolveFailureDropsTemp(t *testing.T) {
	t.Parallel()

	store := &aliasFailStore{Store: memory.New(hashEmbedder{})}
	builder := NewBuilder(store, nil)

	_, err := builder.Build(context.Background(), "clinical_trials", trial.SampleRecords())
	if err == nil {
		t.Fatal("expected build error")
	}

	dropped := false
	for _, name := range store.dropped {
		if strings.HasPrefix(name, "clinical_trials_build_") {
			dropped = true
		}
	}
	if !dropped {
		t.Errorf("build collection not dropped after alias resolve failure, drops: %v", store.dropped)
	}
}

func TestBuildEmptyRecords(t *testing.T) {
	t.Parallel()

	builder := NewBuilder(memory.New(hashEmbedder{}), nil)

	_, err := builder.Build(context.Background(), "clinical_trials", nil)
	var shapeErr *trial.DataShapeError
	if !errors.As(err, &shapeErr) {
		t.Errorf("error type = %T, want *trial.DataShapeError", err)
	}
}

func TestTempCollectionNameUnique(t *testing.T) {
	t.Parallel()

	a := tempCollectionName("clinical_trials")
	b := tempCollectionName("clinical_trials")
	if a == b {
		t.Errorf("temp names collide: %s", a)
	}
	if !strings.HasPrefix(a, "clinical_trials_build_") {
		t.Errorf("temp name %q missing build prefix", a)
	}
}
