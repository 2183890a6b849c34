// Package memory provides an in-memory vectorstore.Store implementation
// backed by brute-force cosine distance. It is used in tests and for
// small local datasets that do not warrant a vector database server.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/trialbase-ai/go-trialqa/pkg/vectorstore"
)

// Store is an in-memory vector store with named collections and alias
// support. Reads may run concurrently; writes take exclusive access.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]entry
	aliases     map[string]string
	embedder    vectorstore.EmbeddingProvider
}

type entry struct {
	doc    vectorstore.Document
	vector vectorstore.EmbeddingVector
}

// New creates an in-memory store using the given embedding provider for
// both documents and queries.
func New(embedder vectorstore.EmbeddingProvider) *Store {
	return &Store{
		collections: make(map[string][]entry),
		aliases:     make(map[string]string),
		embedder:    embedder,
	}
}

// resolve maps an alias to its target collection, or returns the name
// unchanged when it is a plain collection.
func (s *Store) resolve(name string) string {
	if target, ok := s.aliases[name]; ok {
		return target
	}
	return name
}

// Search performs brute-force cosine-distance search over a collection.
func (s *Store) Search(ctx context.Context, query vectorstore.SearchQuery) (*vectorstore.SearchResult, error) {
	vec := query.Vector
	if len(vec) == 0 {
		if s.embedder == nil {
			return nil, fmt.Errorf("no embedding provider configured and no query vector supplied")
		}
		embedded, err := s.embedder.Embed(ctx, query.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to embed query: %w", err)
		}
		vec = embedded
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, ok := s.collections[s.resolve(query.Collection)]
	if !ok {
		return nil, fmt.Errorf("collection %q does not exist", query.Collection)
	}

	documents := make([]vectorstore.Document, 0, len(entries))
	for _, e := range entries {
		doc := e.doc
		doc.Distance = cosineDistance(vec, e.vector)
		documents = append(documents, doc)
	}

	sort.SliceStable(documents, func(i, j int) bool {
		return documents[i].Distance < documents[j].Distance
	})

	if query.Limit > 0 && len(documents) > query.Limit {
		documents = documents[:query.Limit]
	}

	return &vectorstore.SearchResult{
		Documents: documents,
		Query:     query.Text,
		Total:     len(documents),
	}, nil
}

// Upsert embeds and stores documents in a collection. Existing documents
// with the same ID are replaced.
func (s *Store) Upsert(ctx context.Context, collection string, documents []vectorstore.Document) error {
	if s.embedder == nil {
		return fmt.Errorf("no embedding provider configured - cannot store documents")
	}

	// Embed outside the lock; embedding dominates the cost.
	vectors := make([]vectorstore.EmbeddingVector, len(documents))
	for i, doc := range documents {
		vec, err := s.embedder.Embed(ctx, doc.Content)
		if err != nil {
			return fmt.Errorf("failed to embed document %s: %w", doc.ID, err)
		}
		vectors[i] = vec
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name := s.resolve(collection)
	entries, ok := s.collections[name]
	if !ok {
		return fmt.Errorf("collection %q does not exist", collection)
	}

	byID := make(map[string]int, len(entries))
	for i, e := range entries {
		byID[e.doc.ID] = i
	}

	for i, doc := range documents {
		e := entry{doc: doc, vector: vectors[i]}
		if idx, ok := byID[doc.ID]; ok {
			entries[idx] = e
		} else {
			entries = append(entries, e)
		}
	}
	s.collections[name] = entries

	return nil
}

// CreateCollection creates a new empty collection.
func (s *Store) CreateCollection(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[name]; ok {
		return fmt.Errorf("collection %q already exists", name)
	}
	s.collections[name] = []entry{}
	return nil
}

// DropCollection removes a collection. Dropping a missing collection is
// a no-op.
func (s *Store) DropCollection(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections, name)
	return nil
}

// SwapAlias points alias at target, replacing any previous binding.
func (s *Store) SwapAlias(_ context.Context, alias, target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[target]; !ok {
		return fmt.Errorf("cannot alias %q: collection %q does not exist", alias, target)
	}
	s.aliases[alias] = target
	return nil
}

// ResolveAlias returns the collection an alias points at, or empty when
// the alias is unbound.
func (s *Store) ResolveAlias(_ context.Context, alias string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.aliases[alias], nil
}

// Count returns the number of documents in a collection or alias.
func (s *Store) Count(_ context.Context, collection string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, ok := s.collections[s.resolve(collection)]
	if !ok {
		return 0, fmt.Errorf("collection %q does not exist", collection)
	}
	return len(entries), nil
}

// Health always succeeds for the in-memory store.
func (s *Store) Health(_ context.Context) error {
	return nil
}

// Close releases nothing; present to satisfy the Store interface.
func (s *Store) Close() error {
	return nil
}

// cosineDistance computes 1 - cosine similarity. Zero-magnitude vectors
// are treated as maximally distant.
func cosineDistance(a, b vectorstore.EmbeddingVector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 1
	}

	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 1
	}

	return 1 - dot/(math.Sqrt(magA)*math.Sqrt(magB))
}
