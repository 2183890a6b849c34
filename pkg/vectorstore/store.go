// Package vectorstore defines the vector database abstraction used by
// the indexer and the assistant, plus the shared document and query
// types. Implementations live in the memory and qdrant subpackages.
package vectorstore

import "context"

// Store interface for vector database operations.
//
// Defines the operations all vector database implementations must
// satisfy: similarity search, bulk document upserts, and the collection
// lifecycle needed for destructive index rebuilds (create, drop, alias
// swap).
//
// Example:
//
//	store, _ := qdrant.New(&qdrant.Config{URL: "http://localhost:6334"})
//	result, err := store.Search(ctx, vectorstore.SearchQuery{
//	    Collection: "clinical_trials",
//	    Text:       "diabetes",
//	    Limit:      5,
//	})
type Store interface {
	// Search performs nearest-neighbour search against a collection,
	// returning documents, metadata, and distances.
	Search(ctx context.Context, query SearchQuery) (*SearchResult, error)

	// Upsert adds documents to a collection with embeddings.
	Upsert(ctx context.Context, collection string, documents []Document) error

	// CreateCollection creates a new empty collection.
	CreateCollection(ctx context.Context, name string) error

	// DropCollection removes a collection and its documents. Dropping a
	// collection that does not exist is not an error.
	DropCollection(ctx context.Context, name string) error

	// SwapAlias points alias at target, replacing any previous binding.
	// Searches against the alias observe the new target afterwards.
	SwapAlias(ctx context.Context, alias, target string) error

	// ResolveAlias returns the collection an alias points at, or empty
	// when the alias is unbound.
	ResolveAlias(ctx context.Context, alias string) (string, error)

	// Count returns the number of documents in a collection or alias.
	Count(ctx context.Context, collection string) (int, error)

	// Health checks if the vector store is available.
	Health(ctx context.Context) error

	// Close releases any resources held by the client.
	Close() error
}

// EmbeddingProvider interface for generating embeddings.
type EmbeddingProvider interface {
	// Embed generates an embedding for text content
	Embed(ctx context.Context, text string) (EmbeddingVector, error)
}
