package vectorstore

// Document represents an indexed trial document with metadata.
//
// Contains the embedded text content, the string metadata map built from
// the source record, and the embedding distance from vector search
// operations.
type Document struct {
	ID       string            `json:"id"`                 // Stable per-record identifier
	Content  string            `json:"content"`            // Document text content
	Metadata map[string]string `json:"metadata,omitempty"` // Trial metadata fields
	Distance float64           `json:"distance,omitempty"` // Embedding distance, lower is more relevant
}

// SearchResult represents the result of a vector search operation.
//
// Backends are not trusted to order documents; callers re-sort by
// distance before use.
type SearchResult struct {
	Documents []Document `json:"documents"` // Matching documents
	Query     string     `json:"query"`     // Original search query
	Total     int        `json:"total"`     // Number of matches returned
}

// EmbeddingVector represents a vector embedding.
type EmbeddingVector []float32

// SearchQuery represents a nearest-neighbour query.
type SearchQuery struct {
	Collection string          `json:"collection"`       // Collection or alias to query
	Text       string          `json:"text"`             // Query text
	Vector     EmbeddingVector `json:"vector,omitempty"` // Pre-computed query vector
	Limit      int             `json:"limit,omitempty"`  // Maximum results to return
}
