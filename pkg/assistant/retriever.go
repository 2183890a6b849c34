package assistant

import (
	"context"
	"fmt"
	"sort"

	"github.com/trialbase-ai/go-trialqa/pkg/vectorstore"
)

// ContextLimit is the number of retrieved documents used for context
// assembly. The remaining retrieved documents still appear as sources
// and citations; the two cuts are independent.
const ContextLimit = 2

// RetrievalError reports a vector backend failure during a query.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed: %v", e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// Retriever fetches nearest-neighbour documents for a query.
type Retriever struct {
	store      vectorstore.Store
	collection string
}

// NewRetriever creates a retriever over a collection or alias.
func NewRetriever(store vectorstore.Store, collection string) *Retriever {
	return &Retriever{store: store, collection: collection}
}

// Retrieve returns up to k documents sorted ascending by distance.
//
// The backend's ordering is not trusted; results are re-sorted here.
// A collection with fewer than k documents returns all of them, and an
// empty collection returns an empty slice, neither is an error.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]vectorstore.Document, error) {
	if k < 1 {
		k = 1
	}

	result, err := r.store.Search(ctx, vectorstore.SearchQuery{
		Collection: r.collection,
		Text:       query,
		Limit:      k,
	})
	if err != nil {
		return nil, &RetrievalError{Err: err}
	}

	docs := result.Documents
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Distance < docs[j].Distance
	})

	if len(docs) > k {
		docs = docs[:k]
	}
	return docs, nil
}

// ContextDocuments selects the documents eligible for context assembly:
// the min(2, k) smallest-distance results.
func ContextDocuments(docs []vectorstore.Document, k int) []vectorstore.Document {
	limit := ContextLimit
	if k < limit {
		limit = k
	}
	if len(docs) < limit {
		limit = len(docs)
	}
	return docs[:limit]
}
