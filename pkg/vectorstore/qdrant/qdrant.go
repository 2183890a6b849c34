// Package qdrant provides a Qdrant-backed vectorstore.Store.
//
// Collections are durable and addressable by name across restarts, and
// Qdrant aliases give the indexer its blue/green rebuild: a new
// collection is built under a temporary name, then the serving alias is
// repointed at it.
package qdrant

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	qd "github.com/qdrant/go-client/qdrant"

	"github.com/trialbase-ai/go-trialqa/pkg/vectorstore"
)

// Client implements vectorstore.Store against a Qdrant server.
//
// Qdrant does not generate embeddings internally, so an embedding
// provider is required for both document storage and text queries.
type Client struct {
	client          *qd.Client
	embedder        vectorstore.EmbeddingProvider
	vectorDimension uint64
}

// Config holds Qdrant client configuration.
type Config struct {
	// Qdrant server URL
	// Example: "http://localhost:6334" or "https://your-qdrant-cluster.com"
	URL string

	// Optional API key for authentication
	APIKey string

	// Vector dimension, must match the embedding model output.
	// Defaults to 768 (nomic-embed-text).
	VectorDimension int

	// Embedding provider for generating vectors. Required for Upsert
	// and for text queries without a pre-computed vector.
	EmbeddingProvider vectorstore.EmbeddingProvider
}

// New creates a new Qdrant client with the specified configuration.
//
// Example:
//
//	client, err := qdrant.New(&qdrant.Config{
//	    URL:               "http://localhost:6334",
//	    VectorDimension:   768,
//	    EmbeddingProvider: embedder,
//	})
func New(config *Config) (*Client, error) {
	if config.URL == "" {
		return nil, fmt.Errorf("qdrant URL is required")
	}
	if config.VectorDimension <= 0 {
		config.VectorDimension = 768
	}

	parsedURL, err := url.Parse(config.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	port := 6334 // Default Qdrant gRPC port
	if parsedURL.Port() != "" {
		p, err := strconv.Atoi(parsedURL.Port())
		if err != nil {
			return nil, fmt.Errorf("invalid port in Qdrant URL: %w", err)
		}
		port = p
	}

	qdrantClient, err := qd.NewClient(&qd.Config{
		Host:   parsedURL.Hostname(),
		Port:   port,
		APIKey: config.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return &Client{
		client:          qdrantClient,
		embedder:        config.EmbeddingProvider,
		vectorDimension: uint64(config.VectorDimension),
	}, nil
}

// Search performs nearest-neighbour search against a collection or
// alias. Qdrant returns cosine similarity scores; these are converted to
// distances (1 - score) so smaller always means more relevant.
func (c *Client) Search(ctx context.Context, query vectorstore.SearchQuery) (*vectorstore.SearchResult, error) {
	if query.Collection == "" {
		return nil, fmt.Errorf("collection is required for qdrant search")
	}

	vec := query.Vector
	if len(vec) == 0 {
		if c.embedder == nil {
			return nil, fmt.Errorf("no embedding provider configured and no query vector supplied")
		}
		embedded, err := c.embedder.Embed(ctx, query.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to embed query: %w", err)
		}
		vec = embedded
	}

	request := &qd.QueryPoints{
		CollectionName: query.Collection,
		Query:          qd.NewQuery(vec...),
		WithPayload:    qd.NewWithPayload(true),
	}
	if query.Limit > 0 {
		limit := uint64(query.Limit)
		request.Limit = &limit
	}

	points, err := c.client.Query(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("qdrant search failed: %w", err)
	}

	documents := make([]vectorstore.Document, 0, len(points))
	for _, point := range points {
		documents = append(documents, convertScoredPoint(point))
	}

	return &vectorstore.SearchResult{
		Documents: documents,
		Query:     query.Text,
		Total:     len(documents),
	}, nil
}

// Upsert adds documents to a collection with generated embeddings.
func (c *Client) Upsert(ctx context.Context, collection string, documents []vectorstore.Document) error {
	if len(documents) == 0 {
		return nil
	}
	if c.embedder == nil {
		return fmt.Errorf("no embedding provider configured - cannot generate vectors for document storage")
	}

	points := make([]*qd.PointStruct, 0, len(documents))
	for _, doc := range documents {
		embedding, err := c.embedder.Embed(ctx, doc.Content)
		if err != nil {
			return fmt.Errorf("failed to generate embedding for document %s: %w", doc.ID, err)
		}

		points = append(points, &qd.PointStruct{
			Id:      pointID(doc.ID),
			Vectors: qd.NewVectors(embedding...),
			Payload: buildPayload(doc),
		})
	}

	waitForResult := true
	_, err := c.client.Upsert(ctx, &qd.UpsertPoints{
		CollectionName: collection,
		Points:         points,
		Wait:           &waitForResult,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert %d points to collection %s: %w", len(points), collection, err)
	}

	return nil
}

// CreateCollection creates a new empty collection with the configured
// vector dimension and cosine distance.
func (c *Client) CreateCollection(ctx context.Context, name string) error {
	err := c.client.CreateCollection(ctx, &qd.CreateCollection{
		CollectionName: name,
		VectorsConfig: qd.NewVectorsConfig(&qd.VectorParams{
			Size:     c.vectorDimension,
			Distance: qd.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection %s: %w", name, err)
	}
	return nil
}

// DropCollection removes a collection. Qdrant treats deleting a missing
// collection as success, which matches the Store contract.
func (c *Client) DropCollection(ctx context.Context, name string) error {
	if err := c.client.DeleteCollection(ctx, name); err != nil {
		return fmt.Errorf("failed to drop collection %s: %w", name, err)
	}
	return nil
}

// SwapAlias repoints alias at target. Any previous binding is removed
// first so the alias never refers to two collections.
func (c *Client) SwapAlias(ctx context.Context, alias, target string) error {
	current, err := c.ResolveAlias(ctx, alias)
	if err != nil {
		return err
	}
	if current != "" {
		if err := c.client.DeleteAlias(ctx, alias); err != nil {
			return fmt.Errorf("failed to delete alias %s: %w", alias, err)
		}
	}
	if err := c.client.CreateAlias(ctx, alias, target); err != nil {
		return fmt.Errorf("failed to alias %s -> %s: %w", alias, target, err)
	}
	return nil
}

// ResolveAlias returns the collection an alias points at, or empty when
// the alias is unbound.
func (c *Client) ResolveAlias(ctx context.Context, alias string) (string, error) {
	aliases, err := c.client.ListAliases(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list aliases: %w", err)
	}
	for _, a := range aliases {
		if a.GetAliasName() == alias {
			return a.GetCollectionName(), nil
		}
	}
	return "", nil
}

// Count returns the number of points in a collection or alias.
func (c *Client) Count(ctx context.Context, collection string) (int, error) {
	count, err := c.client.Count(ctx, &qd.CountPoints{CollectionName: collection})
	if err != nil {
		return 0, fmt.Errorf("failed to count collection %s: %w", collection, err)
	}
	return int(count), nil
}

// Health checks if the Qdrant server is available and responsive.
func (c *Client) Health(ctx context.Context) error {
	if _, err := c.client.HealthCheck(ctx); err != nil {
		return fmt.Errorf("qdrant health check failed: %w", err)
	}
	return nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("failed to close qdrant client: %w", err)
	}
	return nil
}

// pointID converts a document ID to a Qdrant point ID. Stable numeric
// ids (row positions) map to numeric point ids; anything else is used as
// a UUID-style id.
func pointID(docID string) *qd.PointId {
	if n, err := strconv.ParseUint(docID, 10, 64); err == nil {
		return &qd.PointId{PointIdOptions: &qd.PointId_Num{Num: n}}
	}
	return &qd.PointId{PointIdOptions: &qd.PointId_Uuid{Uuid: docID}}
}

// buildPayload converts a document to the Qdrant payload format. The
// content travels in the payload alongside the string metadata.
func buildPayload(doc vectorstore.Document) map[string]*qd.Value {
	payload := make(map[string]*qd.Value, len(doc.Metadata)+1)
	payload["content"] = qd.NewValueString(doc.Content)
	for key, value := range doc.Metadata {
		payload[key] = qd.NewValueString(value)
	}
	return payload
}

// convertScoredPoint converts a Qdrant scored point back to a document.
func convertScoredPoint(point *qd.ScoredPoint) vectorstore.Document {
	doc := vectorstore.Document{
		// Cosine similarity in [.., 1]; distance keeps lower-is-better.
		Distance: 1 - float64(point.GetScore()),
		Metadata: make(map[string]string),
	}

	switch id := point.GetId().GetPointIdOptions().(type) {
	case *qd.PointId_Num:
		doc.ID = strconv.FormatUint(id.Num, 10)
	case *qd.PointId_Uuid:
		doc.ID = id.Uuid
	}

	for key, value := range point.GetPayload() {
		if key == "content" {
			doc.Content = value.GetStringValue()
			continue
		}
		doc.Metadata[key] = value.GetStringValue()
	}

	return doc
}
