// Package assistant implements the question-answering pipeline over the
// indexed clinical trial corpus.
//
// The full pipeline retrieves nearest-neighbour documents, assembles a
// bounded context block, invokes a language model with a timeout, and
// attaches trial identifier citations. A keyword-matching fallback
// serves the same query API when the vector store or the model backend
// is unreachable; the choice between the two happens once at
// construction time and is sticky for the lifetime of the instance.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/trialbase-ai/go-trialqa/pkg/cache"
	"github.com/trialbase-ai/go-trialqa/pkg/llm"
	"github.com/trialbase-ai/go-trialqa/pkg/trial"
	"github.com/trialbase-ai/go-trialqa/pkg/vectorstore"
)

// DefaultTopK is the number of documents retrieved per query.
const DefaultTopK = 5

// Source describes one trial backing an answer, in the shape consumed
// by UI source cards.
type Source struct {
	BriefTitle string `json:"brief_title"`
	Status     string `json:"status"`
	Phase      string `json:"phase"`
	Condition  string `json:"condition"`
	Purpose    string `json:"purpose"`
	StartDate  string `json:"start_date"`
	NCTID      string `json:"nct_id"`
}

// Response is the result of a query.
type Response struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
	NCTIDs  []string `json:"nct_ids"`
}

// Assistant answers natural-language questions about clinical trials.
//
// Both the full retrieval pipeline and the keyword fallback implement
// this interface; callers never branch on which one they hold.
type Assistant interface {
	// Query answers a question, reporting up to nResults sources.
	// nResults <= 0 uses the default top-k.
	Query(ctx context.Context, question string, nResults int) (*Response, error)
}

// Config holds assistant construction settings.
type Config struct {
	// Vector store holding the trial index. Required for the full
	// pipeline.
	Store vectorstore.Store

	// Collection or alias to query (defaults to "clinical_trials")
	Collection string

	// Language model used for answer generation. Required for the
	// full pipeline.
	Model llm.Generator

	// Optional. Bound on model invocation (defaults to 10s)
	GenerationTimeout time.Duration

	// Optional. Records served by the keyword fallback
	// (defaults to the built-in sample trials)
	FallbackRecords []trial.Record

	// Optional. Answer cache keyed by question and result count
	Cache cache.Store

	// Optional. TTL for cached answers (defaults to 1h)
	CacheTTL time.Duration

	// Optional. Structured logger
	Logger *zerolog.Logger
}

// healthChecker is implemented by backends that can report liveness.
type healthChecker interface {
	Health(ctx context.Context) error
}

// New builds an assistant, probing the configured backends.
//
// Input: *Config with store and model wiring
// Output: Assistant, never an error for missing backends
// Behavior: picks full or degraded mode once, at construction
//
// When the store and model are both configured and healthy, the full
// retrieval pipeline is returned. Otherwise a keyword assistant over
// the fallback records is returned and the reason is logged. The
// chosen mode never changes for the lifetime of the instance.
func New(ctx context.Context, config *Config) Assistant {
	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}

	if reason := probe(ctx, config); reason != "" {
		logger.Warn().Str("reason", reason).Msg("falling back to keyword assistant")
		records := config.FallbackRecords
		if len(records) == 0 {
			records = trial.SampleRecords()
		}
		return NewKeyword(records, &logger)
	}

	return newPipeline(config, logger)
}

// probe returns a non-empty reason when the full pipeline cannot run.
func probe(ctx context.Context, config *Config) string {
	if config.Store == nil {
		return "no vector store configured"
	}
	if config.Model == nil {
		return "no language model configured"
	}
	if err := config.Store.Health(ctx); err != nil {
		return fmt.Sprintf("vector store unavailable: %v", err)
	}
	if hc, ok := config.Model.(healthChecker); ok {
		if err := hc.Health(ctx); err != nil {
			return fmt.Sprintf("model backend unavailable: %v", err)
		}
	}
	return ""
}

// Pipeline is the full retrieval-augmented assistant.
//
// Stateless per query; a single Pipeline may serve concurrent sessions.
type Pipeline struct {
	retriever *Retriever
	generator *Generator
	cache     cache.Store
	cacheTTL  time.Duration
	logger    zerolog.Logger
}

func newPipeline(config *Config, logger zerolog.Logger) *Pipeline {
	collection := config.Collection
	if collection == "" {
		collection = "clinical_trials"
	}
	cacheTTL := config.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}

	return &Pipeline{
		retriever: NewRetriever(config.Store, collection),
		generator: NewGenerator(config.Model, config.GenerationTimeout, logger),
		cache:     config.Cache,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Query runs the retrieval-augmented pipeline for one question.
//
// Input: question text, number of sources to report
// Output: answer with sources and trial identifiers
// Behavior: retrieve k, use top 2 for context, cite all k
//
// The context block is assembled from the two smallest-distance
// documents only; the full retrieved set is reported as sources and
// citations. Generation failures degrade to a fixed apology answer,
// never an error.
func (p *Pipeline) Query(ctx context.Context, question string, nResults int) (*Response, error) {
	if nResults <= 0 {
		nResults = DefaultTopK
	}
	start := time.Now()
	defer func() {
		queryDuration.WithLabelValues(modeFull).Observe(time.Since(start).Seconds())
	}()
	queriesTotal.WithLabelValues(modeFull).Inc()

	if resp, ok := p.cachedResponse(question, nResults); ok {
		p.logger.Debug().Str("question", question).Msg("answer cache hit")
		return resp, nil
	}

	docs, err := p.retriever.Retrieve(ctx, question, nResults)
	if err != nil {
		return nil, err
	}

	contextBlock := BuildContext(ContextDocuments(docs, nResults))
	nctIDs, citationLine := ExtractCitations(docs)

	answer := p.generator.Generate(ctx, question, contextBlock, citationLine)
	answer = ensureSourcesLine(answer, citationLine)

	resp := &Response{
		Answer:  answer,
		Sources: sourcesFromDocuments(docs),
		NCTIDs:  nctIDs,
	}
	p.storeResponse(question, nResults, resp)
	return resp, nil
}

// ensureSourcesLine appends the citation line when the model did not
// honor the template instruction. Only the final line counts as
// honoring it; a "Sources:" mention mid-answer does not cite anything.
// The apology fallback is returned verbatim, without a sources line.
func ensureSourcesLine(answer, citationLine string) string {
	if answer == ApologyAnswer {
		return answer
	}
	lines := strings.Split(strings.TrimRight(answer, "\n"), "\n")
	if strings.HasPrefix(lines[len(lines)-1], "Sources:") {
		return answer
	}
	return answer + "\n\nSources: " + citationLine
}

// sourcesFromDocuments maps retrieved metadata to UI source cards,
// preserving retrieval order.
func sourcesFromDocuments(docs []vectorstore.Document) []Source {
	sources := make([]Source, 0, len(docs))
	for _, doc := range docs {
		sources = append(sources, Source{
			BriefTitle: doc.Metadata[trial.MetaBriefTitle],
			Status:     doc.Metadata[trial.MetaStatus],
			Phase:      doc.Metadata[trial.MetaPhase],
			Condition:  doc.Metadata[trial.MetaCondition],
			Purpose:    doc.Metadata[trial.MetaPurpose],
			StartDate:  doc.Metadata[trial.MetaStartDate],
			NCTID:      doc.Metadata[trial.MetaNCTID],
		})
	}
	return sources
}

func cacheKey(question string, nResults int) string {
	return fmt.Sprintf("answer:%d:%s", nResults, question)
}

func (p *Pipeline) cachedResponse(question string, nResults int) (*Response, bool) {
	if p.cache == nil {
		return nil, false
	}
	raw, ok, err := p.cache.Get(cacheKey(question, nResults))
	if err != nil || !ok {
		return nil, false
	}
	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

func (p *Pipeline) storeResponse(question string, nResults int, resp *Response) {
	if p.cache == nil || resp.Answer == ApologyAnswer {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := p.cache.Set(cacheKey(question, nResults), raw, p.cacheTTL); err != nil {
		p.logger.Warn().Err(err).Msg("failed to cache answer")
	}
}
