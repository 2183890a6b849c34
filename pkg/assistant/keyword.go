package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/rs/zerolog"

	"github.com/trialbase-ai/go-trialqa/pkg/trial"
)

// DefaultKeywordResults caps the degraded-mode result count.
const DefaultKeywordResults = 3

// Keyword is the degraded-mode assistant: pure keyword overlap over an
// in-memory record list, no vector store and no model backend.
//
// Selected at construction time when the full pipeline's dependencies
// are unreachable, and sticky for the lifetime of the instance.
type Keyword struct {
	records []trial.Record
	logger  zerolog.Logger
}

// NewKeyword creates a keyword assistant over the given records.
func NewKeyword(records []trial.Record, logger *zerolog.Logger) *Keyword {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &Keyword{records: records, logger: l}
}

// Query answers by case-insensitive token intersection between the
// question and each record's searchable text.
//
// Records scoring zero are excluded; ties break on string similarity
// between the question and the brief title. When nothing matches, the
// first nResults records are returned so the caller always gets
// something to show. Never returns an error.
func (k *Keyword) Query(_ context.Context, question string, nResults int) (*Response, error) {
	if nResults <= 0 {
		nResults = DefaultKeywordResults
	}
	queriesTotal.WithLabelValues(modeKeyword).Inc()

	questionLower := strings.ToLower(question)
	questionTokens := tokenSet(questionLower)

	type scored struct {
		record     trial.Record
		score      int
		similarity float32
	}

	var matches []scored
	for _, record := range k.records {
		score := overlap(questionTokens, strings.ToLower(record.SearchText()))
		if score == 0 {
			continue
		}
		similarity, err := edlib.StringsSimilarity(questionLower, strings.ToLower(record.BriefTitle), edlib.Levenshtein)
		if err != nil {
			similarity = 0
		}
		matches = append(matches, scored{record, score, similarity})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].similarity > matches[j].similarity
	})

	top := make([]trial.Record, 0, nResults)
	for _, m := range matches {
		if len(top) == nResults {
			break
		}
		top = append(top, m.record)
	}

	// Nothing matched; show a sample instead of an empty screen.
	if len(top) == 0 {
		limit := nResults
		if limit > len(k.records) {
			limit = len(k.records)
		}
		top = k.records[:limit]
	}

	nctIDs := make([]string, 0, len(top))
	sources := make([]Source, 0, len(top))
	for _, record := range top {
		nctIDs = append(nctIDs, record.NCTID)
		sources = append(sources, sourceFromRecord(record))
	}

	answer := keywordAnswer(questionLower, len(top))
	if len(nctIDs) > 0 {
		answer += "\n\nSources: " + strings.Join(nctIDs, ", ")
	} else {
		answer += "\n\nSources: " + NoCitationsPlaceholder
	}

	return &Response{
		Answer:  answer,
		Sources: sources,
		NCTIDs:  nctIDs,
	}, nil
}

func keywordAnswer(questionLower string, count int) string {
	switch {
	case strings.Contains(questionLower, "cancer"):
		return fmt.Sprintf("Found %d cancer-related clinical trials. These studies are investigating new treatments and therapies.", count)
	case strings.Contains(questionLower, "diabetes"):
		return fmt.Sprintf("Found %d diabetes-related trials focusing on novel therapeutic approaches.", count)
	case strings.Contains(questionLower, "covid"), strings.Contains(questionLower, "vaccine"):
		return fmt.Sprintf("Found %d COVID-19 and vaccine-related studies.", count)
	default:
		return fmt.Sprintf("Found %d relevant clinical trials based on your query.", count)
	}
}

func sourceFromRecord(record trial.Record) Source {
	metadata := record.Metadata()
	return Source{
		BriefTitle: metadata[trial.MetaBriefTitle],
		Status:     metadata[trial.MetaStatus],
		Phase:      metadata[trial.MetaPhase],
		Condition:  metadata[trial.MetaCondition],
		Purpose:    metadata[trial.MetaPurpose],
		StartDate:  metadata[trial.MetaStartDate],
		NCTID:      metadata[trial.MetaNCTID],
	}
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range strings.Fields(s) {
		set[strings.Trim(token, ".,?!")] = struct{}{}
	}
	return set
}

// overlap counts question tokens appearing in the record text.
func overlap(questionTokens map[string]struct{}, text string) int {
	textTokens := tokenSet(text)
	count := 0
	for token := range questionTokens {
		if _, ok := textTokens[token]; ok {
			count++
		}
	}
	return count
}
