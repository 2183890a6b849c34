// Package evaluate measures retrieval accuracy against labeled test
// cases. Metrics are defined over the retriever alone; answer
// generation never influences them.
package evaluate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/trialbase-ai/go-trialqa/pkg/assistant"
	"github.com/trialbase-ai/go-trialqa/pkg/trial"
)

// TestCase pairs a question with the trial ids a correct retrieval
// should surface.
type TestCase struct {
	Question       string   `json:"question"`
	RelevantTrials []string `json:"relevant_trials"`
}

// Report holds the aggregate metrics for one evaluation run.
type Report struct {
	K         int     `json:"k"`
	Cases     int     `json:"cases"`
	HitRate   float64 `json:"hit_rate"`  // Fraction of cases with >= 1 expected id in the top k
	Precision float64 `json:"precision"` // Mean fraction of the top k that is expected
}

func (r *Report) String() string {
	return fmt.Sprintf("hit_rate@%d: %.2f\nprecision@%d: %.2f", r.K, r.HitRate, r.K, r.Precision)
}

// LoadTestCases reads a JSON array of test cases from a file.
func LoadTestCases(path string) ([]TestCase, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test cases: %w", err)
	}
	var cases []TestCase
	if err := json.Unmarshal(raw, &cases); err != nil {
		return nil, fmt.Errorf("failed to parse test cases: %w", err)
	}
	return cases, nil
}

// Run evaluates the retriever over the test cases at cutoff k.
//
// hit-rate@k counts a case as a hit when at least one expected id
// appears among the top k retrieved documents. precision@k averages,
// over cases, the fraction of the k slots filled with expected ids.
func Run(ctx context.Context, retriever *assistant.Retriever, cases []TestCase, k int) (*Report, error) {
	if len(cases) == 0 {
		return nil, fmt.Errorf("no test cases to evaluate")
	}
	if k < 1 {
		k = assistant.DefaultTopK
	}

	hits := 0
	precisionSum := 0.0

	for _, tc := range cases {
		expected := make(map[string]struct{}, len(tc.RelevantTrials))
		for _, id := range tc.RelevantTrials {
			expected[id] = struct{}{}
		}

		docs, err := retriever.Retrieve(ctx, tc.Question, k)
		if err != nil {
			return nil, fmt.Errorf("retrieval failed for %q: %w", tc.Question, err)
		}

		found := 0
		for _, doc := range docs {
			if _, ok := expected[doc.Metadata[trial.MetaNCTID]]; ok {
				found++
			}
		}

		if found > 0 {
			hits++
		}
		precisionSum += float64(found) / float64(k)
	}

	return &Report{
		K:         k,
		Cases:     len(cases),
		HitRate:   float64(hits) / float64(len(cases)),
		Precision: precisionSum / float64(len(cases)),
	}, nil
}
