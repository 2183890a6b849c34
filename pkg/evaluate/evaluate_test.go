package evaluate

import (
	"context"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/trialbase-ai/go-trialqa/pkg/assistant"
	"github.com/trialbase-ai/go-trialqa/pkg/index"
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

func indexedRetriever(t *testing.T) *assistant.Retriever {
	t.Helper()
	store := memory.New(hashEmbedder{})
	records := []trial.Record{
		{NCTID: "NCT001", BriefTitle: "Melanoma immunotherapy trial", Conditions: "Melanoma", Phase: "Phase 3"},
		{NCTID: "NCT002", BriefTitle: "Diabetes drug trial", Conditions: "Type 2 Diabetes", Phase: "Phase 2"},
		{NCTID: "NCT003", BriefTitle: "COVID vaccine safety study", Conditions: "COVID-19", Phase: "Phase 3"},
	}
	if _, err := index.NewBuilder(store, nil).Build(context.Background(), "clinical_trials", records); err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return assistant.NewRetriever(store, "clinical_trials")
}

func TestRunComputesMetrics(t *testing.T) {
	t.Parallel()

	cases := []TestCase{
		{Question: "diabetes drug", RelevantTrials: []string{"NCT002"}},
		{Question: "covid vaccine safety", RelevantTrials: []string{"NCT003"}},
	}

	report, err := Run(context.Background(), indexedRetriever(t), cases, 1)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if report.HitRate != 1.0 {
		t.Errorf("hit rate = %.2f, want 1.00", report.HitRate)
	}
	if report.Precision != 1.0 {
		t.Errorf("precision = %.2f, want 1.00", report.Precision)
	}
	if report.Cases != 2 || report.K != 1 {
		t.Errorf("report = %+v", report)
	}
}

func TestRunPartialPrecision(t *testing.T) {
	t.Parallel()

	// Only one of the three retrieved documents is expected.
	cases := []TestCase{
		{Question: "diabetes drug", RelevantTrials: []string{"NCT002"}},
	}

	report, err := Run(context.Background(), indexedRetriever(t), cases, 3)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if report.HitRate != 1.0 {
		t.Errorf("hit rate = %.2f, want 1.00", report.HitRate)
	}
	want := 1.0 / 3.0
	if diff := report.Precision - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("precision = %.4f, want %.4f", report.Precision, want)
	}
}

func TestRunNoCases(t *testing.T) {
	t.Parallel()

	if _, err := Run(context.Background(), indexedRetriever(t), nil, 5); err == nil {
		t.Error("expected error for empty test cases")
	}
}

func TestLoadTestCases(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test_cases.json")
	content := `[{"question": "diabetes trials", "relevant_trials": ["NCT002"]}]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	cases, err := LoadTestCases(path)
	if err != nil {
		t.Fatalf("LoadTestCases() error: %v", err)
	}
	if len(cases) != 1 || cases[0].Question != "diabetes trials" || cases[0].RelevantTrials[0] != "NCT002" {
		t.Errorf("cases = %+v", cases)
	}
}

func TestLoadTestCasesMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := LoadTestCases(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
