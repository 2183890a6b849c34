package assistant

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/trialbase-ai/go-trialqa/pkg/llm"
	"github.com/trialbase-ai/go-trialqa/pkg/trial"
)

// Counter deltas are asserted, not absolute values; the metrics are
// process-global and other tests increment them too. These tests stay
// sequential so no parallel test moves the counters mid-assertion.

func TestKeywordQueryIncrementsCounter(t *testing.T) {
	before := testutil.ToFloat64(queriesTotal.WithLabelValues(modeKeyword))

	assistant := NewKeyword(trial.SampleRecords(), nil)
	if _, err := assistant.Query(context.Background(), "diabetes", 3); err != nil {
		t.Fatalf("Query() error: %v", err)
	}

	after := testutil.ToFloat64(queriesTotal.WithLabelValues(modeKeyword))
	if after != before+1 {
		t.Errorf("keyword query counter = %v, want %v", after, before+1)
	}
}

func TestGenerationFallbackIncrementsCounter(t *testing.T) {
	before := testutil.ToFloat64(generationFallbacks)

	model := llm.GeneratorFunc(func(_ context.Context, _ string) (string, error) {
		return "", fmt.Errorf("backend unreachable")
	})
	gen := NewGenerator(model, time.Second, zerolog.Nop())
	if got := gen.Generate(context.Background(), "q", "ctx", "NCT1"); got != ApologyAnswer {
		t.Fatalf("Generate() = %q, want the apology", got)
	}

	after := testutil.ToFloat64(generationFallbacks)
	if after != before+1 {
		t.Errorf("fallback counter = %v, want %v", after, before+1)
	}
}
