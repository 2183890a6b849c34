package assistant

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/trialbase-ai/go-trialqa/pkg/llm"
)

func TestGenerateReturnsModelAnswer(t *testing.T) {
	t.Parallel()

	model := llm.GeneratorFunc(func(_ context.Context, _ string) (string, error) {
		return "Two trials study diabetes.", nil
	})
	gen := NewGenerator(model, time.Second, zerolog.Nop())

	got := gen.Generate(context.Background(), "diabetes?", "ctx", "NCT1")
	if got != "Two trials study diabetes." {
		t.Errorf("Generate() = %q", got)
	}
}

func TestGeneratePromptContents(t *testing.T) {
	t.Parallel()

	var captured string
	model := llm.GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
		captured = prompt
		return "ok", nil
	})
	gen := NewGenerator(model, time.Second, zerolog.Nop())

	gen.Generate(context.Background(), "What phase?", "the context block", "NCT1, NCT2")

	for _, want := range []string{"the context block", "Question: What phase?", `"Sources: NCT1, NCT2"`} {
		if !strings.Contains(captured, want) {
			t.Errorf("prompt missing %q:\n%s", want, captured)
		}
	}
}

func TestGenerateTimeoutReturnsApology(t *testing.T) {
	t.Parallel()

	model := llm.GeneratorFunc(func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	gen := NewGenerator(model, 10*time.Millisecond, zerolog.Nop())

	got := gen.Generate(context.Background(), "slow question", "ctx", "NCT1")
	if got != ApologyAnswer {
		t.Errorf("Generate() = %q, want the apology", got)
	}
}

func TestGenerateModelErrorReturnsApology(t *testing.T) {
	t.Parallel()

	model := llm.GeneratorFunc(func(_ context.Context, _ string) (string, error) {
		return "", fmt.Errorf("backend unreachable")
	})
	gen := NewGenerator(model, time.Second, zerolog.Nop())

	got := gen.Generate(context.Background(), "q", "ctx", "NCT1")
	if got != ApologyAnswer {
		t.Errorf("Generate() = %q, want the apology", got)
	}
}
