package assistant

import (
	"context"
	"strings"
	"text/template"
	"time"

	"github.com/rs/zerolog"

	"github.com/trialbase-ai/go-trialqa/pkg/llm"
)

// DefaultGenerationTimeout bounds one model invocation.
const DefaultGenerationTimeout = 10 * time.Second

// ApologyAnswer is returned when generation times out or fails. The
// caller only ever sees this message, never a raw backend error.
const ApologyAnswer = "I apologize, but I'm taking too long to process this request. Could you try rephrasing your question?"

var promptTemplate = template.Must(template.New("answer").Parse(
	`You are a helpful clinical trial assistant. Use the following context about clinical trials to answer the question. Be concise and focus on the most relevant trials.

Context about clinical trials:
{{.Context}}

Question: {{.Question}}

Answer the question based on the above context. Include key information such as trial status, phase, and start date when relevant. If specific details aren't available in the context, say that you don't have enough information instead of making assumptions. Do not state medical facts that are not supported by the context. End your answer with a final line of the form "Sources: {{.Citations}}".`))

// Generator invokes the language model with a bounded wait.
type Generator struct {
	model   llm.Generator
	timeout time.Duration
	logger  zerolog.Logger
}

// NewGenerator wraps a model with the timeout and fallback policy.
// timeout <= 0 uses the 10 second default.
func NewGenerator(model llm.Generator, timeout time.Duration, logger zerolog.Logger) *Generator {
	if timeout <= 0 {
		timeout = DefaultGenerationTimeout
	}
	return &Generator{model: model, timeout: timeout, logger: logger}
}

// Generate renders the prompt and invokes the model.
//
// Input: question, assembled context block, citation display line
// Output: answer text, never an error
// Behavior: timeout or model failure yields the fixed apology
//
// The request context is cancelled when the bound expires so the
// backend call is abandoned rather than left running. Failures are
// logged before being converted to the apology.
func (g *Generator) Generate(ctx context.Context, question, contextBlock, citationLine string) string {
	var prompt strings.Builder
	err := promptTemplate.Execute(&prompt, struct {
		Context   string
		Question  string
		Citations string
	}{contextBlock, question, citationLine})
	if err != nil {
		g.logger.Error().Err(err).Msg("failed to render prompt template")
		generationFallbacks.Inc()
		return ApologyAnswer
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	type result struct {
		answer string
		err    error
	}
	done := make(chan result, 1)
	go func() {
		answer, err := g.model.Generate(ctx, prompt.String())
		done <- result{answer, err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			g.logger.Warn().Err(res.err).Str("question", question).Msg("model generation failed")
			generationFallbacks.Inc()
			return ApologyAnswer
		}
		return res.answer
	case <-ctx.Done():
		g.logger.Warn().Dur("timeout", g.timeout).Str("question", question).Msg("model generation timed out")
		generationFallbacks.Inc()
		return ApologyAnswer
	}
}
