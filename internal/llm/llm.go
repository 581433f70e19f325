// Package llm is the pipeline's gateway to chat-completion models.
package llm

import (
	"context"

	"github.com/sells-group/opportunity-cli/internal/cost"
	"github.com/sells-group/opportunity-cli/internal/resilience"
)

// Provider names accepted in configuration.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// Gateway turns a single user prompt into the model's text reply.
type Gateway interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Settings are the generation parameters shared by every backend.
type Settings struct {
	Model       string
	Temperature float64
	MaxTokens   int64
}

// WithStage tags ctx with the pipeline stage issuing the call, for cost
// attribution and logs.
func WithStage(ctx context.Context, stage string) context.Context {
	return cost.WithStage(ctx, stage)
}

// StageFrom returns the stage tagged by WithStage, or "unknown".
func StageFrom(ctx context.Context) string {
	return cost.StageFrom(ctx)
}

// classify marks errors with a retryable HTTP status as transient.
func classify(err error, status int) error {
	if resilience.IsTransientHTTPStatus(status) {
		return resilience.NewTransientError(err, status)
	}
	return err
}
