package llm

import (
	"context"

	"github.com/sells-group/opportunity-cli/internal/resilience"
)

// Retrying re-issues completions that fail with a transient error.
type Retrying struct {
	next Gateway
	cfg  resilience.RetryConfig
	name string
}

// NewRetrying wraps next with cfg. name labels retry log lines.
func NewRetrying(next Gateway, name string, cfg resilience.RetryConfig) *Retrying {
	if cfg.OnRetry == nil {
		cfg.OnRetry = resilience.RetryLogger(name, "complete")
	}
	return &Retrying{next: next, cfg: cfg, name: name}
}

func (r *Retrying) Complete(ctx context.Context, prompt string) (string, error) {
	return resilience.Retry(ctx, r.cfg, func(ctx context.Context) (string, error) {
		return r.next.Complete(ctx, prompt)
	})
}
