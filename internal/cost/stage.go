package cost

import "context"

type stageKey struct{}

// WithStage tags ctx with the pipeline stage that spends on it.
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, stageKey{}, stage)
}

// StageFrom returns the stage tagged by WithStage, or "unknown".
func StageFrom(ctx context.Context) string {
	if s, ok := ctx.Value(stageKey{}).(string); ok && s != "" {
		return s
	}
	return "unknown"
}
