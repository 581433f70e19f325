package llm

import (
	"context"

	"github.com/sells-group/opportunity-cli/internal/cost"
	"github.com/sells-group/opportunity-cli/pkg/anthropic"
)

// Anthropic completes prompts with a Claude model.
type Anthropic struct {
	client   anthropic.Client
	settings Settings
	costs    *cost.Tracker
}

// NewAnthropic creates an Anthropic backend. costs may be nil.
func NewAnthropic(client anthropic.Client, settings Settings, costs *cost.Tracker) *Anthropic {
	return &Anthropic{client: client, settings: settings, costs: costs}
}

func (a *Anthropic) Complete(ctx context.Context, prompt string) (string, error) {
	temp := a.settings.Temperature
	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       a.settings.Model,
		MaxTokens:   a.settings.MaxTokens,
		Messages:    []anthropic.Message{{Role: "user", Content: prompt}},
		Temperature: &temp,
	})
	if err != nil {
		return "", classify(err, anthropic.StatusCode(err))
	}

	if a.costs != nil {
		a.costs.Record(cost.ProviderAnthropic, a.settings.Model, StageFrom(ctx), cost.Usage{
			Input:      resp.Usage.InputTokens,
			Output:     resp.Usage.OutputTokens,
			CacheWrite: resp.Usage.CacheCreationInputTokens,
			CacheRead:  resp.Usage.CacheReadInputTokens,
		})
	}
	return resp.Text(), nil
}
