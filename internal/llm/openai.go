package llm

import (
	"context"

	"github.com/sells-group/opportunity-cli/internal/cost"
	"github.com/sells-group/opportunity-cli/pkg/openai"
)

// OpenAI completes prompts with an OpenAI-compatible chat model.
type OpenAI struct {
	client   openai.Client
	settings Settings
	costs    *cost.Tracker
}

// NewOpenAI creates an OpenAI backend. costs may be nil.
func NewOpenAI(client openai.Client, settings Settings, costs *cost.Tracker) *OpenAI {
	return &OpenAI{client: client, settings: settings, costs: costs}
}

func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	temp := o.settings.Temperature
	resp, err := o.client.ChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.settings.Model,
		Prompt:      prompt,
		Temperature: &temp,
		MaxTokens:   o.settings.MaxTokens,
	})
	if err != nil {
		return "", classify(err, openai.StatusCode(err))
	}

	if o.costs != nil {
		model := resp.Model
		if o.settings.Model != "" {
			model = o.settings.Model
		}
		o.costs.Record(cost.ProviderOpenAI, model, StageFrom(ctx), cost.Usage{
			Input:  resp.Usage.PromptTokens,
			Output: resp.Usage.CompletionTokens,
		})
	}
	return resp.Content, nil
}
