// Package openai wraps the OpenAI chat completions API behind a small interface.
package openai

import (
	"context"
	"errors"
	"strings"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rotisserie/eris"
)

const defaultModel = "gpt-4o-mini"

// Client performs chat completions against the OpenAI API.
type Client interface {
	ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error)
}

// ChatCompletionRequest is our own request type for ChatCompletion.
type ChatCompletionRequest struct {
	Model       string
	System      string
	Prompt      string
	Temperature *float64
	MaxTokens   int64
}

// ChatCompletionResponse is our own response type from ChatCompletion.
type ChatCompletionResponse struct {
	ID      string
	Model   string
	Content string
	Usage   Usage
}

// Usage reports token consumption.
type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
}

// Option configures the client.
type Option func(*sdkClient)

// WithBaseURL overrides the default API base URL. OpenAI-compatible
// gateways (OpenRouter, local servers) are reached this way.
func WithBaseURL(url string) Option {
	return func(c *sdkClient) {
		if trimmed := strings.TrimRight(url, "/"); trimmed != "" {
			c.opts = append(c.opts, option.WithBaseURL(trimmed))
		}
	}
}

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *sdkClient) {
		c.model = model
	}
}

// WithMaxRetries sets the SDK's transport retry count. Zero disables retries.
func WithMaxRetries(n int) Option {
	return func(c *sdkClient) {
		c.opts = append(c.opts, option.WithMaxRetries(n))
	}
}

type sdkClient struct {
	client sdk.Client
	model  string
	opts   []option.RequestOption
}

// NewClient creates an OpenAI client backed by the official SDK.
func NewClient(apiKey string, opts ...Option) Client {
	c := &sdkClient{
		model: defaultModel,
		opts:  []option.RequestOption{option.WithAPIKey(strings.TrimSpace(apiKey))},
	}
	for _, o := range opts {
		o(c)
	}
	c.client = sdk.NewClient(c.opts...)
	return c
}

func (c *sdkClient) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	var msgs []sdk.ChatCompletionMessageParamUnion
	if req.System != "" {
		msgs = append(msgs, sdk.SystemMessage(req.System))
	}
	msgs = append(msgs, sdk.UserMessage(req.Prompt))

	params := sdk.ChatCompletionNewParams{
		Model:    sdk.ChatModel(model),
		Messages: msgs,
	}
	if req.Temperature != nil {
		params.Temperature = sdk.Float(*req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = sdk.Int(req.MaxTokens)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, eris.Wrap(err, "openai: chat completion")
	}

	out := &ChatCompletionResponse{
		ID:    resp.ID,
		Model: resp.Model,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
		},
	}
	if len(resp.Choices) > 0 {
		out.Content = resp.Choices[0].Message.Content
	}
	return out, nil
}

// StatusCode returns the HTTP status carried by an API error, or 0 when err
// did not come from an HTTP response.
func StatusCode(err error) int {
	var apiErr *sdk.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
