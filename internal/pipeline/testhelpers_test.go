package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/sells-group/opportunity-cli/internal/llm"
	llmmocks "github.com/sells-group/opportunity-cli/internal/llm/mocks"
	"github.com/sells-group/opportunity-cli/internal/search"
	searchmocks "github.com/sells-group/opportunity-cli/internal/search/mocks"
)

const (
	nikeResearchJSON = `{"industry": "Retail & Apparel", "key_offerings": ["Footwear", "Apparel"], "strategic_focus": ["Direct to Consumer", "Digital"], "challenges": ["Competition"]}`
	nikeUseCasesJSON = `{"use_cases": [
		{"title": "Demand Forecasting", "description": "Forecast SKU demand.", "impact": "Lower inventory", "technologies": ["ML"]},
		{"title": "Design Copilot", "description": "Generate shoe concepts.", "impact": "Faster design", "technologies": ["GenAI"]},
		{"title": "Support Assistant", "description": "Answer order questions.", "impact": "Lower cost", "technologies": ["LLM", "NLP"]},
		{"title": "Visual Search", "description": "Find products by photo.", "impact": "Higher conversion", "technologies": ["Computer Vision"]}
	]}`
	nikeReport = "# AI Consultation Report for Nike\n\n## Executive Summary\nNike should invest in demand forecasting."
)

type fixture struct {
	search *searchmocks.MockGateway
	llm    *llmmocks.MockGateway
	p      *Pipeline
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	sg := searchmocks.NewMockGateway(t)
	lg := llmmocks.NewMockGateway(t)
	return &fixture{
		search: sg,
		llm:    lg,
		p:      New(sg, lg, Options{TrendYear: 2024}),
	}
}

// stage matches a context tagged with the given pipeline stage.
func stage(name string) any {
	return mock.MatchedBy(func(ctx context.Context) bool {
		return llm.StageFrom(ctx) == name
	})
}

func contains(sub string) any {
	return mock.MatchedBy(func(s string) bool {
		return strings.Contains(s, sub)
	})
}

func hit(title string) []search.Result {
	return []search.Result{{Title: title, Snippet: title + " snippet", URL: "https://example.com/" + strings.ReplaceAll(title, " ", "-")}}
}

// expectResources stubs every dataset and guide query of the resource stage.
func (f *fixture) expectResources() {
	f.search.On("Search", mock.Anything, contains(" dataset"), 3).
		Return(func(_ context.Context, q string, _ int) ([]search.Result, error) {
			return hit(q), nil
		})
	f.search.On("Search", mock.Anything, contains("implementation guide"), 5).
		Return(func(_ context.Context, q string, _ int) ([]search.Result, error) {
			return hit(q), nil
		})
}

func zapNop() *zap.Logger { return zap.NewNop() }
