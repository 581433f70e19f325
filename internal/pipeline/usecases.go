package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sells-group/opportunity-cli/internal/extract"
	"github.com/sells-group/opportunity-cli/internal/model"
	"github.com/sells-group/opportunity-cli/internal/search"
)

type useCaseReply struct {
	UseCases []model.UseCase `json:"use_cases"`
}

// FallbackUseCases are surfaced when the model's use-case reply cannot be
// parsed, so the report always has something to work with.
func FallbackUseCases() []model.UseCase {
	return []model.UseCase{
		{
			Title:        "AI-Powered Customer Support",
			Description:  "Implement LLM-based chatbot for handling customer queries and support tickets",
			Impact:       "Reduce support costs by 40%, improve response time, 24/7 availability",
			Technologies: []string{"LLM", "NLP", "Chatbot Framework"},
		},
		{
			Title:        "Personalized Product Recommendations",
			Description:  "ML-based recommendation engine for personalized shopping experiences",
			Impact:       "Increase conversion rates by 25%, improve customer engagement",
			Technologies: []string{"Machine Learning", "Recommendation Algorithms"},
		},
	}
}

func trendsQuery(industry string, year int) string {
	return fmt.Sprintf("AI GenAI ML trends in %s industry %d", industry, year)
}

// useCases writes use_cases. A reply without the key yields an empty list;
// an unparseable reply yields FallbackUseCases.
func (p *Pipeline) useCases(ctx context.Context, s model.State) (model.State, error) {
	industry := s.IndustryOr(model.NotAvailable)

	results, err := p.search.Search(ctx, trendsQuery(industry, p.trendYear()), p.opts.MaxResults)
	if err != nil {
		return s, err
	}

	prompt := fmt.Sprintf(useCasePrompt,
		s.CompanyName,
		industry,
		model.JoinOr(s.KeyOfferings, model.NotAvailable),
		model.JoinOr(s.StrategicFocus, model.NotAvailable),
		search.Format(results),
	)
	reply, err := p.llm.Complete(ctx, prompt)
	if err != nil {
		return s, err
	}

	parsed, perr := extract.Decode(reply, useCaseReply{UseCases: FallbackUseCases()}, p.decodeOpts()...)
	if perr != nil {
		zap.L().Warn("pipeline: use case reply not parseable, using fallback",
			zap.String("company", s.CompanyName),
			zap.Error(perr),
		)
	}

	cases := extract.SliceOr(parsed.UseCases, []model.UseCase{})
	for i := range cases {
		if cases[i].Technologies == nil {
			cases[i].Technologies = []string{}
		}
	}
	s.UseCases = cases
	return s, nil
}
