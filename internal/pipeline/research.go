package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sells-group/opportunity-cli/internal/extract"
	"github.com/sells-group/opportunity-cli/internal/model"
	"github.com/sells-group/opportunity-cli/internal/search"
)

// researchReply is the shape requested from the model. Pointer and slice
// fields stay nil when a key is missing or null.
type researchReply struct {
	Industry       *string  `json:"industry"`
	KeyOfferings   []string `json:"key_offerings"`
	StrategicFocus []string `json:"strategic_focus"`
	Challenges     []string `json:"challenges"`
}

func researchQuery(company string) string {
	return company + " company industry products services business model"
}

// research writes research_findings, industry, key_offerings and
// strategic_focus. An unparseable reply yields placeholders, not an error.
func (p *Pipeline) research(ctx context.Context, s model.State) (model.State, error) {
	results, err := p.search.Search(ctx, researchQuery(s.CompanyName), p.opts.MaxResults)
	if err != nil {
		return s, err
	}
	findings := search.Format(results)

	reply, err := p.llm.Complete(ctx, fmt.Sprintf(researchPrompt, s.CompanyName, findings))
	if err != nil {
		return s, err
	}

	parsed, perr := extract.Decode(reply, researchReply{}, p.decodeOpts()...)
	if perr != nil {
		zap.L().Warn("pipeline: research reply not parseable, using placeholders",
			zap.String("company", s.CompanyName),
			zap.Error(perr),
		)
	}

	s.ResearchFindings = &findings
	s.Industry = model.Ptr(extract.StringOr(parsed.Industry, model.Undetermined))
	s.KeyOfferings = extract.SliceOr(parsed.KeyOfferings, []string{model.Undetermined})
	s.StrategicFocus = extract.SliceOr(parsed.StrategicFocus, []string{model.Undetermined})
	return s, nil
}
