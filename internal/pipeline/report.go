package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/sells-group/opportunity-cli/internal/model"
)

// report writes final_report as the model's reply, verbatim.
func (p *Pipeline) report(ctx context.Context, s model.State) (model.State, error) {
	useCases, err := indentOr(s.UseCases, s.UseCases == nil)
	if err != nil {
		return s, err
	}
	resources, err := indentOr(s.Resources, s.Resources == nil)
	if err != nil {
		return s, err
	}

	prompt := fmt.Sprintf(reportPrompt,
		s.CompanyName,
		s.IndustryOr(model.NotAvailable),
		model.JoinOr(s.KeyOfferings, model.NotAvailable),
		model.JoinOr(s.StrategicFocus, model.NotAvailable),
		useCases,
		resources,
	)

	reply, err := p.llm.Complete(ctx, prompt)
	if err != nil {
		return s, err
	}

	s.FinalReport = &reply
	return s, nil
}

// indentOr renders v as indented JSON, or the not-available placeholder
// when the field was never written.
func indentOr(v any, absent bool) (string, error) {
	if absent {
		return model.NotAvailable, nil
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", eris.Wrap(err, "pipeline: encode prompt section")
	}
	return string(b), nil
}
