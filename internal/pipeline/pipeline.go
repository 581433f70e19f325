// Package pipeline runs the four-stage AI opportunity report for a company.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/opportunity-cli/internal/extract"
	"github.com/sells-group/opportunity-cli/internal/llm"
	"github.com/sells-group/opportunity-cli/internal/model"
	"github.com/sells-group/opportunity-cli/internal/search"
)

// Stage names, in execution order.
const (
	StageResearch  = "research"
	StageUseCases  = "use_cases"
	StageResources = "resources"
	StageReport    = "report"
)

// StageFunc takes the state produced so far and returns it with the
// stage's own fields written. On error the returned state is discarded.
type StageFunc func(ctx context.Context, s model.State) (model.State, error)

// Stage is one named step of the pipeline. Label prefixes the error
// recorded on the state when Run fails.
type Stage struct {
	Name  string
	Label string
	Run   StageFunc
}

// Options tunes search volume and parsing.
type Options struct {
	// MaxResults bounds general web queries. Default 5.
	MaxResults int
	// DatasetMaxResults bounds each dataset platform query. Default 3.
	DatasetMaxResults int
	// MaxResourceUseCases caps how many use cases get resources. Default 3.
	MaxResourceUseCases int
	// ParallelFanout issues the dataset platform queries concurrently.
	ParallelFanout bool
	// Lenient strips code fences and prose around JSON replies.
	Lenient bool
	// TrendYear is used in the trends query. Zero means the current year.
	TrendYear int
	Now       func() time.Time
}

func (o Options) withDefaults() Options {
	if o.MaxResults <= 0 {
		o.MaxResults = 5
	}
	if o.DatasetMaxResults <= 0 {
		o.DatasetMaxResults = 3
	}
	if o.MaxResourceUseCases <= 0 {
		o.MaxResourceUseCases = 3
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Pipeline holds the gateways shared by every run. It keeps no per-run
// state, so Run may be called repeatedly.
type Pipeline struct {
	search search.Gateway
	llm    llm.Gateway
	opts   Options
}

// New creates a Pipeline over the given gateways.
func New(sg search.Gateway, lg llm.Gateway, opts Options) *Pipeline {
	return &Pipeline{search: sg, llm: lg, opts: opts.withDefaults()}
}

// Stages returns the fixed stage list in execution order.
func (p *Pipeline) Stages() []Stage {
	return []Stage{
		{Name: StageResearch, Label: "Research failed", Run: p.research},
		{Name: StageUseCases, Label: "Use case generation failed", Run: p.useCases},
		{Name: StageResources, Label: "Resource collection failed", Run: p.resources},
		{Name: StageReport, Label: "Report generation failed", Run: p.report},
	}
}

// Run seeds a fresh state for company and passes it through every stage.
// A failing stage records its error on the state and the next stage still
// runs, so Run always returns a state.
func (p *Pipeline) Run(ctx context.Context, company string) model.State {
	log := zap.L().With(zap.String("company", company), zap.String("run_id", uuid.NewString()))
	log.Info("pipeline: starting report")

	start := time.Now()
	state := model.NewState(company)
	for _, st := range p.Stages() {
		state = runStage(ctx, log, st, state)
	}

	log.Info("pipeline: report complete",
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		zap.Int("use_cases", len(state.UseCases)),
		zap.Int("resources", len(state.Resources)),
		zap.Bool("has_error", state.HasError()),
	)
	return state
}

func runStage(ctx context.Context, log *zap.Logger, st Stage, in model.State) model.State {
	log.Info("pipeline: stage started", zap.String("stage", st.Name))
	start := time.Now()

	out, err := invoke(llm.WithStage(ctx, st.Name), st, in)
	duration := time.Since(start).Milliseconds()

	if err != nil {
		err = eris.Wrap(err, st.Label)
		log.Error("pipeline: stage failed",
			zap.String("stage", st.Name),
			zap.Int64("duration_ms", duration),
			zap.Error(err),
		)
		return in.WithError(err.Error())
	}

	log.Info("pipeline: stage complete",
		zap.String("stage", st.Name),
		zap.Int64("duration_ms", duration),
	)
	return out
}

func invoke(ctx context.Context, st Stage, in model.State) (out model.State, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = eris.Errorf("panic: %v", r)
		}
	}()
	return st.Run(ctx, in)
}

func (p *Pipeline) decodeOpts() []extract.Option {
	if p.opts.Lenient {
		return []extract.Option{extract.Lenient()}
	}
	return nil
}

func (p *Pipeline) trendYear() int {
	if p.opts.TrendYear > 0 {
		return p.opts.TrendYear
	}
	return p.opts.Now().Year()
}
