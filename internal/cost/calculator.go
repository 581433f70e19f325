// Package cost estimates and tallies the spend of a report run.
package cost

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Provider names used as rate keys.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderPerplexity = "perplexity"
)

// Rates holds per-provider pricing configuration.
type Rates struct {
	Anthropic  map[string]ModelRate `yaml:"anthropic" mapstructure:"anthropic"`
	OpenAI     map[string]ModelRate `yaml:"openai" mapstructure:"openai"`
	Perplexity PerplexityRate       `yaml:"perplexity" mapstructure:"perplexity"`
}

// ModelRate holds per-model token pricing (per million tokens).
type ModelRate struct {
	Input         float64 `yaml:"input" mapstructure:"input"`
	Output        float64 `yaml:"output" mapstructure:"output"`
	CacheWriteMul float64 `yaml:"cache_write_mul" mapstructure:"cache_write_mul"`
	CacheReadMul  float64 `yaml:"cache_read_mul" mapstructure:"cache_read_mul"`
}

// PerplexityRate holds Perplexity pricing.
type PerplexityRate struct {
	PerQuery float64 `yaml:"per_query" mapstructure:"per_query"`
}

// Usage is a provider-neutral token count for one completion.
type Usage struct {
	Input      int64
	Output     int64
	CacheWrite int64
	CacheRead  int64
}

// Calculator computes costs for API usage.
type Calculator struct {
	rates Rates
}

// NewCalculator creates a Calculator with the given rates.
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// Tokens computes the cost of a completion. Unknown providers and models cost 0.
func (c *Calculator) Tokens(provider, model string, u Usage) float64 {
	var table map[string]ModelRate
	switch provider {
	case ProviderAnthropic:
		table = c.rates.Anthropic
	case ProviderOpenAI:
		table = c.rates.OpenAI
	}
	rate, ok := table[model]
	if !ok {
		return 0
	}

	inCost := (float64(u.Input) / 1e6) * rate.Input
	outCost := (float64(u.Output) / 1e6) * rate.Output
	cwCost := (float64(u.CacheWrite) / 1e6) * rate.Input * rate.CacheWriteMul
	crCost := (float64(u.CacheRead) / 1e6) * rate.Input * rate.CacheReadMul

	return inCost + outCost + cwCost + crCost
}

// PerplexityQuery returns the flat cost per Perplexity query.
func (c *Calculator) PerplexityQuery() float64 {
	return c.rates.Perplexity.PerQuery
}

// DefaultRates returns the default pricing rates.
func DefaultRates() Rates {
	return Rates{
		Anthropic: map[string]ModelRate{
			"claude-haiku-4-5-20251001": {
				Input: 0.80, Output: 4.00,
				CacheWriteMul: 1.25, CacheReadMul: 0.1,
			},
			"claude-sonnet-4-5-20250929": {
				Input: 3.00, Output: 15.00,
				CacheWriteMul: 1.25, CacheReadMul: 0.1,
			},
			"claude-opus-4-6": {
				Input: 15.00, Output: 75.00,
				CacheWriteMul: 1.25, CacheReadMul: 0.1,
			},
		},
		OpenAI: map[string]ModelRate{
			"gpt-4o-mini": {Input: 0.15, Output: 0.60},
			"gpt-4o":      {Input: 2.50, Output: 10.00},
		},
		Perplexity: PerplexityRate{PerQuery: 0.005},
	}
}

// StageCost is the accumulated spend attributed to one stage.
type StageCost struct {
	Stage   string
	Calls   int
	Input   int64
	Output  int64
	CostUSD float64
}

// Tracker accumulates spend per stage. It is safe for concurrent use.
type Tracker struct {
	calc *Calculator

	mu     sync.Mutex
	stages map[string]*StageCost
}

// NewTracker creates an empty Tracker pricing usage with calc.
func NewTracker(calc *Calculator) *Tracker {
	return &Tracker{calc: calc, stages: make(map[string]*StageCost)}
}

// Record attributes one completion to stage and logs it. It returns the
// estimated cost of the call.
func (t *Tracker) Record(provider, model, stage string, u Usage) float64 {
	usd := t.calc.Tokens(provider, model, u)

	zap.L().Info("cost attribution",
		zap.String("provider", provider),
		zap.String("model", model),
		zap.String("stage", stage),
		zap.Int64("input_tokens", u.Input),
		zap.Int64("output_tokens", u.Output),
		zap.Float64("estimated_cost_usd", usd),
	)

	t.add(stage, u, usd)
	return usd
}

// RecordQuery attributes one flat-priced search query to stage. Only
// Perplexity bills per query; other providers record a zero-cost call.
func (t *Tracker) RecordQuery(provider, stage string) float64 {
	var usd float64
	if provider == ProviderPerplexity {
		usd = t.calc.PerplexityQuery()
	}
	if usd > 0 {
		zap.L().Debug("cost attribution",
			zap.String("provider", provider),
			zap.String("stage", stage),
			zap.Float64("estimated_cost_usd", usd),
		)
	}
	t.add(stage, Usage{}, usd)
	return usd
}

func (t *Tracker) add(stage string, u Usage, usd float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	sc, ok := t.stages[stage]
	if !ok {
		sc = &StageCost{Stage: stage}
		t.stages[stage] = sc
	}
	sc.Calls++
	sc.Input += u.Input
	sc.Output += u.Output
	sc.CostUSD += usd
}

// Stages returns a snapshot of per-stage totals sorted by stage name.
func (t *Tracker) Stages() []StageCost {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]StageCost, 0, len(t.stages))
	for _, sc := range t.stages {
		out = append(out, *sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stage < out[j].Stage })
	return out
}

// Total returns the accumulated spend across all stages.
func (t *Tracker) Total() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	var sum float64
	for _, sc := range t.stages {
		sum += sc.CostUSD
	}
	return sum
}
