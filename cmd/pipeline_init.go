package main

import (
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/opportunity-cli/internal/config"
	"github.com/sells-group/opportunity-cli/internal/cost"
	"github.com/sells-group/opportunity-cli/internal/llm"
	"github.com/sells-group/opportunity-cli/internal/pipeline"
	"github.com/sells-group/opportunity-cli/internal/resilience"
	"github.com/sells-group/opportunity-cli/internal/search"
	anthropicpkg "github.com/sells-group/opportunity-cli/pkg/anthropic"
	"github.com/sells-group/opportunity-cli/pkg/duckduckgo"
	"github.com/sells-group/opportunity-cli/pkg/jina"
	openaipkg "github.com/sells-group/opportunity-cli/pkg/openai"
	"github.com/sells-group/opportunity-cli/pkg/perplexity"
)

// pipelineEnv holds the built pipeline and the cost tracker its gateways
// report to, shared by the run and batch commands.
type pipelineEnv struct {
	Pipeline *pipeline.Pipeline
	Costs    *cost.Tracker
}

// initPipeline validates configuration and wires the search and LLM
// gateways into a Pipeline.
func initPipeline(c *config.Config) (*pipelineEnv, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	costs := cost.NewTracker(cost.NewCalculator(cost.DefaultRates()))

	sg, err := buildSearch(c, costs)
	if err != nil {
		return nil, err
	}
	lg, err := buildLLM(c, costs)
	if err != nil {
		return nil, err
	}

	zap.L().Info("pipeline initialized",
		zap.String("search_provider", c.Search.Provider),
		zap.String("llm_provider", c.LLM.Provider),
		zap.String("model", c.LLM.ResolvedModel()),
	)

	return &pipelineEnv{
		Pipeline: pipeline.New(sg, lg, pipelineOptions(c)),
		Costs:    costs,
	}, nil
}

func pipelineOptions(c *config.Config) pipeline.Options {
	return pipeline.Options{
		MaxResults:          c.Search.MaxResults,
		DatasetMaxResults:   c.Search.DatasetMaxResults,
		MaxResourceUseCases: c.Pipeline.MaxResourceUseCases,
		ParallelFanout:      c.Search.ParallelFanout,
		Lenient:             c.Pipeline.LenientJSON,
		TrendYear:           c.Pipeline.TrendYear,
	}
}

// buildSearch returns the production search chain:
// Safe(Guarded(RateLimited(Metered(provider)))).
func buildSearch(c *config.Config, costs *cost.Tracker) (search.Gateway, error) {
	hc := &http.Client{Timeout: time.Duration(c.Search.TimeoutSecs) * time.Second}

	var provider search.Gateway
	switch c.Search.Provider {
	case search.ProviderDuckDuckGo:
		opts := []duckduckgo.Option{duckduckgo.WithHTTPClient(hc)}
		if c.DuckDuckGo.BaseURL != "" {
			opts = append(opts, duckduckgo.WithBaseURL(c.DuckDuckGo.BaseURL))
		}
		if c.DuckDuckGo.UserAgent != "" {
			opts = append(opts, duckduckgo.WithUserAgent(c.DuckDuckGo.UserAgent))
		}
		provider = search.NewDuckDuckGo(duckduckgo.NewClient(opts...))
	case search.ProviderJina:
		opts := []jina.Option{jina.WithHTTPClient(hc)}
		if c.Jina.SearchBaseURL != "" {
			opts = append(opts, jina.WithSearchBaseURL(c.Jina.SearchBaseURL))
		}
		provider = search.NewJina(jina.NewClient(c.Jina.Key, opts...))
	case search.ProviderPerplexity:
		opts := []perplexity.Option{perplexity.WithHTTPClient(hc)}
		if c.Perplexity.BaseURL != "" {
			opts = append(opts, perplexity.WithBaseURL(c.Perplexity.BaseURL))
		}
		provider = search.NewPerplexity(perplexity.NewClient(c.Perplexity.Key, opts...))
	default:
		return nil, eris.Errorf("unknown search provider %q", c.Search.Provider)
	}

	gw := search.Gateway(search.NewMetered(provider, c.Search.Provider, costs))
	gw = search.NewRateLimited(gw, c.Search.RatePerSec, c.Search.Burst)
	breaker := resilience.NewBreaker("search/"+c.Search.Provider,
		c.Search.BreakerThreshold,
		time.Duration(c.Search.BreakerCooldownSecs)*time.Second,
	)
	gw = search.NewGuarded(gw, breaker)
	return search.NewSafe(gw), nil
}

// buildLLM returns the configured completion backend. SDK-level retries are
// disabled; llm.max_attempts > 1 enables retries on transient failures.
func buildLLM(c *config.Config, costs *cost.Tracker) (llm.Gateway, error) {
	settings := llm.Settings{
		Model:       c.LLM.ResolvedModel(),
		Temperature: c.LLM.Temperature,
		MaxTokens:   c.LLM.MaxTokens,
	}

	var gw llm.Gateway
	switch c.LLM.Provider {
	case llm.ProviderAnthropic:
		client := anthropicpkg.NewClient(c.Anthropic.Key, anthropicpkg.WithMaxRetries(0))
		gw = llm.NewAnthropic(client, settings, costs)
	case llm.ProviderOpenAI:
		opts := []openaipkg.Option{openaipkg.WithMaxRetries(0), openaipkg.WithModel(settings.Model)}
		if c.OpenAI.BaseURL != "" {
			opts = append(opts, openaipkg.WithBaseURL(c.OpenAI.BaseURL))
		}
		gw = llm.NewOpenAI(openaipkg.NewClient(c.OpenAI.Key, opts...), settings, costs)
	default:
		return nil, eris.Errorf("unknown llm provider %q", c.LLM.Provider)
	}

	if c.LLM.MaxAttempts > 1 {
		rc := resilience.DefaultRetryConfig()
		rc.MaxAttempts = c.LLM.MaxAttempts
		gw = llm.NewRetrying(gw, c.LLM.Provider, rc)
	}
	return gw, nil
}
