package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/opportunity-cli/internal/cost"
	"github.com/sells-group/opportunity-cli/internal/resilience"
)

// Safe wraps a Gateway so that callers never see an error: a failed query
// yields a single synthetic "Search Error" result instead.
type Safe struct {
	next Gateway
}

// NewSafe wraps next with error-to-record conversion.
func NewSafe(next Gateway) *Safe {
	return &Safe{next: next}
}

func (s *Safe) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	results, err := s.next.Search(ctx, query, maxResults)
	if err != nil {
		zap.L().Warn("search: query failed, returning error record",
			zap.String("query", query),
			zap.Error(err),
		)
		return []Result{ErrorResult(err)}, nil
	}
	return results, nil
}

// ErrorResult builds the synthetic record returned in place of a failed search.
func ErrorResult(err error) Result {
	return Result{
		Title:   "Search Error",
		Snippet: fmt.Sprintf("Search failed: %v", err),
	}
}

// RateLimited spaces out calls to the wrapped Gateway.
type RateLimited struct {
	next    Gateway
	limiter *rate.Limiter
}

// NewRateLimited allows perSecond queries per second with the given burst.
// A non-positive rate disables limiting.
func NewRateLimited(next Gateway, perSecond float64, burst int) *RateLimited {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{next: next, limiter: rate.NewLimiter(limit, burst)}
}

func (r *RateLimited) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.next.Search(ctx, query, maxResults)
}

// Guarded short-circuits queries while the breaker is open so a blocked
// provider fails fast instead of timing out on every fan-out query.
type Guarded struct {
	next    Gateway
	breaker *resilience.Breaker
}

// NewGuarded wraps next with breaker.
func NewGuarded(next Gateway, breaker *resilience.Breaker) *Guarded {
	return &Guarded{next: next, breaker: breaker}
}

func (g *Guarded) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if err := g.breaker.Allow(); err != nil {
		return nil, err
	}
	results, err := g.next.Search(ctx, query, maxResults)
	g.breaker.Record(err)
	return results, err
}

// Metered attributes each successful query to the stage tagged on ctx.
type Metered struct {
	next     Gateway
	provider string
	costs    *cost.Tracker
}

// NewMetered records queries issued through next against costs.
func NewMetered(next Gateway, provider string, costs *cost.Tracker) *Metered {
	return &Metered{next: next, provider: provider, costs: costs}
}

func (m *Metered) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	results, err := m.next.Search(ctx, query, maxResults)
	if err == nil && m.costs != nil {
		m.costs.RecordQuery(m.provider, cost.StageFrom(ctx))
	}
	return results, err
}
