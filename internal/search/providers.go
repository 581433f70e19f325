package search

import (
	"context"

	"github.com/sells-group/opportunity-cli/pkg/duckduckgo"
	"github.com/sells-group/opportunity-cli/pkg/jina"
	"github.com/sells-group/opportunity-cli/pkg/perplexity"
)

// Provider names accepted in configuration.
const (
	ProviderDuckDuckGo = "duckduckgo"
	ProviderJina       = "jina"
	ProviderPerplexity = "perplexity"
)

// DuckDuckGo adapts the DuckDuckGo HTML client. Site operators are passed
// through in the query text, which DuckDuckGo understands natively.
type DuckDuckGo struct {
	client duckduckgo.Client
}

// NewDuckDuckGo creates a gateway backed by DuckDuckGo.
func NewDuckDuckGo(client duckduckgo.Client) *DuckDuckGo {
	return &DuckDuckGo{client: client}
}

func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	hits, err := d.client.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(hits))
	for _, h := range hits {
		out = append(out, Result{Title: h.Title, Snippet: h.Snippet, URL: h.URL})
	}
	return truncate(out, maxResults), nil
}

// Jina adapts the Jina search client.
type Jina struct {
	client jina.Client
}

// NewJina creates a gateway backed by Jina AI Search.
func NewJina(client jina.Client) *Jina {
	return &Jina{client: client}
}

func (j *Jina) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	q, site := SplitSiteFilter(query)
	opts := []jina.SearchOption{jina.WithNoContent()}
	if site != "" {
		opts = append(opts, jina.WithSiteFilter(site))
	}

	resp, err := j.client.Search(ctx, q, opts...)
	if err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(resp.Data))
	for _, d := range resp.Data {
		snippet := d.Description
		if snippet == "" {
			snippet = d.Content
		}
		out = append(out, Result{Title: d.Title, Snippet: snippet, URL: d.URL})
	}
	return truncate(out, maxResults), nil
}

// Perplexity adapts the Perplexity Search API client.
type Perplexity struct {
	client perplexity.Client
}

// NewPerplexity creates a gateway backed by Perplexity search.
func NewPerplexity(client perplexity.Client) *Perplexity {
	return &Perplexity{client: client}
}

func (p *Perplexity) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	q, site := SplitSiteFilter(query)
	req := perplexity.SearchRequest{Query: q, MaxResults: maxResults}
	if site != "" {
		req.SearchDomainFilter = []string{site}
	}

	resp, err := p.client.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(resp.Results))
	for _, r := range resp.Results {
		out = append(out, Result{Title: r.Title, Snippet: r.Snippet, URL: r.URL})
	}
	return truncate(out, maxResults), nil
}
