// Package perplexity provides a client for the Perplexity Search API.
package perplexity

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/opportunity-cli/internal/resilience"
)

const defaultBaseURL = "https://api.perplexity.ai"

// Client performs ranked web searches against the Perplexity API.
type Client interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

// SearchRequest is the request body for POST /search.
type SearchRequest struct {
	Query              string   `json:"query"`
	MaxResults         int      `json:"max_results,omitempty"`
	SearchDomainFilter []string `json:"search_domain_filter,omitempty"`
}

// SearchResponse is the response from POST /search.
type SearchResponse struct {
	ID      string         `json:"id"`
	Results []SearchResult `json:"results"`
}

// SearchResult is a single ranked web result.
type SearchResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Snippet     string `json:"snippet"`
	Date        string `json:"date,omitempty"`
	LastUpdated string `json:"last_updated,omitempty"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRetry replaces the retry policy for transient failures. The default
// makes two attempts.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(c *httpClient) {
		c.retry = cfg
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	retry   resilience.RetryConfig
	http    *http.Client
}

// NewClient creates a Perplexity API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		retry: resilience.RetryConfig{
			MaxAttempts:    2,
			InitialBackoff: 2 * time.Second,
			OnRetry:        resilience.RetryLogger("perplexity", "search"),
		},
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if req.Query == "" {
		return nil, eris.New("perplexity: empty query")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, eris.Wrap(err, "perplexity: marshal request")
	}

	result, err := resilience.Retry(ctx, c.retry, func(ctx context.Context) (*SearchResponse, error) {
		return c.do(ctx, body)
	})
	if err != nil {
		return nil, eris.Wrap(err, "perplexity: search")
	}
	return result, nil
}

func (c *httpClient) do(ctx context.Context, body []byte) (*SearchResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "perplexity: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "perplexity: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "perplexity: read response")
	}
	if err := resilience.CheckStatus("perplexity", resp.StatusCode, respBody); err != nil {
		return nil, err
	}

	var result SearchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "perplexity: unmarshal response")
	}
	return &result, nil
}
