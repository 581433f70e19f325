// Package duckduckgo scrapes the DuckDuckGo HTML endpoint, which needs no API key.
package duckduckgo

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

const (
	defaultBaseURL   = "https://html.duckduckgo.com"
	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// Client performs text searches against DuckDuckGo.
type Client interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// Result is a single organic search result.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default endpoint (for testing).
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

// WithUserAgent overrides the browser user agent sent with each request.
func WithUserAgent(ua string) Option {
	return func(c *httpClient) {
		c.userAgent = ua
	}
}

type httpClient struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// NewClient creates a DuckDuckGo HTML search client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL:   defaultBaseURL,
		userAgent: defaultUserAgent,
		http:      &http.Client{Timeout: 20 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	form := url.Values{}
	form.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/html/", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, eris.Wrap(err, "duckduckgo: create request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "duckduckgo: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	// DuckDuckGo answers throttled clients with 202 and an anomaly page.
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("duckduckgo: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "duckduckgo: parse html")
	}

	return parseResults(doc, maxResults), nil
}

// parseResults extracts organic results in page order, skipping ads.
func parseResults(doc *goquery.Document, maxResults int) []Result {
	var results []Result
	doc.Find("div.result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if maxResults > 0 && len(results) >= maxResults {
			return false
		}
		if s.HasClass("result--ad") {
			return true
		}
		link := s.Find("a.result__a").First()
		title := strings.TrimSpace(link.Text())
		if title == "" {
			return true
		}
		href, _ := link.Attr("href")
		results = append(results, Result{
			Title:   title,
			URL:     resolveRedirect(href),
			Snippet: strings.TrimSpace(s.Find(".result__snippet").First().Text()),
		})
		return true
	})
	return results
}

// resolveRedirect unwraps DuckDuckGo's "/l/?uddg=<target>" click-tracking links.
func resolveRedirect(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}
