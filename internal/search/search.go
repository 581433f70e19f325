// Package search is the pipeline's gateway to web search providers.
package search

import (
	"context"
	"fmt"
	"strings"
)

// Result is one ranked search hit.
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// Gateway issues full-text queries and returns results in rank order.
type Gateway interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// Format renders results as the text blob embedded in prompts and resources.
func Format(results []Result) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, fmt.Sprintf("Title: %s\nSnippet: %s\nURL: %s\n",
			orNA(r.Title), orNA(r.Snippet), orNA(r.URL)))
	}
	return strings.Join(parts, "\n")
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// SplitSiteFilter removes the first "site:domain" operator from the query
// and returns it separately for providers with a native domain filter.
func SplitSiteFilter(query string) (string, string) {
	var site string
	fields := strings.Fields(query)
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.HasPrefix(f, "site:") && site == "" {
			site = strings.TrimPrefix(f, "site:")
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " "), site
}

func truncate(results []Result, maxResults int) []Result {
	if maxResults > 0 && len(results) > maxResults {
		return results[:maxResults]
	}
	return results
}
