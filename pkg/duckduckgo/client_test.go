package duckduckgo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsPage = `<html><body>
<div class="result results_links result--ad">
  <a class="result__a" href="https://ads.example.com">Sponsored Shoes</a>
  <a class="result__snippet">Buy now</a>
</div>
<div class="result results_links">
  <h2><a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fabout.nike.com%2F&rut=abc">Nike, Inc. - About</a></h2>
  <a class="result__snippet" href="#">Nike designs and markets <b>athletic</b> footwear.</a>
</div>
<div class="result results_links">
  <h2><a class="result__a" href="https://en.wikipedia.org/wiki/Nike,_Inc.">Nike, Inc. - Wikipedia</a></h2>
  <a class="result__snippet">American multinational corporation.</a>
</div>
<div class="result results_links">
  <h2><a class="result__a" href="https://investors.nike.com">Nike Investors</a></h2>
</div>
</body></html>`

func TestSearch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/html/", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "Nike company industry", r.PostForm.Get("q"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(resultsPage))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithUserAgent("test-agent"))
	got, err := client.Search(context.Background(), "Nike company industry", 5)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Nike, Inc. - About", got[0].Title)
	assert.Equal(t, "https://about.nike.com/", got[0].URL)
	assert.Equal(t, "Nike designs and markets athletic footwear.", got[0].Snippet)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Nike,_Inc.", got[1].URL)
	assert.Empty(t, got[2].Snippet)
}

func TestSearch_MaxResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(resultsPage))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	got, err := client.Search(context.Background(), "Nike", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Nike, Inc. - Wikipedia", got[1].Title)
}

func TestSearch_Throttled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Search(context.Background(), "Nike", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 202")
}

func TestParseResults_Empty(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body>No results.</body></html>"))
	require.NoError(t, err)
	assert.Empty(t, parseResults(doc, 5))
}

func TestResolveRedirect(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{href: "", want: ""},
		{href: "https://example.com/a", want: "https://example.com/a"},
		{href: "//duckduckgo.com/l/?uddg=https%3A%2F%2Fkaggle.com%2Fdatasets&rut=x", want: "https://kaggle.com/datasets"},
		{href: "/l/?uddg=https%3A%2F%2Fgithub.com", want: "https://github.com"},
	}
	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveRedirect(tt.href))
		})
	}
}
