package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/opportunity-cli/pkg/duckduckgo"
	"github.com/sells-group/opportunity-cli/pkg/jina"
	"github.com/sells-group/opportunity-cli/pkg/perplexity"
)

type fakeJina struct {
	gotQuery string
	gotOpts  int
	resp     *jina.SearchResponse
	err      error
}

func (f *fakeJina) Search(_ context.Context, query string, opts ...jina.SearchOption) (*jina.SearchResponse, error) {
	f.gotQuery = query
	f.gotOpts = len(opts)
	return f.resp, f.err
}

type fakePerplexity struct {
	got  perplexity.SearchRequest
	resp *perplexity.SearchResponse
	err  error
}

func (f *fakePerplexity) Search(_ context.Context, req perplexity.SearchRequest) (*perplexity.SearchResponse, error) {
	f.got = req
	return f.resp, f.err
}

func TestJina_Search(t *testing.T) {
	fj := &fakeJina{resp: &jina.SearchResponse{Data: []jina.SearchResult{
		{Title: "A", URL: "https://a", Description: "desc a"},
		{Title: "B", URL: "https://b", Content: "body b"},
		{Title: "C", URL: "https://c"},
	}}}

	got, err := NewJina(fj).Search(context.Background(), "retail dataset site:kaggle.com", 2)
	require.NoError(t, err)
	assert.Equal(t, "retail dataset", fj.gotQuery)
	assert.Equal(t, 2, fj.gotOpts, "no-content plus site filter")
	require.Len(t, got, 2)
	assert.Equal(t, Result{Title: "A", Snippet: "desc a", URL: "https://a"}, got[0])
	assert.Equal(t, "body b", got[1].Snippet)
}

func TestJina_Search_Error(t *testing.T) {
	fj := &fakeJina{err: errors.New("jina: boom")}
	_, err := NewJina(fj).Search(context.Background(), "q", 5)
	require.Error(t, err)
}

func TestPerplexity_Search(t *testing.T) {
	fp := &fakePerplexity{resp: &perplexity.SearchResponse{Results: []perplexity.SearchResult{
		{Title: "HF", URL: "https://huggingface.co/x", Snippet: "dataset"},
	}}}

	got, err := NewPerplexity(fp).Search(context.Background(), "churn dataset site:huggingface.co", 3)
	require.NoError(t, err)
	assert.Equal(t, "churn dataset", fp.got.Query)
	assert.Equal(t, 3, fp.got.MaxResults)
	assert.Equal(t, []string{"huggingface.co"}, fp.got.SearchDomainFilter)
	assert.Equal(t, []Result{{Title: "HF", Snippet: "dataset", URL: "https://huggingface.co/x"}}, got)
}

func TestPerplexity_Search_NoSite(t *testing.T) {
	fp := &fakePerplexity{resp: &perplexity.SearchResponse{}}
	got, err := NewPerplexity(fp).Search(context.Background(), "Nike business model", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Nil(t, fp.got.SearchDomainFilter)
}

func TestDuckDuckGo_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "churn dataset site:github.com", r.PostForm.Get("q"))
		_, _ = w.Write([]byte(`<div class="result"><a class="result__a" href="https://github.com/x">X</a><a class="result__snippet">snip</a></div>`))
	}))
	defer srv.Close()

	gw := NewDuckDuckGo(duckduckgo.NewClient(duckduckgo.WithBaseURL(srv.URL)))
	got, err := gw.Search(context.Background(), "churn dataset site:github.com", 3)
	require.NoError(t, err)
	assert.Equal(t, []Result{{Title: "X", Snippet: "snip", URL: "https://github.com/x"}}, got)
}

func TestPerplexity_EndToEndHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(perplexity.SearchResponse{ //nolint:errcheck
			Results: []perplexity.SearchResult{{Title: "T", URL: "https://t", Snippet: "s"}},
		})
	}))
	defer srv.Close()

	gw := NewPerplexity(perplexity.NewClient("k", perplexity.WithBaseURL(srv.URL)))
	got, err := gw.Search(context.Background(), "q", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
}
