package perplexity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/opportunity-cli/internal/resilience"
)

func fastRetry() resilience.RetryConfig {
	return resilience.RetryConfig{MaxAttempts: 2, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     string
		wantResults int
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body: `{
				"id": "srch-1",
				"results": [
					{"title": "Nike Inc", "url": "https://about.nike.com", "snippet": "Sportswear company"},
					{"title": "Nike 10-K", "url": "https://investors.nike.com", "snippet": "Annual filing", "date": "2025-07-01"}
				]
			}`,
			wantResults: 2,
		},
		{
			name:    "rate_limit",
			status:  http.StatusTooManyRequests,
			body:    `{"error": "rate limit exceeded"}`,
			wantErr: "unexpected status 429",
		},
		{
			name:    "server_error",
			status:  http.StatusInternalServerError,
			body:    `{"error": "internal server error"}`,
			wantErr: "unexpected status 500",
		},
		{
			name:    "malformed_response",
			status:  http.StatusOK,
			body:    `{invalid json`,
			wantErr: "unmarshal response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/search", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient("test-key", WithBaseURL(srv.URL), WithRetry(fastRetry()))
			resp, err := client.Search(context.Background(), SearchRequest{Query: "Nike", MaxResults: 5})

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			require.Len(t, resp.Results, tt.wantResults)
			assert.Equal(t, "Nike Inc", resp.Results[0].Title)
			assert.Equal(t, "Sportswear company", resp.Results[0].Snippet)
			assert.Equal(t, "2025-07-01", resp.Results[1].Date)
		})
	}
}

func TestSearch_RequestBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "retail dataset", req.Query)
		assert.Equal(t, 3, req.MaxResults)
		assert.Equal(t, []string{"kaggle.com"}, req.SearchDomainFilter)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","results":[]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.Search(context.Background(), SearchRequest{
		Query:              "retail dataset",
		MaxResults:         3,
		SearchDomainFilter: []string{"kaggle.com"},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestSearch_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"id":"2","results":[{"title":"Nike"}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithRetry(fastRetry()))
	resp, err := client.Search(context.Background(), SearchRequest{Query: "Nike"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSearch_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithRetry(fastRetry()))
	_, err := client.Search(context.Background(), SearchRequest{Query: "Nike"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 401")
	assert.Equal(t, int32(1), calls.Load())
}

func TestSearch_EmptyQuery(t *testing.T) {
	client := NewClient("test-key", WithBaseURL("http://unused.invalid"))
	_, err := client.Search(context.Background(), SearchRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty query")
}

func TestSearch_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.Search(ctx, SearchRequest{Query: "slow"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send request")
}

func TestWithHTTPClient(t *testing.T) {
	hc := &http.Client{Timeout: 5 * time.Second}
	c := NewClient("k", WithHTTPClient(hc)).(*httpClient)
	assert.Same(t, hc, c.http)
	assert.Equal(t, defaultBaseURL, c.baseURL)
	assert.Equal(t, 2, c.retry.MaxAttempts)
}
