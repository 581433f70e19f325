package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMessage(t *testing.T) {
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "/messages")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"id":   "msg_test_001",
			"type": "message",
			"role": "assistant",
			"content": []map[string]any{
				{"type": "text", "text": `{"industry": "Retail"}`},
			},
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": "end_turn",
			"usage": map[string]any{
				"input_tokens":  120,
				"output_tokens": 30,
			},
		})
	}))
	defer ts.Close()

	temp := 0.1
	client := NewClient("test-key", WithBaseURL(ts.URL), WithMaxRetries(0))
	resp, err := client.CreateMessage(context.Background(), MessageRequest{
		Model:       "claude-haiku-4-5-20251001",
		MaxTokens:   1024,
		System:      "You are an analyst.",
		Temperature: &temp,
		Messages:    []Message{{Role: "user", Content: "Analyze Nike"}},
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "msg_test_001", resp.ID)
	assert.Equal(t, "end_turn", resp.StopReason)
	assert.Equal(t, `{"industry": "Retail"}`, resp.Text())
	assert.Equal(t, int64(120), resp.Usage.InputTokens)
	assert.Equal(t, int64(30), resp.Usage.OutputTokens)

	assert.Equal(t, "claude-haiku-4-5-20251001", gotBody["model"])
	assert.InDelta(t, 0.1, gotBody["temperature"], 0.0001)
	assert.NotNil(t, gotBody["system"])
}

func TestCreateMessage_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"boom"}}`))
	}))
	defer ts.Close()

	client := NewClient("test-key", WithBaseURL(ts.URL), WithMaxRetries(0))
	resp, err := client.CreateMessage(context.Background(), MessageRequest{
		Model:     "claude-haiku-4-5-20251001",
		MaxTokens: 16,
		Messages:  []Message{{Role: "user", Content: "hi"}},
	})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "anthropic: create message")
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
}

func TestStatusCode_NonAPIError(t *testing.T) {
	assert.Zero(t, StatusCode(context.Canceled))
	assert.Zero(t, StatusCode(nil))
}

func TestMessageResponse_Text(t *testing.T) {
	tests := []struct {
		name string
		resp *MessageResponse
		want string
	}{
		{name: "nil", resp: nil, want: ""},
		{name: "empty", resp: &MessageResponse{}, want: ""},
		{
			name: "multiple blocks",
			resp: &MessageResponse{Content: []ContentBlock{
				{Type: "text", Text: "first"},
				{Type: "tool_use"},
				{Type: "text", Text: "second"},
			}},
			want: "first\nsecond",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.resp.Text())
		})
	}
}

func TestToSDKMessages(t *testing.T) {
	msgs := toSDKMessages([]Message{
		{Role: "user", Content: "question"},
		{Role: "assistant", Content: "answer"},
	})
	require.Len(t, msgs, 2)
	assert.Equal(t, sdk.MessageParamRoleUser, msgs[0].Role)
	assert.Equal(t, sdk.MessageParamRoleAssistant, msgs[1].Role)
}

func TestFromSDKMessage(t *testing.T) {
	resp := fromSDKMessage(&sdk.Message{
		ID:         "msg_1",
		Model:      "claude-haiku-4-5-20251001",
		StopReason: "max_tokens",
		Content: []sdk.ContentBlockUnion{
			{Type: "text", Text: "Hello"},
		},
		Usage: sdk.Usage{InputTokens: 10, OutputTokens: 5, CacheReadInputTokens: 7},
	})
	require.NotNil(t, resp)
	assert.Equal(t, "max_tokens", resp.StopReason)
	require.Len(t, resp.Content, 1)
	assert.Equal(t, "Hello", resp.Content[0].Text)
	assert.Equal(t, int64(7), resp.Usage.CacheReadInputTokens)
}
