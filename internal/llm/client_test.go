package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	cfg.APIKey = "test-key"
	cfg.TimeoutMs = 2000
	return cfg
}

func successHandler(t *testing.T, capture *messagesRequest) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, apiVersion, r.Header.Get("anthropic-version"))

		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}

		resp := map[string]any{
			"id":    "msg_123",
			"model": "claude-test",
			"content": []map[string]string{
				{"type": "text", "text": "# Project Overview\nGenerated."},
			},
			"stop_reason": "end_turn",
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}
}

func TestClient_Complete(t *testing.T) {
	var captured messagesRequest
	srv := httptest.NewServer(successHandler(t, &captured))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), nil)
	resp, err := c.Complete(context.Background(), CompleteRequest{
		Messages: []Message{{Role: RoleUser, Content: "build me a thing"}},
		System:   "be helpful",
	})
	require.NoError(t, err)

	assert.Equal(t, "msg_123", resp.ID)
	assert.Equal(t, "# Project Overview\nGenerated.", resp.Content)
	assert.Equal(t, "claude-test", resp.Model)
	assert.Equal(t, "end_turn", resp.StopReason)

	assert.Equal(t, "be helpful", captured.System)
	assert.Equal(t, 4000, captured.MaxTokens)
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, RoleUser, captured.Messages[0].Role)
}

func TestClient_Complete_Overrides(t *testing.T) {
	var captured messagesRequest
	srv := httptest.NewServer(successHandler(t, &captured))
	defer srv.Close()

	temp := 0.2
	c := NewClient(testConfig(srv.URL), nil)
	_, err := c.Complete(context.Background(), CompleteRequest{
		Messages:    []Message{{Role: RoleUser, Content: "hi"}},
		MaxTokens:   512,
		Temperature: &temp,
	})
	require.NoError(t, err)

	assert.Equal(t, 512, captured.MaxTokens)
	assert.Equal(t, 0.2, captured.Temperature)
}

func TestClient_Complete_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"type": "authentication_error", "message": "invalid x-api-key"}}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), nil)
	_, err := c.Complete(context.Background(), CompleteRequest{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})

	var upstream *UpstreamServiceError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusUnauthorized, upstream.StatusCode)
	assert.Contains(t, upstream.Message, "invalid x-api-key")
}

func TestClient_Complete_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	c := NewClient(testConfig(srv.URL), nil)
	_, err := c.Complete(context.Background(), CompleteRequest{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})

	var upstream *UpstreamServiceError
	require.ErrorAs(t, err, &upstream)
	assert.Zero(t, upstream.StatusCode)
}

func TestClient_GenerateMasterplan_DefaultPrompt(t *testing.T) {
	var captured messagesRequest
	srv := httptest.NewServer(successHandler(t, &captured))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), nil)
	text, err := c.GenerateMasterplan(context.Background(),
		[]Message{{Role: RoleUser, Content: "we talked about a tracker app"}}, "")
	require.NoError(t, err)

	assert.Contains(t, text, "# Project Overview")
	assert.Contains(t, captured.System, "Project Overview")
	assert.Contains(t, captured.System, "Success Metrics")
}

func TestClient_GenerateMasterplan_CustomPrompt(t *testing.T) {
	var captured messagesRequest
	srv := httptest.NewServer(successHandler(t, &captured))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), nil)
	_, err := c.GenerateMasterplan(context.Background(),
		[]Message{{Role: RoleUser, Content: "hi"}}, "custom prompt")
	require.NoError(t, err)

	assert.Equal(t, "custom prompt", captured.System)
}
