package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impactcompare/internal/domain"
	"impactcompare/internal/imageref"
)

const messageReply = `{
  "id": "msg_01",
  "type": "message",
  "role": "assistant",
  "model": "claude-sonnet-4-5-20250929",
  "content": [{"type": "text", "text": "{\"ctaCount\": 2}"}],
  "stop_reason": "end_turn",
  "usage": {"input_tokens": 12, "output_tokens": 7}
}`

func anthropicServer(t *testing.T, status int, reply string) (*httptest.Server, *map[string]any) {
	t.Helper()
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv, &body
}

func TestAnthropic_DescribeImageURL(t *testing.T) {
	srv, body := anthropicServer(t, http.StatusOK, messageReply)
	a := NewAnthropic(Config{AnthropicAPIKey: "k"}, testLogger(), option.WithBaseURL(srv.URL))

	ref, err := imageref.Parse("https://cdn.example.com/a.png")
	require.NoError(t, err)
	text, err := a.DescribeImage(context.Background(), "describe", ref)
	require.NoError(t, err)
	assert.Equal(t, `{"ctaCount": 2}`, text)

	assert.Equal(t, DefaultAnthropicModel, (*body)["model"])
	content := (*body)["messages"].([]any)[0].(map[string]any)["content"].([]any)
	require.Len(t, content, 2)
	source := content[0].(map[string]any)["source"].(map[string]any)
	assert.Equal(t, "url", source["type"])
	assert.Equal(t, "https://cdn.example.com/a.png", source["url"])
	assert.Equal(t, "describe", content[1].(map[string]any)["text"])
}

func TestAnthropic_DescribeImageInline(t *testing.T) {
	srv, body := anthropicServer(t, http.StatusOK, messageReply)
	a := NewAnthropic(Config{AnthropicAPIKey: "k"}, testLogger(), option.WithBaseURL(srv.URL))

	ref, err := imageref.Parse("data:image/webp;base64,UklGRgAAAABXRUJQ")
	require.NoError(t, err)
	_, err = a.DescribeImage(context.Background(), "describe", ref)
	require.NoError(t, err)

	content := (*body)["messages"].([]any)[0].(map[string]any)["content"].([]any)
	source := content[0].(map[string]any)["source"].(map[string]any)
	assert.Equal(t, "base64", source["type"])
	assert.Equal(t, "image/webp", source["media_type"])
	assert.Equal(t, "UklGRgAAAABXRUJQ", source["data"])
}

func TestAnthropic_CompleteSendsSystem(t *testing.T) {
	srv, body := anthropicServer(t, http.StatusOK, messageReply)
	a := NewAnthropic(Config{AnthropicAPIKey: "k", ReasoningModel: "claude-x"}, testLogger(), option.WithBaseURL(srv.URL))

	_, err := a.Complete(context.Background(), "be a UX expert", "compare")
	require.NoError(t, err)
	assert.Equal(t, "claude-x", (*body)["model"])
	system := (*body)["system"].([]any)
	assert.Equal(t, "be a UX expert", system[0].(map[string]any)["text"])
}

func TestAnthropic_RateLimited(t *testing.T) {
	srv, _ := anthropicServer(t, http.StatusTooManyRequests,
		`{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`)
	a := NewAnthropic(Config{AnthropicAPIKey: "k"}, testLogger(), option.WithBaseURL(srv.URL))

	_, err := a.Complete(context.Background(), "s", "u")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, ProviderAnthropic, be.Provider)
	assert.Equal(t, backendReasoning, be.Backend)
}

func TestAnthropic_MissingCredential(t *testing.T) {
	a := NewAnthropic(Config{}, testLogger())
	_, err := a.Complete(context.Background(), "s", "u")
	assert.ErrorIs(t, err, domain.ErrMissingCredential)
}
