package llmservice

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"artifact-chat/internal/config"
	"artifact-chat/internal/models"
)

func completionServer(t *testing.T, content string, gotAuth *string, gotBody *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotAuth = r.Header.Get("Authorization")
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, gotBody))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 1, "completion_tokens": 1, "total_tokens": 2},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestChat(t *testing.T) {
	envelope := `{"selectedModel":"m","category":"c","reasoning":"r","response":"Here:\n<gnexus_artifact title=\"T\"><file name=\"a.go\" language=\"go\">package a</file></gnexus_artifact>"}`

	var (
		auth string
		body map[string]any
	)
	srv := completionServer(t, envelope, &auth, &body)

	cfg := &config.Config{LLM: config.LLMConfig{
		BaseURL: srv.URL,
		Key:     "Bearer test-key",
		Model:   "test-model",
		Timeout: 5 * time.Second,
	}}

	out, err := Chat(context.Background(), cfg, "build it", nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", auth)
	assert.Equal(t, "test-model", body["model"])
	assert.Equal(t, "m", out.SelectedModel)
	assert.Contains(t, out.Response, "<gnexus_artifact")
	assert.False(t, out.Recovered)
}

func TestGenerateContent_MissingKey(t *testing.T) {
	_, err := GenerateContent(context.Background(), &config.LLMConfig{Key: "  "}, nil)
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestBuildMessages(t *testing.T) {
	attachments := []models.Attachment{
		{Name: "notes.txt", Kind: models.AttachmentFile, Content: "remember"},
		{Name: "empty.txt", Kind: models.AttachmentFile},
		{Name: "logo.png", Kind: models.AttachmentImage, DataURL: "data:image/png;base64,AAAA"},
	}
	image := &models.ImageSettings{AspectRatio: "16:9", Style: "None"}

	msgs := BuildMessages("SYSTEM", "draw a city", attachments, image)

	require.Len(t, msgs, 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, msgs[0].Role)
	assert.Equal(t, []llms.ContentPart{llms.TextContent{Text: "SYSTEM"}}, msgs[0].Parts)

	assert.Equal(t, llms.ChatMessageTypeHuman, msgs[1].Role)
	require.Len(t, msgs[1].Parts, 3)
	assert.Equal(t, llms.TextContent{
		Text: "draw a city\n\n[SYSTEM NOTE: Image Generation Active. Preferences:\n- Aspect Ratio: 16:9\n- Style: No specific style]",
	}, msgs[1].Parts[0])
	assert.Equal(t, llms.TextContent{
		Text: "\n\n[Attached File Content: notes.txt]\nremember\n[End of File]",
	}, msgs[1].Parts[1])
	assert.Equal(t, llms.ImageURLContent{URL: "data:image/png;base64,AAAA"}, msgs[1].Parts[2])
}

func TestBuildMessages_NoImageSettings(t *testing.T) {
	msgs := BuildMessages("SYSTEM", "hello", nil, nil)
	assert.Equal(t, []llms.ContentPart{llms.TextContent{Text: "hello"}}, msgs[1].Parts)
}
