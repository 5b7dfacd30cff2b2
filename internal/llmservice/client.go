package llmservice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"artifact-chat/internal/attachment"
	"artifact-chat/internal/config"
	"artifact-chat/internal/models"

	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

var (
	ErrMissingKey = errors.New("llm api key is missing")
	ErrNoContent  = errors.New("no content received")
)

// StreamFunc receives reply tokens as they arrive.
type StreamFunc func(ctx context.Context, chunk []byte) error

// call llm
func GenerateContent(ctx context.Context, llmConfig *config.LLMConfig, messages []llms.MessageContent, opts ...llms.CallOption) (*llms.ContentResponse, error) {
	key := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(llmConfig.Key), "Bearer "))
	if key == "" {
		return nil, ErrMissingKey
	}

	zerolog.Ctx(ctx).Debug().
		Str("base_url", llmConfig.BaseURL).
		Str("model", llmConfig.Model).
		Int("messages", len(messages)).
		Msg("Generating content")

	llm, err := openai.New(
		openai.WithBaseURL(llmConfig.BaseURL),
		openai.WithToken(key),
		openai.WithModel(llmConfig.Model),
		openai.WithHTTPClient(&http.Client{Timeout: llmConfig.Timeout}),
	)
	if err != nil {
		return nil, err
	}

	if llmConfig.JSONMode {
		opts = append(opts, llms.WithJSONMode())
	}
	return llm.GenerateContent(ctx, messages, opts...)
}

// Chat sends a task with its attachments and decodes the model's envelope.
// When stream is non-nil the reply is streamed to it as well.
func Chat(ctx context.Context, cfg *config.Config, task string, attachments []models.Attachment, image *models.ImageSettings, stream StreamFunc) (models.ChatResponse, error) {
	messages := BuildMessages(models.SystemPromptTemplate, task, attachments, image)

	var opts []llms.CallOption
	if stream != nil {
		opts = append(opts, llms.WithStreamingFunc(stream))
	}

	resp, err := GenerateContent(ctx, &cfg.LLM, messages, opts...)
	if err != nil {
		return models.ChatResponse{}, fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return models.ChatResponse{}, ErrNoContent
	}

	out := DecodeEnvelope(resp.Choices[0].Content)
	zerolog.Ctx(ctx).Debug().
		Str("selected_model", out.SelectedModel).
		Bool("recovered", out.Recovered).
		Int("response_len", len(out.Response)).
		Msg("Received response")
	return out, nil
}

// BuildMessages assembles the system and user messages for one request.
// Text attachments are inlined after the task, images are sent as image
// URL parts.
func BuildMessages(systemPrompt, task string, attachments []models.Attachment, image *models.ImageSettings) []llms.MessageContent {
	if image != nil {
		style := image.Style
		if style == "" || style == "None" {
			style = "No specific style"
		}
		task += fmt.Sprintf(models.ImageSettingNote, image.AspectRatio, style)
	}

	var parts []llms.ContentPart
	if task != "" {
		parts = append(parts, llms.TextContent{Text: task})
	}
	for _, a := range attachments {
		switch {
		case a.Kind == models.AttachmentImage && a.DataURL != "":
			parts = append(parts, llms.ImageURLContent{URL: a.DataURL})
		case a.Kind == models.AttachmentFile && a.Content != "":
			parts = append(parts, llms.TextContent{Text: attachment.Format(a)})
		}
	}

	return []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextContent{Text: systemPrompt}},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: parts,
		},
	}
}
