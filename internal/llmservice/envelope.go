package llmservice

import (
	"encoding/json"
	"regexp"
	"strings"

	"artifact-chat/internal/models"
)

var (
	jsonFenceOpenRe  = regexp.MustCompile(models.JSONFenceOpen)
	jsonFenceCloseRe = regexp.MustCompile(models.JSONFenceClose)
)

const (
	recoveredModel = "Recovered"
	fallbackModel  = "Fallback"
)

// DecodeEnvelope reads the JSON envelope the system prompt asks for. A reply
// that is not valid JSON is passed through as the response text; it is
// marked Recovered when it still carries an artifact block, since the
// extractor can work on the raw text directly.
func DecodeEnvelope(raw string) models.ChatResponse {
	clean := strings.TrimSpace(raw)
	clean = jsonFenceOpenRe.ReplaceAllString(clean, "")
	clean = strings.TrimSpace(jsonFenceCloseRe.ReplaceAllString(clean, ""))

	var out models.ChatResponse
	if err := json.Unmarshal([]byte(clean), &out); err == nil && out.Response != "" {
		return out
	}

	if strings.Contains(raw, "<"+models.ArtifactTag) {
		return models.ChatResponse{
			SelectedModel: recoveredModel,
			Reasoning:     "Model output was not valid JSON, but an artifact was recovered.",
			Response:      raw,
			Recovered:     true,
		}
	}
	return models.ChatResponse{
		SelectedModel: fallbackModel,
		Reasoning:     "Response was not in the expected JSON format, raw output provided.",
		Response:      raw,
	}
}
