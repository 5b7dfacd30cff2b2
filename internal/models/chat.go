package models

// ChatResponse is the JSON envelope the model is asked to answer with.
type ChatResponse struct {
	SelectedModel string `json:"selectedModel"`
	Category      string `json:"category"`
	Reasoning     string `json:"reasoning"`
	Response      string `json:"response"`
	// Recovered is set when the envelope could not be decoded but the raw
	// reply still carried an artifact block.
	Recovered bool `json:"-"`
}

type AttachmentKind string

const (
	AttachmentFile  AttachmentKind = "file"
	AttachmentImage AttachmentKind = "image"
)

// Attachment is a local file sent along with a prompt.
type Attachment struct {
	Name     string         `json:"name"`
	Kind     AttachmentKind `json:"kind"`
	MimeType string         `json:"mime_type,omitempty"`
	Content  string         `json:"content,omitempty"` // text files
	DataURL  string         `json:"-"`                 // images
}

// ImageSettings are the user's preferences for generated images.
type ImageSettings struct {
	AspectRatio string `yaml:"aspect_ratio" json:"aspect_ratio"`
	Style       string `yaml:"style" json:"style"`
}
