package models

type SegmentKind string

const (
	SegmentText  SegmentKind = "text"
	SegmentCode  SegmentKind = "code"
	SegmentImage SegmentKind = "image"
)

// Segment is a piece of the prose left over after artifact extraction.
// Language is set for code segments, Alt and Src for images.
type Segment struct {
	Kind     SegmentKind `json:"kind"`
	Content  string      `json:"content,omitempty"`
	Language string      `json:"language,omitempty"`
	Alt      string      `json:"alt,omitempty"`
	Src      string      `json:"src,omitempty"`
}
