package models

import "strings"

// ArtifactType controls how an artifact is rendered downstream.
type ArtifactType string

const (
	ArtifactProject      ArtifactType = "project"
	ArtifactDocument     ArtifactType = "document"
	ArtifactPresentation ArtifactType = "presentation"
)

const (
	DefaultArtifactTitle = "Untitled Project"
	DefaultArtifactType  = ArtifactProject
)

// ParseArtifactType maps a raw type attribute onto a known ArtifactType.
// Unknown or empty values fall back to DefaultArtifactType.
func ParseArtifactType(s string) ArtifactType {
	switch t := ArtifactType(strings.ToLower(strings.TrimSpace(s))); t {
	case ArtifactProject, ArtifactDocument, ArtifactPresentation:
		return t
	default:
		return DefaultArtifactType
	}
}

// ParsedFile is a single named file entry inside an artifact block.
type ParsedFile struct {
	Name     string `json:"name"`
	Language string `json:"language"`
	Content  string `json:"content"`
}

// Artifact is a bundle of files extracted from a model reply.
//
// Files is never empty for an Artifact returned by the parser and keeps the
// order the entries had in the source markup.
type Artifact struct {
	Title string       `json:"title"`
	Type  ArtifactType `json:"type"`
	Files []ParsedFile `json:"files"`
}

// IsDocument reports whether the artifact should be paginated.
func (a Artifact) IsDocument() bool {
	return a.Type == ArtifactDocument
}

// Clone returns a copy whose Files slice can be modified without touching a.
func (a Artifact) Clone() Artifact {
	files := make([]ParsedFile, len(a.Files))
	copy(files, a.Files)
	a.Files = files
	return a
}

// ParseResult is the prose left after extraction plus the artifacts found.
type ParseResult struct {
	Text      string     `json:"text"`
	Artifacts []Artifact `json:"artifacts"`
}
