// Package pipeline wires extraction, pagination and export together for
// one model reply.
package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"artifact-chat/internal/export"
	"artifact-chat/internal/helper"
	"artifact-chat/internal/models"
	"artifact-chat/internal/paginator"
	"artifact-chat/internal/parser"
)

// Output describes what was produced for a single artifact.
type Output struct {
	Artifact models.Artifact `json:"artifact"`
	Pages    []models.Page   `json:"pages,omitempty"`
	Path     string          `json:"path"`
}

type Result struct {
	Text     string           `json:"text"`
	Segments []models.Segment `json:"segments"`
	Outputs  []Output         `json:"outputs"`
}

// Process extracts the artifacts of raw and writes them to outDir: documents
// as paginated printable HTML, everything else as a zip archive.
func Process(raw string, convert paginator.Converter, outDir string) (*Result, error) {
	parsed := parser.Extract(raw)
	result := &Result{
		Text:     parsed.Text,
		Segments: parser.Segments(parsed.Text),
	}
	if len(parsed.Artifacts) == 0 {
		return result, nil
	}

	if err := helper.CreateFolder(outDir); err != nil {
		return nil, err
	}

	for _, a := range parsed.Artifacts {
		var (
			out Output
			err error
		)
		if a.IsDocument() {
			out, err = writeDocument(a, convert, outDir)
		} else {
			out, err = writeProject(a, outDir)
		}
		if err != nil {
			return nil, err
		}
		result.Outputs = append(result.Outputs, out)
	}
	return result, nil
}

func writeDocument(a models.Artifact, convert paginator.Converter, outDir string) (Output, error) {
	pages, err := paginator.Paginate(a, convert)
	if err != nil {
		return Output{}, fmt.Errorf("failed to paginate %q: %w", a.Title, err)
	}

	var buf bytes.Buffer
	if err := export.WriteDocument(&buf, a.Title, pages); err != nil {
		return Output{}, err
	}
	path := filepath.Join(outDir, export.DocumentFileName(a))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return Output{}, fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.Info().Str("title", a.Title).Int("pages", len(pages)).Str("path", path).Msg("Wrote document")
	return Output{Artifact: a, Pages: pages, Path: path}, nil
}

func writeProject(a models.Artifact, outDir string) (Output, error) {
	var buf bytes.Buffer
	if err := export.WriteZip(&buf, a); err != nil {
		return Output{}, err
	}
	path := filepath.Join(outDir, export.ZipFileName(a))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return Output{}, fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.Info().Str("title", a.Title).Str("type", string(a.Type)).Int("files", len(a.Files)).Str("path", path).Msg("Wrote project archive")
	return Output{Artifact: a, Path: path}, nil
}
