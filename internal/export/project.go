// Package export hands extracted artifacts to the outside world: project
// archives and printable document books.
package export

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"artifact-chat/internal/models"
)

var spaceRe = regexp.MustCompile(`\s+`)

// FileMap returns the project files keyed by name, the payload shape
// expected by sandbox and embed collaborators.
func FileMap(a models.Artifact) map[string]string {
	files := make(map[string]string, len(a.Files))
	for _, f := range a.Files {
		files[f.Name] = f.Content
	}
	return files
}

// BaseName derives a file name stem from the artifact title.
func BaseName(a models.Artifact) string {
	name := spaceRe.ReplaceAllString(strings.TrimSpace(a.Title), "_")
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
	if name == "" {
		name = spaceRe.ReplaceAllString(models.DefaultArtifactTitle, "_")
	}
	return name
}

func ZipFileName(a models.Artifact) string {
	return BaseName(a) + ".zip"
}

// WriteZip writes every file of the artifact into a zip archive, in source
// order, using the file names as archive paths.
func WriteZip(w io.Writer, a models.Artifact) error {
	zw := zip.NewWriter(w)
	for _, f := range a.Files {
		name, err := archivePath(f.Name)
		if err != nil {
			return err
		}
		fw, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("failed to add %s to archive: %w", f.Name, err)
		}
		if _, err := io.WriteString(fw, f.Content); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return nil
}

// archivePath turns a model supplied file name into a relative archive path
// that cannot leave the archive root.
func archivePath(name string) (string, error) {
	cleaned := path.Clean("/" + strings.ReplaceAll(name, "\\", "/"))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", fmt.Errorf("invalid archive path %q", name)
	}
	return cleaned, nil
}
