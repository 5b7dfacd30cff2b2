package parser

import (
	"regexp"
	"strings"

	"artifact-chat/internal/markup"
	"artifact-chat/internal/models"

	"github.com/rs/zerolog/log"
)

var (
	artifactRe   = regexp.MustCompile(models.ArtifactRegex)
	fileRe       = regexp.MustCompile(models.FileRegex)
	fenceOpenRe  = regexp.MustCompile(models.FenceOpenRegex)
	fenceCloseRe = regexp.MustCompile(models.FenceCloseRegex)
)

// Extract pulls every well-formed artifact block out of a model reply.
//
// Blocks are returned in the order they appear and their markup is cut from
// the returned text; everything around them is kept byte for byte. A block
// without a single recognisable file entry is not an artifact and stays in
// the text as it was. Malformed markup is never an error.
func Extract(text string) models.ParseResult {
	result := models.ParseResult{Text: text, Artifacts: []models.Artifact{}}
	if text == "" {
		return result
	}

	var clean strings.Builder
	last := 0
	for _, loc := range artifactRe.FindAllStringSubmatchIndex(text, -1) {
		var attrs string
		if loc[2] >= 0 {
			attrs = text[loc[2]:loc[3]]
		}

		files := parseFiles(text[loc[4]:loc[5]])
		if len(files) == 0 {
			log.Debug().Int("offset", loc[0]).Msg("Skipping artifact block without files")
			continue
		}

		result.Artifacts = append(result.Artifacts, models.Artifact{
			Title: markup.AttrOr(attrs, "title", models.DefaultArtifactTitle),
			Type:  models.ParseArtifactType(markup.AttrOr(attrs, "type", string(models.DefaultArtifactType))),
			Files: files,
		})

		clean.WriteString(text[last:loc[0]])
		last = loc[1]
	}

	if len(result.Artifacts) == 0 {
		return result
	}
	clean.WriteString(text[last:])
	result.Text = clean.String()

	log.Debug().Int("artifacts", len(result.Artifacts)).Msg("Extracted artifacts")
	return result
}

// parseFiles collects the file entries of one artifact body. Entries without
// both a name and a language are skipped.
func parseFiles(body string) []models.ParsedFile {
	var files []models.ParsedFile
	for _, m := range fileRe.FindAllStringSubmatch(body, -1) {
		name, ok := markup.Attr(m[1], "name")
		if !ok {
			continue
		}
		language, ok := markup.Attr(m[1], "language")
		if !ok {
			continue
		}
		files = append(files, models.ParsedFile{
			Name:     name,
			Language: language,
			Content:  stripFences(m[2]),
		})
	}
	return files
}

// stripFences trims content and removes one wrapping ``` fence pair.
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	content = fenceOpenRe.ReplaceAllString(content, "")
	return fenceCloseRe.ReplaceAllString(content, "")
}
