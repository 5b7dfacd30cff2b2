package parser

import (
	"regexp"
	"strings"

	"artifact-chat/internal/models"
)

var (
	codeBlockRe = regexp.MustCompile(models.CodeBlockRegex)
	codeFenceRe = regexp.MustCompile(models.CodeFenceRegex)
	imageRe     = regexp.MustCompile(models.ImageRegex)
)

// Segments splits the prose left after Extract into text, fenced code and
// Markdown image pieces, in order. Whitespace-only text is dropped.
func Segments(text string) []models.Segment {
	var segments []models.Segment
	for _, part := range splitKeep(codeBlockRe, text) {
		if part.match {
			if m := codeFenceRe.FindStringSubmatch(part.text); m != nil {
				lang := m[1]
				if lang == "" {
					lang = "text"
				}
				segments = append(segments, models.Segment{
					Kind:     models.SegmentCode,
					Language: lang,
					Content:  m[2],
				})
				continue
			}
		}

		for _, piece := range splitKeep(imageRe, part.text) {
			if piece.match {
				m := imageRe.FindStringSubmatch(piece.text)
				segments = append(segments, models.Segment{
					Kind: models.SegmentImage,
					Alt:  m[1],
					Src:  m[2],
				})
				continue
			}
			if strings.TrimSpace(piece.text) == "" {
				continue
			}
			segments = append(segments, models.Segment{
				Kind:    models.SegmentText,
				Content: piece.text,
			})
		}
	}
	return segments
}

type chunk struct {
	text  string
	match bool
}

// splitKeep splits s around matches of re, keeping the matches themselves.
func splitKeep(re *regexp.Regexp, s string) []chunk {
	var chunks []chunk
	last := 0
	for _, loc := range re.FindAllStringIndex(s, -1) {
		if loc[0] > last {
			chunks = append(chunks, chunk{text: s[last:loc[0]]})
		}
		chunks = append(chunks, chunk{text: s[loc[0]:loc[1]], match: true})
		last = loc[1]
	}
	if last < len(s) {
		chunks = append(chunks, chunk{text: s[last:]})
	}
	return chunks
}
