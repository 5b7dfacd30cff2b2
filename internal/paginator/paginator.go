// Package paginator splits document artifacts into A4 page fragments.
package paginator

import (
	"fmt"
	"html"
	"regexp"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"github.com/rs/zerolog/log"

	"artifact-chat/internal/models"
)

// Converter turns Markdown into HTML. For single-file Markdown documents the
// converter output is split on <hr>, <hr/> or <hr /> (any case), so a
// converter must render a thematic break as one of those to get page breaks.
type Converter func(markdown string) (string, error)

var pageBreakRe = regexp.MustCompile(models.PageBreakRegex)

// Paginate turns a document artifact into ordered pages.
//
// With several files every file is one page, ordered by a natural sort of the
// file names. A single file is split on the page-break marker, after
// conversion when it is Markdown. Whitespace-only pages are dropped. Errors
// come only from the converter and stop pagination.
func Paginate(a models.Artifact, convert Converter) ([]models.Page, error) {
	var (
		fragments []string
		err       error
	)
	switch len(a.Files) {
	case 0:
		return []models.Page{}, nil
	case 1:
		fragments, err = splitSingle(a.Files[0], convert)
	default:
		fragments, err = pagePerFile(a.Files, convert)
	}
	if err != nil {
		return nil, err
	}

	pages := make([]models.Page, 0, len(fragments))
	for _, f := range fragments {
		if strings.TrimSpace(f) == "" {
			continue
		}
		pages = append(pages, models.Page{Index: len(pages), HTML: f})
	}

	log.Debug().
		Str("title", a.Title).
		Int("files", len(a.Files)).
		Int("pages", len(pages)).
		Msg("Paginated document")
	return pages, nil
}

func pagePerFile(files []models.ParsedFile, convert Converter) ([]string, error) {
	sorted := make([]models.ParsedFile, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return nameLess(sorted[i].Name, sorted[j].Name)
	})

	fragments := make([]string, 0, len(sorted))
	for _, f := range sorted {
		switch {
		case isHTML(f):
			fragments = append(fragments, f.Content)
		case isMarkdown(f):
			out, err := convert(f.Content)
			if err != nil {
				return nil, fmt.Errorf("failed to convert %s: %w", f.Name, err)
			}
			fragments = append(fragments, out)
		default:
			fragments = append(fragments, "<pre>"+html.EscapeString(f.Content)+"</pre>")
		}
	}
	return fragments, nil
}

func splitSingle(f models.ParsedFile, convert Converter) ([]string, error) {
	if isHTML(f) {
		return pageBreakRe.Split(f.Content, -1), nil
	}
	out, err := convert(f.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s: %w", f.Name, err)
	}
	return pageBreakRe.Split(out, -1), nil
}

// nameLess orders names naturally, ignoring case first and falling back to
// the exact names so the order stays total.
func nameLess(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return natural.Less(la, lb)
	}
	return natural.Less(a, b)
}

func isHTML(f models.ParsedFile) bool {
	return strings.HasSuffix(f.Name, ".html")
}

func isMarkdown(f models.ParsedFile) bool {
	return strings.HasSuffix(f.Name, ".md") || strings.EqualFold(f.Language, "markdown")
}
