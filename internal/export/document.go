package export

import (
	"fmt"
	"html/template"
	"io"

	"artifact-chat/internal/models"
)

var documentTmpl = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  @page { size: A4; margin: 0; }
  body { margin: 0; background: #e5e7eb; font-family: Georgia, serif; }
  .document-page { position: relative; width: 210mm; min-height: 297mm; padding: 20mm; box-sizing: border-box; margin: 8mm auto; background: #fff; color: #000; page-break-after: always; }
  .document-page h1 { color: #1e293b; margin-top: 0; }
  .document-page h2 { color: #334155; border-bottom: 1px solid #e5e7eb; padding-bottom: .3em; }
  .document-page p { line-height: 1.6; margin-bottom: 1em; text-align: justify; }
  .document-page blockquote { border-left: 4px solid #3b82f6; background: #eff6ff; padding: 1em; margin: 1em 0; }
  .document-page table { width: 100%; border-collapse: collapse; margin-bottom: 1em; font-size: .9em; }
  .document-page th, .document-page td { border: 1px solid #cbd5e1; padding: 8px; text-align: left; }
  .document-page th { background: #f1f5f9; }
  .document-page img { max-width: 100%; }
  .page-number { position: absolute; bottom: 4mm; right: 8mm; font: 10px monospace; color: #9ca3af; }
  @media print { body { background: none; } .document-page { margin: 0; box-shadow: none; } }
</style>
</head>
<body>
{{- range .Pages}}
<div class="document-page">
{{.HTML}}
<div class="page-number">Page {{.Number}}</div>
</div>
{{- end}}
</body>
</html>
`))

type documentView struct {
	Title string
	Pages []pageView
}

type pageView struct {
	Number int
	HTML   template.HTML
}

func DocumentFileName(a models.Artifact) string {
	return BaseName(a) + ".html"
}

// WriteDocument renders pages as a printable HTML book of A4 sheets, each
// with its 1-based page number in the footer. Page HTML is written as is.
func WriteDocument(w io.Writer, title string, pages []models.Page) error {
	view := documentView{Title: title, Pages: make([]pageView, len(pages))}
	for i, p := range pages {
		view.Pages[i] = pageView{Number: p.Number(), HTML: template.HTML(p.HTML)}
	}
	if err := documentTmpl.Execute(w, view); err != nil {
		return fmt.Errorf("failed to render document %q: %w", title, err)
	}
	return nil
}
