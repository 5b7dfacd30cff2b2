package paginator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artifact-chat/internal/config"
	"artifact-chat/internal/markdown"
	"artifact-chat/internal/models"
)

// fakeConvert wraps its input so tests can see which files were converted.
func fakeConvert(s string) (string, error) {
	return "<md>" + s + "</md>", nil
}

func htmlOf(pages []models.Page) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.HTML
	}
	return out
}

func doc(files ...models.ParsedFile) models.Artifact {
	return models.Artifact{Title: "Doc", Type: models.ArtifactDocument, Files: files}
}

func TestPaginate_NoFiles(t *testing.T) {
	pages, err := Paginate(doc(), fakeConvert)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestPaginate_MultiFileNaturalOrder(t *testing.T) {
	a := doc(
		models.ParsedFile{Name: "page10.html", Language: "html", Content: "<p>ten</p>"},
		models.ParsedFile{Name: "page2.html", Language: "html", Content: "<p>two</p>"},
		models.ParsedFile{Name: "page1.html", Language: "html", Content: "<p>one</p>"},
	)

	pages, err := Paginate(a, fakeConvert)
	require.NoError(t, err)

	assert.Equal(t, []string{"<p>one</p>", "<p>two</p>", "<p>ten</p>"}, htmlOf(pages))
	for i, p := range pages {
		assert.Equal(t, i, p.Index)
		assert.Equal(t, i+1, p.Number())
	}
	// The caller's slice keeps its original order.
	assert.Equal(t, "page10.html", a.Files[0].Name)
}

func TestPaginate_MultiFileContentKinds(t *testing.T) {
	a := doc(
		models.ParsedFile{Name: "1-cover.html", Language: "html", Content: "<h1>Cover</h1>"},
		models.ParsedFile{Name: "2-body.md", Language: "text", Content: "# Body"},
		models.ParsedFile{Name: "3-notes", Language: "markdown", Content: "notes"},
		models.ParsedFile{Name: "4-data.csv", Language: "csv", Content: "a,b\n<1>,2"},
		models.ParsedFile{Name: "5-intro.md", Language: "html", Content: "# Intro"},
		models.ParsedFile{Name: "6-raw.txt", Language: "html", Content: "<b>x</b>"},
	)

	pages, err := Paginate(a, fakeConvert)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"<h1>Cover</h1>",
		"<md># Body</md>",
		"<md>notes</md>",
		"<pre>a,b\n&lt;1&gt;,2</pre>",
		"<md># Intro</md>",
		"<pre>&lt;b&gt;x&lt;/b&gt;</pre>",
	}, htmlOf(pages))
}

func TestPaginate_SingleFileHTMLByNameOnly(t *testing.T) {
	a := doc(models.ParsedFile{Name: "report.md", Language: "html", Content: "A---B"})
	convert := func(s string) (string, error) {
		return strings.ReplaceAll(s, "---", "<hr>"), nil
	}

	pages, err := Paginate(a, convert)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, htmlOf(pages))
}

func TestPaginate_MultiFileOrderIgnoresCase(t *testing.T) {
	a := doc(
		models.ParsedFile{Name: "Page10.html", Language: "html", Content: "<p>ten</p>"},
		models.ParsedFile{Name: "page2.html", Language: "html", Content: "<p>two</p>"},
		models.ParsedFile{Name: "PAGE1.html", Language: "html", Content: "<p>one</p>"},
	)

	pages, err := Paginate(a, fakeConvert)
	require.NoError(t, err)
	assert.Equal(t, []string{"<p>one</p>", "<p>two</p>", "<p>ten</p>"}, htmlOf(pages))
}

func TestPaginate_SingleHTMLSplit(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"self closing", "<p>A</p><hr/><p>B</p>", []string{"<p>A</p>", "<p>B</p>"}},
		{"open tag", "<p>A</p><hr><p>B</p>", []string{"<p>A</p>", "<p>B</p>"}},
		{"spaced and upper case", "<p>A</p><HR /><p>B</p><Hr  ><p>C</p>", []string{"<p>A</p>", "<p>B</p>", "<p>C</p>"}},
		{"no marker", "<p>Only</p>", []string{"<p>Only</p>"}},
		{"attributes are not a marker", `<p>A</p><hr class="x"><p>B</p>`, []string{`<p>A</p><hr class="x"><p>B</p>`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := doc(models.ParsedFile{Name: "report.html", Language: "html", Content: tt.content})
			pages, err := Paginate(a, fakeConvert)
			require.NoError(t, err)
			assert.Equal(t, tt.want, htmlOf(pages))
		})
	}
}

func TestPaginate_BlankPagesDropped(t *testing.T) {
	a := doc(models.ParsedFile{
		Name:     "report.html",
		Language: "html",
		Content:  "<hr><p>A</p><hr>  \n <hr/><p>B</p><hr>",
	})

	pages, err := Paginate(a, fakeConvert)
	require.NoError(t, err)

	require.Len(t, pages, 2)
	assert.Equal(t, models.Page{Index: 0, HTML: "<p>A</p>"}, pages[0])
	assert.Equal(t, models.Page{Index: 1, HTML: "<p>B</p>"}, pages[1])
}

func TestPaginate_BlankFilesDropped(t *testing.T) {
	a := doc(
		models.ParsedFile{Name: "page1.html", Language: "html", Content: "<p>1</p>"},
		models.ParsedFile{Name: "page2.html", Language: "html", Content: "   "},
		models.ParsedFile{Name: "page3.html", Language: "html", Content: "<p>3</p>"},
	)

	pages, err := Paginate(a, fakeConvert)
	require.NoError(t, err)
	assert.Equal(t, []string{"<p>1</p>", "<p>3</p>"}, htmlOf(pages))
	assert.Equal(t, 2, pages[1].Number())
}

func TestPaginate_SingleMarkdownSplitsAfterConversion(t *testing.T) {
	var seen []string
	convert := func(s string) (string, error) {
		seen = append(seen, s)
		return strings.ReplaceAll(s, "---", "<hr />"), nil
	}
	a := doc(models.ParsedFile{Name: "report.md", Language: "markdown", Content: "A---B---C"})

	pages, err := Paginate(a, convert)
	require.NoError(t, err)

	assert.Equal(t, []string{"A---B---C"}, seen, "whole file converted once")
	assert.Equal(t, []string{"A", "B", "C"}, htmlOf(pages))
}

func TestPaginate_SingleMarkdownWithGoldmark(t *testing.T) {
	conv := markdown.New(config.MarkdownConfig{})
	src := "# Annual Report\n\n**Date:** Oct 24\n\n---\n\n## Executive Summary\n\nText.\n\n---\n\n## Chapter 1\n"
	a := doc(models.ParsedFile{Name: "annual_report.md", Language: "markdown", Content: src})

	pages, err := Paginate(a, conv.Convert)
	require.NoError(t, err)

	require.Len(t, pages, 3)
	assert.Contains(t, pages[0].HTML, "<h1>Annual Report</h1>")
	assert.Contains(t, pages[1].HTML, "<h2>Executive Summary</h2>")
	assert.Equal(t, "<h2>Chapter 1</h2>", strings.TrimSpace(pages[2].HTML))
}

func TestPaginate_ConverterErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	failing := func(string) (string, error) { return "", boom }

	t.Run("single file", func(t *testing.T) {
		_, err := Paginate(doc(models.ParsedFile{Name: "a.md", Language: "markdown", Content: "x"}), failing)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("multi file", func(t *testing.T) {
		_, err := Paginate(doc(
			models.ParsedFile{Name: "a.html", Language: "html", Content: "<p>a</p>"},
			models.ParsedFile{Name: "b.md", Language: "markdown", Content: "b"},
		), failing)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("html only never calls converter", func(t *testing.T) {
		pages, err := Paginate(doc(models.ParsedFile{Name: "a.html", Language: "html", Content: "<p>a</p>"}), failing)
		require.NoError(t, err)
		assert.Len(t, pages, 1)
	})
}
