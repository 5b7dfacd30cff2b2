// Package attachment loads local files so they can be sent with a prompt.
package attachment

import (
	"archive/zip"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/maruel/natural"
	"github.com/nguyenthenguyen/docx"
	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"

	"artifact-chat/internal/models"
)

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// Load reads a file from disk. Images become data URLs, office documents and
// PDFs are reduced to plain text, anything else must be UTF-8 text.
func Load(filePath string) (models.Attachment, error) {
	name := filepath.Base(filePath)
	ext := strings.ToLower(filepath.Ext(filePath))

	if mimeType, ok := imageTypes[ext]; ok {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return models.Attachment{}, err
		}
		return models.Attachment{
			Name:     name,
			Kind:     models.AttachmentImage,
			MimeType: mimeType,
			DataURL:  "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data),
		}, nil
	}

	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = parsePDF(filePath)
	case ".docx":
		text, err = parseDOCX(filePath)
	case ".pptx":
		text, err = parsePPTX(filePath)
	case ".xlsx":
		text, err = parseXLSX(filePath)
	case ".ods":
		text, err = parseODS(filePath)
	default:
		text, err = parseText(filePath)
	}
	if err != nil {
		return models.Attachment{}, fmt.Errorf("failed to load attachment %s: %w", name, err)
	}

	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		mimeType = "text/plain"
	}
	return models.Attachment{
		Name:     name,
		Kind:     models.AttachmentFile,
		MimeType: mimeType,
		Content:  text,
	}, nil
}

// LoadAll loads every path, stopping at the first failure.
func LoadAll(paths []string) ([]models.Attachment, error) {
	attachments := make([]models.Attachment, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		a, err := Load(p)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}
	return attachments, nil
}

// Format renders a text attachment the way it is embedded in the prompt.
func Format(a models.Attachment) string {
	return fmt.Sprintf("\n\n"+models.AttachmentHeader, a.Name, a.Content)
}

func parsePDF(filePath string) (string, error) {
	f, reader, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var text strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		text.WriteString(strings.TrimSpace(pageText))
		text.WriteString("\n\n")
	}
	return strings.TrimSpace(text.String()), nil
}

func parseDOCX(filePath string) (string, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	var paragraphs []string
	for _, p := range strings.Split(r.Editable().GetContent(), "\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return strings.Join(paragraphs, "\n"), nil
}

func parsePPTX(filePath string) (string, error) {
	f, err := zip.OpenReader(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var slides []*zip.File
	for _, file := range f.File {
		if strings.HasPrefix(file.Name, "ppt/slides/slide") && strings.HasSuffix(file.Name, ".xml") {
			slides = append(slides, file)
		}
	}
	sort.Slice(slides, func(i, j int) bool {
		return natural.Less(slides[i].Name, slides[j].Name)
	})

	var text strings.Builder
	for i, file := range slides {
		rc, err := file.Open()
		if err != nil {
			return "", err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&text, "## Slide %d\n%s\n\n", i+1, strings.TrimSpace(extractTextFromXML(string(data))))
	}
	return strings.TrimSpace(text.String()), nil
}

func parseXLSX(filePath string) (string, error) {
	f, err := xlsx.OpenFile(filePath)
	if err != nil {
		return "", err
	}

	var text strings.Builder
	for _, sheet := range f.Sheets {
		fmt.Fprintf(&text, "## Sheet: %s\n", sheet.Name)
		for _, row := range sheet.Rows {
			cells := make([]string, 0, len(row.Cells))
			for _, cell := range row.Cells {
				cells = append(cells, cell.String())
			}
			text.WriteString(strings.Join(cells, "\t"))
			text.WriteString("\n")
		}
	}
	return strings.TrimSpace(text.String()), nil
}

func parseODS(filePath string) (string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var text strings.Builder
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return "", fmt.Errorf("sheet %s: %w", sheetName, err)
		}
		fmt.Fprintf(&text, "## Sheet: %s\n", sheetName)
		for _, row := range rows {
			text.WriteString(strings.Join(row, "\t"))
			text.WriteString("\n")
		}
	}
	return strings.TrimSpace(text.String()), nil
}

func parseText(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("unsupported binary file format: %s", filepath.Ext(filePath))
	}
	return string(data), nil
}

// extractTextFromXML collects the <a:t> text runs of a slide.
func extractTextFromXML(xmlContent string) string {
	var text strings.Builder
	parts := strings.Split(xmlContent, "<a:t>")
	for i, part := range parts {
		if i == 0 {
			continue
		}
		endIdx := strings.Index(part, "</a:t>")
		if endIdx >= 0 {
			text.WriteString(part[:endIdx] + " ")
		}
	}
	return text.String()
}
