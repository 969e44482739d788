package services

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/xuri/excelize/v2"
	"github.com/yuin/goldmark"
)

// ErrUnsupportedFormat is returned for file extensions with no reader.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Extractor converts uploaded file bytes into plain text, dispatching on the
// file extension. No OCR, no layout awareness.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the plain text of the file. Unknown extensions fail with
// ErrUnsupportedFormat.
func (e *Extractor) Extract(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return e.extractPDF(data)
	case ".txt":
		return string(data), nil
	case ".md":
		return e.extractMarkdown(data)
	case ".docx":
		return e.extractDOCX(data)
	case ".xlsx":
		return e.extractXLSX(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// extractPDF concatenates the plain text of every page.
func (e *Extractor) extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to create PDF reader: %w", err)
	}

	var text strings.Builder
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		fonts := make(map[string]*pdf.Font)
		pageText, err := page.GetPlainText(fonts)
		if err != nil {
			// Skip unreadable pages rather than failing the whole document
			continue
		}
		text.WriteString(pageText)
	}

	return text.String(), nil
}

// extractMarkdown renders the markdown to HTML and strips it back to text,
// which drops link targets and formatting markers but keeps all prose.
func (e *Extractor) extractMarkdown(data []byte) (string, error) {
	var html bytes.Buffer
	if err := goldmark.Convert(data, &html); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(&html)
	if err != nil {
		return "", fmt.Errorf("failed to parse rendered markdown: %w", err)
	}
	return doc.Text(), nil
}

// extractDOCX pulls the text runs out of the document body.
func (e *Extractor) extractDOCX(data []byte) (string, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read docx: %w", err)
	}
	defer r.Close()

	return extractTextRuns(r.Editable().GetContent(), "<w:t", "</w:t>"), nil
}

// extractXLSX renders each sheet as a header line plus tab-joined rows.
func (e *Extractor) extractXLSX(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	var text strings.Builder
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			continue
		}
		text.WriteString(fmt.Sprintf("Sheet: %s\n", sheetName))
		for _, row := range rows {
			text.WriteString(strings.Join(row, "\t"))
			text.WriteString("\n")
		}
	}
	return text.String(), nil
}

// extractTextRuns collects the content of every openTag...closeTag pair in an
// OOXML body. openTag is matched as a prefix so attributes are tolerated.
func extractTextRuns(xmlContent, openTag, closeTag string) string {
	var text strings.Builder
	rest := xmlContent
	for {
		start := strings.Index(rest, openTag)
		if start < 0 {
			break
		}
		rest = rest[start+len(openTag):]

		// Reject longer tag names sharing the prefix, e.g. <w:tbl>
		if rest == "" || (rest[0] != '>' && rest[0] != ' ' && rest[0] != '/') {
			continue
		}

		// Skip past the end of the opening tag, attributes included
		gt := strings.Index(rest, ">")
		if gt < 0 {
			break
		}
		// Self-closing run, no text
		if strings.HasSuffix(rest[:gt], "/") {
			rest = rest[gt+1:]
			continue
		}
		rest = rest[gt+1:]

		end := strings.Index(rest, closeTag)
		if end < 0 {
			break
		}
		text.WriteString(rest[:end])
		text.WriteString(" ")
		rest = rest[end+len(closeTag):]
	}
	return strings.TrimSpace(text.String())
}
