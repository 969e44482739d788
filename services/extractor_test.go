package services

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExtractPlainText(t *testing.T) {
	extractor := NewExtractor()

	text, err := extractor.Extract("notes.txt", []byte("hello world"))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if text != "hello world" {
		t.Errorf("txt extraction should be a passthrough, got %q", text)
	}
}

func TestExtractMarkdown(t *testing.T) {
	extractor := NewExtractor()
	md := "# Operating Systems\n\nA process is a program in execution.\n\n- scheduling\n- paging\n"

	text, err := extractor.Extract("notes.md", []byte(md))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	for _, want := range []string{"Operating Systems", "program in execution", "scheduling", "paging"} {
		if !strings.Contains(text, want) {
			t.Errorf("markdown text missing %q in %q", want, text)
		}
	}
	if strings.Contains(text, "#") || strings.Contains(text, "<h1>") {
		t.Errorf("markdown markers should be stripped, got %q", text)
	}
}

func TestExtractXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if err := f.SetCellValue(sheet, "A1", "Topic"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue(sheet, "B1", "Hours"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue(sheet, "A2", "Deadlocks"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue(sheet, "B2", "6"); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("failed to build workbook: %v", err)
	}

	extractor := NewExtractor()
	text, err := extractor.Extract("syllabus.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !strings.Contains(text, "Sheet: "+sheet) {
		t.Errorf("missing sheet header in %q", text)
	}
	if !strings.Contains(text, "Topic\tHours") || !strings.Contains(text, "Deadlocks\t6") {
		t.Errorf("missing tab-joined rows in %q", text)
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	extractor := NewExtractor()

	if _, err := extractor.Extract("slides.pptx", []byte("x")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := extractor.Extract("noextension", []byte("x")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat for missing extension, got %v", err)
	}
}

func TestExtractTextRuns(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want string
	}{
		{
			"plain runs",
			`<w:p><w:r><w:t>Hello</w:t></w:r><w:r><w:t>world</w:t></w:r></w:p>`,
			"Hello world",
		},
		{
			"run with attributes",
			`<w:t xml:space="preserve">spaced text</w:t>`,
			"spaced text",
		},
		{
			"ignores longer tag names",
			`<w:tbl><w:t>inside table</w:t></w:tbl>`,
			"inside table",
		},
		{
			"self-closing run",
			`<w:t/><w:t>after</w:t>`,
			"after",
		},
		{
			"no runs",
			`<w:p><w:r></w:r></w:p>`,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractTextRuns(tt.xml, "<w:t", "</w:t>")
			if got != tt.want {
				t.Errorf("extractTextRuns(%q) = %q, want %q", tt.xml, got, tt.want)
			}
		})
	}
}
