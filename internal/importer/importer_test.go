package importer

import (
	"strings"
	"testing"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"doc.txt", false},
		{"doc.md", false},
		{"doc.markdown", false},
		{"doc.csv", false},
		{"doc.html", false},
		{"doc.htm", false},
		{"doc.pdf", false},
		{"doc.docx", false},
		{"DOC.TXT", false},
		{"doc.exe", true},
		{"doc", true},
	}

	for _, tt := range tests {
		_, err := ForFile(tt.filename)
		if (err != nil) != tt.wantErr {
			t.Errorf("ForFile(%q): expected error=%v, got %v", tt.filename, tt.wantErr, err)
		}
	}
}

func TestTextImporter_Paragraphs(t *testing.T) {
	input := "First line.\nSecond line.\n\n\nNew paragraph.\n"
	out, err := (&TextImporter{}).Import(strings.NewReader(input), "doc.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "First line.\nSecond line.\n\nNew paragraph."
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestMarkdownImporter_Passthrough(t *testing.T) {
	input := "# Title\n\nBody.\n\n\n"
	out, err := (&MarkdownImporter{}).Import(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "# Title\n\nBody.\n" {
		t.Errorf("expected trailing newlines collapsed, got %q", out)
	}
}

func TestCSVImporter_Table(t *testing.T) {
	input := "name,value\nalpha,1\nbeta,2\n"
	out, err := (&CSVImporter{}).Import(strings.NewReader(input), "doc.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "| name | value |") {
		t.Errorf("expected header row, got %q", out)
	}
	if !strings.Contains(out, "| --- | --- |") {
		t.Errorf("expected separator row, got %q", out)
	}
	if !strings.Contains(out, "| beta | 2 |") {
		t.Errorf("expected data row, got %q", out)
	}
}

func TestHTMLImporter_HeadingsAndText(t *testing.T) {
	input := `<html><head><script>ignored()</script></head><body><h1>Title</h1><p>Hello world.</p></body></html>`
	out, err := (&HTMLImporter{}).Import(strings.NewReader(input), "doc.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "# Title") {
		t.Errorf("expected markdown heading, got %q", out)
	}
	if !strings.Contains(out, "Hello world.") {
		t.Errorf("expected paragraph text, got %q", out)
	}
	if strings.Contains(out, "ignored") {
		t.Errorf("expected script content skipped, got %q", out)
	}
}

func TestHeading_LevelClamping(t *testing.T) {
	if got := heading(0, "T"); got != "# T" {
		t.Errorf("expected level clamp to 1, got %q", got)
	}
	if got := heading(9, "T"); got != "###### T" {
		t.Errorf("expected level clamp to 6, got %q", got)
	}
}
