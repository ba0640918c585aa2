// Package importer converts existing prose documents (.md, .txt, .csv,
// .html, .docx, .pdf) into markdown content an author can then sprinkle
// field tags into. Import is lossy by design: it recovers headings and
// paragraph text, not layout.
package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Importer converts raw document bytes into markdown content.
type Importer interface {
	Import(r io.Reader, filename string) (string, error)
}

// SupportedExtensions lists file extensions this service can import.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate importer for a filename.
func ForFile(filename string) (Importer, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return &TextImporter{}, nil
	case ".md", ".markdown":
		return &MarkdownImporter{}, nil
	case ".csv":
		return &CSVImporter{}, nil
	case ".html", ".htm":
		return &HTMLImporter{}, nil
	case ".pdf":
		return &PDFImporter{}, nil
	case ".docx":
		return &DOCXImporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(filename))
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// heading renders a markdown heading line for levels 1-6.
func heading(level int, title string) string {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return strings.Repeat("#", level) + " " + title
}
