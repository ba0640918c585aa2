package markup

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Meta is optional document metadata carried in a leading YAML front-matter
// block delimited by `---` lines.
type Meta struct {
	Title   string   `yaml:"title" json:"title,omitempty"`
	Version int      `yaml:"version" json:"version,omitempty"`
	Tags    []string `yaml:"tags" json:"tags,omitempty"`
}

// SplitFrontMatter separates an optional front-matter block from the
// document body. Documents without front matter return a zero Meta and the
// content unchanged. A malformed block returns the original content along
// with the YAML error so callers can log it; the document stays viewable.
func SplitFrontMatter(content string) (Meta, string, error) {
	var meta Meta

	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != "---" {
		return meta, content, nil
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == "---" {
			closing = i
			break
		}
	}
	if closing < 0 {
		return meta, content, nil
	}

	block := strings.Join(lines[1:closing], "\n")
	body := strings.Join(lines[closing+1:], "\n")

	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return Meta{}, content, err
	}
	return meta, body, nil
}
