package markup

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitFrontMatter_Present(t *testing.T) {
	content := "---\ntitle: Daily QA\nversion: 3\ntags:\n  - qa\n  - linac\n---\n# Body\n"
	meta, body, err := SplitFrontMatter(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Title != "Daily QA" {
		t.Errorf("expected title %q, got %q", "Daily QA", meta.Title)
	}
	if meta.Version != 3 {
		t.Errorf("expected version 3, got %d", meta.Version)
	}
	if len(meta.Tags) != 2 || meta.Tags[0] != "qa" {
		t.Errorf("expected tags [qa linac], got %v", meta.Tags)
	}
	if !strings.HasPrefix(body, "# Body") {
		t.Errorf("expected body to start with heading, got %q", body)
	}
}

func TestSplitFrontMatter_Absent(t *testing.T) {
	content := "# Just a document\n"
	meta, body, err := SplitFrontMatter(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(meta, Meta{}) && len(meta.Tags) != 0 {
		t.Errorf("expected zero meta, got %+v", meta)
	}
	if body != content {
		t.Errorf("expected content unchanged, got %q", body)
	}
}

func TestSplitFrontMatter_UnclosedFence(t *testing.T) {
	content := "---\ntitle: Oops\n# Body without closing fence\n"
	_, body, err := SplitFrontMatter(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != content {
		t.Errorf("expected content unchanged for unclosed fence, got %q", body)
	}
}

func TestSplitFrontMatter_MalformedYAML(t *testing.T) {
	content := "---\ntitle: [unbalanced\n---\nBody\n"
	_, body, err := SplitFrontMatter(content)
	if err == nil {
		t.Fatal("expected YAML error, got nil")
	}
	if body != content {
		t.Errorf("expected original content on error, got %q", body)
	}
}
