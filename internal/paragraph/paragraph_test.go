package paragraph

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "paragraphs.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoadFileSkipsBlankLines(t *testing.T) {
	path := writeFile(t, "first paragraph\n\n  \nsecond paragraph\n")
	paragraphs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paragraphs) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(paragraphs))
	}
	if paragraphs[1] != "second paragraph" {
		t.Fatalf("unexpected paragraph: %q", paragraphs[1])
	}
}

func TestLoadFileEmpty(t *testing.T) {
	path := writeFile(t, "\n\n")
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected error for empty paragraph file")
	}
}

func TestFromFilePicksKnownLine(t *testing.T) {
	path := writeFile(t, "only line\n")
	got, err := NewPicker().FromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "only line" {
		t.Fatalf("unexpected pick: %q", got)
	}
}
