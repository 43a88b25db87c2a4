package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var statPairs = []Pair{
	{Label: "Typing Speed", Value: "55 cpm"},
	{Label: "Accuracy", Value: "96%"},
}

func TestWriteTXT(t *testing.T) {
	var b strings.Builder
	if err := WriteTXT(&b, statPairs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Typing Speed: 55 cpm\nAccuracy: 96%\n"
	if b.String() != want {
		t.Fatalf("unexpected txt output: %q", b.String())
	}
}

func TestWriteCSV(t *testing.T) {
	var b strings.Builder
	if err := WriteCSV(&b, statPairs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Label,Value" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "Typing Speed,55 cpm" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}

func TestSavePicksFormatByExtension(t *testing.T) {
	dir := t.TempDir()

	txtPath := filepath.Join(dir, "stats.txt")
	if err := Save(txtPath, statPairs); err != nil {
		t.Fatalf("txt save failed: %v", err)
	}
	txt, err := os.ReadFile(txtPath)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if !strings.Contains(string(txt), "Accuracy: 96%") {
		t.Fatalf("txt content missing pair: %q", txt)
	}

	csvPath := filepath.Join(dir, "stats.csv")
	if err := Save(csvPath, statPairs); err != nil {
		t.Fatalf("csv save failed: %v", err)
	}
	csvData, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if !strings.HasPrefix(string(csvData), "Label,Value") {
		t.Fatalf("csv content missing header: %q", csvData)
	}
}
