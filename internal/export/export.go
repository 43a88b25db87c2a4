// Package export writes displayed stats to plain-text or CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Pair is one labeled stat value.
type Pair struct {
	Label string
	Value string
}

// WriteTXT renders pairs as `Label: Value` lines.
func WriteTXT(w io.Writer, pairs []Pair) error {
	for _, pair := range pairs {
		if _, err := fmt.Fprintf(w, "%s: %s\n", pair.Label, pair.Value); err != nil {
			return fmt.Errorf("failed to write stats line: %w", err)
		}
	}
	return nil
}

// WriteCSV renders pairs as a `Label,Value` header plus one row per pair.
func WriteCSV(w io.Writer, pairs []Pair) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Label", "Value"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, pair := range pairs {
		if err := cw.Write([]string{pair.Label, pair.Value}); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// Save writes pairs to path, choosing the format by extension. Unknown
// extensions fall back to the plain-text format.
func Save(path string, pairs []Pair) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close after write errors.
			_ = cerr
		}
	}()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		err = WriteCSV(file, pairs)
	} else {
		err = WriteTXT(file, pairs)
	}
	if err != nil {
		return err
	}
	return file.Close()
}
