// Package paragraph loads local paragraph sources.
package paragraph

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"
)

// Picker selects a random paragraph from a local file, one candidate
// per non-empty line.
type Picker struct {
	rnd *rand.Rand
}

// NewPicker returns a Picker seeded with the current time.
func NewPicker() *Picker {
	return &Picker{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// FromFile reads candidate paragraphs from path and returns one at
// random.
func (p *Picker) FromFile(path string) (string, error) {
	paragraphs, err := LoadFile(path)
	if err != nil {
		return "", err
	}
	return paragraphs[p.rnd.Intn(len(paragraphs))], nil
}

// LoadFile reads one paragraph per non-empty line from path.
func LoadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only paragraph file.
			_ = cerr
		}
	}()

	var paragraphs []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		paragraphs = append(paragraphs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(paragraphs) == 0 {
		return nil, fmt.Errorf("no paragraphs found in %s", path)
	}
	return paragraphs, nil
}
