package history

import (
	"strings"
	"testing"
	"time"

	"github.com/itsmenuma/typing-tutor/internal/model"
)

func sampleAttempts() []model.AttemptRecord {
	base := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	return []model.AttemptRecord{
		{EndedAt: base, Difficulty: model.Easy, Mode: model.ModeParagraph, CPM: 40, WPM: 8, Accuracy: 90, Mistakes: 4},
		{EndedAt: base.Add(time.Hour), Difficulty: model.Easy, Mode: model.ModeParagraph, CPM: 60, WPM: 12, Accuracy: 96, Mistakes: 2},
	}
}

func TestRenderSummary(t *testing.T) {
	var b strings.Builder
	if err := RenderSummary(&b, sampleAttempts()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := b.String()
	for _, want := range []string{"Attempts: 2", "Best Speed: 60 cpm", "Avg Accuracy: 93%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var b strings.Builder
	if err := RenderSummary(&b, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(b.String(), "No attempts") {
		t.Fatalf("expected empty notice, got %q", b.String())
	}
}

func TestRenderAttemptsTable(t *testing.T) {
	var b strings.Builder
	if err := RenderAttempts(&b, sampleAttempts()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "Previous Attempts") {
		t.Fatalf("missing table title:\n%s", out)
	}
	if !strings.Contains(out, "96%") {
		t.Fatalf("missing accuracy cell:\n%s", out)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %.1f, got %.1f", i, want[i], got[i])
		}
	}
}

func TestSparklineFlatSeries(t *testing.T) {
	got := Sparkline([]float64{5, 5, 5})
	if len(got) != 3 {
		t.Fatalf("expected 3 chars, got %q", got)
	}
	if got[0] != got[1] || got[1] != got[2] {
		t.Fatalf("flat series should render uniformly, got %q", got)
	}
}

func TestResample(t *testing.T) {
	got := Resample([]float64{1, 2, 3, 4, 5, 6}, 3)
	want := []float64{1.5, 3.5, 5.5}
	if len(got) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bucket %d: expected %.1f, got %.1f", i, want[i], got[i])
		}
	}
	passthrough := Resample([]float64{1, 2}, 10)
	if len(passthrough) != 2 {
		t.Fatalf("short series should pass through, got %d values", len(passthrough))
	}
}
