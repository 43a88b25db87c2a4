package metrics

import (
	"testing"
	"time"
)

func TestComputeBasic(t *testing.T) {
	snap := Compute(120, 6, time.Minute, 200)
	if snap.CPM != 120 {
		t.Fatalf("expected 120 cpm, got %d", snap.CPM)
	}
	if snap.WPM != 24 {
		t.Fatalf("expected 24 wpm, got %d", snap.WPM)
	}
	if snap.Accuracy != 95 {
		t.Fatalf("expected 95%% accuracy, got %d", snap.Accuracy)
	}
	if snap.Progress != 60 {
		t.Fatalf("expected 60%% progress, got %d", snap.Progress)
	}
}

func TestComputeZeroElapsed(t *testing.T) {
	snap := Compute(10, 0, 0, 100)
	if snap.CPM != 0 || snap.WPM != 0 {
		t.Fatalf("expected zero speed with no elapsed time, got cpm=%d wpm=%d", snap.CPM, snap.WPM)
	}
}

func TestComputeZeroTyped(t *testing.T) {
	snap := Compute(0, 0, 30*time.Second, 100)
	if snap.Accuracy != 100 {
		t.Fatalf("expected 100%% accuracy before typing, got %d", snap.Accuracy)
	}
	if snap.Progress != 0 {
		t.Fatalf("expected 0%% progress, got %d", snap.Progress)
	}
}

func TestComputeRoundsAccuracy(t *testing.T) {
	// 2 of 3 typed positions correct rounds to 67.
	snap := Compute(3, 1, 3*time.Second, 3)
	if snap.Accuracy != 67 {
		t.Fatalf("expected 67%% accuracy, got %d", snap.Accuracy)
	}
}

func TestComputeIdempotent(t *testing.T) {
	a := Compute(42, 3, 17*time.Second, 80)
	b := Compute(42, 3, 17*time.Second, 80)
	if a != b {
		t.Fatalf("expected identical snapshots, got %+v vs %+v", a, b)
	}
}
