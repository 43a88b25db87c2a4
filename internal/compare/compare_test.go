package compare

import "testing"

func TestMatchCaseModes(t *testing.T) {
	if !Match('A', 'a', false) {
		t.Fatalf("expected case-insensitive match for A/a")
	}
	if Match('A', 'a', true) {
		t.Fatalf("expected case-sensitive mismatch for A/a")
	}
	if !Match('A', 'A', true) {
		t.Fatalf("expected exact match for A/A")
	}
}

func TestCountMismatches(t *testing.T) {
	target := []rune("cat")
	input := []rune("cax")
	if got := CountMismatches(target, input, 3, true); got != 1 {
		t.Fatalf("expected 1 mismatch, got %d", got)
	}
	if got := CountMismatches(target, input, 2, true); got != 0 {
		t.Fatalf("expected 0 mismatches below cursor 2, got %d", got)
	}
	if got := CountMismatches(target, nil, 0, true); got != 0 {
		t.Fatalf("expected 0 mismatches for empty input, got %d", got)
	}
}

func TestClassifyStatuses(t *testing.T) {
	target := []rune("abc")
	input := []rune("ax")
	cells := Classify(target, input, 2, true)
	if len(cells) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(cells))
	}
	want := []Status{StatusCorrect, StatusIncorrect, StatusCurrent}
	for i, status := range want {
		if cells[i].Status != status {
			t.Fatalf("cell %d: expected status %d, got %d", i, status, cells[i].Status)
		}
	}
}

func TestClassifyPendingTail(t *testing.T) {
	cells := Classify([]rune("abcd"), []rune("a"), 1, true)
	if cells[1].Status != StatusCurrent {
		t.Fatalf("expected cursor position current, got %d", cells[1].Status)
	}
	for i := 2; i < 4; i++ {
		if cells[i].Status != StatusPending {
			t.Fatalf("cell %d: expected pending, got %d", i, cells[i].Status)
		}
	}
}

func TestClassifyFoldsCase(t *testing.T) {
	cells := Classify([]rune("Go"), []rune("gO"), 2, false)
	for i, cell := range cells {
		if cell.Status != StatusCorrect {
			t.Fatalf("cell %d: expected correct under folding, got %d", i, cell.Status)
		}
	}
}
