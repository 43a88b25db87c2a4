package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/itsmenuma/typing-tutor/internal/model"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if cerr := st.Close(); cerr != nil {
			t.Errorf("failed to close store: %v", cerr)
		}
	})
	return st
}

func attemptAt(username string, endedAt time.Time, cpm int) model.AttemptRecord {
	return model.AttemptRecord{
		StartedAt:   endedAt.Add(-time.Minute),
		EndedAt:     endedAt,
		Username:    username,
		Difficulty:  model.Easy,
		Mode:        model.ModeParagraph,
		CPM:         cpm,
		WPM:         cpm / 5,
		Accuracy:    95,
		Mistakes:    2,
		TypedChars:  cpm,
		TargetChars: cpm,
		DurationMs:  60_000,
	}
}

func TestInsertAndListAttempts(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

	for i, cpm := range []int{40, 50, 60} {
		if _, err := st.InsertAttempt(ctx, attemptAt("ann", base.Add(time.Duration(i)*time.Hour), cpm)); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}
	if _, err := st.InsertAttempt(ctx, attemptAt("bob", base, 70)); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	attempts, err := st.ListAttempts(ctx, model.HistoryFilter{Username: "ann"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(attempts) != 3 {
		t.Fatalf("expected 3 attempts for ann, got %d", len(attempts))
	}
	if attempts[0].CPM != 40 || attempts[2].CPM != 60 {
		t.Fatalf("expected oldest-first order, got %d..%d", attempts[0].CPM, attempts[2].CPM)
	}
	if attempts[0].Difficulty != model.Easy || attempts[0].Mode != model.ModeParagraph {
		t.Fatalf("round-trip lost enum fields: %+v", attempts[0])
	}
}

func TestListAttemptsFilters(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if _, err := st.InsertAttempt(ctx, attemptAt("ann", base.Add(time.Duration(i)*time.Hour), 40+i)); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	since := base.Add(90 * time.Minute)
	attempts, err := st.ListAttempts(ctx, model.HistoryFilter{Since: &since})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(attempts) != 3 {
		t.Fatalf("expected 3 attempts since cutoff, got %d", len(attempts))
	}

	attempts, err = st.ListAttempts(ctx, model.HistoryFilter{Last: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(attempts) != 2 || attempts[1].CPM != 44 {
		t.Fatalf("expected last 2 attempts ending at cpm 44, got %+v", attempts)
	}
}
