package session

import (
	"testing"
	"time"

	"github.com/itsmenuma/typing-tutor/internal/model"
)

func TestCountdownExpiresOnce(t *testing.T) {
	start := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	now := start
	s := New("some long target text that will not be finished", true, model.ModeTimed)
	s.SetClock(func() time.Time { return now })
	s.Start()

	c := NewCountdown(s, 3)
	for i := 0; i < 3; i++ {
		now = now.Add(time.Second)
		c.Tick()
	}
	if !c.Expired() {
		t.Fatalf("expected countdown expired after 3 ticks")
	}
	if s.State() != StateTimedOut {
		t.Fatalf("expected session timed out, got state %d", s.State())
	}
	elapsed := s.Elapsed()

	// Further ticks must not move the clock or re-complete the session.
	now = now.Add(5 * time.Second)
	remaining, expired := c.Tick()
	if remaining != 0 || !expired {
		t.Fatalf("expected stopped countdown, got remaining=%d expired=%v", remaining, expired)
	}
	if s.Elapsed() != elapsed {
		t.Fatalf("expired countdown moved the session end time")
	}
}

func TestCountdownStopPreventsExpiry(t *testing.T) {
	s := New("target", true, model.ModeTimed)
	s.Start()
	c := NewCountdown(s, 2)
	c.Tick()
	c.Stop()
	c.Tick()
	c.Tick()
	if c.Expired() {
		t.Fatalf("stopped countdown expired")
	}
	if s.State() != StateRunning {
		t.Fatalf("stopped countdown completed the session")
	}
}

func TestCountdownManualSubmitBeforeExpiry(t *testing.T) {
	s := New("target text", true, model.ModeTimed)
	s.Start()
	c := NewCountdown(s, 1)
	s.ForceComplete(ReasonManual)
	c.Tick()
	if s.State() != StateCompleted {
		t.Fatalf("timer expiry overrode manual completion, state %d", s.State())
	}
}
