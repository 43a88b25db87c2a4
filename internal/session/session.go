// Package session implements the typing session state machine.
package session

import (
	"time"

	"github.com/itsmenuma/typing-tutor/internal/compare"
	"github.com/itsmenuma/typing-tutor/internal/metrics"
	"github.com/itsmenuma/typing-tutor/internal/model"
)

// State is a lifecycle phase of a session.
type State int

// Session states. Completed, Cancelled, and TimedOut are terminal.
const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateCancelled
	StateTimedOut
)

// Reason explains why a session was forced to complete.
type Reason int

// Completion reasons.
const (
	ReasonFinished Reason = iota
	ReasonManual
	ReasonTimeout
)

// Session tracks one typing attempt against a fixed target text. The
// target never changes after construction; input grows or shrinks only
// through OnCharacter and OnBackspace.
type Session struct {
	target        []rune
	input         []rune
	mistakes      int
	caseSensitive bool
	mode          model.Mode

	state     State
	startedAt time.Time
	endedAt   time.Time

	now func() time.Time
}

// New constructs an idle session for the given target text.
func New(target string, caseSensitive bool, mode model.Mode) *Session {
	return &Session{
		target:        []rune(target),
		caseSensitive: caseSensitive,
		mode:          mode,
		now:           time.Now,
	}
}

// SetClock overrides the wall clock, for tests.
func (s *Session) SetClock(now func() time.Time) {
	s.now = now
}

// Start transitions Idle -> Running and records the start timestamp.
func (s *Session) Start() {
	if s.state != StateIdle {
		return
	}
	s.state = StateRunning
	s.startedAt = s.now()
}

// OnCharacter appends a typed rune, updates the mistake count, and
// advances the cursor. It reports whether the final target position was
// just filled in paragraph mode; the caller finalizes after the last
// character has been rendered.
func (s *Session) OnCharacter(r rune) (finished bool) {
	if s.state != StateRunning || len(s.input) >= len(s.target) {
		return false
	}
	pos := len(s.input)
	s.input = append(s.input, r)
	if !compare.Match(s.target[pos], r, s.caseSensitive) {
		s.mistakes++
	}
	return s.mode == model.ModeParagraph && len(s.input) == len(s.target)
}

// OnBackspace removes the last typed rune and recomputes the mistake
// count from scratch. The total recompute keeps the count exact under
// arbitrary backspace/retype sequences.
func (s *Session) OnBackspace() {
	if s.state != StateRunning || len(s.input) == 0 {
		return
	}
	s.input = s.input[:len(s.input)-1]
	s.mistakes = compare.CountMismatches(s.target, s.input, len(s.input), s.caseSensitive)
}

// ForceComplete moves the session into a terminal state. ReasonTimeout
// maps to TimedOut, everything else to Completed. Calling it on an
// already-terminal session is a no-op, which makes the manual-submit vs
// timer-expiry race safe.
func (s *Session) ForceComplete(reason Reason) {
	if s.state != StateRunning {
		return
	}
	if reason == ReasonTimeout {
		s.state = StateTimedOut
	} else {
		s.state = StateCompleted
	}
	s.endedAt = s.now()
}

// Cancel aborts the session without recording stats.
func (s *Session) Cancel() {
	if s.state != StateRunning && s.state != StateIdle {
		return
	}
	s.state = StateCancelled
	s.endedAt = s.now()
}

// State returns the current lifecycle phase.
func (s *Session) State() State { return s.state }

// Terminal reports whether the session reached a terminal state.
func (s *Session) Terminal() bool {
	return s.state == StateCompleted || s.state == StateCancelled || s.state == StateTimedOut
}

// Cursor returns the number of typed positions.
func (s *Session) Cursor() int { return len(s.input) }

// Mistakes returns the current mismatch count.
func (s *Session) Mistakes() int { return s.mistakes }

// Input returns the typed text with original casing.
func (s *Session) Input() string { return string(s.input) }

// Target returns the immutable target text.
func (s *Session) Target() string { return string(s.target) }

// TargetLen returns the target length in runes.
func (s *Session) TargetLen() int { return len(s.target) }

// Mode returns the practice mode.
func (s *Session) Mode() model.Mode { return s.mode }

// CaseSensitive reports the active case mode.
func (s *Session) CaseSensitive() bool { return s.caseSensitive }

// StartedAt returns the start timestamp (zero before Start).
func (s *Session) StartedAt() time.Time { return s.startedAt }

// EndedAt returns the completion timestamp (zero until terminal).
func (s *Session) EndedAt() time.Time { return s.endedAt }

// Elapsed returns time since start, frozen at completion for terminal
// sessions.
func (s *Session) Elapsed() time.Duration {
	if s.state == StateIdle || s.startedAt.IsZero() {
		return 0
	}
	if s.Terminal() {
		return s.endedAt.Sub(s.startedAt)
	}
	return s.now().Sub(s.startedAt)
}

// Stats derives the current metrics snapshot. Pure function of session
// state and the clock; two calls with no state change are identical.
func (s *Session) Stats() metrics.Snapshot {
	return metrics.Compute(len(s.input), s.mistakes, s.Elapsed(), len(s.target))
}

// Classify returns the per-position view model for rendering.
func (s *Session) Classify() []compare.Cell {
	return compare.Classify(s.target, s.input, len(s.input), s.caseSensitive)
}
