// Package orchestrator sequences the session lifecycle: acquire a
// paragraph, run the typing session, submit results, refresh the
// leaderboard.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/itsmenuma/typing-tutor/internal/backend"
	"github.com/itsmenuma/typing-tutor/internal/export"
	"github.com/itsmenuma/typing-tutor/internal/leaderboard"
	"github.com/itsmenuma/typing-tutor/internal/model"
	"github.com/itsmenuma/typing-tutor/internal/paragraph"
	"github.com/itsmenuma/typing-tutor/internal/session"
	"github.com/itsmenuma/typing-tutor/internal/store"
)

// Validation errors, recovered locally and shown as transient messages.
var (
	ErrEmptyUsername  = errors.New("enter a username first")
	ErrEmptyInput     = errors.New("nothing typed yet")
	ErrIncomplete     = errors.New("complete the paragraph first")
	ErrSubmitInFlight = errors.New("submission already in progress")
	ErrNoSession      = errors.New("no active session")
	ErrPasteSuspected = errors.New("typed too fast, paste is not allowed")
)

// Paste heuristic thresholds, mirroring the backend's own check.
const (
	pasteMinChars     = 20
	pasteMinElapsedMs = 1000
)

// Orchestrator owns exactly one active session at a time. All state
// that older revisions kept in globals lives here explicitly.
type Orchestrator struct {
	cfg    model.Config
	runner backend.Runner
	store  *store.Store
	picker *paragraph.Picker
	logger *zap.Logger

	sess      *session.Session
	countdown *session.Countdown

	submitting bool
	submitted  bool
	statsBlock string

	clock func() time.Time
}

// New builds an orchestrator. The store may be nil when local history
// is disabled.
func New(cfg model.Config, runner backend.Runner, st *store.Store, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		cfg:    cfg,
		runner: runner,
		store:  st,
		picker: paragraph.NewPicker(),
		logger: logger,
	}
}

// Config returns the orchestrator's session settings.
func (o *Orchestrator) Config() model.Config { return o.cfg }

// SetClock overrides the wall clock of future sessions, for tests.
func (o *Orchestrator) SetClock(now func() time.Time) {
	o.clock = now
}

// SetUsername updates the username before a session starts.
func (o *Orchestrator) SetUsername(name string) {
	o.cfg.Username = name
}

// ValidateUsername rejects empty usernames before any session exists.
func (o *Orchestrator) ValidateUsername() error {
	if o.cfg.Username == "" {
		return ErrEmptyUsername
	}
	return nil
}

// AcquireText resolves the target paragraph: custom text verbatim, a
// random line from a local file, or a backend fetch. A backend
// ERROR response aborts before any session is created.
func (o *Orchestrator) AcquireText(ctx context.Context, customText, textFile string) (string, error) {
	if customText != "" {
		return customText, nil
	}
	if textFile != "" {
		text, err := o.picker.FromFile(textFile)
		if err != nil {
			return "", fmt.Errorf("failed to load paragraph file: %w", err)
		}
		return text, nil
	}
	text, err := o.runner.FetchParagraph(ctx, o.cfg.Difficulty)
	if err != nil {
		o.logger.Error("paragraph fetch failed", zap.Error(err))
		return "", err
	}
	return text, nil
}

// StartSession creates and starts the session (plus the countdown in
// timed mode). The username must already be validated.
func (o *Orchestrator) StartSession(target string) (*session.Session, *session.Countdown, error) {
	if err := o.ValidateUsername(); err != nil {
		return nil, nil, err
	}
	if target == "" {
		return nil, nil, fmt.Errorf("target text is empty")
	}
	o.sess = session.New(target, o.cfg.CaseSensitive, o.cfg.Mode)
	if o.clock != nil {
		o.sess.SetClock(o.clock)
	}
	o.countdown = nil
	o.submitting = false
	o.submitted = false
	o.statsBlock = ""
	o.sess.Start()
	if o.cfg.Mode == model.ModeTimed {
		o.countdown = session.NewCountdown(o.sess, o.cfg.DurationSeconds())
	}
	o.logger.Info("session started",
		zap.String("username", o.cfg.Username),
		zap.String("difficulty", string(o.cfg.Difficulty)),
		zap.String("mode", string(o.cfg.Mode)),
		zap.Int("target_chars", o.sess.TargetLen()),
	)
	return o.sess, o.countdown, nil
}

// Session returns the active session, nil when none is running.
func (o *Orchestrator) Session() *session.Session { return o.sess }

// Countdown returns the timed-mode controller, nil in paragraph mode.
func (o *Orchestrator) Countdown() *session.Countdown { return o.countdown }

// Submitted reports whether the active session was already submitted.
func (o *Orchestrator) Submitted() bool { return o.submitted }

// StatsBlock returns the backend's stats text from the last submission.
func (o *Orchestrator) StatsBlock() string { return o.statsBlock }

// Submit finalizes the session and sends the result to the backend.
// The in-flight guard is armed before the backend call, so a manual
// submit racing the timer's auto-submit cannot double-submit.
// Validation failures disarm the guard; the user can correct and retry.
func (o *Orchestrator) Submit(ctx context.Context, reason session.Reason) (string, error) {
	if o.sess == nil {
		return "", ErrNoSession
	}
	if o.submitting || o.submitted {
		return "", ErrSubmitInFlight
	}
	o.submitting = true

	if err := o.validateSubmission(reason); err != nil {
		o.submitting = false
		return "", err
	}

	o.sess.ForceComplete(reason)
	if o.countdown != nil {
		o.countdown.Stop()
	}

	snap := o.sess.Stats()
	result := backend.Result{
		Username:       o.cfg.Username,
		Difficulty:     o.cfg.Difficulty,
		CaseSensitive:  o.cfg.CaseSensitive,
		ElapsedSeconds: snap.ElapsedSeconds,
		Input:          o.sess.Input(),
		Target:         o.sess.Target(),
		Mode:           o.cfg.Mode,
	}
	if o.cfg.Mode == model.ModeTimed {
		result.DurationSeconds = o.cfg.DurationSeconds()
	}

	block, err := o.runner.Submit(ctx, result)
	if err != nil {
		o.logger.Error("submission failed", zap.Error(err))
		o.submitting = false
		return "", err
	}
	o.submitted = true
	o.submitting = false
	o.statsBlock = block
	o.recordAttempt(ctx)
	o.logger.Info("session submitted",
		zap.String("username", o.cfg.Username),
		zap.Int("cpm", snap.CPM),
		zap.Int("accuracy", snap.Accuracy),
	)
	return block, nil
}

func (o *Orchestrator) validateSubmission(reason session.Reason) error {
	if o.sess.Cursor() == 0 {
		return ErrEmptyInput
	}
	// Timed mode submits at any completion level; manual paragraph-mode
	// submissions honor the configured incomplete policy.
	if o.cfg.Mode == model.ModeParagraph &&
		reason == session.ReasonManual &&
		o.sess.Cursor() < o.sess.TargetLen() &&
		!o.cfg.AllowIncomplete {
		return ErrIncomplete
	}
	if o.sess.Cursor() > pasteMinChars &&
		o.sess.Elapsed().Milliseconds() < pasteMinElapsedMs {
		return ErrPasteSuspected
	}
	return nil
}

// recordAttempt stores the attempt in local history. Failures are
// logged, never surfaced; the submission itself already succeeded.
func (o *Orchestrator) recordAttempt(ctx context.Context) {
	if o.store == nil {
		return
	}
	if _, err := o.store.InsertAttempt(ctx, o.attemptRecord()); err != nil {
		o.logger.Warn("failed to record attempt", zap.Error(err))
	}
}

// Cancel aborts the session and stops the countdown synchronously, so
// no orphaned tick fires against a torn-down session.
func (o *Orchestrator) Cancel() {
	if o.countdown != nil {
		o.countdown.Stop()
	}
	if o.sess != nil {
		o.sess.Cancel()
	}
}

// Leaderboard fetches and ranks the leaderboard. It returns the top
// slice plus the current user's best entry and 1-based rank when the
// user is not inside the slice.
func (o *Orchestrator) Leaderboard(ctx context.Context) (leaderboard.Standings, error) {
	raw, err := o.runner.FetchLeaderboard(ctx, o.cfg.Difficulty, o.cfg.Username)
	if err != nil {
		o.logger.Error("leaderboard fetch failed", zap.Error(err))
		return leaderboard.Standings{}, err
	}
	ranked := leaderboard.Rank(leaderboard.ParseTable(raw, o.logger))
	topN := o.cfg.LeaderboardTop
	if topN <= 0 {
		topN = 10
	}
	standings := leaderboard.Standings{Top: leaderboard.Top(ranked, topN)}
	if entry, rank, ok := leaderboard.UserRank(ranked, o.cfg.Username); ok && rank > topN {
		standings.UserBest = entry
		standings.UserRank = rank
		standings.HasUser = true
	}
	return standings, nil
}

// StatPairs returns the displayed stats as label/value pairs for the
// export side channel.
func (o *Orchestrator) StatPairs() []export.Pair {
	if o.sess == nil {
		return nil
	}
	snap := o.sess.Stats()
	pairs := []export.Pair{
		{Label: "Username", Value: o.cfg.Username},
		{Label: "Difficulty", Value: string(o.cfg.Difficulty)},
		{Label: "Mode", Value: string(o.cfg.Mode)},
		{Label: "Typing Speed", Value: fmt.Sprintf("%d cpm", snap.CPM)},
		{Label: "WPM", Value: strconv.Itoa(snap.WPM)},
		{Label: "Accuracy", Value: fmt.Sprintf("%d%%", snap.Accuracy)},
		{Label: "Wrong Characters", Value: strconv.Itoa(o.sess.Mistakes())},
		{Label: "Time", Value: fmt.Sprintf("%.1fs", snap.ElapsedSeconds)},
	}
	if o.cfg.Mode == model.ModeTimed {
		pairs = append(pairs, export.Pair{
			Label: "Duration",
			Value: fmt.Sprintf("%ds", o.cfg.DurationSeconds()),
		})
	}
	return pairs
}

// attemptRecord builds the local history row for a submitted session.
func (o *Orchestrator) attemptRecord() model.AttemptRecord {
	snap := o.sess.Stats()
	return model.AttemptRecord{
		StartedAt:     o.sess.StartedAt(),
		EndedAt:       o.sess.EndedAt(),
		Username:      o.cfg.Username,
		Difficulty:    o.cfg.Difficulty,
		Mode:          o.cfg.Mode,
		CaseSensitive: o.cfg.CaseSensitive,
		CPM:           snap.CPM,
		WPM:           snap.WPM,
		Accuracy:      snap.Accuracy,
		Mistakes:      o.sess.Mistakes(),
		TypedChars:    o.sess.Cursor(),
		TargetChars:   o.sess.TargetLen(),
		DurationMs:    o.sess.Elapsed().Milliseconds(),
	}
}
