package backend

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"os/exec"

	"go.uber.org/zap"

	"github.com/itsmenuma/typing-tutor/internal/model"
)

// ExecRunner invokes the backend binary once per request and captures
// its stdout. Stderr goes to the log; a non-zero exit with no usable
// output is a backend failure.
type ExecRunner struct {
	path   string
	logger *zap.Logger
}

// NewExecRunner creates a runner for the backend binary at path.
func NewExecRunner(path string, logger *zap.Logger) *ExecRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecRunner{path: path, logger: logger}
}

// FetchParagraph implements Runner.
func (r *ExecRunner) FetchParagraph(ctx context.Context, difficulty model.Difficulty) (string, error) {
	out, err := r.run(ctx, "--get-paragraph", string(difficulty))
	if err != nil {
		return "", err
	}
	return ParseParagraph(out)
}

// FetchLeaderboard implements Runner. The raw table text is handed to
// the leaderboard ranker untouched.
func (r *ExecRunner) FetchLeaderboard(ctx context.Context, difficulty model.Difficulty, username string) (string, error) {
	out, err := r.run(ctx, "--get-leaderboard", string(difficulty), username)
	if err != nil {
		return "", err
	}
	if msg, ok := errorMessage(out); ok {
		return "", &Error{Message: msg}
	}
	return out, nil
}

// Submit implements Runner.
func (r *ExecRunner) Submit(ctx context.Context, result Result) (string, error) {
	args := []string{
		result.Username,
		string(result.Difficulty),
		caseFlag(result.CaseSensitive),
		strconv.FormatFloat(result.ElapsedSeconds, 'f', 2, 64),
		result.Input,
		result.Target,
		string(result.Mode),
		strconv.Itoa(result.DurationSeconds),
	}
	out, err := r.run(ctx, args...)
	if err != nil {
		return "", err
	}
	return ParseStats(out)
}

func (r *ExecRunner) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, r.path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if stderr.Len() > 0 {
		r.logger.Warn("backend stderr",
			zap.String("path", r.path),
			zap.String("stderr", stderr.String()),
		)
	}
	if err != nil {
		if msg, ok := errorMessage(stdout.String()); ok {
			return "", &Error{Message: msg}
		}
		return "", fmt.Errorf("backend process failed: %w", err)
	}
	return stdout.String(), nil
}
