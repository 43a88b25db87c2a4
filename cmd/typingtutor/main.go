// Package main provides the CLI entrypoint for typingtutor.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/itsmenuma/typing-tutor/internal/backend"
	"github.com/itsmenuma/typing-tutor/internal/config"
	"github.com/itsmenuma/typing-tutor/internal/history"
	"github.com/itsmenuma/typing-tutor/internal/leaderboard"
	"github.com/itsmenuma/typing-tutor/internal/logging"
	"github.com/itsmenuma/typing-tutor/internal/model"
	"github.com/itsmenuma/typing-tutor/internal/orchestrator"
	"github.com/itsmenuma/typing-tutor/internal/store"
	"github.com/itsmenuma/typing-tutor/internal/tui"
)

const (
	defaultDifficulty  = "easy"
	defaultDurationMin = 1
	defaultTop         = 10
	defaultBackend     = "typingtutor-backend"
	defaultCurveWindow = 10
)

var (
	practiceUser       string
	practiceDifficulty string
	practiceCaseSens   bool
	practiceTimed      bool
	practiceDuration   int
	practiceText       string
	practiceTextFile   string
	practiceBackend    string
	practiceIncomplete bool
	practiceTop        int

	boardDifficulty string
	boardBackend    string
	boardTop        int
	boardUser       string

	historyUser       string
	historyDifficulty string
	historySince      string
	historyLast       int
	historyWindow     int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typingtutor",
		Short:         "Terminal typing trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceUser, "user", "", "username for leaderboard entries")
	rootCmd.Flags().StringVar(&practiceDifficulty, "difficulty", defaultDifficulty, "paragraph difficulty (easy, medium, hard)")
	rootCmd.Flags().BoolVar(&practiceCaseSens, "case-sensitive", false, "compare characters case-sensitively")
	rootCmd.Flags().BoolVar(&practiceTimed, "timed", false, "timed mode: type until the countdown expires")
	rootCmd.Flags().IntVar(&practiceDuration, "duration", defaultDurationMin, "timed-mode duration in minutes")
	rootCmd.Flags().StringVar(&practiceText, "text", "", "practice this text instead of fetching a paragraph")
	rootCmd.Flags().StringVar(&practiceTextFile, "text-file", "", "pick a random paragraph line from this file")
	rootCmd.Flags().StringVar(&practiceBackend, "backend", defaultBackend, "path to the backend binary")
	rootCmd.Flags().BoolVar(&practiceIncomplete, "allow-incomplete", false, "allow submitting an unfinished paragraph")
	rootCmd.Flags().IntVar(&practiceTop, "top", defaultTop, "leaderboard entries to show")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "user", &practiceUser, fileCfg.Practice.Username)
	applyStringConfig(cmd, "difficulty", &practiceDifficulty, fileCfg.Practice.Difficulty)
	applyBoolConfig(cmd, "case-sensitive", &practiceCaseSens, fileCfg.Practice.CaseSensitive)
	applyBoolConfig(cmd, "timed", &practiceTimed, fileCfg.Practice.Timed)
	applyIntConfig(cmd, "duration", &practiceDuration, fileCfg.Practice.DurationMin)
	applyBoolConfig(cmd, "allow-incomplete", &practiceIncomplete, fileCfg.Practice.AllowIncomplete)
	applyStringConfig(cmd, "backend", &practiceBackend, fileCfg.Backend.Path)
	applyIntConfig(cmd, "top", &practiceTop, fileCfg.Leaderboard.Top)

	difficulty, err := model.ParseDifficulty(practiceDifficulty)
	if err != nil {
		return err
	}
	if practiceTimed && practiceDuration <= 0 {
		return fmt.Errorf("--duration must be > 0")
	}
	if practiceTop <= 0 {
		return fmt.Errorf("--top must be > 0")
	}
	mode := model.ModeParagraph
	if practiceTimed {
		mode = model.ModeTimed
	}

	cfg := model.Config{
		Username:        practiceUser,
		Difficulty:      difficulty,
		CaseSensitive:   practiceCaseSens,
		Mode:            mode,
		DurationMin:     practiceDuration,
		AllowIncomplete: practiceIncomplete,
		LeaderboardTop:  practiceTop,
		BackendPath:     practiceBackend,
	}

	// The TUI owns the terminal, so logs go to a file.
	logger, err := logging.New(config.DefaultLogPath())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		// Best-effort flush on exit.
		_ = logger.Sync()
	}()

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("failed to close db", zap.Error(cerr))
		}
	}()

	runner := backend.NewExecRunner(cfg.BackendPath, logger)
	orch := orchestrator.New(cfg, runner, st, logger)
	uiModel := tui.NewModel(orch, practiceText, practiceTextFile, logger)
	program := tea.NewProgram(uiModel, tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if m, ok := finalModel.(*tui.Model); ok {
		if ferr := m.FatalErr(); ferr != nil {
			return ferr
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the leaderboard",
		Args:  cobra.NoArgs,
		RunE:  runLeaderboardCmd,
	}
	cmd.Flags().StringVar(&boardDifficulty, "difficulty", defaultDifficulty, "difficulty tier to show")
	cmd.Flags().StringVar(&boardBackend, "backend", defaultBackend, "path to the backend binary")
	cmd.Flags().IntVar(&boardTop, "top", defaultTop, "entries to show")
	cmd.Flags().StringVar(&boardUser, "user", "", "highlight this user's rank")
	return cmd
}

func runLeaderboardCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "difficulty", &boardDifficulty, fileCfg.Practice.Difficulty)
	applyStringConfig(cmd, "backend", &boardBackend, fileCfg.Backend.Path)
	applyIntConfig(cmd, "top", &boardTop, fileCfg.Leaderboard.Top)
	applyStringConfig(cmd, "user", &boardUser, fileCfg.Practice.Username)

	difficulty, err := model.ParseDifficulty(boardDifficulty)
	if err != nil {
		return err
	}

	logger, err := logging.New(config.DefaultLogPath())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	runner := backend.NewExecRunner(boardBackend, logger)
	raw, err := runner.FetchLeaderboard(context.Background(), difficulty, boardUser)
	if err != nil {
		return fmt.Errorf("failed to fetch leaderboard: %w", err)
	}
	ranked := leaderboard.Rank(leaderboard.ParseTable(raw, logger))
	if len(ranked) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "Leaderboard is empty.")
		return err
	}
	out := cmd.OutOrStdout()
	for i, entry := range leaderboard.Top(ranked, boardTop) {
		if _, err := fmt.Fprintf(out, "%2d. %-16s %6.0f cpm %5.0f wpm %5.0f%%\n",
			i+1, entry.Name, entry.CPM, entry.WPM, entry.Accuracy); err != nil {
			return err
		}
	}
	if entry, rank, ok := leaderboard.UserRank(ranked, boardUser); ok && rank > boardTop {
		if _, err := fmt.Fprintf(out, "\nYour Rank: %d: %s %.0f cpm\n", rank, entry.Name, entry.CPM); err != nil {
			return err
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show local practice history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyUser, "user", "", "username filter")
	cmd.Flags().StringVar(&historyDifficulty, "difficulty", "", "difficulty filter")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N attempts")
	cmd.Flags().IntVar(&historyWindow, "window", defaultCurveWindow, "moving average window")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "user", &historyUser, fileCfg.Practice.Username)

	filter := model.HistoryFilter{
		Username: historyUser,
		Last:     historyLast,
	}
	if historyDifficulty != "" {
		difficulty, err := model.ParseDifficulty(historyDifficulty)
		if err != nil {
			return err
		}
		filter.Difficulty = difficulty
	}
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		filter.Since = &parsed
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	attempts, err := st.ListAttempts(context.Background(), filter)
	if err != nil {
		return fmt.Errorf("failed to list attempts: %w", err)
	}

	out := cmd.OutOrStdout()
	if err := history.RenderSummary(out, attempts); err != nil {
		return err
	}
	if err := history.RenderAttempts(out, attempts); err != nil {
		return err
	}
	return history.RenderCurves(out, attempts, historyWindow)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typingtutor configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# username = ""            # Username for leaderboard entries
# difficulty = %q          # Paragraph difficulty (easy, medium, hard)
# case-sensitive = false   # Compare characters case-sensitively
# timed = false            # Timed mode
# duration = %d            # Timed-mode duration in minutes
# allow-incomplete = false # Allow submitting an unfinished paragraph

[backend]
# path = %q                # Path to the backend binary

[leaderboard]
# top = %d                 # Leaderboard entries to show
`,
		defaultDifficulty,
		defaultDurationMin,
		defaultBackend,
		defaultTop,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
