package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/itsmenuma/typing-tutor/internal/export"
	"github.com/itsmenuma/typing-tutor/internal/leaderboard"
	"github.com/itsmenuma/typing-tutor/internal/orchestrator"
	"github.com/itsmenuma/typing-tutor/internal/session"
)

type phase int

const (
	phaseLogin phase = iota
	phaseLoading
	phaseTyping
	phaseFinishing
	phaseSubmitting
	phaseResults
)

// finishDelay keeps the last typed character on screen before the
// session finalizes.
const finishDelay = 250 * time.Millisecond

const noticeTTL = 2 * time.Second

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Underline(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	rankStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	statsStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A")).
			Padding(0, 2)
)

// Model implements the Bubble Tea typing UI.
type Model struct {
	orch   *orchestrator.Orchestrator
	logger *zap.Logger

	customText string
	textFile   string

	width  int
	height int

	phase phase

	usernameInput textinput.Model

	sess      *session.Session
	countdown *session.Countdown
	remaining int
	tickSeq   int

	notice    string
	noticeSeq int

	statsBlock string
	standings  leaderboard.Standings
	haveBoard  bool
	board      table.Model
	exportNote string

	fatalErr error
}

type (
	paragraphMsg     struct{ text string }
	fatalMsg         struct{ err error }
	countdownTickMsg struct{ seq int }
	finalizeMsg      struct{}
	submittedMsg     struct {
		block string
		err   error
	}
	standingsMsg struct {
		standings leaderboard.Standings
		err       error
	}
	exportedMsg struct {
		path string
		err  error
	}
	clearNoticeMsg struct{ seq int }
)

// NewModel constructs the typing TUI model. When customText or
// textFile is set the backend paragraph fetch is skipped.
func NewModel(orch *orchestrator.Orchestrator, customText, textFile string, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	input := textinput.New()
	input.Placeholder = "Enter your name"
	input.CharLimit = 40
	input.Focus()
	m := &Model{
		orch:          orch,
		logger:        logger,
		customText:    customText,
		textFile:      textFile,
		usernameInput: input,
		phase:         phaseLogin,
	}
	if orch.Config().Username != "" {
		m.usernameInput.SetValue(orch.Config().Username)
	}
	return m
}

// FatalErr returns the error that forced the program to quit, if any.
func (m *Model) FatalErr() error { return m.fatalErr }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case paragraphMsg:
		return m.startSession(msg.text)
	case fatalMsg:
		// Paragraph-load failure aborts the whole run, matching the
		// legacy fail-fast behavior.
		m.fatalErr = msg.err
		return m, tea.Quit
	case countdownTickMsg:
		return m.handleCountdownTick(msg)
	case finalizeMsg:
		if m.phase != phaseFinishing {
			return m, nil
		}
		m.phase = phaseSubmitting
		return m, m.submitCmd(session.ReasonFinished)
	case submittedMsg:
		return m.handleSubmitted(msg)
	case standingsMsg:
		return m.handleStandings(msg)
	case exportedMsg:
		if msg.err != nil {
			m.exportNote = fmt.Sprintf("export failed: %v", msg.err)
		} else {
			m.exportNote = "saved " + msg.path
		}
		return m, nil
	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.teardown()
		return m, tea.Quit
	}
	switch m.phase {
	case phaseLogin:
		return m.handleLoginKey(msg)
	case phaseTyping:
		return m.handleTypingKey(msg)
	case phaseResults:
		return m.handleResultsKey(msg)
	default:
		// Loading, finishing, and submitting ignore keystrokes except
		// escape, which cancels the whole run.
		if msg.Type == tea.KeyEsc {
			m.teardown()
			return m, tea.Quit
		}
		return m, nil
	}
}

func (m *Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		name := strings.TrimSpace(m.usernameInput.Value())
		m.orch.SetUsername(name)
		if err := m.orch.ValidateUsername(); err != nil {
			return m, m.showNotice(err.Error())
		}
		m.phase = phaseLoading
		return m, m.loadParagraphCmd()
	default:
		var cmd tea.Cmd
		m.usernameInput, cmd = m.usernameInput.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleTypingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.teardown()
		return m, tea.Quit
	case tea.KeyBackspace, tea.KeyDelete:
		m.sess.OnBackspace()
		return m, nil
	case tea.KeyEnter:
		return m.trySubmit(session.ReasonManual)
	case tea.KeySpace:
		return m.handleRunes([]rune{' '})
	case tea.KeyRunes:
		return m.handleRunes(msg.Runes)
	default:
		return m, nil
	}
}

func (m *Model) handleRunes(runes []rune) (tea.Model, tea.Cmd) {
	for _, r := range runes {
		if m.sess.OnCharacter(r) {
			m.phase = phaseFinishing
			return m, tea.Tick(finishDelay, func(time.Time) tea.Msg { return finalizeMsg{} })
		}
	}
	return m, nil
}

func (m *Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "e":
		return m, m.exportCmd("txt")
	case "c":
		return m, m.exportCmd("csv")
	case "r":
		m.phase = phaseLoading
		m.statsBlock = ""
		m.haveBoard = false
		m.exportNote = ""
		return m, m.loadParagraphCmd()
	default:
		return m, nil
	}
}

func (m *Model) handleCountdownTick(msg countdownTickMsg) (tea.Model, tea.Cmd) {
	// Stale ticks from an abandoned chain are ignored.
	if msg.seq != m.tickSeq {
		return m, nil
	}
	if m.countdown == nil || !m.countdown.Running() {
		return m, nil
	}
	if m.phase != phaseTyping {
		return m, nil
	}
	remaining, expired := m.countdown.Tick()
	m.remaining = remaining
	if expired {
		m.phase = phaseSubmitting
		return m, m.submitCmd(session.ReasonTimeout)
	}
	return m, m.nextTick()
}

func (m *Model) trySubmit(reason session.Reason) (tea.Model, tea.Cmd) {
	// The phase flips before the backend call resolves, disabling the
	// submit trigger for the whole in-flight window.
	m.phase = phaseSubmitting
	return m, m.submitCmd(reason)
}

func (m *Model) handleSubmitted(msg submittedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		switch msg.err {
		case orchestrator.ErrEmptyInput, orchestrator.ErrIncomplete, orchestrator.ErrPasteSuspected:
			m.phase = phaseTyping
			notice := m.showNotice(msg.err.Error())
			if m.countdown != nil && m.countdown.Running() {
				// The tick chain broke while the submit was in flight.
				m.tickSeq++
				return m, tea.Batch(notice, m.nextTick())
			}
			return m, notice
		case orchestrator.ErrSubmitInFlight:
			return m, nil
		}
		// Backend failure: the session is already terminal, show the
		// local stats and the error side by side.
		m.phase = phaseResults
		m.statsBlock = ""
		return m, tea.Batch(m.showNotice(msg.err.Error()), m.standingsCmd())
	}
	m.phase = phaseResults
	m.statsBlock = msg.block
	return m, m.standingsCmd()
}

func (m *Model) handleStandings(msg standingsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.showNotice(msg.err.Error())
	}
	m.standings = msg.standings
	m.board = buildBoard(m.standings, m.orch.Config().Username)
	m.haveBoard = true
	return m, nil
}

func (m *Model) startSession(target string) (tea.Model, tea.Cmd) {
	sess, countdown, err := m.orch.StartSession(target)
	if err != nil {
		m.fatalErr = err
		return m, tea.Quit
	}
	m.sess = sess
	m.countdown = countdown
	m.phase = phaseTyping
	if countdown != nil {
		m.remaining = countdown.Remaining()
		m.tickSeq++
		return m, m.nextTick()
	}
	return m, nil
}

// teardown stops the countdown and cancels the session before the
// program returns, so no timer outlives the UI.
func (m *Model) teardown() {
	m.orch.Cancel()
	m.countdown = nil
}

func (m *Model) nextTick() tea.Cmd {
	seq := m.tickSeq
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return countdownTickMsg{seq: seq} })
}

func (m *Model) loadParagraphCmd() tea.Cmd {
	return func() tea.Msg {
		text, err := m.orch.AcquireText(context.Background(), m.customText, m.textFile)
		if err != nil {
			return fatalMsg{err: err}
		}
		return paragraphMsg{text: text}
	}
}

func (m *Model) submitCmd(reason session.Reason) tea.Cmd {
	return func() tea.Msg {
		block, err := m.orch.Submit(context.Background(), reason)
		return submittedMsg{block: block, err: err}
	}
}

func (m *Model) standingsCmd() tea.Cmd {
	return func() tea.Msg {
		standings, err := m.orch.Leaderboard(context.Background())
		return standingsMsg{standings: standings, err: err}
	}
}

func (m *Model) exportCmd(format string) tea.Cmd {
	pairs := m.orch.StatPairs()
	path := fmt.Sprintf("typing-stats-%s.%s", time.Now().Format("20060102-150405"), format)
	return func() tea.Msg {
		if err := export.Save(path, pairs); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{path: path}
	}
}

func (m *Model) showNotice(text string) tea.Cmd {
	m.notice = text
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return clearNoticeMsg{seq: seq} })
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.phase {
	case phaseLogin:
		return m.viewLogin()
	case phaseLoading:
		return m.center("Fetching paragraph...")
	case phaseTyping, phaseFinishing:
		return m.viewTyping()
	case phaseSubmitting:
		return m.center("Submitting...")
	case phaseResults:
		return m.viewResults()
	default:
		return ""
	}
}

func (m *Model) viewLogin() string {
	lines := []string{
		titleStyle.Render("Typing Tutor"),
		"",
		m.usernameInput.View(),
	}
	if m.notice != "" {
		lines = append(lines, "", noticeStyle.Render(m.notice))
	}
	lines = append(lines, "", footerStyle.Render("enter: start · esc: quit"))
	return m.center(strings.Join(lines, "\n"))
}

func (m *Model) viewTyping() string {
	if m.sess == nil {
		return ""
	}
	styledRunes := buildStyledRunes(m.sess.Classify())
	content := renderStyledRunes(styledRunes)
	if m.width > 0 {
		contentWidth := int(float64(m.width) * 0.70)
		if contentWidth < 1 {
			contentWidth = 1
		}
		wrapped := wrapStyledRunes(styledRunes, contentWidth)
		content = lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	}
	footer := m.renderFooter()
	if m.width == 0 || m.height < 3 {
		if footer == "" {
			return content
		}
		return content + "\n" + footer
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderFooter() string {
	snap := m.sess.Stats()
	segments := []string{
		fmt.Sprintf("Progress %d%%", snap.Progress),
		fmt.Sprintf("%d cpm", snap.CPM),
		fmt.Sprintf("%d wpm", snap.WPM),
		fmt.Sprintf("Accuracy %d%%", snap.Accuracy),
	}
	if m.countdown != nil {
		segments = append(segments, fmt.Sprintf("Time left %s", formatClock(m.remaining)))
	}
	if m.notice != "" {
		segments = append(segments, noticeStyle.Render(m.notice))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) viewResults() string {
	var sections []string
	sections = append(sections, titleStyle.Render("Typing Stats"))
	if m.statsBlock != "" {
		sections = append(sections, statsStyle.Render(m.statsBlock))
	} else if m.sess != nil {
		snap := m.sess.Stats()
		local := fmt.Sprintf("Typing Speed: %d cpm\nWPM: %d\nAccuracy: %d%%\nWrong Characters: %d",
			snap.CPM, snap.WPM, snap.Accuracy, m.sess.Mistakes())
		sections = append(sections, statsStyle.Render(local))
	}
	if m.haveBoard {
		sections = append(sections, titleStyle.Render("Leaderboard"), m.board.View())
		if m.standings.HasUser {
			sections = append(sections, rankStyle.Render(fmt.Sprintf("Your Rank: %d: %s %.0f cpm",
				m.standings.UserRank, m.standings.UserBest.Name, m.standings.UserBest.CPM)))
		}
	}
	if m.exportNote != "" {
		sections = append(sections, footerStyle.Render(m.exportNote))
	}
	if m.notice != "" {
		sections = append(sections, noticeStyle.Render(m.notice))
	}
	sections = append(sections, footerStyle.Render("e: export txt · c: export csv · r: retry · q: quit"))
	return m.center(strings.Join(sections, "\n\n"))
}

func (m *Model) center(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func formatClock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func buildBoard(standings leaderboard.Standings, username string) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Name", Width: 16},
		{Title: "CPM", Width: 6},
		{Title: "WPM", Width: 6},
		{Title: "Accuracy", Width: 9},
		{Title: "Difficulty", Width: 10},
	}
	rows := make([]table.Row, 0, len(standings.Top))
	for i, entry := range standings.Top {
		name := entry.Name
		if name == username {
			name = "» " + name
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			name,
			fmt.Sprintf("%.0f", entry.CPM),
			fmt.Sprintf("%.0f", entry.WPM),
			fmt.Sprintf("%.0f%%", entry.Accuracy),
			string(entry.Difficulty),
		})
	}
	height := len(rows) + 1
	if height < 2 {
		height = 2
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(height),
	)
	styles := table.DefaultStyles()
	styles.Selected = styles.Cell
	t.SetStyles(styles)
	return t
}
