package history

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/itsmenuma/typing-tutor/internal/model"
)

const (
	defaultCurveWidth = 60
	curveLabelWidth   = 10
)

// RenderSummary prints best/average figures across attempts.
func RenderSummary(w io.Writer, attempts []model.AttemptRecord) error {
	if len(attempts) == 0 {
		_, err := fmt.Fprintln(w, "No attempts recorded yet.")
		return err
	}
	bestCPM, bestAcc := 0, 0
	totalCPM, totalWPM, totalAcc := 0, 0, 0
	for _, a := range attempts {
		if a.CPM > bestCPM {
			bestCPM = a.CPM
		}
		if a.Accuracy > bestAcc {
			bestAcc = a.Accuracy
		}
		totalCPM += a.CPM
		totalWPM += a.WPM
		totalAcc += a.Accuracy
	}
	count := len(attempts)
	lines := []string{
		"Summary",
		fmt.Sprintf("Attempts: %d", count),
		fmt.Sprintf("Best Speed: %d cpm", bestCPM),
		fmt.Sprintf("Best Accuracy: %d%%", bestAcc),
		fmt.Sprintf("Avg Speed: %d cpm (%d wpm)", totalCPM/count, totalWPM/count),
		fmt.Sprintf("Avg Accuracy: %d%%", totalAcc/count),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderAttempts prints the previous-attempts table, oldest first.
func RenderAttempts(w io.Writer, attempts []model.AttemptRecord) error {
	if len(attempts) == 0 {
		return nil
	}
	headers := []string{"#", "Date", "Difficulty", "Mode", "CPM", "WPM", "Accuracy", "Mistakes"}
	rows := make([][]string, 0, len(attempts))
	for i, a := range attempts {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			a.EndedAt.Local().Format("2006-01-02 15:04"),
			string(a.Difficulty),
			string(a.Mode),
			fmt.Sprintf("%d", a.CPM),
			fmt.Sprintf("%d", a.WPM),
			fmt.Sprintf("%d%%", a.Accuracy),
			fmt.Sprintf("%d", a.Mistakes),
		})
	}
	rightAlign := map[int]bool{0: true, 4: true, 5: true, 6: true, 7: true}
	if _, err := fmt.Fprintln(w, "Previous Attempts"); err != nil {
		return err
	}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderCurves prints WPM and accuracy learning curves as sparklines,
// smoothed over the given window and sized to the terminal.
func RenderCurves(w io.Writer, attempts []model.AttemptRecord, window int) error {
	if len(attempts) < 2 {
		return nil
	}
	wpms := make([]float64, len(attempts))
	accs := make([]float64, len(attempts))
	for i, a := range attempts {
		wpms[i] = float64(a.WPM)
		accs[i] = float64(a.Accuracy)
	}
	wpms = MovingAverage(wpms, window)
	accs = MovingAverage(accs, window)

	width := curveWidth()
	wpms = Resample(wpms, width)
	accs = Resample(accs, width)

	if _, err := fmt.Fprintln(w, "Learning Curves"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%-*s %s\n", curveLabelWidth, "WPM", Sparkline(wpms)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%-*s %s\n", curveLabelWidth, "Accuracy", Sparkline(accs)); err != nil {
		return err
	}
	return nil
}

func curveWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultCurveWidth
	}
	cols, _, err := term.GetSize(fd)
	if err != nil || cols <= curveLabelWidth+2 {
		return defaultCurveWidth
	}
	return cols - curveLabelWidth - 1
}
