// Package metrics derives speed and accuracy figures from session state.
package metrics

import (
	"math"
	"time"
)

// Snapshot holds the derived figures for one point in time. Values are
// recomputed from raw counts on every call; nothing is accumulated, so
// rounding error never carries between snapshots.
type Snapshot struct {
	CPM            int
	WPM            int
	Accuracy       int
	Progress       int
	ElapsedSeconds float64
}

// Compute derives CPM, WPM, accuracy, and progress from the typed
// position count, mistake count, elapsed time, and target length.
func Compute(typed, mistakes int, elapsed time.Duration, targetLen int) Snapshot {
	snap := Snapshot{ElapsedSeconds: elapsed.Seconds()}
	if snap.ElapsedSeconds > 0 {
		snap.CPM = int(math.Round(float64(typed) / snap.ElapsedSeconds * 60))
	}
	snap.WPM = int(math.Round(float64(snap.CPM) / 5))
	if typed > 0 {
		snap.Accuracy = int(math.Round(float64(typed-mistakes) / float64(typed) * 100))
	} else {
		snap.Accuracy = 100
	}
	if targetLen > 0 {
		snap.Progress = typed * 100 / targetLen
	}
	return snap
}
