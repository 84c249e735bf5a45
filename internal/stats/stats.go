// Package stats contains run-history metrics and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/scripttyper/internal/model"
)

const (
	sparkChars          = " .:-=+*#%@"
	terminalWidthBackup = 80
	sparkLabelWidth     = 10
)

// SessionMetrics computes WPM, CPM, and accuracy for a run.
func SessionMetrics(correct, incorrect int, durationMs int64) (wpm, cpm, accuracy float64) {
	if durationMs <= 0 {
		return 0, 0, 0
	}
	minutes := float64(durationMs) / 60000.0
	if minutes <= 0 {
		return 0, 0, 0
	}
	wpm = (float64(correct) / 5.0) / minutes
	cpm = float64(correct) / minutes
	den := float64(correct + incorrect)
	if den > 0 {
		accuracy = float64(correct) / den
	}
	return wpm, cpm, accuracy
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = min(max(idx, 0), len(sparkChars)-1)
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints totals and averages for runs.
func RenderSummary(w io.Writer, runs []model.RunRecord) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	var totalWPM, totalAcc float64
	bestWPM := 0.0
	totalChars := 0
	alarms := 0
	for _, r := range runs {
		wpm, _, acc := SessionMetrics(r.Correct, r.Wrong, r.DurationMs)
		totalWPM += wpm
		totalAcc += acc
		bestWPM = math.Max(bestWPM, wpm)
		totalChars += r.CharsAwarded
		if r.Alarm {
			alarms++
		}
	}
	count := float64(len(runs))
	lines := []string{
		"Summary",
		fmt.Sprintf("Runs: %d (%d alarm)", len(runs), alarms),
		fmt.Sprintf("Chars earned: %d", totalChars),
		fmt.Sprintf("Avg WPM: %.2f", totalWPM/count),
		fmt.Sprintf("Best WPM: %.2f", bestWPM),
		fmt.Sprintf("Avg Accuracy: %.2f%%", (totalAcc/count)*100),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderRuns prints the most recent runs as a table.
func RenderRuns(w io.Writer, runs []model.RunRecord, limit int) error {
	if len(runs) == 0 {
		return nil
	}
	if limit > 0 && len(runs) > limit {
		runs = runs[len(runs)-limit:]
	}
	headers := []string{"Ended", "Text", "WPM", "Accuracy", "Chars", "Alarm"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		wpm, _, acc := SessionMetrics(r.Correct, r.Wrong, r.DurationMs)
		alarm := ""
		if r.Alarm {
			alarm = "yes"
		}
		rows = append(rows, []string{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			r.TextID,
			fmt.Sprintf("%.1f", wpm),
			fmt.Sprintf("%.2f%%", acc*100),
			fmt.Sprintf("%d", r.CharsAwarded),
			alarm,
		})
	}
	if _, err := fmt.Fprintln(w, "Recent Runs"); err != nil {
		return err
	}
	for _, line := range formatTable(headers, rows, map[int]bool{2: true, 3: true, 4: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderCurves prints smoothed WPM, accuracy and award sparklines. A width of
// zero uses the terminal width.
func RenderCurves(w io.Writer, runs []model.RunRecord, window, width int) error {
	if len(runs) == 0 {
		return nil
	}
	if width <= 0 {
		width = terminalWidth()
	}
	points := max(width-sparkLabelWidth, 1)
	if len(runs) > points {
		runs = runs[len(runs)-points:]
	}
	wpms := make([]float64, len(runs))
	accs := make([]float64, len(runs))
	awards := make([]float64, len(runs))
	for i, r := range runs {
		wpm, _, acc := SessionMetrics(r.Correct, r.Wrong, r.DurationMs)
		wpms[i] = wpm
		accs[i] = acc * 100
		awards[i] = float64(r.CharsAwarded)
	}
	if _, err := fmt.Fprintln(w, "Curves"); err != nil {
		return err
	}
	series := []struct {
		name   string
		values []float64
	}{
		{"WPM", wpms},
		{"Accuracy", accs},
		{"Chars", awards},
	}
	for _, s := range series {
		line := fmt.Sprintf("%-*s%s", sparkLabelWidth, s.name, Sparkline(MovingAverage(s.values, window)))
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
