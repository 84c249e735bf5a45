package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/scripttyper/internal/model"
)

func TestSessionMetrics(t *testing.T) {
	wpm, cpm, acc := SessionMetrics(50, 10, 60000)
	if math.Abs(wpm-10) > 1e-9 {
		t.Fatalf("expected wpm 10, got %f", wpm)
	}
	if math.Abs(cpm-50) > 1e-9 {
		t.Fatalf("expected cpm 50, got %f", cpm)
	}
	if math.Abs(acc-50.0/60.0) > 1e-9 {
		t.Fatalf("expected accuracy %f, got %f", 50.0/60.0, acc)
	}
}

func TestSessionMetricsZeroDuration(t *testing.T) {
	wpm, cpm, acc := SessionMetrics(10, 0, 0)
	if wpm != 0 || cpm != 0 || acc != 0 {
		t.Fatalf("expected zeros, got %f %f %f", wpm, cpm, acc)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{1, 2, 3, 4}, 2)
	want := []float64{1, 1.5, 2.5, 3.5}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("index %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestSparklineFlat(t *testing.T) {
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" {
		t.Fatalf("expected flat sparkline, got %q", got)
	}
}

func TestSparklineRange(t *testing.T) {
	got := Sparkline([]float64{0, 10})
	if got != " @" {
		t.Fatalf("expected %q, got %q", " @", got)
	}
}

func sampleRuns() []model.RunRecord {
	end := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []model.RunRecord{
		{ID: 1, TextID: "t1", EndedAt: end, Correct: 50, Wrong: 0, DurationMs: 60000, CharsAwarded: 55},
		{ID: 2, TextID: "t2", EndedAt: end.Add(time.Minute), Correct: 100, Wrong: 0, DurationMs: 60000, CharsAwarded: 120, Alarm: true},
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, sampleRuns()); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Runs: 2 (1 alarm)", "Chars earned: 175", "Avg WPM: 15.00", "Best WPM: 20.00", "Avg Accuracy: 100.00%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	if !strings.Contains(buf.String(), "No runs found.") {
		t.Fatalf("expected empty message, got %q", buf.String())
	}
}

func TestRenderRunsLimit(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderRuns(&buf, sampleRuns(), 1); err != nil {
		t.Fatalf("render runs: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "t1") {
		t.Fatalf("expected older run to be trimmed:\n%s", out)
	}
	if !strings.Contains(out, "t2") || !strings.Contains(out, "yes") {
		t.Fatalf("expected latest alarm run:\n%s", out)
	}
}

func TestRenderCurvesFixedWidth(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderCurves(&buf, sampleRuns(), 1, 11); err != nil {
		t.Fatalf("render curves: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if got := lines[1]; got != "WPM       +" {
		t.Fatalf("expected a single point, got %q", got)
	}
}
