package stats

import (
	"context"
	"io"

	"github.com/verte-zerg/scripttyper/internal/model"
	"github.com/verte-zerg/scripttyper/internal/store"
)

// Report contains run history prepared for rendering.
type Report struct {
	Runs []model.RunRecord
}

// BuildReport loads the last runs in chronological order. last <= 0 loads all.
func BuildReport(ctx context.Context, st *store.Store, last int) (Report, error) {
	runs, err := st.ListRuns(ctx, last)
	if err != nil {
		return Report{}, err
	}
	return Report{Runs: runs}, nil
}

// Render writes the summary, recent runs and curves.
func (r Report) Render(w io.Writer, window, width int) error {
	if err := RenderSummary(w, r.Runs); err != nil {
		return err
	}
	if err := RenderRuns(w, r.Runs, 10); err != nil {
		return err
	}
	return RenderCurves(w, r.Runs, window, width)
}
