package save

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/verte-zerg/scripttyper/internal/model"
)

const runQueueSize = 64

// RunSink stores finished runs.
type RunSink interface {
	InsertRun(ctx context.Context, res model.RunResult) (int64, error)
}

// Recorder appends finished runs to a RunSink off the caller's goroutine.
type Recorder struct {
	sink   RunSink
	logger *log.Logger
	queue  chan model.RunResult
}

// NewRecorder returns a Recorder for sink. A nil logger discards.
func NewRecorder(sink RunSink, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{sink: sink, logger: logger, queue: make(chan model.RunResult, runQueueSize)}
}

// Record queues res. A full queue drops it.
func (r *Recorder) Record(res model.RunResult) {
	select {
	case r.queue <- res:
	default:
		r.logger.Warn("run history queue full, dropping run", "text", res.TextID)
	}
}

// Run inserts queued runs until ctx is done, then drains the queue.
func (r *Recorder) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			r.drain()
			return nil
		case res := <-r.queue:
			r.insert(res)
		}
	}
}

func (r *Recorder) drain() {
	for {
		select {
		case res := <-r.queue:
			r.insert(res)
		default:
			return
		}
	}
}

func (r *Recorder) insert(res model.RunResult) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if _, err := r.sink.InsertRun(ctx, res); err != nil {
		r.logger.Warn("failed to record run", "err", err)
	}
}
