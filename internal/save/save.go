// Package save encodes game snapshots and keeps them in a key-value store.
package save

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/verte-zerg/scripttyper/internal/model"
)

// Key is the storage key of the snapshot.
const Key = "universal-char-save-v1"

// Version is the only snapshot version Load accepts.
const Version = 1

const writeTimeout = 2 * time.Second

// KV is the storage the snapshot lives in.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, payload []byte) error
}

// Encode serialises a snapshot.
func Encode(s model.SaveGame) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode save: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot and reports whether it is usable.
func Decode(data []byte) (*model.SaveGame, bool) {
	if len(data) == 0 {
		return nil, false
	}
	var s model.SaveGame
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, false
	}
	if s.Version != Version {
		return nil, false
	}
	return &s, true
}

// Load returns the stored snapshot, or nil when it is missing, unreadable or
// of another version.
func Load(ctx context.Context, kv KV) *model.SaveGame {
	data, err := kv.Get(ctx, Key)
	if err != nil {
		return nil
	}
	s, ok := Decode(data)
	if !ok {
		return nil
	}
	return s
}

// Saver queues snapshots for a background writer. Only the newest pending
// snapshot is kept; failures are logged and dropped.
type Saver struct {
	kv      KV
	logger  *log.Logger
	pending chan model.SaveGame
}

// NewSaver returns a Saver for kv. A nil logger discards.
func NewSaver(kv KV, logger *log.Logger) *Saver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Saver{kv: kv, logger: logger, pending: make(chan model.SaveGame, 1)}
}

// Save replaces the pending snapshot and returns without writing.
func (s *Saver) Save(snapshot model.SaveGame) {
	for {
		select {
		case s.pending <- snapshot:
			return
		default:
		}
		select {
		case <-s.pending:
		default:
		}
	}
}

// Run writes pending snapshots until ctx is done, then flushes what is left.
func (s *Saver) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			s.Flush()
			return nil
		case snapshot := <-s.pending:
			s.write(snapshot)
		}
	}
}

// Flush writes the pending snapshot, if any, on the calling goroutine.
func (s *Saver) Flush() {
	select {
	case snapshot := <-s.pending:
		s.write(snapshot)
	default:
	}
}

func (s *Saver) write(snapshot model.SaveGame) {
	data, err := Encode(snapshot)
	if err != nil {
		s.logger.Debug("save skipped", "err", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := s.kv.Put(ctx, Key, data); err != nil {
		s.logger.Debug("save failed", "err", err)
	}
}
