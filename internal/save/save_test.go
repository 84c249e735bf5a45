package save

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/verte-zerg/scripttyper/internal/model"
	"github.com/verte-zerg/scripttyper/internal/store"
)

type failingKV struct{}

func (failingKV) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk gone")
}

func (failingKV) Put(context.Context, string, []byte) error {
	return errors.New("disk gone")
}

type recordingKV struct {
	mu   sync.Mutex
	puts [][]byte
}

func (k *recordingKV) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("not stored")
}

func (k *recordingKV) Put(_ context.Context, _ string, payload []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.puts = append(k.puts, payload)
	return nil
}

func (k *recordingKV) writes() [][]byte {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([][]byte(nil), k.puts...)
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "save.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if cerr := st.Close(); cerr != nil {
			_ = cerr
		}
	})
	return st
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := openStore(t)
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	in := model.SaveGame{
		Version:      Version,
		Player:       model.Player{Chars: 42, LifetimeChars: 1200, Paper: 7, Skips: 3, WelcomeComplete: true},
		Items:        []model.StoreItem{{ID: "kb", Name: "Keyboard", Owned: true, Visible: true}},
		GameStartAt:  &start,
		Alarm:        &model.AlarmState{TriggeredFirst: true},
		LifetimeRuns: 9,
	}
	saver := NewSaver(st, nil)
	saver.Save(in)
	saver.Flush()

	out := Load(context.Background(), st)
	if out == nil {
		t.Fatalf("expected snapshot, got nil")
	}
	if out.Player.Chars != 42 || out.Player.LifetimeChars != 1200 || !out.Player.WelcomeComplete {
		t.Fatalf("unexpected player: %+v", out.Player)
	}
	if len(out.Items) != 1 || !out.Items[0].Owned {
		t.Fatalf("unexpected items: %+v", out.Items)
	}
	if out.GameStartAt == nil || !out.GameStartAt.Equal(start) {
		t.Fatalf("expected game start %v, got %v", start, out.GameStartAt)
	}
	if out.Alarm == nil || !out.Alarm.TriggeredFirst || out.LifetimeRuns != 9 {
		t.Fatalf("unexpected alarm or run count: %+v %d", out.Alarm, out.LifetimeRuns)
	}
}

func TestLoadMissingIsAbsent(t *testing.T) {
	if got := Load(context.Background(), openStore(t)); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestLoadOtherVersionIsAbsent(t *testing.T) {
	st := openStore(t)
	if err := st.Put(context.Background(), Key, []byte(`{"version":2,"player":{"chars":5}}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if got := Load(context.Background(), st); got != nil {
		t.Fatalf("expected version 2 to load as absent, got %+v", got)
	}
}

func TestLoadMalformedIsAbsent(t *testing.T) {
	st := openStore(t)
	if err := st.Put(context.Background(), Key, []byte(`{not json`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if got := Load(context.Background(), st); got != nil {
		t.Fatalf("expected malformed save to load as absent, got %+v", got)
	}
}

func TestSaverSwallowsErrors(t *testing.T) {
	saver := NewSaver(failingKV{}, nil)
	saver.Save(model.SaveGame{Version: Version})
	saver.Flush()
	if got := Load(context.Background(), failingKV{}); got != nil {
		t.Fatalf("expected nil on read failure, got %+v", got)
	}
}

func TestSaverKeepsOnlyLatestSnapshot(t *testing.T) {
	kv := &recordingKV{}
	saver := NewSaver(kv, nil)
	for chars := 1; chars <= 3; chars++ {
		saver.Save(model.SaveGame{Version: Version, Player: model.Player{Chars: chars}})
	}
	if got := len(kv.writes()); got != 0 {
		t.Fatalf("expected Save not to write, got %d writes", got)
	}
	saver.Flush()
	writes := kv.writes()
	if len(writes) != 1 {
		t.Fatalf("expected 1 write, got %d", len(writes))
	}
	out, ok := Decode(writes[0])
	if !ok || out.Player.Chars != 3 {
		t.Fatalf("expected latest snapshot with 3 chars, got %+v", out)
	}
}

func TestSaverRunFlushesOnCancel(t *testing.T) {
	kv := &recordingKV{}
	saver := NewSaver(kv, nil)
	saver.Save(model.SaveGame{Version: Version, Player: model.Player{Chars: 7}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := saver.Run(ctx); err != nil {
		t.Fatalf("expected nil from Run, got %v", err)
	}
	writes := kv.writes()
	if len(writes) != 1 {
		t.Fatalf("expected pending snapshot written on shutdown, got %d writes", len(writes))
	}
}
