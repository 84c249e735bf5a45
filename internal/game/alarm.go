package game

import (
	"time"

	"github.com/verte-zerg/scripttyper/internal/model"
)

// CheckAlarms schedules an alarm once its threshold is crossed. Each alarm
// fires at most once per save and only one can be pending.
func (e *Engine) CheckAlarms() bool {
	return e.do(e.checkAlarms)
}

func (e *Engine) checkAlarms(now time.Time) bool {
	a := &e.st.Alarm
	if a.Pending {
		return false
	}
	switch {
	case e.st.Player.LifetimeChars >= e.rules.FirstAlarmLifetime && claim(&a.TriggeredFirst):
		e.beginAlarm("alarm1", now)
	case now.Sub(e.st.GameStartAt) >= e.rules.SecondAlarmAfter && claim(&a.TriggeredSecond):
		e.beginAlarm("alarm2", now)
	default:
		return false
	}
	return true
}

func (e *Engine) beginAlarm(kind string, now time.Time) {
	e.st.Alarm.Pending = true
	e.st.Alarm.Countdown = e.rules.AlarmCountdown
	e.appendLog(model.GameEvent{ID: eventID(kind, now), TS: now, Message: "ALARM incoming: Prepare!"})
	e.logger.Info("alarm scheduled", "kind", kind, "countdown", e.rules.AlarmCountdown)
}

// TickAlarm advances a pending countdown by one second. At zero it starts a
// time-boxed alarm run, which needs no paper and replaces any active run.
func (e *Engine) TickAlarm() bool {
	return e.do(func(now time.Time) bool {
		a := &e.st.Alarm
		if !a.Pending {
			return false
		}
		e.dirty = true
		if a.Countdown > 1 {
			a.Countdown--
			return true
		}
		a.Pending = false
		a.Countdown = 0
		e.appendLog(model.GameEvent{ID: eventID("alarmStart", now), TS: now, Message: "ALARM started!"})
		e.start(StartOptions{Alarm: true, TimeLimitSec: e.rules.AlarmTimeLimitSec})
		return true
	})
}

// RunDeadline returns when the active alarm run runs out of time. It is
// false until the run has a time limit and its first keystroke.
func (e *Engine) RunDeadline() (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return runDeadline(e.st.Run)
}

func runDeadline(run model.RunState) (time.Time, bool) {
	if run.Status != model.RunActive || run.TimeLimitSec <= 0 || run.StartedAt == nil {
		return time.Time{}, false
	}
	return run.StartedAt.Add(time.Duration(run.TimeLimitSec) * time.Second), true
}

// EnforceTimeLimit completes the active run once its deadline has passed.
func (e *Engine) EnforceTimeLimit() bool {
	return e.do(func(now time.Time) bool {
		deadline, ok := runDeadline(e.st.Run)
		if !ok || now.Before(deadline) {
			return false
		}
		return e.complete(now)
	})
}
