package timer

import "time"

// CancelFunc stops a previously scheduled callback. Calling it after the
// callback has already fired, or more than once, is a safe no-op.
type CancelFunc func()

// Scheduler decouples "fire this callback after a delay" from wall-clock
// time, so tests can simulate a timeout firing without actually waiting.
type Scheduler interface {
	After(d time.Duration, f func()) CancelFunc
}

// RealScheduler schedules callbacks on the Go runtime timer wheel; it is
// the production Scheduler.
type RealScheduler struct{}

func (RealScheduler) After(d time.Duration, f func()) CancelFunc {
	t := time.AfterFunc(d, f)
	return func() { t.Stop() }
}

// ManualScheduler never fires callbacks on its own. Every scheduled call is
// held until a test explicitly invokes FireAll, modelling the
// "no autonomous time advance; callbacks observable only via explicit
// simulation" discipline the timer service is tested under.
type ManualScheduler struct {
	pending []func()
	fired   int
}

func (m *ManualScheduler) After(_ time.Duration, f func()) CancelFunc {
	idx, batch := len(m.pending), m.fired
	m.pending = append(m.pending, f)
	return func() {
		if batch == m.fired && idx < len(m.pending) {
			m.pending[idx] = nil
		}
	}
}

// FireAll invokes, in scheduling order, every callback that hasn't been
// cancelled, then clears the pending list.
func (m *ManualScheduler) FireAll() {
	due := m.pending
	m.pending = nil
	m.fired++
	for _, f := range due {
		if f != nil {
			f()
		}
	}
}
