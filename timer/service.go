package timer

import (
	"sync"
	"time"
)

// Type names one of the three kinds of per-match timer.
type Type string

const (
	Action      Type = "ACTION"
	DeathChoice Type = "DEATH_CHOICE"
	Draft       Type = "DRAFT"
)

// defaultTimeoutMs is the standard window for each timer type.
var defaultTimeoutMs = map[Type]int64{
	Action:      10000,
	DeathChoice: 5000,
	Draft:       60000,
}

// State is one of the four total states a timer record may be in.
type State string

const (
	Running   State = "RUNNING"
	Paused    State = "PAUSED"
	Completed State = "COMPLETED"
	TimedOut  State = "TIMEOUT"
)

// GracePeriodMs is the window after a timer's nominal expiry during which a
// late-arriving action is still accepted.
const GracePeriodMs = 500

// record is one (matchID, Type) timer. It is never exposed directly;
// callers only see the read-only query results below.
type record struct {
	typ               Type
	state             State
	startTime         int64
	timeoutMs         int64
	pausedRemainingMs int64
	cb                func()
	cancel            CancelFunc
}

// Service is the per-match, per-timer-type timeout state machine. All
// methods are safe for concurrent use; the caller is still responsible for
// serializing the state-mutating operations that accompany a timer change
// (e.g. RuleEngine.Apply) through the match's own work queue.
type Service struct {
	mu        sync.Mutex
	clock     Clock
	scheduler Scheduler
	matches   map[string]map[Type]*record
}

// NewService constructs a Service against the given clock and scheduler.
// Production code passes RealClock{} and RealScheduler{}; tests pass a
// deterministic clock and a ManualScheduler.
func NewService(clock Clock, scheduler Scheduler) *Service {
	return &Service{
		clock:     clock,
		scheduler: scheduler,
		matches:   make(map[string]map[Type]*record),
	}
}

func (s *Service) recordLocked(matchID string, typ Type) *record {
	m, ok := s.matches[matchID]
	if !ok {
		return nil
	}
	return m[typ]
}

func (s *Service) setLocked(matchID string, typ Type, rec *record) {
	m, ok := s.matches[matchID]
	if !ok {
		m = make(map[Type]*record)
		s.matches[matchID] = m
	}
	m[typ] = rec
}

func (s *Service) cancelLocked(matchID string, typ Type) {
	rec := s.recordLocked(matchID, typ)
	if rec == nil {
		return
	}
	if rec.cancel != nil {
		rec.cancel()
	}
	delete(s.matches[matchID], typ)
}

// start replaces any existing record of typ for matchID and returns the new
// start timestamp. The underlying callback is scheduled to fire once, after
// timeoutMs plus the grace period has elapsed.
func (s *Service) start(matchID string, typ Type, timeoutMs int64, cb func()) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(matchID, typ)

	start := s.clock.NowMs()
	rec := &record{typ: typ, state: Running, startTime: start, timeoutMs: timeoutMs, cb: cb}
	rec.cancel = s.schedule(matchID, rec, timeoutMs)
	s.setLocked(matchID, typ, rec)
	return start
}

// schedule arranges for rec to transition to TIMEOUT and invoke its
// callback once, delayMs (relative to "now") plus the grace period from
// now. It re-validates identity and state when the timer fires, so a
// record replaced or completed in the meantime produces no effect.
func (s *Service) schedule(matchID string, rec *record, delayMs int64) CancelFunc {
	fireIn := time.Duration(delayMs+GracePeriodMs) * time.Millisecond
	return s.scheduler.After(fireIn, func() {
		s.mu.Lock()
		cur := s.recordLocked(matchID, rec.typ)
		if cur != rec || cur.state != Running {
			s.mu.Unlock()
			return
		}
		cur.state = TimedOut
		cb := cur.cb
		s.mu.Unlock()
		if cb != nil {
			cb()
		}
	})
}

func (s *Service) StartActionTimer(matchID string, cb func()) int64 {
	return s.start(matchID, Action, defaultTimeoutMs[Action], cb)
}

func (s *Service) StartDeathChoiceTimer(matchID string, cb func()) int64 {
	return s.start(matchID, DeathChoice, defaultTimeoutMs[DeathChoice], cb)
}

func (s *Service) StartDraftTimer(matchID string, cb func()) int64 {
	return s.start(matchID, Draft, defaultTimeoutMs[Draft], cb)
}

// PauseActionTimer moves a RUNNING action timer to PAUSED, capturing its
// remaining time, and returns that remaining time. Returns -1 if the timer
// was not RUNNING (including absent).
func (s *Service) PauseActionTimer(matchID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.recordLocked(matchID, Action)
	if rec == nil || rec.state != Running {
		return -1
	}
	remaining := rec.timeoutMs - (s.clock.NowMs() - rec.startTime)
	if remaining < 0 {
		remaining = 0
	}
	rec.pausedRemainingMs = remaining
	rec.state = Paused
	if rec.cancel != nil {
		rec.cancel()
	}
	return remaining
}

// ResumeActionTimer moves a PAUSED action timer back to RUNNING. When reset
// is true it starts a fresh defaultTimeoutMs[Action] window; otherwise it
// resumes with the captured remaining time. Returns the new start time, or
// -1 if the timer was not PAUSED.
func (s *Service) ResumeActionTimer(matchID string, reset bool) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.recordLocked(matchID, Action)
	if rec == nil || rec.state != Paused {
		return -1
	}

	timeoutMs := rec.timeoutMs
	remaining := rec.pausedRemainingMs
	if reset {
		timeoutMs = defaultTimeoutMs[Action]
		remaining = timeoutMs
	}

	now := s.clock.NowMs()
	rec.startTime = now - (timeoutMs - remaining)
	rec.timeoutMs = timeoutMs
	rec.state = Running
	rec.cancel = s.schedule(matchID, rec, remaining)
	return rec.startTime
}

// CompleteTimer moves a RUNNING record to COMPLETED and cancels its pending
// firing. Returns true only if it was RUNNING.
func (s *Service) CompleteTimer(matchID string, typ Type) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.recordLocked(matchID, typ)
	if rec == nil || rec.state != Running {
		return false
	}
	rec.state = Completed
	if rec.cancel != nil {
		rec.cancel()
	}
	return true
}

// CancelTimer drops the record entirely, cancelling any pending firing.
// Cancelling an absent record is a no-op.
func (s *Service) CancelTimer(matchID string, typ Type) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(matchID, typ)
}

// CancelAll cancels every timer type for matchID. match.Registry.Remove
// does not call it; removing a match leaves its timers in place.
func (s *Service) CancelAll(matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, typ := range []Type{Action, DeathChoice, Draft} {
		s.cancelLocked(matchID, typ)
	}
}

// GetRemainingTime returns max(0, startTime+timeoutMs-now) for a RUNNING
// timer, the captured remaining time for a PAUSED one, 0 for COMPLETED or
// TIMEOUT, and -1 if no record exists.
func (s *Service) GetRemainingTime(matchID string, typ Type) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.recordLocked(matchID, typ)
	if rec == nil {
		return -1
	}
	switch rec.state {
	case Paused:
		return rec.pausedRemainingMs
	case Running:
		remaining := rec.timeoutMs - (s.clock.NowMs() - rec.startTime)
		if remaining < 0 {
			remaining = 0
		}
		return remaining
	default:
		return 0
	}
}

// GetStartTime returns the record's start timestamp, or -1 if absent.
func (s *Service) GetStartTime(matchID string, typ Type) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.recordLocked(matchID, typ)
	if rec == nil {
		return -1
	}
	return rec.startTime
}

// GetTimeoutMs returns the record's configured timeout window, or -1 if
// absent.
func (s *Service) GetTimeoutMs(matchID string, typ Type) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.recordLocked(matchID, typ)
	if rec == nil {
		return -1
	}
	return rec.timeoutMs
}

// GetTimerState returns the record's state and whether a record exists.
func (s *Service) GetTimerState(matchID string, typ Type) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.recordLocked(matchID, typ)
	if rec == nil {
		return "", false
	}
	return rec.state, true
}

// IsWithinGracePeriod reports whether now falls in
// (startTime+timeoutMs, startTime+timeoutMs+GracePeriodMs] for the named
// timer. A missing record is never within grace.
func (s *Service) IsWithinGracePeriod(matchID string, typ Type) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.recordLocked(matchID, typ)
	if rec == nil {
		return false
	}
	now := s.clock.NowMs()
	expiry := rec.startTime + rec.timeoutMs
	return now > expiry && now <= expiry+GracePeriodMs
}
