package timer

import "testing"

type fakeClock struct{ ms int64 }

func (c *fakeClock) NowMs() int64 { return c.ms }

func TestStartAndRemainingTime(t *testing.T) {
	clock := &fakeClock{ms: 0}
	svc := NewService(clock, &ManualScheduler{})

	start := svc.StartActionTimer("m1", nil)
	if start != 0 {
		t.Fatalf("expected start=0, got %d", start)
	}

	clock.ms = 4000
	if got := svc.GetRemainingTime("m1", Action); got != 6000 {
		t.Fatalf("expected remaining=6000, got %d", got)
	}
}

func TestPauseAndResumeWithReset(t *testing.T) {
	clock := &fakeClock{ms: 0}
	svc := NewService(clock, &ManualScheduler{})
	svc.StartActionTimer("m1", nil)

	clock.ms = 3000
	remaining := svc.PauseActionTimer("m1")
	if remaining != 7000 {
		t.Fatalf("expected paused remaining=7000, got %d", remaining)
	}
	if st, _ := svc.GetTimerState("m1", Action); st != Paused {
		t.Fatalf("expected PAUSED, got %s", st)
	}

	clock.ms = 3500
	svc.ResumeActionTimer("m1", true)
	if st, _ := svc.GetTimerState("m1", Action); st != Running {
		t.Fatalf("expected RUNNING after resume, got %s", st)
	}
	if got := svc.GetRemainingTime("m1", Action); got != 10000 {
		t.Fatalf("expected fresh 10000ms window after reset resume, got %d", got)
	}
}

func TestCompleteOnlyFromRunning(t *testing.T) {
	clock := &fakeClock{ms: 0}
	svc := NewService(clock, &ManualScheduler{})
	svc.StartActionTimer("m1", nil)
	svc.PauseActionTimer("m1")

	if svc.CompleteTimer("m1", Action) {
		t.Fatalf("expected complete on a PAUSED timer to fail")
	}

	svc.ResumeActionTimer("m1", false)
	if !svc.CompleteTimer("m1", Action) {
		t.Fatalf("expected complete on a RUNNING timer to succeed")
	}
	if svc.CompleteTimer("m1", Action) {
		t.Fatalf("expected a second complete to fail, already COMPLETED")
	}
}

func TestTimeoutFiresExactlyOnceAfterGrace(t *testing.T) {
	clock := &fakeClock{ms: 0}
	sched := &ManualScheduler{}
	svc := NewService(clock, sched)

	fired := 0
	svc.StartActionTimer("m1", func() { fired++ })

	clock.ms = 10600 // past timeout(10000)+grace(500)
	sched.FireAll()

	if fired != 1 {
		t.Fatalf("expected callback to fire exactly once, got %d", fired)
	}
	if st, _ := svc.GetTimerState("m1", Action); st != TimedOut {
		t.Fatalf("expected TIMEOUT state, got %s", st)
	}
}

func TestCancelPreventsCallback(t *testing.T) {
	clock := &fakeClock{ms: 0}
	sched := &ManualScheduler{}
	svc := NewService(clock, sched)

	fired := 0
	svc.StartActionTimer("m1", func() { fired++ })
	svc.CancelTimer("m1", Action)

	clock.ms = 20000
	sched.FireAll()

	if fired != 0 {
		t.Fatalf("expected no callback after cancel, got %d", fired)
	}
	if _, found := svc.GetTimerState("m1", Action); found {
		t.Fatalf("expected no record after cancel")
	}
}

func TestGraceBoundary(t *testing.T) {
	clock := &fakeClock{ms: 0}
	svc := NewService(clock, &ManualScheduler{})
	svc.StartActionTimer("m1", nil)

	clock.ms = 10500 // exactly at boundary: accepted
	if !svc.IsWithinGracePeriod("m1", Action) {
		t.Fatalf("expected now=10500 to be within grace")
	}
	clock.ms = 10501
	if svc.IsWithinGracePeriod("m1", Action) {
		t.Fatalf("expected now=10501 to be past grace")
	}
}
