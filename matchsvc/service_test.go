package matchsvc

import (
	"testing"

	"github.com/turnforge/gridclash/core"
	"github.com/turnforge/gridclash/match"
	"github.com/turnforge/gridclash/protocol"
	"github.com/turnforge/gridclash/rules"
	"github.com/turnforge/gridclash/timer"
)

type fakeClock struct{ ms int64 }

func (c *fakeClock) NowMs() int64 { return c.ms }

func newDuelMatch(t *testing.T, registry *match.Registry) {
	t.Helper()
	state := core.GameState{
		Board:         core.NewBoard(),
		CurrentPlayer: core.P1,
		CurrentRound:  1,
		UnitBuffs:     map[string][]core.BuffInstance{},
		Units: []core.Unit{
			{ID: "h1", Owner: core.P1, Position: core.Position{X: 2, Y: 2}, HP: 10, MaxHP: 10, Attack: 3, MoveRange: 2, AttackRange: 1, Category: core.Hero},
			{ID: "h2", Owner: core.P2, Position: core.Position{X: 2, Y: 3}, HP: 10, MaxHP: 10, Attack: 3, MoveRange: 2, AttackRange: 1, Category: core.Hero},
			{ID: "m2", Owner: core.P2, Position: core.Position{X: 3, Y: 2}, HP: 1, MaxHP: 3, Attack: 1, MoveRange: 2, AttackRange: 1, Category: core.Minion, MinionType: core.Archer},
		},
	}
	if _, err := registry.Create("m1", state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAttackDealsExactlyAttackDamage(t *testing.T) {
	registry := match.NewRegistry()
	newDuelMatch(t, registry)
	clock := &fakeClock{}
	svc := NewService(registry, timer.NewService(clock, &timer.ManualScheduler{}), nil)

	result, err := svc.ApplyActionWithTimer("m1", core.P1, rules.Action{
		Type: rules.Attack, ActingPlayer: core.P1, ActorID: "h1", TargetUnitID: "h2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, _ := result.State.UnitByID("h2")
	if h2.HP != 7 {
		t.Fatalf("expected h2 hp=7, got %d", h2.HP)
	}
	if result.GameOver {
		t.Fatalf("did not expect game over")
	}
}

func TestHeroKillEndsGameAndCancelsTimer(t *testing.T) {
	registry := match.NewRegistry()
	newDuelMatch(t, registry)
	clock := &fakeClock{}
	timers := timer.NewService(clock, &timer.ManualScheduler{})
	svc := NewService(registry, timers, nil)

	// Bring h2 to 1 HP first via registry mutation to model "HP=1 adjacent".
	m, _ := registry.Get("m1")
	state := m.State
	idx := state.UnitIndex("h2")
	state.Units[idx].HP = 1
	registry.UpdateState("m1", state)
	timers.StartActionTimer("m1", nil)

	result, err := svc.ApplyActionWithTimer("m1", core.P1, rules.Action{
		Type: rules.Attack, ActingPlayer: core.P1, ActorID: "h1", TargetUnitID: "h2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.GameOver {
		t.Fatalf("expected game over")
	}
	if result.State.Winner == nil || *result.State.Winner != core.P1 {
		t.Fatalf("expected P1 to win")
	}
	if _, found := timers.GetTimerState("m1", timer.Action); found {
		t.Fatalf("expected ACTION timer to be cancelled")
	}
}

func TestMinionDeathPausesActionStartsDeathChoice(t *testing.T) {
	registry := match.NewRegistry()
	newDuelMatch(t, registry)
	clock := &fakeClock{}
	timers := timer.NewService(clock, &timer.ManualScheduler{})
	svc := NewService(registry, timers, nil)
	timers.StartActionTimer("m1", nil)

	result, err := svc.ApplyActionWithTimer("m1", core.P1, rules.Action{
		Type: rules.Attack, ActingPlayer: core.P1, ActorID: "h1", TargetUnitID: "m2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.State.PendingDeathChoice == nil || result.State.PendingDeathChoice.Owner != core.P2 {
		t.Fatalf("expected pending death choice owned by P2")
	}
	if st, _ := timers.GetTimerState("m1", timer.Action); st != timer.Paused {
		t.Fatalf("expected ACTION timer PAUSED, got %s", st)
	}
	if st, _ := timers.GetTimerState("m1", timer.DeathChoice); st != timer.Running {
		t.Fatalf("expected DEATH_CHOICE timer RUNNING, got %s", st)
	}
	if result.TimeoutMs != 5000 || result.TimerType != timer.DeathChoice {
		t.Fatalf("expected death-choice timer metadata, got %+v", result)
	}

	// A follow-up END_TURN is rejected while the choice is pending.
	if _, err := svc.ApplyActionWithTimer("m1", core.P2, rules.Action{Type: rules.EndTurn, ActingPlayer: core.P2}); err == nil {
		t.Fatalf("expected END_TURN to be rejected while death choice pending")
	}

	deathResult, err := svc.ApplyActionWithTimer("m1", core.P2, rules.Action{
		Type: rules.DeathChoice, ActingPlayer: core.P2, Choice: rules.SpawnObstacle,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deathResult.State.PendingDeathChoice != nil {
		t.Fatalf("expected death choice cleared")
	}
	if deathResult.TimeoutMs != 10000 || deathResult.TimerType != timer.Action {
		t.Fatalf("expected a fresh ACTION timer, got %+v", deathResult)
	}
	if st, _ := timers.GetTimerState("m1", timer.Action); st != timer.Running {
		t.Fatalf("expected ACTION timer RUNNING again, got %s", st)
	}
}

func TestActionTimeoutAppliesHeroPenaltyAndAutoEndsTurn(t *testing.T) {
	registry := match.NewRegistry()
	newDuelMatch(t, registry)
	clock := &fakeClock{}
	sched := &timer.ManualScheduler{}
	timers := timer.NewService(clock, sched)

	var events []protocol.TimeoutPayload
	svc := NewService(registry, timers, func(_ string, msg protocol.TimeoutPayload) {
		events = append(events, msg)
	})

	// Drive the first action through the service so its own postApply starts
	// an ACTION timer whose callback is the service's own handler.
	if _, err := svc.ApplyActionWithTimer("m1", core.P1, rules.Action{Type: rules.EndTurn, ActingPlayer: core.P1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clock.ms = 10600
	sched.FireAll()

	if len(events) != 1 {
		t.Fatalf("expected exactly one timeout event, got %d", len(events))
	}
	ev := events[0]
	if ev.Penalty == nil || ev.Penalty.Kind != "HERO_HP_LOSS" || ev.Penalty.Amount != 1 {
		t.Fatalf("expected HERO_HP_LOSS penalty of 1, got %+v", ev.Penalty)
	}
	if ev.DefaultAction != "END_TURN" {
		t.Fatalf("expected defaultAction END_TURN, got %s", ev.DefaultAction)
	}
	if ev.PlayerID != core.P2 {
		t.Fatalf("expected the timed-out player to be P2, got %s", ev.PlayerID)
	}
	h2, _ := ev.State.UnitByID("h2")
	if h2.HP != 9 {
		t.Fatalf("expected h2 (P2's hero) to take 1 penalty damage, hp=%d", h2.HP)
	}
}
