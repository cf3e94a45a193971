package rules

import (
	"testing"

	"github.com/turnforge/gridclash/core"
)

func newDuelState() core.GameState {
	return core.GameState{
		Board:         core.NewBoard(),
		CurrentPlayer: core.P1,
		CurrentRound:  1,
		UnitBuffs:     map[string][]core.BuffInstance{},
		Units: []core.Unit{
			{ID: "h1", Owner: core.P1, Position: core.Position{X: 0, Y: 0}, HP: 5, MaxHP: 5, Attack: 2, MoveRange: 2, AttackRange: 1, Category: core.Hero},
			{ID: "h2", Owner: core.P2, Position: core.Position{X: 4, Y: 4}, HP: 5, MaxHP: 5, Attack: 2, MoveRange: 2, AttackRange: 1, Category: core.Hero},
			{ID: "m1", Owner: core.P1, Position: core.Position{X: 0, Y: 1}, HP: 3, MaxHP: 3, Attack: 1, MoveRange: 2, AttackRange: 1, Category: core.Minion, MinionType: core.Archer},
			{ID: "m2", Owner: core.P2, Position: core.Position{X: 1, Y: 1}, HP: 3, MaxHP: 3, Attack: 1, MoveRange: 2, AttackRange: 1, Category: core.Minion, MinionType: core.Archer},
		},
	}
}

func TestValidateMoveRejectsOutOfRange(t *testing.T) {
	state := newDuelState()
	action := Action{Type: Move, ActingPlayer: core.P1, ActorID: "h1", Target: core.Position{X: 4, Y: 0}}
	v := Validate(state, action)
	if v.Valid {
		t.Fatalf("expected move out of range to be rejected")
	}
}

func TestApplyMoveExhaustsActorThenPassesToOpponent(t *testing.T) {
	state := newDuelState()
	action := Action{Type: Move, ActingPlayer: core.P1, ActorID: "h1", Target: core.Position{X: 1, Y: 0}}

	next, err := Apply(state, action)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.CurrentPlayer != core.P2 {
		t.Fatalf("expected h1's single action to exhaust it and pass to P2 (m1 being able to act doesn't matter until P1 has no actable unit left), got %s", next.CurrentPlayer)
	}
	u, _ := next.UnitByID("h1")
	if u.Position != (core.Position{X: 1, Y: 0}) {
		t.Fatalf("unit did not move, got %+v", u.Position)
	}
}

func TestApplyMoveKeepsTurnWhenOpponentExhausted(t *testing.T) {
	state := newDuelState()
	for _, id := range []string{"h2", "m2"} {
		u := mustUnit(t, state, id)
		u.ActionsUsed = state.RemainingActions(u)
		setUnit(&state, id, u)
	}

	action := Action{Type: Move, ActingPlayer: core.P1, ActorID: "h1", Target: core.Position{X: 1, Y: 0}}
	next, err := Apply(state, action)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.CurrentPlayer != core.P1 {
		t.Fatalf("expected P1 to keep the turn (h1 exhausted but m1 can still act, P2 fully exhausted), got %s", next.CurrentPlayer)
	}
}

func TestApplyMoveOntoOccupiedRejected(t *testing.T) {
	state := newDuelState()
	action := Action{Type: Move, ActingPlayer: core.P1, ActorID: "h1", Target: core.Position{X: 0, Y: 1}}
	if v := Validate(state, action); v.Valid {
		t.Fatalf("expected move onto occupied tile to be rejected")
	}
}

func TestGuardianRedirectsDamage(t *testing.T) {
	state := newDuelState()
	state.Units = append(state.Units, core.Unit{
		ID: "tank2", Owner: core.P2, Position: core.Position{X: 4, Y: 3}, HP: 4, MaxHP: 4,
		Attack: 1, MoveRange: 1, AttackRange: 1, Category: core.Minion, MinionType: core.Tank,
	})
	// h1 attacks h2; tank2 is orthogonally adjacent to h2 and should absorb the hit.
	actor := mustUnit(t, state, "h1")
	actor.Position = core.Position{X: 3, Y: 4}
	setUnit(&state, "h1", actor)

	action := Action{Type: Attack, ActingPlayer: core.P1, ActorID: "h1", TargetUnitID: "h2"}
	next, err := Apply(state, action)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h2 := mustUnit(t, next, "h2")
	if h2.HP != 5 {
		t.Fatalf("expected h2 untouched by redirected attack, hp=%d", h2.HP)
	}
	tank := mustUnit(t, next, "tank2")
	if tank.HP != 2 {
		t.Fatalf("expected tank2 to absorb 2 damage, hp=%d", tank.HP)
	}
}

func TestMinionDeathByActionOpensDeathChoice(t *testing.T) {
	state := newDuelState()
	m2 := mustUnit(t, state, "m2")
	m2.HP = 1
	setUnit(&state, "m2", m2)

	h1 := mustUnit(t, state, "h1")
	h1.Position = core.Position{X: 1, Y: 0}
	setUnit(&state, "h1", h1)

	action := Action{Type: Attack, ActingPlayer: core.P1, ActorID: "h1", TargetUnitID: "m2"}
	next, err := Apply(state, action)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.PendingDeathChoice == nil {
		t.Fatalf("expected a pending death choice after minion death")
	}
	if next.PendingDeathChoice.Owner != core.P2 {
		t.Fatalf("expected death choice owned by P2, got %s", next.PendingDeathChoice.Owner)
	}
	if next.CurrentPlayer != core.P2 {
		t.Fatalf("expected currentPlayer to name the death choice's owner (P2), got %s", next.CurrentPlayer)
	}
	if _, found := next.UnitByID("m2"); found {
		t.Fatalf("expected m2 removed from units")
	}

	// No other action is legal until the death choice resolves.
	endTurn := Action{Type: EndTurn, ActingPlayer: core.P2}
	if v := Validate(next, endTurn); v.Valid {
		t.Fatalf("expected END_TURN to be rejected while a death choice is pending")
	}
}

func TestHeroDeathEndsGame(t *testing.T) {
	state := newDuelState()
	h2 := mustUnit(t, state, "h2")
	h2.HP = 1
	setUnit(&state, "h2", h2)

	h1 := mustUnit(t, state, "h1")
	h1.Position = core.Position{X: 4, Y: 3}
	setUnit(&state, "h1", h1)

	action := Action{Type: Attack, ActingPlayer: core.P1, ActorID: "h1", TargetUnitID: "h2"}
	next, err := Apply(state, action)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !next.GameOver {
		t.Fatalf("expected game over on hero death")
	}
	if next.Winner == nil || *next.Winner != core.P1 {
		t.Fatalf("expected P1 to win, got %+v", next.Winner)
	}
	deadHero := mustUnit(t, next, "h2")
	if deadHero.HP != 0 {
		t.Fatalf("expected dead hero to remain in units at hp 0")
	}
}

func TestEndTurnExhaustsAllUnitsThenPasses(t *testing.T) {
	state := newDuelState()
	next, err := Apply(state, Action{Type: EndTurn, ActingPlayer: core.P1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.CurrentPlayer != core.P2 {
		t.Fatalf("expected turn to pass to P2, got %s", next.CurrentPlayer)
	}
	for _, id := range []string{"h1", "m1"} {
		u := mustUnit(t, next, id)
		if u.ActionsUsed < next.RemainingActions(u) {
			t.Fatalf("expected %s to be exhausted", id)
		}
	}
}

func TestSpeedBuffGrantsTwoActions(t *testing.T) {
	state := newDuelState()
	state = grantBuff(state, "h1", core.Speed, 1)

	action := Action{Type: Move, ActingPlayer: core.P1, ActorID: "h1", Target: core.Position{X: 1, Y: 0}}
	next, err := Apply(state, action)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.CurrentPlayer != core.P1 {
		t.Fatalf("expected P1 to retain the turn after one of two SPEED actions")
	}
	h1 := mustUnit(t, next, "h1")
	if h1.ActionsUsed != 1 {
		t.Fatalf("expected actionsUsed=1, got %d", h1.ActionsUsed)
	}
}

func TestSlowUnitDefersActionToRoundEnd(t *testing.T) {
	state := newDuelState()
	state = grantBuff(state, "m1", core.Slow, 3)

	action := Action{Type: Move, ActingPlayer: core.P1, ActorID: "m1", Target: core.Position{X: 1, Y: 0}}
	next, err := Apply(state, action)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m1 := mustUnit(t, next, "m1")
	if m1.Position != (core.Position{X: 0, Y: 1}) {
		t.Fatalf("expected SLOW unit not to move immediately, got %+v", m1.Position)
	}
	if !m1.Preparing || m1.PendingAction == nil {
		t.Fatalf("expected m1 to be preparing with a pending action")
	}
}

func TestBleedDamagesAtRoundEnd(t *testing.T) {
	state := newDuelState()
	state = grantBuff(state, "m1", core.Bleed, 5)

	// Exhaust every unit so the next action triggers round-end.
	state, err := Apply(state, Action{Type: EndTurn, ActingPlayer: core.P1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state, err = Apply(state, Action{Type: EndTurn, ActingPlayer: core.P2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m1 := mustUnit(t, state, "m1")
	if m1.HP != 2 {
		t.Fatalf("expected m1 to take 1 bleed damage, hp=%d", m1.HP)
	}
	if state.CurrentRound != 2 {
		t.Fatalf("expected round to advance to 2, got %d", state.CurrentRound)
	}
	if state.CurrentPlayer != core.P2 {
		t.Fatalf("expected round 2 to start with P2, got %s", state.CurrentPlayer)
	}
}

func TestDecayAppliesFromRoundThree(t *testing.T) {
	state := newDuelState()
	state.CurrentRound = 3

	state, err := Apply(state, Action{Type: EndTurn, ActingPlayer: core.P1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state, err = Apply(state, Action{Type: EndTurn, ActingPlayer: core.P2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, id := range []string{"m1", "m2"} {
		u := mustUnit(t, state, id)
		if u.HP != 2 {
			t.Fatalf("expected %s to take 1 decay damage, hp=%d", id, u.HP)
		}
	}
	h1 := mustUnit(t, state, "h1")
	if h1.HP != 5 {
		t.Fatalf("expected heroes untouched by decay, h1 hp=%d", h1.HP)
	}
}

func TestDeathChoiceSpawnsObstacleWithOverwriteRule(t *testing.T) {
	state := newDuelState()
	// currentPlayer must already name the choice's owner per the invariant
	// that holds for as long as a death choice is pending.
	state.CurrentPlayer = core.P2
	state.PendingDeathChoice = &core.DeathChoice{
		DeadUnitID: "m2", Owner: core.P2, DeathPosition: core.Position{X: 1, Y: 1},
		ResumePlayer: core.P1,
	}
	state.BuffTiles = []core.BuffTile{{ID: "old-tile", Position: core.Position{X: 1, Y: 1}, BuffType: core.Power, DurationRounds: 1}}

	action := Action{Type: DeathChoice, ActingPlayer: core.P2, Choice: SpawnObstacle}
	next, err := Apply(state, action)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.PendingDeathChoice != nil {
		t.Fatalf("expected pending death choice to clear")
	}
	if len(next.BuffTiles) != 0 {
		t.Fatalf("expected overwrite rule to remove the existing buff tile")
	}
	if _, found := next.ObstacleAt(core.Position{X: 1, Y: 1}); !found {
		t.Fatalf("expected a new obstacle at the death position")
	}
	if next.CurrentPlayer != core.P1 {
		t.Fatalf("expected resolving the choice to resume the stashed turn decision (P1), got %s", next.CurrentPlayer)
	}
}

func mustUnit(t *testing.T, state core.GameState, id string) core.Unit {
	t.Helper()
	u, found := state.UnitByID(id)
	if !found {
		t.Fatalf("unit %s not found", id)
	}
	return u
}

func setUnit(state *core.GameState, id string, u core.Unit) {
	idx := state.UnitIndex(id)
	state.Units[idx] = u
}
