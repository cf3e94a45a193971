package rules

import (
	"testing"

	"github.com/turnforge/gridclash/core"
)

func TestFireballMultiKillOpensOneChoiceAndAutoResolvesTheRest(t *testing.T) {
	state := newDuelState()

	h1 := mustUnit(t, state, "h1")
	h1.SelectedSkillID = "fireball"
	setUnit(&state, "h1", h1)

	m2 := mustUnit(t, state, "m2")
	m2.HP = 2
	setUnit(&state, "m2", m2)

	state.Units = append(state.Units, core.Unit{
		ID: "m3", Owner: core.P2, Position: core.Position{X: 2, Y: 2}, HP: 2, MaxHP: 3,
		Attack: 1, MoveRange: 2, AttackRange: 1, Category: core.Minion, MinionType: core.Archer,
	})

	action := Action{Type: UseSkill, ActingPlayer: core.P1, ActorID: "h1", Target: core.Position{X: 1, Y: 1}}
	next, err := Apply(state, action)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, found := next.UnitByID("m2"); found {
		t.Fatalf("expected m2 killed by fireball")
	}
	if _, found := next.UnitByID("m3"); found {
		t.Fatalf("expected m3 killed by fireball")
	}

	if next.PendingDeathChoice == nil {
		t.Fatalf("expected exactly one pending death choice to survive the multi-kill")
	}
	if next.PendingDeathChoice.DeadUnitID != "m2" {
		t.Fatalf("expected the first victim's death choice to survive, got %s", next.PendingDeathChoice.DeadUnitID)
	}

	// m3's death, arriving after a choice was already pending, auto-resolves
	// like a round-end system death instead of silently dropping or
	// overwriting m2's choice.
	if _, found := next.ObstacleAt(core.Position{X: 2, Y: 2}); !found {
		t.Fatalf("expected m3's death to auto-place an obstacle at its position")
	}
}
