package core

import "testing"

func newTestState() GameState {
	return GameState{
		Board: NewBoard(),
		Units: []Unit{
			{ID: "h1", Owner: P1, Position: Position{X: 2, Y: 2}, HP: 5, MaxHP: 5, Attack: 1, MoveRange: 1, AttackRange: 1, Category: Hero},
			{ID: "h2", Owner: P2, Position: Position{X: 2, Y: 3}, HP: 5, MaxHP: 5, Attack: 1, MoveRange: 1, AttackRange: 1, Category: Hero},
		},
		CurrentPlayer: P1,
		CurrentRound:  1,
		UnitBuffs:     map[string][]BuffInstance{},
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := newTestState()
	cp := s.Clone()

	cp.Units[0].HP = 1
	cp.UnitBuffs["h1"] = append(cp.UnitBuffs["h1"], BuffInstance{ID: "b1", Type: Power})
	cp.BuffTiles = append(cp.BuffTiles, BuffTile{ID: "t1"})
	cp.Obstacles = append(cp.Obstacles, Obstacle{ID: "o1"})

	if s.Units[0].HP != 5 {
		t.Errorf("expected original unit HP to stay 5, got %d", s.Units[0].HP)
	}
	if len(s.UnitBuffs["h1"]) != 0 {
		t.Errorf("expected original UnitBuffs to be untouched, got %v", s.UnitBuffs["h1"])
	}
	if len(s.BuffTiles) != 0 {
		t.Errorf("expected original BuffTiles to stay empty, got %v", s.BuffTiles)
	}
	if len(s.Obstacles) != 0 {
		t.Errorf("expected original Obstacles to stay empty, got %v", s.Obstacles)
	}
}

func TestClonePendingActionIsDeepCopied(t *testing.T) {
	s := newTestState()
	s.Units[0].PendingAction = &PendingAction{Type: "MOVE", Target: Position{X: 1, Y: 1}}

	cp := s.Clone()
	cp.Units[0].PendingAction.Type = "ATTACK"

	if s.Units[0].PendingAction.Type != "MOVE" {
		t.Errorf("expected original PendingAction to be untouched, got %q", s.Units[0].PendingAction.Type)
	}
}

func TestUnitAtAndIsOccupied(t *testing.T) {
	s := newTestState()

	if _, ok := s.UnitAt(Position{X: 0, Y: 0}); ok {
		t.Error("expected empty tile to report no unit")
	}
	if u, ok := s.UnitAt(Position{X: 2, Y: 2}); !ok || u.ID != "h1" {
		t.Errorf("expected h1 at (2,2), got %+v ok=%v", u, ok)
	}
	if !s.IsOccupied(Position{X: 2, Y: 2}) {
		t.Error("expected (2,2) to be occupied")
	}

	s.Obstacles = append(s.Obstacles, Obstacle{ID: "o1", Position: Position{X: 0, Y: 0}})
	if !s.IsOccupied(Position{X: 0, Y: 0}) {
		t.Error("expected obstacle tile to be occupied")
	}
}

func TestEffectiveStatsFoldsBuffs(t *testing.T) {
	s := newTestState()
	s.UnitBuffs["h1"] = []BuffInstance{
		{ID: "b1", Type: Power, Modifiers: Modifiers{Attack: 2}},
		{ID: "b2", Type: Weakness, Modifiers: Modifiers{Attack: -5}},
	}

	u, _ := s.UnitByID("h1")
	atk, moveRange, attackRange := s.EffectiveStats(u)
	if atk != 0 {
		t.Errorf("expected attack floored at 0 (1+2-5), got %d", atk)
	}
	if moveRange != u.MoveRange || attackRange != u.AttackRange {
		t.Errorf("expected unmodified move/attack range, got %d/%d", moveRange, attackRange)
	}
}

func TestRemainingActionsWithSpeed(t *testing.T) {
	s := newTestState()
	u, _ := s.UnitByID("h1")

	if s.RemainingActions(u) != 1 {
		t.Errorf("expected 1 action without SPEED, got %d", s.RemainingActions(u))
	}

	s.UnitBuffs["h1"] = []BuffInstance{{ID: "b1", Type: Speed, Flags: Flags{Speed: true}}}
	if s.RemainingActions(u) != 2 {
		t.Errorf("expected 2 actions with SPEED, got %d", s.RemainingActions(u))
	}
}

func TestDistanceMetrics(t *testing.T) {
	a := Position{X: 0, Y: 0}
	b := Position{X: 3, Y: 4}

	if got := ManhattanDistance(a, b); got != 7 {
		t.Errorf("expected Manhattan distance 7, got %d", got)
	}
	if got := ChebyshevDistance(a, b); got != 4 {
		t.Errorf("expected Chebyshev distance 4, got %d", got)
	}
}
