// Package draft provides the one concrete DraftFactory the dispatcher uses
// to produce a match's initial GameState. The draft/setup sub-phase itself
// (hero, minion and skill selection) is out of scope; this stands in for
// it with a fixed, symmetric, deterministic starting roster.
package draft

import "github.com/turnforge/gridclash/core"

// Factory produces the initial GameState for a newly created match. The
// dispatcher depends on this as an external collaborator (spec.md §1): the
// real draft/setup sub-phase is out of scope.
type Factory func(matchID string) core.GameState

// Default is the package's one concrete Factory: each player gets a hero
// and one minion (Tank for P1, Archer for P2), placed symmetrically on
// opposite edges of the 5x5 board.
func Default(matchID string) core.GameState {
	return core.GameState{
		Board:         core.NewBoard(),
		CurrentPlayer: core.P1,
		CurrentRound:  1,
		UnitBuffs:     map[string][]core.BuffInstance{},
		Units: []core.Unit{
			heroFor(core.P1, core.Position{X: 2, Y: 0}, "knight"),
			heroFor(core.P2, core.Position{X: 2, Y: 4}, "knight"),
			minionFor(core.P1, core.Position{X: 1, Y: 0}, core.Tank),
			minionFor(core.P2, core.Position{X: 3, Y: 4}, core.Archer),
		},
	}
}

func heroFor(owner core.Owner, pos core.Position, heroClass string) core.Unit {
	return core.Unit{
		ID:              string(owner) + "-hero",
		Owner:           owner,
		Position:        pos,
		HP:              10,
		MaxHP:           10,
		Attack:          3,
		MoveRange:       2,
		AttackRange:     1,
		Category:        core.Hero,
		HeroClass:       heroClass,
		SelectedSkillID: "rally_cry",
	}
}

func minionFor(owner core.Owner, pos core.Position, minionType core.MinionType) core.Unit {
	u := core.Unit{
		ID:          string(owner) + "-" + string(minionType),
		Owner:       owner,
		Position:    pos,
		Category:    core.Minion,
		MinionType:  minionType,
		MoveRange:   2,
		AttackRange: 1,
	}
	switch minionType {
	case core.Tank:
		u.HP, u.MaxHP, u.Attack = 6, 6, 1
	case core.Archer:
		u.HP, u.MaxHP, u.Attack, u.AttackRange = 3, 3, 2, 3
	case core.Assassin:
		u.HP, u.MaxHP, u.Attack, u.MoveRange = 3, 3, 3, 3
	}
	return u
}
