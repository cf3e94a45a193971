package rules

import "github.com/turnforge/gridclash/core"

// ApplyHeroHPPenalty enforces the ACTION-timeout Hero HP Penalty Rule: the
// owning player's hero loses 1 HP. If that kills the hero, ordinary hero
// death handling applies (game over, victory to the opponent). It is a
// system effect, not a player action, so it does not touch actionsUsed or
// the turn driver — callers apply an automatic END_TURN afterward.
func ApplyHeroHPPenalty(state core.GameState, owner core.Owner) core.GameState {
	next := state.Clone()
	hero, found := next.HeroOf(owner)
	if !found {
		return next
	}
	idx := next.UnitIndex(hero.ID)
	u := next.Units[idx]
	u.HP--
	if u.HP < 0 {
		u.HP = 0
	}
	next.Units[idx] = u
	if u.HP <= 0 {
		next = killUnitByID(next, hero.ID, true)
	}
	return next
}
