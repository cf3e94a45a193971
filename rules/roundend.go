package rules

import "github.com/turnforge/gridclash/core"

// endRound runs the seven round-end processing steps and returns the state
// ready for the next round. It is called by advanceTurn once both players
// are exhausted, and by applyDeathChoice when the action that opened the
// resolved choice had exhausted both players.
func endRound(state core.GameState) core.GameState {
	activePlayer := state.CurrentPlayer
	aliveHeroIDs := heroIDs(state)

	state = resolveSlowPreparations(state)
	state = applyBleed(state)
	if state.CurrentRound >= 3 {
		state = applyDecayToMinions(state)
	}
	if state.CurrentRound >= 8 {
		state = applyLateGamePressure(state)
	}
	state = enforceSimultaneousDeathRule(state, aliveHeroIDs, activePlayer)

	state = ageBuffs(state)
	state = ageBuffTiles(state)
	state = decrementHeroSkillCooldowns(state)
	state = resetRoundBookkeeping(state)

	state.CurrentRound++
	state.CurrentPlayer = startingPlayerForRound(state.CurrentRound)
	return state
}

// startingPlayerForRound implements the spec's "stable rotation; by default
// P1": round 1 starts with P1, and rounds alternate thereafter.
func startingPlayerForRound(round int) core.Owner {
	if round%2 == 1 {
		return core.P1
	}
	return core.P2
}

// heroIDs returns the ids of every hero that is alive right now, used to
// detect a simultaneous hero death later in this same round-end step.
func heroIDs(state core.GameState) []string {
	var ids []string
	for _, u := range state.Units {
		if u.Category == core.Hero && u.Alive() {
			ids = append(ids, u.ID)
		}
	}
	return ids
}

// resolveSlowPreparations executes every preparing unit's pendingAction
// against the current state, in unit-list order. A unit that died earlier
// in this same pass (e.g. to another preparing unit's attack) is skipped.
func resolveSlowPreparations(state core.GameState) core.GameState {
	var preparingIDs []string
	for _, u := range state.Units {
		if u.Preparing && u.Alive() {
			preparingIDs = append(preparingIDs, u.ID)
		}
	}
	for _, id := range preparingIDs {
		state = resolvePreparedAction(state, id)
	}
	return state
}

// applyBleed deals 1 HP of damage to every unit carrying a BLEED buff.
func applyBleed(state core.GameState) core.GameState {
	return damageAliveWhere(state, func(u core.Unit) bool {
		return state.HasFlag(u.ID, func(f core.Flags) bool { return f.Bleed })
	})
}

// applyDecayToMinions deals 1 HP of damage to every live minion.
func applyDecayToMinions(state core.GameState) core.GameState {
	return damageAliveWhere(state, func(u core.Unit) bool {
		return u.Category == core.Minion
	})
}

// applyLateGamePressure deals 1 HP of damage to every live unit.
func applyLateGamePressure(state core.GameState) core.GameState {
	return damageAliveWhere(state, func(core.Unit) bool { return true })
}

// damageAliveWhere snapshots the ids of live units matching pred, then
// applies 1 HP of system damage to each in turn, handling deaths as they
// occur. Snapshotting first avoids iterating a slice that killUnitByID is
// concurrently shrinking.
func damageAliveWhere(state core.GameState, pred func(core.Unit) bool) core.GameState {
	var ids []string
	for _, u := range state.Units {
		if u.Alive() && pred(u) {
			ids = append(ids, u.ID)
		}
	}
	for _, id := range ids {
		idx := state.UnitIndex(id)
		if idx < 0 {
			continue
		}
		u := state.Units[idx]
		if !u.Alive() {
			continue
		}
		u.HP--
		if u.HP < 0 {
			u.HP = 0
		}
		state.Units[idx] = u
		if u.HP <= 0 {
			state = killUnitByID(state, id, true)
		}
	}
	return state
}

// enforceSimultaneousDeathRule overrides the victory decided during this
// round-end step when both heroes that were alive at its start have now
// died: the active player (whoever's turn was in progress when round-end
// began) wins outright, rather than whichever hero happened to die last.
func enforceSimultaneousDeathRule(state core.GameState, aliveHeroIDsAtStart []string, activePlayer core.Owner) core.GameState {
	if len(aliveHeroIDsAtStart) != 2 {
		return state
	}
	deaths := 0
	for _, id := range aliveHeroIDsAtStart {
		if u, found := state.UnitByID(id); found && !u.Alive() {
			deaths++
		}
	}
	if deaths == 2 {
		state.GameOver = true
		winner := activePlayer
		state.Winner = &winner
	}
	return state
}

func decrementHeroSkillCooldowns(state core.GameState) core.GameState {
	for i, u := range state.Units {
		if u.Category != core.Hero {
			continue
		}
		if u.SkillCooldown > 0 {
			u.SkillCooldown--
		}
		state.Units[i] = u
	}
	return state
}

// resetRoundBookkeeping clears per-round action spend and SLOW preparation
// state on every live unit.
func resetRoundBookkeeping(state core.GameState) core.GameState {
	for i, u := range state.Units {
		if !u.Alive() {
			continue
		}
		u.ActionsUsed = 0
		u.Preparing = false
		u.PendingAction = nil
		state.Units[i] = u
	}
	return state
}
