package rules

import "github.com/turnforge/gridclash/core"

func validateMove(state core.GameState, action Action) ValidationResult {
	actor, v := validateActor(state, action.ActorID, action.ActingPlayer)
	if !v.Valid {
		return v
	}
	if !state.CanAct(actor) {
		return reject("unit has no actions remaining")
	}
	if !state.Board.Contains(action.Target) {
		return reject("target out of bounds")
	}

	_, moveRange, _ := state.EffectiveStats(actor)
	if core.ManhattanDistance(actor.Position, action.Target) > moveRange {
		return reject("destination out of move range")
	}
	if state.IsOccupied(action.Target) {
		return reject("destination is occupied")
	}
	return ok()
}

// applyMove moves the actor to action.Target, grants any buff tile it
// lands on, advances the turn driver, and returns the new state. Callers
// must have already validated the action. A SLOW-flagged actor instead
// records the move as its pendingAction to be resolved at round end.
func applyMove(state core.GameState, action Action) core.GameState {
	next := state.Clone()
	idx := next.UnitIndex(action.ActorID)

	if next.HasFlag(action.ActorID, func(f core.Flags) bool { return f.Slow }) {
		return deferAsPreparing(next, idx, core.PendingAction{
			Type:   string(Move),
			Target: action.Target,
		})
	}
	return doMove(next, idx, action.Target)
}

// doMove performs the position change, buff-tile pickup and actionsUsed
// bookkeeping for unit index idx in a state the caller already owns
// exclusively (already cloned). It returns the state after the turn
// driver has assigned the next player. It does not itself clone.
func doMove(state core.GameState, unitIdx int, target core.Position) core.GameState {
	state = movePiece(state, unitIdx, target)
	unit := state.Units[unitIdx]
	unit.ActionsUsed++
	state.Units[unitIdx] = unit
	return advanceTurn(state, unit.ID)
}

// movePiece relocates the unit at unitIdx to target and resolves any buff
// tile pickup there, without touching actionsUsed or the turn driver. It is
// shared by the live MOVE path and by SLOW-preparation resolution at
// round-end, which must not re-spend an action or rotate the turn.
func movePiece(state core.GameState, unitIdx int, target core.Position) core.GameState {
	unit := state.Units[unitIdx]
	unit.Position = target
	state.Units[unitIdx] = unit

	if tile, tileIdx, found := state.ActiveBuffTileAt(target); found {
		state.BuffTiles[tileIdx].Triggered = true
		state = grantBuff(state, unit.ID, tile.BuffType, tile.DurationRounds)
	}
	return state
}
