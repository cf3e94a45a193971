package rules

import "github.com/turnforge/gridclash/core"

// deferAsPreparing records a SLOW-flagged unit's declared action instead of
// executing it: the unit is marked preparing and its actionsUsed still
// advances (it has "acted" for turn-driver purposes), but the actual effect
// waits for round-end's SLOW-preparations step.
func deferAsPreparing(state core.GameState, unitIdx int, pending core.PendingAction) core.GameState {
	unit := state.Units[unitIdx]
	unit.PendingAction = &pending
	unit.Preparing = true
	unit.ActionsUsed++
	state.Units[unitIdx] = unit
	return advanceTurn(state, unit.ID)
}

// resolvePreparedAction executes actorID's pendingAction against the
// current state during round-end SLOW processing. If the action is no
// longer valid (target moved away, destination now blocked, target unit no
// longer a live enemy, out of range), it is silently skipped. It never
// advances the turn driver or re-spends an action — round-end owns both.
func resolvePreparedAction(state core.GameState, actorID string) core.GameState {
	idx := state.UnitIndex(actorID)
	if idx < 0 {
		return state
	}
	actor := state.Units[idx]
	if !actor.Alive() || actor.PendingAction == nil {
		return state
	}
	pending := *actor.PendingAction

	switch ActionType(pending.Type) {
	case Move:
		if !canLandMove(state, pending.Target) {
			return state
		}
		return movePiece(state, idx, pending.Target)

	case Attack:
		if !canStillAttack(state, actor, pending.TargetUnitID) {
			return state
		}
		return asSystemDeath(state, resolveAttack(state, actor, pending.TargetUnitID))

	case MoveAndAttack:
		if !canLandMove(state, pending.Target) {
			return state
		}
		scratch := movePiece(state.Clone(), idx, pending.Target)
		if !canStillAttack(scratch, scratch.Units[idx], pending.TargetUnitID) {
			return state
		}
		next := movePiece(state, idx, pending.Target)
		return asSystemDeath(state, resolveAttack(next, next.Units[idx], pending.TargetUnitID))
	}
	return state
}

// asSystemDeath turns a death choice opened by a prepared attack into a
// round-end system death: no choice is left pending, and an obstacle or buff
// tile is auto-placed at the victim's position by round parity.
func asSystemDeath(before, after core.GameState) core.GameState {
	if before.PendingDeathChoice != nil || after.PendingDeathChoice == nil {
		return after
	}
	dc := *after.PendingDeathChoice
	after.PendingDeathChoice = nil
	if after.CurrentRound%2 == 1 {
		return placeObstacle(after, "sys-obstacle-"+dc.DeadUnitID, dc.DeathPosition)
	}
	buffType := buffTileCycle[after.CurrentRound%len(buffTileCycle)]
	return placeBuffTile(after, "sys-tile-"+dc.DeadUnitID, dc.DeathPosition, buffType, systemBuffTileDuration)
}

func canLandMove(state core.GameState, target core.Position) bool {
	return state.Board.Contains(target) && !state.IsOccupied(target)
}

func canStillAttack(state core.GameState, actor core.Unit, targetUnitID string) bool {
	target, found := state.UnitByID(targetUnitID)
	if !found || !target.Alive() || target.Owner == actor.Owner {
		return false
	}
	return inAttackRange(state, actor, target.Position)
}
