package rules

import "github.com/turnforge/gridclash/core"

// validateMoveAndAttack checks the move sub-step against the current state
// and the attack sub-step against the intermediate (post-move) state.
func validateMoveAndAttack(state core.GameState, action Action) ValidationResult {
	if v := validateMove(state, action); !v.Valid {
		return v
	}

	intermediate := state.Clone()
	idx := intermediate.UnitIndex(action.ActorID)
	intermediate = movePiece(intermediate, idx, action.Target)

	attackAction := Action{
		Type:         Attack,
		ActingPlayer: action.ActingPlayer,
		ActorID:      action.ActorID,
		TargetUnitID: action.TargetUnitID,
	}
	return validateAttack(intermediate, attackAction)
}

// applyMoveAndAttack performs the move then the attack atomically against
// the intermediate state, spending a single action. A SLOW-flagged actor
// instead records the whole combined action as its pendingAction.
func applyMoveAndAttack(state core.GameState, action Action) core.GameState {
	next := state.Clone()
	actorIdx := next.UnitIndex(action.ActorID)

	if next.HasFlag(action.ActorID, func(f core.Flags) bool { return f.Slow }) {
		return deferAsPreparing(next, actorIdx, core.PendingAction{
			Type:         string(MoveAndAttack),
			Target:       action.Target,
			TargetUnitID: action.TargetUnitID,
		})
	}

	next = movePiece(next, actorIdx, action.Target)
	actor := next.Units[actorIdx]
	actor.ActionsUsed++
	next.Units[actorIdx] = actor

	next = resolveAttack(next, actor, action.TargetUnitID)
	return advanceTurn(next, actor.ID)
}
