package rules

import "github.com/turnforge/gridclash/core"

func validateDeathChoice(state core.GameState, action Action) ValidationResult {
	if state.GameOver {
		return reject("game ended")
	}
	if state.PendingDeathChoice == nil {
		return reject("no death choice pending")
	}
	if state.PendingDeathChoice.Owner != action.ActingPlayer {
		return reject("not your death choice")
	}
	switch action.Choice {
	case SpawnObstacle, SpawnBuffTile:
	default:
		return reject("unknown spawn choice")
	}
	return ok()
}

// applyDeathChoice spawns the chosen element at the vacated position per
// the overwrite rule and clears the pending choice. It does not spend an
// action — the death choice interrupts, rather than consumes, the normal
// turn flow. It resumes the turn driver's decision stashed on the choice
// when it opened, rather than recomputing one: DEATH_CHOICE has no acting
// unit of its own to feed back into advanceTurn.
func applyDeathChoice(state core.GameState, action Action) core.GameState {
	next := state.Clone()
	pos := next.PendingDeathChoice.DeathPosition
	id := next.PendingDeathChoice.DeadUnitID
	resumePlayer := next.PendingDeathChoice.ResumePlayer
	resumeEndsRound := next.PendingDeathChoice.ResumeEndsRound

	switch action.Choice {
	case SpawnObstacle:
		next = placeObstacle(next, "choice-obstacle-"+id, pos)
	case SpawnBuffTile:
		buffType := buffTileCycle[next.CurrentRound%len(buffTileCycle)]
		next = placeBuffTile(next, "choice-tile-"+id, pos, buffType, systemBuffTileDuration)
	}

	next.PendingDeathChoice = nil
	if resumeEndsRound {
		return endRound(next)
	}
	next.CurrentPlayer = resumePlayer
	return next
}
