package rules

import "github.com/turnforge/gridclash/core"

func validateEndTurn(state core.GameState, action Action) ValidationResult {
	if state.GameOver {
		return reject("game ended")
	}
	if state.PendingDeathChoice != nil {
		return reject("death choice pending")
	}
	if action.ActingPlayer != state.CurrentPlayer {
		return reject("not your turn")
	}
	return ok()
}

// applyEndTurn marks every one of the current player's units as having
// acted this round, then lets the turn driver decide who goes next.
func applyEndTurn(state core.GameState, action Action) core.GameState {
	next := state.Clone()
	for i, u := range next.Units {
		if u.Owner == action.ActingPlayer {
			u.ActionsUsed = next.RemainingActions(u)
			next.Units[i] = u
		}
	}
	return advanceTurn(next, "")
}
