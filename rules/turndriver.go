package rules

import "github.com/turnforge/gridclash/core"

// advanceTurn is the per-action turn driver: it runs after every successful
// action and decides who acts next.
//
//  1. If the game just ended, leave the state untouched.
//  2. If actorID names a unit that itself still has an action left (a
//     SPEED-buffed unit after the first of its two actions this round),
//     that unit isn't exhausted yet and the same player keeps the turn —
//     no pass is even attempted.
//  3. Otherwise the acting unit is exhausted: attempt to pass to the other
//     player. If they have any unit able to act, play passes to them.
//  4. Otherwise, the exhaustion rule: the current player keeps the turn as
//     long as they still have some other unit able to act.
//  5. Otherwise both players are exhausted and the round ends.
//
// If the action just opened a death choice, steps 2-5 are still evaluated
// so the decision isn't lost, but it is stashed on the DeathChoice rather
// than applied immediately — the death choice's owner must hold
// currentPlayer for as long as it is pending. The decision is applied when
// DEATH_CHOICE resolves.
func advanceTurn(state core.GameState, actorID string) core.GameState {
	if state.GameOver {
		return state
	}

	nextPlayer, endsRound := decideNext(state, actorID)

	if state.PendingDeathChoice != nil {
		state.PendingDeathChoice.ResumePlayer = nextPlayer
		state.PendingDeathChoice.ResumeEndsRound = endsRound
		return state
	}

	if endsRound {
		return endRound(state)
	}
	state.CurrentPlayer = nextPlayer
	return state
}

// decideNext computes, without applying it, the turn driver's decision for
// the action just taken by actorID (empty if the action had no single
// acting unit, e.g. END_TURN): the player who should hold the turn next,
// and whether both players are now exhausted and the round should end
// instead.
func decideNext(state core.GameState, actorID string) (core.Owner, bool) {
	if actorID != "" {
		if actor, found := state.UnitByID(actorID); found && state.CanAct(actor) {
			return state.CurrentPlayer, false
		}
	}

	other := state.CurrentPlayer.Other()
	if state.AnyUnitCanAct(other) {
		return other, false
	}
	if state.AnyUnitCanAct(state.CurrentPlayer) {
		return state.CurrentPlayer, false
	}
	return state.CurrentPlayer, true
}
