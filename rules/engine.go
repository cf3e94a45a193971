package rules

import (
	"errors"

	"github.com/turnforge/gridclash/core"
)

// ErrInvalidAction is returned by Apply when validate(state, action) failed;
// the caller is expected to have already inspected Validate's reason.
var ErrInvalidAction = errors.New("invalid action")

// Validate reports whether action may be legally applied to state. It never
// mutates state and never performs I/O.
func Validate(state core.GameState, action Action) ValidationResult {
	if v := validateUniversal(state, action); !v.Valid {
		return v
	}

	switch action.Type {
	case Move:
		return validateMove(state, action)
	case Attack:
		return validateAttack(state, action)
	case MoveAndAttack:
		return validateMoveAndAttack(state, action)
	case UseSkill:
		return validateUseSkill(state, action)
	case DeathChoice:
		return validateDeathChoice(state, action)
	case EndTurn:
		return validateEndTurn(state, action)
	default:
		return reject("unknown action type")
	}
}

// validateUniversal applies the predicates common to every action type,
// per spec.md §4.1.
func validateUniversal(state core.GameState, action Action) ValidationResult {
	if state.GameOver {
		return reject("game ended")
	}
	if state.PendingDeathChoice != nil && action.Type != DeathChoice {
		return reject("death choice pending")
	}
	if action.Type != DeathChoice && action.ActingPlayer != state.CurrentPlayer {
		return reject("not your turn")
	}
	return ok()
}

// validateActor checks that ActorID names a live unit belonging to
// actingPlayer. Actions that don't target a unit (END_TURN's bare form,
// DEATH_CHOICE) validate the actor elsewhere.
func validateActor(state core.GameState, actorID string, actingPlayer core.Owner) (core.Unit, ValidationResult) {
	u, found := state.UnitByID(actorID)
	if !found {
		return core.Unit{}, reject("unknown actor")
	}
	if u.Owner != actingPlayer {
		return core.Unit{}, reject("not your unit")
	}
	if !u.Alive() {
		return core.Unit{}, reject("actor is dead")
	}
	return u, ok()
}

// Apply validates action against state and, if valid, returns the new
// resulting state. On an invalid action it returns the original state
// unchanged together with ErrInvalidAction; callers should consult
// Validate directly when they need the rejection reason.
func Apply(state core.GameState, action Action) (core.GameState, error) {
	if v := Validate(state, action); !v.Valid {
		return state, ErrInvalidAction
	}

	switch action.Type {
	case Move:
		return applyMove(state, action), nil
	case Attack:
		return applyAttack(state, action), nil
	case MoveAndAttack:
		return applyMoveAndAttack(state, action), nil
	case UseSkill:
		return applyUseSkill(state, action), nil
	case DeathChoice:
		return applyDeathChoice(state, action), nil
	case EndTurn:
		return applyEndTurn(state, action), nil
	default:
		return state, ErrInvalidAction
	}
}
