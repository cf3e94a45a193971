package rules

import "github.com/turnforge/gridclash/core"

func validateAttack(state core.GameState, action Action) ValidationResult {
	actor, v := validateActor(state, action.ActorID, action.ActingPlayer)
	if !v.Valid {
		return v
	}
	if !state.CanAct(actor) {
		return reject("unit has no actions remaining")
	}

	target, found := state.UnitByID(action.TargetUnitID)
	if !found || !target.Alive() {
		return reject("target is not a live unit")
	}
	if target.Owner == actor.Owner {
		return reject("cannot attack an ally")
	}
	if !inAttackRange(state, actor, target.Position) {
		return reject("target out of attack range")
	}
	return ok()
}

// attackMetric resolves Open Question 1: melee (attackRange == 1) uses
// Manhattan distance, ranged (attackRange > 1) uses Chebyshev distance.
func attackMetric(effectiveRange int) func(a, b core.Position) int {
	if effectiveRange > 1 {
		return core.ChebyshevDistance
	}
	return core.ManhattanDistance
}

func inAttackRange(state core.GameState, actor core.Unit, targetPos core.Position) bool {
	_, _, attackRange := state.EffectiveStats(actor)
	return attackMetric(attackRange)(actor.Position, targetPos) <= attackRange
}

// applyAttack resolves one ATTACK action, including Guardian redirection,
// damage, and any resulting death. A SLOW-flagged actor instead records the
// attack as its pendingAction to be resolved at round end.
func applyAttack(state core.GameState, action Action) core.GameState {
	next := state.Clone()
	actorIdx := next.UnitIndex(action.ActorID)

	if next.HasFlag(action.ActorID, func(f core.Flags) bool { return f.Slow }) {
		return deferAsPreparing(next, actorIdx, core.PendingAction{
			Type:         string(Attack),
			TargetUnitID: action.TargetUnitID,
		})
	}

	actor := next.Units[actorIdx]
	actor.ActionsUsed++
	next.Units[actorIdx] = actor

	next = resolveAttack(next, actor, action.TargetUnitID)
	return advanceTurn(next, actor.ID)
}

// resolveAttack applies actor's damage to the declared target, redirecting
// to an orthogonally-adjacent Guardian Tank ally of the target's owner
// when one exists and isn't itself the declared target. It does not touch
// actionsUsed or the turn driver; callers handle that.
func resolveAttack(state core.GameState, actor core.Unit, declaredTargetID string) core.GameState {
	declaredIdx := state.UnitIndex(declaredTargetID)
	if declaredIdx < 0 {
		return state
	}
	declared := state.Units[declaredIdx]

	victimIdx := declaredIdx
	if guardIdx := findGuardian(state, declared); guardIdx >= 0 {
		victimIdx = guardIdx
	}
	victim := state.Units[victimIdx]

	effAttack, _, _ := state.EffectiveStats(actor)
	damage := effAttack - state.WeaknessReduction(victim.ID)
	if damage < 0 {
		damage = 0
	}

	victim.HP -= damage
	if victim.HP < 0 {
		victim.HP = 0
	}
	state.Units[victimIdx] = victim

	if victim.HP <= 0 {
		state = killUnitByID(state, victim.ID, false)
	}
	return state
}

// findGuardian returns the index of a live TANK ally of declared, sharing
// its owner, orthogonally adjacent to declared, that is not declared
// itself. Returns -1 if none qualifies.
func findGuardian(state core.GameState, declared core.Unit) int {
	for i, u := range state.Units {
		if u.ID == declared.ID {
			continue
		}
		if !u.Alive() || u.Owner != declared.Owner {
			continue
		}
		if u.Category != core.Minion || u.MinionType != core.Tank {
			continue
		}
		if core.ManhattanDistance(u.Position, declared.Position) == 1 {
			return i
		}
	}
	return -1
}
