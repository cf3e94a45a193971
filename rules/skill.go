package rules

import "github.com/turnforge/gridclash/core"

func validateUseSkill(state core.GameState, action Action) ValidationResult {
	actor, v := validateActor(state, action.ActorID, action.ActingPlayer)
	if !v.Valid {
		return v
	}
	if !state.CanAct(actor) {
		return reject("unit has no actions remaining")
	}
	if actor.Category != core.Hero {
		return reject("only a hero may use a skill")
	}
	if actor.SelectedSkillID == "" {
		return reject("no skill selected")
	}
	if actor.SkillCooldown > 0 {
		return reject("skill on cooldown")
	}
	if _, known := skillCatalogue[actor.SelectedSkillID]; !known {
		return reject("unknown skill")
	}
	return ok()
}

// applyUseSkill runs the actor's selected skill, resets its cooldown, and
// spends the actor's action.
func applyUseSkill(state core.GameState, action Action) core.GameState {
	next := state.Clone()
	idx := next.UnitIndex(action.ActorID)
	actor := next.Units[idx]

	def := skillCatalogue[actor.SelectedSkillID]

	var targetPos *core.Position
	if action.Target != (core.Position{}) {
		t := action.Target
		targetPos = &t
	}
	next = def.Effect(next, actor, targetPos, action.TargetUnitID)

	idx = next.UnitIndex(action.ActorID)
	if idx >= 0 {
		actor = next.Units[idx]
		actor.SkillCooldown = def.Cooldown
		actor.ActionsUsed++
		next.Units[idx] = actor
	}

	return advanceTurn(next, action.ActorID)
}
