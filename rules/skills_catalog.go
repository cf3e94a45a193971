package rules

import "github.com/turnforge/gridclash/core"

// SkillFunc is a pure skill effect: given the state, the casting actor, and
// the player-declared target position/unit (either may be absent depending
// on the skill), it returns the resulting state. Skills never fail once
// validateUseSkill has passed — they degrade gracefully (e.g. an AOE with
// no targets in range is simply a no-op).
type SkillFunc func(state core.GameState, actor core.Unit, targetPos *core.Position, targetUnitID string) core.GameState

// SkillDef pairs a skill's effect with its cooldown, set on the caster
// after every use.
type SkillDef struct {
	Cooldown int
	Effect   SkillFunc
}

// skillCatalogue is the fixed, extensible registry of skills a hero may
// select. Keys are the wire-level skillId.
var skillCatalogue = map[string]SkillDef{
	"rally_cry": {
		Cooldown: 2,
		Effect: func(state core.GameState, actor core.Unit, _ *core.Position, _ string) core.GameState {
			return grantBuff(state, actor.ID, core.Power, 2)
		},
	},
	"fireball": {
		Cooldown: 3,
		Effect: func(state core.GameState, actor core.Unit, targetPos *core.Position, _ string) core.GameState {
			if targetPos == nil {
				return state
			}
			var victimIDs []string
			for _, u := range state.Units {
				if !u.Alive() || u.Owner == actor.Owner {
					continue
				}
				if core.ChebyshevDistance(u.Position, *targetPos) <= 2 {
					victimIDs = append(victimIDs, u.ID)
				}
			}
			// At most one death choice can be pending at a time. fireball
			// can kill several minions in one cast, so only the first
			// counts as a player-caused death that opens a choice for its
			// owner; any further kills in the same cast auto-resolve like
			// a round-end system death so they aren't silently dropped by
			// the next kill overwriting PendingDeathChoice.
			for _, id := range victimIDs {
				idx := state.UnitIndex(id)
				if idx < 0 {
					continue
				}
				u := state.Units[idx]
				if !u.Alive() {
					continue
				}
				u.HP -= 2
				if u.HP < 0 {
					u.HP = 0
				}
				state.Units[idx] = u
				if u.HP <= 0 {
					state = killUnitByID(state, id, state.PendingDeathChoice != nil)
				}
			}
			return state
		},
	},
	"guardian_shield": {
		Cooldown: 2,
		Effect: func(state core.GameState, actor core.Unit, _ *core.Position, targetUnitID string) core.GameState {
			target, found := state.UnitByID(targetUnitID)
			if !found || !target.Alive() || target.Owner != actor.Owner || target.MinionType != core.Tank {
				return state
			}
			return grantBuff(state, target.ID, core.Life, 2)
		},
	},
	"smoke_screen": {
		Cooldown: 2,
		Effect: func(state core.GameState, actor core.Unit, _ *core.Position, _ string) core.GameState {
			return grantBuff(state, actor.ID, core.Speed, 1)
		},
	},
}
