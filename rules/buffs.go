package rules

import (
	"fmt"

	"github.com/turnforge/gridclash/core"
)

// buffCounter is folded into generated buff instance ids so repeated grants
// don't collide. It is a package-level counter that is never reset, so ids
// keep increasing across Apply calls and across matches.
var buffCounter int

func nextBuffID(unitID string) string {
	buffCounter++
	return fmt.Sprintf("buff-%s-%d", unitID, buffCounter)
}

// grantBuff appends a new BuffInstance of the given type to unitID's buff
// list, using the default modifiers/flags for that type, and returns the
// updated state. LIFE additionally heals the unit immediately by its HP
// modifier (clamped to MaxHP after raising MaxHP by the same amount).
func grantBuff(state core.GameState, unitID string, buffType core.BuffType, duration int) core.GameState {
	inst := core.BuffInstance{
		ID:             nextBuffID(unitID),
		Type:           buffType,
		DurationRounds: duration,
	}

	switch buffType {
	case core.Power:
		inst.Modifiers = core.Modifiers{Attack: 2}
		inst.Flags = core.Flags{Power: true}
	case core.Life:
		inst.Modifiers = core.Modifiers{HP: 3}
		inst.Flags = core.Flags{Life: true}
	case core.Speed:
		inst.Flags = core.Flags{Speed: true}
	case core.Weakness:
		inst.Modifiers = core.Modifiers{Attack: 2}
		inst.Flags = core.Flags{Weakness: true}
	case core.Bleed:
		inst.Flags = core.Flags{Bleed: true}
	case core.Slow:
		inst.Flags = core.Flags{Slow: true}
	}

	state.UnitBuffs[unitID] = append(state.UnitBuffs[unitID], inst)

	if buffType == core.Life {
		if idx := state.UnitIndex(unitID); idx >= 0 {
			u := state.Units[idx]
			u.MaxHP += inst.Modifiers.HP
			u.HP += inst.Modifiers.HP
			if u.HP > u.MaxHP {
				u.HP = u.MaxHP
			}
			state.Units[idx] = u
		}
	}

	return state
}

// ageBuffs decrements every buff instance's remaining duration by one
// round and drops any that reach zero. Called once per round-end.
func ageBuffs(state core.GameState) core.GameState {
	for unitID, buffs := range state.UnitBuffs {
		kept := buffs[:0:0]
		for _, b := range buffs {
			b.DurationRounds--
			if b.DurationRounds > 0 {
				kept = append(kept, b)
			}
		}
		state.UnitBuffs[unitID] = kept
	}
	return state
}

// ageBuffTiles decrements every non-triggered buff tile's remaining
// duration and drops it once it reaches zero or is triggered.
func ageBuffTiles(state core.GameState) core.GameState {
	kept := state.BuffTiles[:0:0]
	for _, t := range state.BuffTiles {
		if t.Triggered {
			continue
		}
		t.DurationRounds--
		if t.DurationRounds > 0 {
			kept = append(kept, t)
		}
	}
	state.BuffTiles = kept
	return state
}
