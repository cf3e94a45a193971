package rules

import "github.com/turnforge/gridclash/core"

// buffTileCycle is the deterministic rotation used to pick which buff a
// system-death buff tile grants. The engine must stay RNG-free, so the
// choice is a pure function of currentRound rather than a random draw.
var buffTileCycle = [...]core.BuffType{
	core.Power, core.Life, core.Speed, core.Weakness, core.Bleed, core.Slow,
}

const systemBuffTileDuration = 2

func removeUnitByID(units []core.Unit, id string) []core.Unit {
	out := units[:0:0]
	for _, u := range units {
		if u.ID != id {
			out = append(out, u)
		}
	}
	return out
}

// placeObstacle inserts a new obstacle at pos, applying the overwrite rule:
// any existing obstacle or active buff tile at pos is removed first.
func placeObstacle(state core.GameState, id string, pos core.Position) core.GameState {
	state = clearPosition(state, pos)
	state.Obstacles = append(state.Obstacles, core.Obstacle{ID: id, Position: pos})
	return state
}

// placeBuffTile inserts a new buff tile at pos, applying the overwrite rule.
func placeBuffTile(state core.GameState, id string, pos core.Position, buffType core.BuffType, duration int) core.GameState {
	state = clearPosition(state, pos)
	state.BuffTiles = append(state.BuffTiles, core.BuffTile{
		ID: id, Position: pos, BuffType: buffType, DurationRounds: duration,
	})
	return state
}

// clearPosition removes any obstacle and any non-triggered buff tile at pos.
func clearPosition(state core.GameState, pos core.Position) core.GameState {
	obstacles := state.Obstacles[:0:0]
	for _, o := range state.Obstacles {
		if o.Position != pos {
			obstacles = append(obstacles, o)
		}
	}
	state.Obstacles = obstacles

	tiles := state.BuffTiles[:0:0]
	for _, t := range state.BuffTiles {
		if t.Triggered || t.Position != pos {
			tiles = append(tiles, t)
		}
	}
	state.BuffTiles = tiles
	return state
}

// killUnitByID zeroes the victim's HP and resolves the consequence:
//   - a dead HERO ends the game in the other owner's favour; the hero
//     stays in the unit list at hp=0 (it is no longer "alive" per
//     core.Unit.Alive, but identity/position stay inspectable).
//   - a MINION killed by a player action (systemDeath=false) is removed
//     and a DeathChoice is opened for its owner.
//   - a MINION killed by round-end processing (systemDeath=true) is
//     removed and an obstacle or buff tile is auto-placed at its former
//     position per the overwrite rule, keyed on round parity.
func killUnitByID(state core.GameState, victimID string, systemDeath bool) core.GameState {
	idx := state.UnitIndex(victimID)
	if idx < 0 {
		return state
	}
	victim := state.Units[idx]
	victim.HP = 0
	state.Units[idx] = victim

	if victim.Category == core.Hero {
		state.GameOver = true
		winner := victim.Owner.Other()
		state.Winner = &winner
		return state
	}

	state.Units = removeUnitByID(state.Units, victimID)
	delete(state.UnitBuffs, victimID)

	if !systemDeath {
		state.PendingDeathChoice = &core.DeathChoice{
			DeadUnitID:    victim.ID,
			Owner:         victim.Owner,
			DeathPosition: victim.Position,
		}
		// currentPlayer must name the pending choice's owner for as long as
		// it is pending, even when the victim's owner isn't the player who
		// just acted.
		state.CurrentPlayer = victim.Owner
		return state
	}

	if state.CurrentRound%2 == 1 {
		return placeObstacle(state, "sys-obstacle-"+victim.ID, victim.Position)
	}
	buffType := buffTileCycle[state.CurrentRound%len(buffTileCycle)]
	return placeBuffTile(state, "sys-tile-"+victim.ID, victim.Position, buffType, systemBuffTileDuration)
}
