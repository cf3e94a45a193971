package core

// UnitByID returns the unit with the given id, and whether it was found.
func (s GameState) UnitByID(id string) (Unit, bool) {
	for _, u := range s.Units {
		if u.ID == id {
			return u, true
		}
	}
	return Unit{}, false
}

// UnitIndex returns the slice index of the unit with the given id, or -1.
func (s GameState) UnitIndex(id string) int {
	for i, u := range s.Units {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// UnitAt returns the live unit occupying p, if any.
func (s GameState) UnitAt(p Position) (Unit, bool) {
	for _, u := range s.Units {
		if u.Alive() && u.Position == p {
			return u, true
		}
	}
	return Unit{}, false
}

// IsOccupied reports whether p holds a live unit or an obstacle.
func (s GameState) IsOccupied(p Position) bool {
	if _, ok := s.UnitAt(p); ok {
		return true
	}
	if _, ok := s.ObstacleAt(p); ok {
		return true
	}
	return false
}

// ObstacleAt returns the obstacle at p, if any.
func (s GameState) ObstacleAt(p Position) (Obstacle, bool) {
	for _, o := range s.Obstacles {
		if o.Position == p {
			return o, true
		}
	}
	return Obstacle{}, false
}

// ActiveBuffTileAt returns the non-triggered buff tile at p, if any.
func (s GameState) ActiveBuffTileAt(p Position) (BuffTile, int, bool) {
	for i, t := range s.BuffTiles {
		if !t.Triggered && t.Position == p {
			return t, i, true
		}
	}
	return BuffTile{}, -1, false
}

// AliveUnits returns every unit with hp > 0.
func (s GameState) AliveUnits() []Unit {
	out := make([]Unit, 0, len(s.Units))
	for _, u := range s.Units {
		if u.Alive() {
			out = append(out, u)
		}
	}
	return out
}

// UnitsForOwner returns every unit (alive or not) belonging to owner.
func (s GameState) UnitsForOwner(owner Owner) []Unit {
	out := make([]Unit, 0, len(s.Units))
	for _, u := range s.Units {
		if u.Owner == owner {
			out = append(out, u)
		}
	}
	return out
}

// HeroOf returns owner's live hero, if any.
func (s GameState) HeroOf(owner Owner) (Unit, bool) {
	for _, u := range s.Units {
		if u.Owner == owner && u.Category == Hero && u.Alive() {
			return u, true
		}
	}
	return Unit{}, false
}

// Buffs returns the buff instances carried by the given unit id.
func (s GameState) Buffs(unitID string) []BuffInstance {
	return s.UnitBuffs[unitID]
}

// HasFlag reports whether any of the unit's active buffs set the given
// flag selector.
func (s GameState) HasFlag(unitID string, sel func(Flags) bool) bool {
	for _, b := range s.UnitBuffs[unitID] {
		if sel(b.Flags) {
			return true
		}
	}
	return false
}

// EffectiveStats folds every active buff's Modifiers onto the unit's base
// stats. HP/MaxHP are not adjusted here: HP is a running total tracked
// directly on the unit, and buff-granted max-HP increases (LIFE) are
// applied as an immediate heal at grant time, not as a standing modifier.
//
// A WEAKNESS buff's Modifiers.Attack is not folded in here: it carries the
// bearer's weakness_reduction magnitude (see WeaknessReduction), a defence
// value subtracted from an attacker's damage, not an offence penalty on
// the bearer's own attack.
func (s GameState) EffectiveStats(u Unit) (attack, moveRange, attackRange int) {
	attack, moveRange, attackRange = u.Attack, u.MoveRange, u.AttackRange
	for _, b := range s.UnitBuffs[u.ID] {
		if b.Flags.Weakness {
			continue
		}
		attack += b.Modifiers.Attack
		moveRange += b.Modifiers.MoveRange
		attackRange += b.Modifiers.AttackRange
	}
	if attack < 0 {
		attack = 0
	}
	if moveRange < 0 {
		moveRange = 0
	}
	if attackRange < 0 {
		attackRange = 0
	}
	return attack, moveRange, attackRange
}

// WeaknessReduction sums the weakness_reduction magnitude carried by every
// active WEAKNESS buff on the unit; it is subtracted from an attacker's
// effective attack when this unit is the declared or redirected target.
func (s GameState) WeaknessReduction(unitID string) int {
	reduction := 0
	for _, b := range s.UnitBuffs[unitID] {
		if b.Flags.Weakness {
			reduction += b.Modifiers.Attack
		}
	}
	if reduction < 0 {
		reduction = 0
	}
	return reduction
}

// RemainingActions returns how many actions the unit may take this round:
// 2 if it carries an active SPEED buff, 1 otherwise.
func (s GameState) RemainingActions(u Unit) int {
	if s.HasFlag(u.ID, func(f Flags) bool { return f.Speed }) {
		return 2
	}
	return 1
}

// CanAct reports whether the unit still has an action available this round.
func (s GameState) CanAct(u Unit) bool {
	return u.Alive() && u.ActionsUsed < s.RemainingActions(u)
}

// AnyUnitCanAct reports whether owner has any unit still able to act.
func (s GameState) AnyUnitCanAct(owner Owner) bool {
	for _, u := range s.Units {
		if u.Owner == owner && s.CanAct(u) {
			return true
		}
	}
	return false
}

// ManhattanDistance is the orthogonal grid distance between two positions.
func ManhattanDistance(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// ChebyshevDistance is the king-move grid distance between two positions.
func ChebyshevDistance(a, b Position) int {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
