// Package rules implements the RuleEngine: pure, deterministic validation
// and state transition for the MOVE / ATTACK / MOVE_AND_ATTACK / USE_SKILL /
// DEATH_CHOICE / END_TURN action set. Nothing here performs I/O or consults
// a clock; every successful Apply call returns a brand new core.GameState.
package rules

import "github.com/turnforge/gridclash/core"

// ActionType names one of the six player-originated actions.
type ActionType string

const (
	Move          ActionType = "MOVE"
	Attack        ActionType = "ATTACK"
	MoveAndAttack ActionType = "MOVE_AND_ATTACK"
	UseSkill      ActionType = "USE_SKILL"
	DeathChoice   ActionType = "DEATH_CHOICE"
	EndTurn       ActionType = "END_TURN"
)

// SpawnChoice is the payload of a DEATH_CHOICE action.
type SpawnChoice string

const (
	SpawnObstacle SpawnChoice = "SPAWN_OBSTACLE"
	SpawnBuffTile SpawnChoice = "SPAWN_BUFF_TILE"
)

// Action is the tagged union of every action the engine accepts. Only the
// fields relevant to Type are populated by callers; the engine ignores the
// rest.
type Action struct {
	Type         ActionType
	ActingPlayer core.Owner

	// ActorID names the acting unit for MOVE, ATTACK, MOVE_AND_ATTACK,
	// USE_SKILL and (optionally) END_TURN.
	ActorID string

	// Target is the MOVE/MOVE_AND_ATTACK destination or the USE_SKILL area
	// target.
	Target core.Position

	// ThroughPosition is reserved for a future path-dependent action; the
	// current action set resolves MOVE by destination alone.
	ThroughPosition core.Position

	// TargetUnitID names the ATTACK/MOVE_AND_ATTACK/USE_SKILL unit target.
	TargetUnitID string

	// Choice is the DEATH_CHOICE spawn selection.
	Choice SpawnChoice
}

// ValidationResult reports whether an action may be applied to a state.
type ValidationResult struct {
	Valid  bool
	Reason string
}

func ok() ValidationResult                   { return ValidationResult{Valid: true} }
func reject(reason string) ValidationResult { return ValidationResult{Valid: false, Reason: reason} }
