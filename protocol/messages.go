// Package protocol defines the wire contract: the {type, payload} envelope
// and the concrete payload shapes for every inbound and outbound message
// kind, serialized with encoding/json using the field names the contract
// specifies.
package protocol

import "github.com/turnforge/gridclash/core"

// Inbound message kinds.
const (
	TypeJoinMatch = "join_match"
	TypeAction    = "action"
)

// Outbound message kinds.
const (
	TypeMatchJoined        = "match_joined"
	TypeGameReady           = "game_ready"
	TypeYourTurn            = "your_turn"
	TypeStateUpdate         = "state_update"
	TypeGameOver            = "game_over"
	TypeTimeout             = "timeout"
	TypeValidationError     = "validation_error"
	TypePlayerDisconnected  = "player_disconnected"
	TypeDraftTimeout        = "draft_timeout"
)

// JoinMatchPayload is the join_match inbound payload.
type JoinMatchPayload struct {
	MatchID string `json:"matchId"`
}

// InboundAction is the wire shape of a player-submitted action, carrying
// only the fields relevant to its Type.
type InboundAction struct {
	Type         string `json:"type"`
	TargetX      *int   `json:"targetX,omitempty"`
	TargetY      *int   `json:"targetY,omitempty"`
	TargetUnitID string `json:"targetUnitId,omitempty"`
	UnitID       string `json:"unitId,omitempty"`
	Choice       string `json:"choice,omitempty"`
}

// ActionPayload is the action inbound payload.
type ActionPayload struct {
	MatchID  string        `json:"matchId"`
	PlayerID string        `json:"playerId"`
	Action   InboundAction `json:"action"`
}

// MatchJoinedPayload is the match_joined outbound payload.
type MatchJoinedPayload struct {
	MatchID  string         `json:"matchId"`
	PlayerID core.Owner     `json:"playerId"`
	State    core.GameState `json:"state"`
}

// GameReadyPayload is the game_ready outbound payload.
type GameReadyPayload struct {
	Message string `json:"message"`
}

// YourTurnPayload is the your_turn outbound payload.
type YourTurnPayload struct {
	UnitID          string `json:"unitId"`
	ActionStartTime int64  `json:"actionStartTime"`
	TimeoutMs       int64  `json:"timeoutMs"`
	TimerType       string `json:"timerType"`
}

// TimerMeta is the timer metadata embedded in state_update and timeout.
type TimerMeta struct {
	ActionStartTime int64  `json:"actionStartTime"`
	TimeoutMs       int64  `json:"timeoutMs"`
	TimerType       string `json:"timerType"`
}

// StateUpdatePayload is the state_update outbound payload.
type StateUpdatePayload struct {
	State           core.GameState `json:"state"`
	Timer           *TimerMeta     `json:"timer,omitempty"`
	CurrentPlayerID core.Owner     `json:"currentPlayerId,omitempty"`
}

// GameOverPayload is the game_over outbound payload. Winner is nil for a
// draw.
type GameOverPayload struct {
	Winner *core.Owner    `json:"winner"`
	State  core.GameState `json:"state"`
}

// Penalty describes the consequence applied by a timeout handler.
type Penalty struct {
	Kind   string `json:"kind"`
	Amount int    `json:"amount"`
}

// TimeoutPayload is the timeout outbound payload.
type TimeoutPayload struct {
	TimerType     string         `json:"timerType"`
	PlayerID      core.Owner     `json:"playerId"`
	Penalty       *Penalty       `json:"penalty,omitempty"`
	DefaultAction string         `json:"defaultAction"`
	State         core.GameState `json:"state"`
	NextTimer     *TimerMeta     `json:"nextTimer,omitempty"`
	NextPlayerID  core.Owner     `json:"nextPlayerId,omitempty"`
}

// ValidationErrorPayload is the validation_error outbound payload.
type ValidationErrorPayload struct {
	Message string `json:"message"`
	Action  any    `json:"action,omitempty"`
}

// PlayerDisconnectedPayload is the player_disconnected outbound payload.
type PlayerDisconnectedPayload struct {
	PlayerID core.Owner `json:"playerId"`
}

// DraftTimeoutPayload is the draft_timeout outbound payload.
type DraftTimeoutPayload struct {
	Message string `json:"message"`
}
