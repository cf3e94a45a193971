package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"

	"github.com/turnforge/gridclash/core"
	"github.com/turnforge/gridclash/protocol"
)

// printEnvelope renders one server envelope either as raw JSON or as a
// short colorized summary line, depending on --json.
func printEnvelope(env protocol.Envelope) {
	if isJSONOutput() {
		fmt.Printf("%s %s\n", env.Type, string(env.Payload))
		return
	}

	switch env.Type {
	case protocol.TypeMatchJoined:
		var p protocol.MatchJoinedPayload
		json.Unmarshal(env.Payload, &p)
		color.Green("joined %s as %s", p.MatchID, p.PlayerID)
	case protocol.TypeGameReady:
		color.Cyan("both players connected, match starting")
	case protocol.TypeYourTurn:
		var p protocol.YourTurnPayload
		json.Unmarshal(env.Payload, &p)
		color.Yellow("your turn: unit=%s timeout=%dms", p.UnitID, p.TimeoutMs)
	case protocol.TypeStateUpdate:
		var p protocol.StateUpdatePayload
		json.Unmarshal(env.Payload, &p)
		printState(p.State)
		color.Cyan("current player: %s", p.CurrentPlayerID)
	case protocol.TypeGameOver:
		var p protocol.GameOverPayload
		json.Unmarshal(env.Payload, &p)
		if p.Winner != nil {
			color.Magenta("game over: %s wins", *p.Winner)
		} else {
			color.Magenta("game over: draw")
		}
	case protocol.TypeTimeout:
		var p protocol.TimeoutPayload
		json.Unmarshal(env.Payload, &p)
		color.Red("%s timeout for %s, default action %s", p.TimerType, p.PlayerID, p.DefaultAction)
	case protocol.TypeValidationError:
		var p protocol.ValidationErrorPayload
		json.Unmarshal(env.Payload, &p)
		color.Red("rejected: %s", p.Message)
	case protocol.TypePlayerDisconnected:
		var p protocol.PlayerDisconnectedPayload
		json.Unmarshal(env.Payload, &p)
		color.Yellow("%s disconnected", p.PlayerID)
	default:
		fmt.Printf("%s %s\n", env.Type, string(env.Payload))
	}
}

func printState(state core.GameState) {
	fmt.Printf("round %d\n", state.CurrentRound)
	for _, u := range state.Units {
		marker := " "
		if u.Category == core.Hero {
			marker = "H"
		}
		fmt.Printf("  [%s] %-8s owner=%s pos=(%d,%d) hp=%d/%d actionsUsed=%d\n",
			marker, u.ID, u.Owner, u.Position.X, u.Position.Y, u.HP, u.MaxHP, u.ActionsUsed)
	}
}
