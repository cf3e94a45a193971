package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/turnforge/gridclash/internal/wsclient"
	"github.com/turnforge/gridclash/protocol"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session against a match",
	Long: `Open a persistent connection to the server and join a match, then
accept commands interactively. Server-pushed messages (your_turn,
state_update, timeout, ...) print as soon as they arrive.

Commands:
  move <unit> <x,y>
  attack <unit> <target-unit>
  move-attack <unit> <x,y> <target-unit>
  skill <unit> [target-unit|x,y]
  death-choice <spawn-obstacle|spawn-buff-tile>
  end-turn
  quit`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	id, err := getMatchID()
	if err != nil {
		return err
	}

	client, err := wsclient.Dial(getServerURL())
	if err != nil {
		return err
	}
	defer client.Close()

	joined, err := client.JoinMatch(id, 5*time.Second)
	if err != nil {
		return fmt.Errorf("join match: %w", err)
	}
	color.Green("joined %s as %s", id, joined.PlayerID)

	rl, err := readline.New(color.New(color.FgHiBlack).Sprint("gridclash> "))
	if err != nil {
		return err
	}
	defer rl.Close()

	client.Listen(func(env protocol.Envelope) {
		fmt.Println()
		printEnvelope(env)
		fmt.Print(color.New(color.FgHiBlack).Sprint("gridclash> "))
	}, func(err error) {
		fmt.Println()
		color.Red("connection closed: %v", err)
	})

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}

		action, err := parseReplCommand(line)
		if err != nil {
			color.Red("%v", err)
			continue
		}
		if err := client.Send(protocol.TypeAction, protocol.ActionPayload{
			MatchID: id, PlayerID: string(joined.PlayerID), Action: action,
		}); err != nil {
			color.Red("send failed: %v", err)
		}
	}
}

func parseReplCommand(line string) (protocol.InboundAction, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "move":
		if len(fields) != 3 {
			return protocol.InboundAction{}, fmt.Errorf("usage: move <unit> <x,y>")
		}
		x, y, err := parseXY(fields[2])
		if err != nil {
			return protocol.InboundAction{}, err
		}
		return protocol.InboundAction{Type: "MOVE", UnitID: fields[1], TargetX: &x, TargetY: &y}, nil

	case "attack":
		if len(fields) != 3 {
			return protocol.InboundAction{}, fmt.Errorf("usage: attack <unit> <target-unit>")
		}
		return protocol.InboundAction{Type: "ATTACK", UnitID: fields[1], TargetUnitID: fields[2]}, nil

	case "move-attack":
		if len(fields) != 4 {
			return protocol.InboundAction{}, fmt.Errorf("usage: move-attack <unit> <x,y> <target-unit>")
		}
		x, y, err := parseXY(fields[2])
		if err != nil {
			return protocol.InboundAction{}, err
		}
		return protocol.InboundAction{Type: "MOVE_AND_ATTACK", UnitID: fields[1], TargetX: &x, TargetY: &y, TargetUnitID: fields[3]}, nil

	case "skill":
		if len(fields) < 2 {
			return protocol.InboundAction{}, fmt.Errorf("usage: skill <unit> [target-unit|x,y]")
		}
		action := protocol.InboundAction{Type: "USE_SKILL", UnitID: fields[1]}
		if len(fields) == 3 {
			if x, y, err := parseXY(fields[2]); err == nil {
				action.TargetX, action.TargetY = &x, &y
			} else {
				action.TargetUnitID = fields[2]
			}
		}
		return action, nil

	case "death-choice":
		if len(fields) != 2 {
			return protocol.InboundAction{}, fmt.Errorf("usage: death-choice <spawn-obstacle|spawn-buff-tile>")
		}
		switch fields[1] {
		case "spawn-obstacle":
			return protocol.InboundAction{Type: "DEATH_CHOICE", Choice: "SPAWN_OBSTACLE"}, nil
		case "spawn-buff-tile":
			return protocol.InboundAction{Type: "DEATH_CHOICE", Choice: "SPAWN_BUFF_TILE"}, nil
		default:
			return protocol.InboundAction{}, fmt.Errorf("unknown choice %q", fields[1])
		}

	case "end-turn":
		return protocol.InboundAction{Type: "END_TURN"}, nil

	default:
		return protocol.InboundAction{}, fmt.Errorf("unknown command %q (try: move, attack, move-attack, skill, death-choice, end-turn, quit)", fields[0])
	}
}
