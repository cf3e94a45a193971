package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turnforge/gridclash/protocol"
)

var deathChoiceCmd = &cobra.Command{
	Use:   "death-choice <spawn-obstacle|spawn-buff-tile>",
	Short: "Resolve a pending death choice",
	Long: `Resolve your pending death choice by spawning an obstacle or a buff
tile at the unit's death position.

Examples:
  gridclash death-choice --match-id duel-1 spawn-obstacle`,
	Args: cobra.ExactArgs(1),
	RunE: runDeathChoice,
}

func init() {
	rootCmd.AddCommand(deathChoiceCmd)
}

func runDeathChoice(cmd *cobra.Command, args []string) error {
	var choice string
	switch args[0] {
	case "spawn-obstacle":
		choice = "SPAWN_OBSTACLE"
	case "spawn-buff-tile":
		choice = "SPAWN_BUFF_TILE"
	default:
		return fmt.Errorf("unknown choice %q, want spawn-obstacle or spawn-buff-tile", args[0])
	}
	return runOneShotAction(protocol.InboundAction{Type: "DEATH_CHOICE", Choice: choice})
}
