package cmd

import (
	"github.com/spf13/cobra"

	"github.com/turnforge/gridclash/protocol"
)

var moveAttackCmd = &cobra.Command{
	Use:   "move-attack <unit-id> <x,y> <target-unit-id>",
	Short: "Move then attack in one action",
	Long: `Move a unit to a position, then attack a target — spending a single
action for both sub-steps.

Examples:
  gridclash move-attack --match-id duel-1 h1 2,3 h2`,
	Args: cobra.ExactArgs(3),
	RunE: runMoveAttack,
}

func init() {
	rootCmd.AddCommand(moveAttackCmd)
}

func runMoveAttack(cmd *cobra.Command, args []string) error {
	x, y, err := parseXY(args[1])
	if err != nil {
		return err
	}
	return runOneShotAction(protocol.InboundAction{
		Type: "MOVE_AND_ATTACK", UnitID: args[0], TargetX: &x, TargetY: &y, TargetUnitID: args[2],
	})
}
