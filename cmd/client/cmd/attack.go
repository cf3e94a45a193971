package cmd

import (
	"github.com/spf13/cobra"

	"github.com/turnforge/gridclash/protocol"
)

var attackCmd = &cobra.Command{
	Use:   "attack <unit-id> <target-unit-id>",
	Short: "Attack a target unit",
	Long: `Attack a target unit with your unit.

Examples:
  gridclash attack --match-id duel-1 h1 h2`,
	Args: cobra.ExactArgs(2),
	RunE: runAttack,
}

func init() {
	rootCmd.AddCommand(attackCmd)
}

func runAttack(cmd *cobra.Command, args []string) error {
	return runOneShotAction(protocol.InboundAction{
		Type: "ATTACK", UnitID: args[0], TargetUnitID: args[1],
	})
}
