package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turnforge/gridclash/protocol"
)

var moveCmd = &cobra.Command{
	Use:   "move <unit-id> <x,y>",
	Short: "Move a unit to a board position",
	Long: `Move a unit to a board position.

Examples:
  gridclash move --match-id duel-1 h1 2,3`,
	Args: cobra.ExactArgs(2),
	RunE: runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)
}

func runMove(cmd *cobra.Command, args []string) error {
	x, y, err := parseXY(args[1])
	if err != nil {
		return err
	}
	return runOneShotAction(protocol.InboundAction{
		Type: "MOVE", UnitID: args[0], TargetX: &x, TargetY: &y,
	})
}

func parseXY(s string) (int, int, error) {
	var x, y int
	if _, err := fmt.Sscanf(s, "%d,%d", &x, &y); err != nil {
		return 0, 0, fmt.Errorf("invalid position %q, expected x,y", s)
	}
	return x, y, nil
}
