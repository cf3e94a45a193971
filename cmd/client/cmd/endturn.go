package cmd

import (
	"github.com/spf13/cobra"

	"github.com/turnforge/gridclash/protocol"
)

var endTurnCmd = &cobra.Command{
	Use:   "end-turn",
	Short: "End the current player's turn",
	Long: `End the current player's turn, exhausting every remaining action on
their units.

Examples:
  gridclash end-turn --match-id duel-1`,
	Args: cobra.NoArgs,
	RunE: runEndTurn,
}

func init() {
	rootCmd.AddCommand(endTurnCmd)
}

func runEndTurn(cmd *cobra.Command, args []string) error {
	return runOneShotAction(protocol.InboundAction{Type: "END_TURN"})
}
