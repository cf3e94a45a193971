package cmd

import (
	"github.com/spf13/cobra"

	"github.com/turnforge/gridclash/protocol"
)

var (
	skillTargetUnit string
	skillTargetPos  string
)

var skillCmd = &cobra.Command{
	Use:   "skill <hero-id>",
	Short: "Use a hero's selected skill",
	Long: `Use the hero's currently selected skill. Some skills need a target
unit, some need a target position, some need neither.

Examples:
  gridclash skill --match-id duel-1 h1 --target-unit h2
  gridclash skill --match-id duel-1 h1 --target-pos 2,3
  gridclash skill --match-id duel-1 h1`,
	Args: cobra.ExactArgs(1),
	RunE: runSkill,
}

func init() {
	skillCmd.Flags().StringVar(&skillTargetUnit, "target-unit", "", "target unit id, if the skill needs one")
	skillCmd.Flags().StringVar(&skillTargetPos, "target-pos", "", "target position x,y, if the skill needs one")
	rootCmd.AddCommand(skillCmd)
}

func runSkill(cmd *cobra.Command, args []string) error {
	action := protocol.InboundAction{Type: "USE_SKILL", UnitID: args[0], TargetUnitID: skillTargetUnit}
	if skillTargetPos != "" {
		x, y, err := parseXY(skillTargetPos)
		if err != nil {
			return err
		}
		action.TargetX = &x
		action.TargetY = &y
	}
	return runOneShotAction(action)
}
