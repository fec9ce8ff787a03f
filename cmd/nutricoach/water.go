package nutricoach

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nutricoach/nutricoach/internal/tracker"
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Track water intake",
}

var waterAddCmd = &cobra.Command{
	Use:   "add <ml>",
	Short: "Add (or with a negative value, subtract) water in ml",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		delta, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[0])
		}
		return withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
			total, err := tr.AddWater(delta)
			if err != nil {
				return err
			}
			target := tr.State().Targets.WaterML
			if target > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Water: %d / %d ml\n", total, target)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Water: %d ml\n", total)
			}
			return nil
		})
	},
}

var waterShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show today's water intake",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
			st := tr.State()
			if st.Targets.WaterML > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Water: %d / %d ml\n", st.WaterIntake, st.Targets.WaterML)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Water: %d ml\n", st.WaterIntake)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(waterCmd)
	waterCmd.AddCommand(waterAddCmd, waterShowCmd)
}
