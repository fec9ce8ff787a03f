package nutricoach

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nutricoach/nutricoach/internal/engine"
	"github.com/nutricoach/nutricoach/internal/model"
	"github.com/nutricoach/nutricoach/internal/tracker"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Show or override daily nutrition targets",
}

var targetsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
			if !tr.State().HasProfile {
				fmt.Fprintln(cmd.OutOrStdout(), "No targets yet (run: nutricoach profile set)")
				return nil
			}
			printTargets(cmd, tr.State().Targets)
			return nil
		})
	},
}

var (
	targetCalories int
	targetProtein  int
	targetCarbs    int
	targetFat      int
	targetWater    int
)

var targetsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Override targets manually",
	RunE: func(cmd *cobra.Command, args []string) error {
		override := model.NutritionTargets{
			Calories: targetCalories,
			ProteinG: targetProtein,
			CarbsG:   targetCarbs,
			FatG:     targetFat,
			WaterML:  targetWater,
		}
		return withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
			if err := tr.SetTargets(ctx, override); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Targets overridden")
			printTargets(cmd, override)
			return nil
		})
	},
}

var targetsCalcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Recompute targets from the saved profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
			if !tr.State().HasProfile {
				return fmt.Errorf("no profile saved yet")
			}
			targets, err := engine.ComputeTargets(tr.State().Profile)
			if err != nil {
				return err
			}
			printTargets(cmd, targets)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(targetsCmd)
	targetsCmd.AddCommand(targetsShowCmd, targetsSetCmd, targetsCalcCmd)

	targetsSetCmd.Flags().IntVar(&targetCalories, "calories", 0, "Daily calorie target")
	targetsSetCmd.Flags().IntVar(&targetProtein, "protein", 0, "Daily protein target grams")
	targetsSetCmd.Flags().IntVar(&targetCarbs, "carbs", 0, "Daily carbs target grams")
	targetsSetCmd.Flags().IntVar(&targetFat, "fat", 0, "Daily fat target grams")
	targetsSetCmd.Flags().IntVar(&targetWater, "water", 0, "Daily water target ml")
	_ = targetsSetCmd.MarkFlagRequired("calories")
}
