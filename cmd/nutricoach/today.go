package nutricoach

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nutricoach/nutricoach/internal/engine"
	"github.com/nutricoach/nutricoach/internal/tracker"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's intake, scores, and active alert",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
			stats, err := tr.Stats()
			var invalid *engine.InvalidTargetError
			if errors.As(err, &invalid) {
				fmt.Fprintln(cmd.OutOrStdout(), "No targets yet (run: nutricoach profile set)")
				return nil
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Intake: %.0f kcal | Burned: %.0f kcal | Net: %.0f kcal (target %d)\n",
				stats.Calories, stats.CaloriesBurned, stats.NetCalories, stats.TargetCalories)
			fmt.Fprintf(out, "Macros: P %.1f/%dg | C %.1f/%dg | F %.1f/%dg\n",
				stats.Protein, stats.TargetProtein, stats.Carbs, stats.TargetCarbs, stats.Fat, stats.TargetFat)
			fmt.Fprintf(out, "Water: %d / %d ml\n", stats.WaterIntake, stats.WaterTarget)
			fmt.Fprintf(out, "Scores: calories %.0f | protein %.0f | water %.0f | daily %d\n",
				stats.CalorieScore, stats.ProteinScore, stats.WaterScore, stats.DailyScore)

			alert, err := tr.ActiveAlert(false)
			if err != nil {
				return err
			}
			if alert != nil {
				fmt.Fprintf(out, "[%s] %s\n", alert.Severity, alert.Message)
			}
			for _, r := range tr.DueReminders() {
				fmt.Fprintf(out, "Reminder: %s - %s\n", r.Title, r.Body)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
}
