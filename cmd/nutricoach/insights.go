package nutricoach

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nutricoach/nutricoach/internal/tracker"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Analyze recent habits with the AI coach",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newCoach()
		if err != nil {
			return err
		}
		return withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
			st := tr.State()
			insight := client.AnalyzeHabits(ctx, st.FoodLog, st.MoodLog)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", insight.TrendTitle)
			fmt.Fprintf(out, "%s\n", insight.TrendDescription)
			fmt.Fprintf(out, "Score: %d | Streak: %d days\n", insight.Score, insight.Streak)
			if insight.EatingWindowStart != "" && insight.EatingWindowEnd != "" {
				fmt.Fprintf(out, "Eating window: %s - %s\n", insight.EatingWindowStart, insight.EatingWindowEnd)
			}
			if insight.LateNightSnacks > 0 {
				fmt.Fprintf(out, "Late-night snacks this week: %d\n", insight.LateNightSnacks)
			}
			fmt.Fprintf(out, "Advice: %s\n", insight.Advice)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}
