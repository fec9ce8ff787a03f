package nutricoach

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nutricoach/nutricoach/internal/tracker"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate and work through meal and workout plans",
}

var planDays int

var planGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new plan with the AI coach",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newCoach()
		if err != nil {
			return err
		}
		return withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
			st := tr.State()
			if !st.HasProfile {
				return fmt.Errorf("no profile saved yet")
			}
			plan, err := client.GenerateMealPlan(ctx, st.Profile, st.Targets, planDays, time.Now())
			if err != nil {
				return err
			}
			if err := tr.SetPlans(ctx, plan); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated a %d-day plan starting %s\n", len(plan), plan[0].Date)
			return nil
		})
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
			plans := tr.State().Plans
			if len(plans) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No plan yet (run: nutricoach plan generate)")
				return nil
			}
			out := cmd.OutOrStdout()
			for _, day := range plans {
				fmt.Fprintf(out, "%s\n", day.Date)
				for _, m := range day.Meals {
					mark := " "
					if m.IsLogged {
						mark = "x"
					}
					fmt.Fprintf(out, "  [%s] %s: %s (%.0f kcal) [%s]\n", mark, m.Type, m.Recipe.Name, m.Recipe.Calories, m.ID)
				}
				for _, w := range day.Workouts {
					mark := " "
					if w.IsCompleted {
						mark = "x"
					}
					fmt.Fprintf(out, "  [%s] Workout: %s (%s, ~%.0f kcal) [%s]\n", mark, w.Name, w.Duration, w.CaloriesEstimate, w.ID)
				}
			}
			return nil
		})
	},
}

var planLogMealCmd = &cobra.Command{
	Use:   "log-meal <meal-id>",
	Short: "Mark a planned meal as eaten and log its recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
			item, already, err := tr.LogPlannedMeal(ctx, args[0])
			if err != nil {
				return err
			}
			if already {
				fmt.Fprintln(cmd.OutOrStdout(), "Meal was already logged")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%.0f kcal)\n", item.Name, item.Calories)
			return nil
		})
	},
}

var planCompleteWorkoutCmd = &cobra.Command{
	Use:   "complete-workout <workout-id>",
	Short: "Mark a planned workout as done and log the burn",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
			item, already, err := tr.CompletePlannedWorkout(ctx, args[0])
			if err != nil {
				return err
			}
			if already {
				fmt.Fprintln(cmd.OutOrStdout(), "Workout was already completed")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed %s (%.0f kcal burned)\n", item.Name, item.CaloriesBurned)
			return nil
		})
	},
}

var swapDay int

var planSwapCmd = &cobra.Command{
	Use:   "swap <meal-id>",
	Short: "Swap a planned meal for an AI-suggested alternative",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newCoach()
		if err != nil {
			return err
		}
		return withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
			plans := tr.State().Plans
			if swapDay < 0 || swapDay >= len(plans) {
				return fmt.Errorf("day index %d out of range (plan has %d days)", swapDay, len(plans))
			}
			mealIdx := -1
			for i, m := range plans[swapDay].Meals {
				if m.ID == args[0] {
					mealIdx = i
					break
				}
			}
			if mealIdx < 0 {
				return fmt.Errorf("no planned meal with id %q on day %s", args[0], plans[swapDay].Date)
			}
			recipe, err := client.SuggestSwap(ctx, tr.State().Profile, plans[swapDay].Meals[mealIdx].Recipe)
			if err != nil {
				return err
			}
			if err := tr.SwapPlannedRecipe(ctx, swapDay, args[0], recipe); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Swapped in %s (%.0f kcal)\n", recipe.Name, recipe.Calories)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.AddCommand(planGenerateCmd, planShowCmd, planLogMealCmd, planCompleteWorkoutCmd, planSwapCmd)

	planGenerateCmd.Flags().IntVar(&planDays, "days", 7, "Plan length in days")
	planSwapCmd.Flags().IntVar(&swapDay, "day", 0, "Day index within the plan")
}
