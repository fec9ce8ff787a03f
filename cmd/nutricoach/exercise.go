package nutricoach

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nutricoach/nutricoach/internal/model"
	"github.com/nutricoach/nutricoach/internal/tracker"
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Log and review exercise entries",
}

var (
	exerciseName     string
	exerciseCalories float64
	exerciseDuration int
)

var exerciseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log an exercise entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		if exerciseCalories < 0 {
			return fmt.Errorf("calories must be >= 0")
		}
		return withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
			item, err := tr.AddExercise(ctx, model.ExerciseItem{
				Name:            exerciseName,
				CaloriesBurned:  exerciseCalories,
				DurationMinutes: exerciseDuration,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%.0f kcal burned) [%s]\n", item.Name, item.CaloriesBurned, item.ID)
			return nil
		})
	},
}

var exerciseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged exercise entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
			items := tr.State().ExerciseLog
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No exercise logged")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "TIME\tNAME\tKCAL\tMINS\tID")
			for _, item := range items {
				ts := time.UnixMilli(item.Timestamp).Local().Format("01-02 15:04")
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.0f\t%d\t%s\n",
					ts, item.Name, item.CaloriesBurned, item.DurationMinutes, item.ID)
			}
			return nil
		})
	},
}

var exerciseRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an exercise entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
			if err := tr.RemoveExercise(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		})
	},
}

var estimateLog bool

var exerciseEstimateCmd = &cobra.Command{
	Use:   "estimate <description>",
	Short: "Estimate calories burned with the AI coach",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newCoach()
		if err != nil {
			return err
		}
		return withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
			weight := tr.State().Profile.WeightKg
			if weight == 0 {
				weight = 70
			}
			est, err := client.EstimateExercise(ctx, joinArgs(args), weight)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %.0f kcal over %d mins\n", est.Name, est.CaloriesBurned, est.DurationMinutes)
			if !estimateLog {
				return nil
			}
			item, err := tr.AddExercise(ctx, model.ExerciseItem{
				Name:            est.Name,
				CaloriesBurned:  est.CaloriesBurned,
				DurationMinutes: est.DurationMinutes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged [%s]\n", item.ID)
			return nil
		})
	},
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func init() {
	rootCmd.AddCommand(exerciseCmd)
	exerciseCmd.AddCommand(exerciseAddCmd, exerciseListCmd, exerciseRemoveCmd, exerciseEstimateCmd)

	exerciseAddCmd.Flags().StringVar(&exerciseName, "name", "", "Exercise name")
	exerciseAddCmd.Flags().Float64Var(&exerciseCalories, "calories", 0, "Calories burned")
	exerciseAddCmd.Flags().IntVar(&exerciseDuration, "duration", 0, "Duration minutes")
	_ = exerciseAddCmd.MarkFlagRequired("name")
	_ = exerciseAddCmd.MarkFlagRequired("calories")

	exerciseEstimateCmd.Flags().BoolVar(&estimateLog, "log", false, "Log the estimate immediately")
}
