package nutricoach

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nutricoach/nutricoach/internal/model"
	"github.com/nutricoach/nutricoach/internal/tracker"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Log and review food entries",
}

var (
	foodName     string
	foodCalories float64
	foodProtein  float64
	foodCarbs    float64
	foodFat      float64
	foodMeal     string
)

var foodAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a food entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		meal, err := parseMealType(foodMeal)
		if err != nil {
			return err
		}
		if foodCalories < 0 {
			return fmt.Errorf("calories must be >= 0")
		}
		return withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
			item, err := tr.AddFood(ctx, model.FoodItem{
				Name:     foodName,
				Calories: foodCalories,
				Protein:  foodProtein,
				Carbs:    foodCarbs,
				Fat:      foodFat,
				MealType: meal,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%.0f kcal) [%s]\n", item.Name, item.Calories, item.ID)
			return nil
		})
	},
}

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged food entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
			items := tr.State().FoodLog
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No food logged")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "TIME\tMEAL\tNAME\tKCAL\tP\tC\tF\tID")
			for _, item := range items {
				ts := time.UnixMilli(item.Timestamp).Local().Format("01-02 15:04")
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\t%s\n",
					ts, item.MealType, item.Name, item.Calories, item.Protein, item.Carbs, item.Fat, item.ID)
			}
			return nil
		})
	},
}

var foodRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a food entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
			if err := tr.RemoveFood(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		})
	},
}

var (
	analyzeImage string
	analyzeLog   bool
	analyzeMeal  string
)

var foodAnalyzeCmd = &cobra.Command{
	Use:   "analyze <description>",
	Short: "Analyze a described meal with the AI coach",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newCoach()
		if err != nil {
			return err
		}
		meal, err := parseMealType(analyzeMeal)
		if err != nil {
			return err
		}
		var image string
		if analyzeImage != "" {
			raw, err := os.ReadFile(analyzeImage)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			image = base64.StdEncoding.EncodeToString(raw)
		}
		return withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
			analysis, err := client.AnalyzeFood(ctx, joinArgs(args), image)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n",
				analysis.Name, analysis.Calories, analysis.Protein, analysis.Carbs, analysis.Fat)
			if analysis.HealthScore > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Health score: %d (%s)\n", analysis.HealthScore, analysis.HealthReason)
			}
			for _, w := range analysis.Warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "Warning: %s\n", w)
			}
			if !analyzeLog {
				return nil
			}
			item, err := tr.AddFood(ctx, model.FoodItem{
				Name:         analysis.Name,
				Calories:     analysis.Calories,
				Protein:      analysis.Protein,
				Carbs:        analysis.Carbs,
				Fat:          analysis.Fat,
				MealType:     meal,
				SugarG:       analysis.SugarG,
				FiberG:       analysis.FiberG,
				SodiumMg:     analysis.SodiumMg,
				ServingSize:  analysis.ServingSize,
				ServingUnit:  analysis.ServingUnit,
				HealthScore:  analysis.HealthScore,
				HealthReason: analysis.HealthReason,
				Warnings:     analysis.Warnings,
				Allergens:    analysis.Allergens,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged [%s]\n", item.ID)
			return nil
		})
	},
}

var foodSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search common foods via the AI coach",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newCoach()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		results, err := client.SearchFoods(ctx, joinArgs(args))
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No matches")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "NAME\tKCAL\tP\tC\tF\tSERVING")
		for _, r := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.0f\t%.1f\t%.1f\t%.1f\t%s %s\n",
				r.Name, r.Calories, r.Protein, r.Carbs, r.Fat, r.ServingSize, r.ServingUnit)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodAddCmd, foodListCmd, foodRemoveCmd, foodAnalyzeCmd, foodSearchCmd)

	foodAddCmd.Flags().StringVar(&foodName, "name", "", "Food name")
	foodAddCmd.Flags().Float64Var(&foodCalories, "calories", 0, "Calories")
	foodAddCmd.Flags().Float64Var(&foodProtein, "protein", 0, "Protein grams")
	foodAddCmd.Flags().Float64Var(&foodCarbs, "carbs", 0, "Carb grams")
	foodAddCmd.Flags().Float64Var(&foodFat, "fat", 0, "Fat grams")
	foodAddCmd.Flags().StringVar(&foodMeal, "meal", "snack", "Meal type (breakfast, lunch, dinner, snack)")
	_ = foodAddCmd.MarkFlagRequired("name")
	_ = foodAddCmd.MarkFlagRequired("calories")

	foodAnalyzeCmd.Flags().StringVar(&analyzeImage, "image", "", "Path to a photo of the meal")
	foodAnalyzeCmd.Flags().BoolVar(&analyzeLog, "log", false, "Log the analyzed food immediately")
	foodAnalyzeCmd.Flags().StringVar(&analyzeMeal, "meal", "snack", "Meal type when logging")
}
