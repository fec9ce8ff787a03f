package nutricoach

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nutricoach/nutricoach/internal/model"
	"github.com/nutricoach/nutricoach/internal/tracker"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your profile and derived nutrition targets",
}

var (
	profileAge        int
	profileGender     string
	profileWeight     float64
	profileHeight     float64
	profileActivity   string
	profileGoal       string
	profileDiet       string
	profileAllergies  string
	profileConditions string
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save your profile and recompute targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		gender, err := parseGender(profileGender)
		if err != nil {
			return err
		}
		activity, err := parseActivityLevel(profileActivity)
		if err != nil {
			return err
		}
		goal, err := parseGoal(profileGoal)
		if err != nil {
			return err
		}
		p := model.UserProfile{
			Age:               profileAge,
			Gender:            gender,
			WeightKg:          profileWeight,
			HeightCm:          profileHeight,
			ActivityLevel:     activity,
			Goal:              goal,
			DietaryPreference: model.DietaryPreference(profileDiet),
			Allergies:         profileAllergies,
			MedicalConditions: profileConditions,
		}
		return withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
			targets, err := tr.SaveProfile(ctx, p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile saved")
			printTargets(cmd, targets)
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
			st := tr.State()
			if !st.HasProfile {
				fmt.Fprintln(cmd.OutOrStdout(), "No profile saved (run: nutricoach profile set)")
				return nil
			}
			p := st.Profile
			fmt.Fprintf(cmd.OutOrStdout(), "Age: %d\n", p.Age)
			fmt.Fprintf(cmd.OutOrStdout(), "Gender: %s\n", p.Gender)
			fmt.Fprintf(cmd.OutOrStdout(), "Weight: %.1f kg\n", p.WeightKg)
			fmt.Fprintf(cmd.OutOrStdout(), "Height: %.1f cm\n", p.HeightCm)
			fmt.Fprintf(cmd.OutOrStdout(), "Activity: %s\n", p.ActivityLevel)
			fmt.Fprintf(cmd.OutOrStdout(), "Goal: %s\n", p.Goal)
			if p.DietaryPreference != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Diet: %s\n", p.DietaryPreference)
			}
			if p.Allergies != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Allergies: %s\n", p.Allergies)
			}
			printTargets(cmd, st.Targets)
			return nil
		})
	},
}

func printTargets(cmd *cobra.Command, t model.NutritionTargets) {
	fmt.Fprintf(cmd.OutOrStdout(), "Targets: %d kcal | P %dg | C %dg | F %dg | Water %d ml\n",
		t.Calories, t.ProteinG, t.CarbsG, t.FatG, t.WaterML)
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd, profileShowCmd)

	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "Age in years")
	profileSetCmd.Flags().StringVar(&profileGender, "gender", "", "Gender (male, female, other)")
	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "Weight in kg")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in cm")
	profileSetCmd.Flags().StringVar(&profileActivity, "activity", "", "Activity level (sedentary, light, moderate, very)")
	profileSetCmd.Flags().StringVar(&profileGoal, "goal", "", "Goal (loss, maintain, gain)")
	profileSetCmd.Flags().StringVar(&profileDiet, "diet", "", "Dietary preference")
	profileSetCmd.Flags().StringVar(&profileAllergies, "allergies", "", "Comma-separated allergies")
	profileSetCmd.Flags().StringVar(&profileConditions, "conditions", "", "Medical conditions")
	_ = profileSetCmd.MarkFlagRequired("age")
	_ = profileSetCmd.MarkFlagRequired("gender")
	_ = profileSetCmd.MarkFlagRequired("weight")
	_ = profileSetCmd.MarkFlagRequired("height")
}
