package nutricoach

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nutricoach/nutricoach/internal/app"
	"github.com/nutricoach/nutricoach/internal/coach"
	"github.com/nutricoach/nutricoach/internal/db"
	"github.com/nutricoach/nutricoach/internal/model"
	"github.com/nutricoach/nutricoach/internal/store"
	"github.com/nutricoach/nutricoach/internal/tracker"
)

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	return app.DefaultDBPath()
}

// withTracker opens the store, hydrates a tracker, and runs the command body
// against it. The remote store is attached only when credentials are
// configured; everything works offline without them.
func withTracker(cmd *cobra.Command, run func(context.Context, *tracker.Tracker) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}

	cfg := app.LoadConfig()
	var remote *store.Remote
	if cfg.RemoteConfigured() {
		remote = &store.Remote{BaseURL: cfg.RemoteURL, APIKey: cfg.RemoteKey}
	}
	logger := log.New(os.Stderr, "nutricoach: ", 0)
	gw, err := store.NewGateway(store.NewLocal(sqldb), remote, logger)
	if err != nil {
		return err
	}
	tr := tracker.New(gw, logger)
	if err := tr.Load(ctx); err != nil {
		return err
	}
	return run(ctx, tr)
}

// newCoach builds the AI client or explains what is missing.
func newCoach() (*coach.Client, error) {
	cfg := app.LoadConfig()
	if !cfg.AIConfigured() {
		return nil, fmt.Errorf("AI coach is not configured (set NUTRICOACH_AI_KEY)")
	}
	return &coach.Client{BaseURL: cfg.AIBaseURL, APIKey: cfg.AIKey, Model: cfg.AIModel}, nil
}

func parseMealType(value string) (model.MealType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "breakfast":
		return model.MealBreakfast, nil
	case "lunch":
		return model.MealLunch, nil
	case "dinner":
		return model.MealDinner, nil
	case "snack", "":
		return model.MealSnack, nil
	}
	return "", fmt.Errorf("invalid meal type %q (breakfast, lunch, dinner, snack)", value)
}

func parseGender(value string) (model.Gender, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "male":
		return model.GenderMale, nil
	case "female":
		return model.GenderFemale, nil
	case "other":
		return model.GenderOther, nil
	}
	return "", fmt.Errorf("invalid gender %q (male, female, other)", value)
}

func parseActivityLevel(value string) (model.ActivityLevel, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "sedentary", "":
		return model.ActivitySedentary, nil
	case "light":
		return model.ActivityLight, nil
	case "moderate":
		return model.ActivityModerate, nil
	case "very":
		return model.ActivityVeryActive, nil
	}
	return "", fmt.Errorf("invalid activity level %q (sedentary, light, moderate, very)", value)
}

func parseGoal(value string) (model.Goal, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "loss":
		return model.GoalWeightLoss, nil
	case "maintain", "":
		return model.GoalMaintenance, nil
	case "gain":
		return model.GoalMuscleGain, nil
	}
	return "", fmt.Errorf("invalid goal %q (loss, maintain, gain)", value)
}

func parseMood(value string) (model.Mood, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "stressed":
		return model.MoodStressed, nil
	case "tired":
		return model.MoodTired, nil
	case "sore":
		return model.MoodSore, nil
	case "cravings":
		return model.MoodCravings, nil
	case "happy":
		return model.MoodHappy, nil
	case "energetic":
		return model.MoodEnergetic, nil
	}
	return "", fmt.Errorf("invalid mood %q (stressed, tired, sore, cravings, happy, energetic)", value)
}
