package engine

import (
	"math"

	"github.com/nutricoach/nutricoach/internal/model"
)

// InvalidTargetError guards the score denominator. Target calories of zero
// is a caller contract violation: ComputeTargets never emits it and the
// manual-override path validates it.
type InvalidTargetError struct {
	Calories int
}

func (e *InvalidTargetError) Error() string {
	return "target calories must be > 0"
}

// ComputeDailyStats folds the day's food and exercise logs into totals and
// adherence scores. It is pure: same inputs, same output, no mutation of
// the log slices.
func ComputeDailyStats(foodLog []model.FoodItem, exerciseLog []model.ExerciseItem, targets model.NutritionTargets, waterIntake int) (model.DailyStats, error) {
	if targets.Calories <= 0 {
		return model.DailyStats{}, &InvalidTargetError{Calories: targets.Calories}
	}

	var stats model.DailyStats
	for _, item := range foodLog {
		stats.Calories += item.Calories
		stats.Protein += item.Protein
		stats.Carbs += item.Carbs
		stats.Fat += item.Fat
	}
	for _, item := range exerciseLog {
		stats.CaloriesBurned += item.CaloriesBurned
	}

	// Net may go negative when exercise exceeds intake; it is an
	// intermediate and stays unclamped.
	stats.NetCalories = stats.Calories - stats.CaloriesBurned

	calorieDiff := math.Abs(stats.NetCalories - float64(targets.Calories))
	stats.CalorieScore = math.Max(0, 100-(calorieDiff/float64(targets.Calories))*100)
	stats.ProteinScore = adherenceScore(stats.Protein, float64(targets.ProteinG))
	stats.WaterScore = adherenceScore(float64(waterIntake), float64(targets.WaterML))
	stats.DailyScore = int(math.Round(stats.CalorieScore*0.5 + stats.ProteinScore*0.3 + stats.WaterScore*0.2))

	stats.TargetCalories = targets.Calories
	stats.TargetProtein = targets.ProteinG
	stats.TargetCarbs = targets.CarbsG
	stats.TargetFat = targets.FatG
	stats.WaterIntake = waterIntake
	stats.WaterTarget = targets.WaterML
	return stats, nil
}

// adherenceScore is consumed/target capped at 100. A zero target scores 0
// rather than dividing by zero.
func adherenceScore(consumed, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return math.Min(100, consumed/target*100)
}
