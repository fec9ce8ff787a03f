package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/nutricoach/nutricoach/internal/model"
)

// MissingFieldsError reports which profile fields prevented target
// calculation. Callers should prompt for the named fields instead of
// defaulting them.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("profile is missing required fields: %s", strings.Join(e.Fields, ", "))
}

// activityMultipliers is the single source of truth for TDEE scaling.
// An unset or unknown level falls back to sedentary.
var activityMultipliers = map[model.ActivityLevel]float64{
	model.ActivitySedentary:  1.2,
	model.ActivityLight:      1.375,
	model.ActivityModerate:   1.55,
	model.ActivityVeryActive: 1.725,
}

// goalAdjustments shifts TDEE into a daily calorie target.
var goalAdjustments = map[model.Goal]int{
	model.GoalWeightLoss:  -500,
	model.GoalMuscleGain:  300,
	model.GoalMaintenance: 0,
}

// ComputeTargets derives daily calorie, macro, and water targets from the
// profile using the revised Harris-Benedict equation. The macro split is a
// fixed 30/35/35 of calories at 4/4/9 kcal per gram.
func ComputeTargets(p model.UserProfile) (model.NutritionTargets, error) {
	var missing []string
	if p.WeightKg <= 0 {
		missing = append(missing, "weight")
	}
	if p.HeightCm <= 0 {
		missing = append(missing, "height")
	}
	if p.Age <= 0 {
		missing = append(missing, "age")
	}
	if p.Gender == "" {
		missing = append(missing, "gender")
	}
	if len(missing) > 0 {
		return model.NutritionTargets{}, &MissingFieldsError{Fields: missing}
	}

	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if p.Gender == model.GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	multiplier, ok := activityMultipliers[p.ActivityLevel]
	if !ok {
		multiplier = 1.2
	}
	tdee := roundInt(bmr * multiplier)
	tdee += goalAdjustments[p.Goal]

	return model.NutritionTargets{
		Calories: clampNonNegative(tdee),
		ProteinG: clampNonNegative(roundInt(float64(tdee) * 0.30 / 4)),
		CarbsG:   clampNonNegative(roundInt(float64(tdee) * 0.35 / 4)),
		FatG:     clampNonNegative(roundInt(float64(tdee) * 0.35 / 9)),
		WaterML:  clampNonNegative(roundInt(p.WeightKg * 35)),
	}, nil
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
