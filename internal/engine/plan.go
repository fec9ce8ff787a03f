package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nutricoach/nutricoach/internal/model"
)

// MarkMealLogged returns a new plan snapshot with the targeted meal's
// IsLogged flag set, plus the FoodItem derived from its recipe. already
// reports that the flag was set before the call so the caller appends the
// derived item at most once; found is false when no meal carries mealID.
func MarkMealLogged(plan []model.DayPlan, mealID string) (out []model.DayPlan, derived model.FoodItem, found, already bool) {
	out = clonePlan(plan)
	for di := range out {
		for mi := range out[di].Meals {
			m := &out[di].Meals[mi]
			if m.ID != mealID {
				continue
			}
			found = true
			already = m.IsLogged
			m.IsLogged = true
			derived = model.FoodItem{
				Name:        m.Recipe.Name,
				Calories:    m.Recipe.Calories,
				Protein:     m.Recipe.Protein,
				Carbs:       m.Recipe.Carbs,
				Fat:         m.Recipe.Fat,
				MealType:    m.Type,
				ServingSize: "1 portion",
				Quantity:    1,
			}
			return out, derived, found, already
		}
	}
	return out, model.FoodItem{}, false, false
}

// MarkWorkoutCompleted is the exercise-side twin of MarkMealLogged.
func MarkWorkoutCompleted(plan []model.DayPlan, workoutID string) (out []model.DayPlan, derived model.ExerciseItem, found, already bool) {
	out = clonePlan(plan)
	for di := range out {
		for wi := range out[di].Workouts {
			w := &out[di].Workouts[wi]
			if w.ID != workoutID {
				continue
			}
			found = true
			already = w.IsCompleted
			w.IsCompleted = true
			derived = model.ExerciseItem{
				Name:            w.Name,
				CaloriesBurned:  w.CaloriesEstimate,
				DurationMinutes: workoutMinutes(w),
			}
			return out, derived, found, already
		}
	}
	return out, model.ExerciseItem{}, false, false
}

// SwapRecipe replaces only the recipe of the targeted meal, preserving its
// id, type, and logged flag.
func SwapRecipe(plan []model.DayPlan, dayIndex int, mealID string, recipe model.Recipe) ([]model.DayPlan, error) {
	if dayIndex < 0 || dayIndex >= len(plan) {
		return nil, fmt.Errorf("day index %d out of range (plan has %d days)", dayIndex, len(plan))
	}
	out := clonePlan(plan)
	for mi := range out[dayIndex].Meals {
		if out[dayIndex].Meals[mi].ID == mealID {
			out[dayIndex].Meals[mi].Recipe = recipe
			return out, nil
		}
	}
	return nil, fmt.Errorf("meal %q not found on day %s", mealID, out[dayIndex].Date)
}

// workoutMinutes prefers the structured duration; otherwise it parses the
// leading number of the display string ("30 mins"), defaulting to 30.
func workoutMinutes(w *model.Workout) int {
	if w.DurationMinutes > 0 {
		return w.DurationMinutes
	}
	fields := strings.Fields(w.Duration)
	if len(fields) > 0 {
		if v, err := strconv.Atoi(fields[0]); err == nil && v > 0 {
			return v
		}
	}
	return 30
}

func clonePlan(plan []model.DayPlan) []model.DayPlan {
	out := make([]model.DayPlan, len(plan))
	for i, day := range plan {
		out[i] = day
		out[i].Meals = append([]model.PlannedMeal(nil), day.Meals...)
		out[i].Workouts = append([]model.Workout(nil), day.Workouts...)
	}
	return out
}
