package engine_test

import (
	"errors"
	"testing"

	"github.com/nutricoach/nutricoach/internal/engine"
	"github.com/nutricoach/nutricoach/internal/model"
)

var testTargets = model.NutritionTargets{
	Calories: 2000,
	ProteinG: 150,
	CarbsG:   200,
	FatG:     65,
	WaterML:  2500,
}

func TestComputeDailyStatsTotals(t *testing.T) {
	t.Parallel()

	food := []model.FoodItem{
		{Name: "Oatmeal", Calories: 350, Protein: 12, Carbs: 60, Fat: 6},
		{Name: "Chicken salad", Calories: 520, Protein: 42, Carbs: 18, Fat: 30},
	}
	exercise := []model.ExerciseItem{
		{Name: "Run", CaloriesBurned: 300, DurationMinutes: 30},
	}

	stats, err := engine.ComputeDailyStats(food, exercise, testTargets, 1000)
	if err != nil {
		t.Fatalf("compute stats: %v", err)
	}
	if stats.Calories != 870 || stats.Protein != 54 || stats.Carbs != 78 || stats.Fat != 36 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if stats.CaloriesBurned != 300 {
		t.Fatalf("expected 300 burned, got %v", stats.CaloriesBurned)
	}
	if stats.NetCalories != 570 {
		t.Fatalf("expected net 570, got %v", stats.NetCalories)
	}
}

func TestComputeDailyStatsEmptyExercise(t *testing.T) {
	t.Parallel()

	food := []model.FoodItem{{Name: "Toast", Calories: 240, Protein: 8, Carbs: 40, Fat: 4}}
	stats, err := engine.ComputeDailyStats(food, nil, testTargets, 0)
	if err != nil {
		t.Fatalf("compute stats: %v", err)
	}
	if stats.CaloriesBurned != 0 {
		t.Fatalf("expected zero burned, got %v", stats.CaloriesBurned)
	}
	if stats.NetCalories != stats.Calories {
		t.Fatalf("expected net == intake with no exercise, got net %v intake %v", stats.NetCalories, stats.Calories)
	}
}

func TestComputeDailyStatsNetMayGoNegative(t *testing.T) {
	t.Parallel()

	exercise := []model.ExerciseItem{{Name: "Long ride", CaloriesBurned: 900}}
	stats, err := engine.ComputeDailyStats(nil, exercise, testTargets, 0)
	if err != nil {
		t.Fatalf("compute stats: %v", err)
	}
	if stats.NetCalories != -900 {
		t.Fatalf("expected net -900, got %v", stats.NetCalories)
	}
}

func TestComputeDailyStatsScoreBounds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		food     []model.FoodItem
		exercise []model.ExerciseItem
		water    int
	}{
		{name: "empty day"},
		{
			name:  "perfect day",
			food:  []model.FoodItem{{Calories: 2000, Protein: 150, Carbs: 200, Fat: 65}},
			water: 2500,
		},
		{
			name: "massive overshoot",
			food: []model.FoodItem{{Calories: 9000, Protein: 400}},
		},
		{
			name:  "water far beyond target",
			food:  []model.FoodItem{{Calories: 2000, Protein: 300}},
			water: 9000,
		},
	}
	for _, tc := range cases {
		stats, err := engine.ComputeDailyStats(tc.food, tc.exercise, testTargets, tc.water)
		if err != nil {
			t.Fatalf("%s: compute stats: %v", tc.name, err)
		}
		if stats.DailyScore < 0 || stats.DailyScore > 100 {
			t.Fatalf("%s: daily score %d out of [0,100]", tc.name, stats.DailyScore)
		}
		if stats.ProteinScore > 100 || stats.WaterScore > 100 || stats.CalorieScore > 100 {
			t.Fatalf("%s: component score exceeds 100: %+v", tc.name, stats)
		}
	}
}

func TestComputeDailyStatsIdempotent(t *testing.T) {
	t.Parallel()

	food := []model.FoodItem{
		{Name: "Burrito", Calories: 780, Protein: 35, Carbs: 90, Fat: 28},
		{Name: "Apple", Calories: 95, Carbs: 25},
	}
	exercise := []model.ExerciseItem{{Name: "Swim", CaloriesBurned: 410}}

	first, err := engine.ComputeDailyStats(food, exercise, testTargets, 1200)
	if err != nil {
		t.Fatalf("first compute: %v", err)
	}
	second, err := engine.ComputeDailyStats(food, exercise, testTargets, 1200)
	if err != nil {
		t.Fatalf("second compute: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical stats on recompute, got %+v vs %+v", first, second)
	}
}

func TestComputeDailyStatsOrderIndependent(t *testing.T) {
	t.Parallel()

	a := model.FoodItem{Name: "Eggs", Calories: 210, Protein: 18, Fat: 15}
	b := model.FoodItem{Name: "Rice", Calories: 300, Carbs: 66}

	forward, err := engine.ComputeDailyStats([]model.FoodItem{a, b}, nil, testTargets, 500)
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	reversed, err := engine.ComputeDailyStats([]model.FoodItem{b, a}, nil, testTargets, 500)
	if err != nil {
		t.Fatalf("reversed: %v", err)
	}
	if forward != reversed {
		t.Fatalf("sum should be order independent: %+v vs %+v", forward, reversed)
	}
}

func TestComputeDailyStatsZeroTargetCalories(t *testing.T) {
	t.Parallel()

	_, err := engine.ComputeDailyStats(nil, nil, model.NutritionTargets{Calories: 0}, 0)
	if err == nil {
		t.Fatalf("expected invalid-target error")
	}
	var invalid *engine.InvalidTargetError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTargetError, got %T", err)
	}
}
