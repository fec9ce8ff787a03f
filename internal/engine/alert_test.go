package engine_test

import (
	"testing"

	"github.com/nutricoach/nutricoach/internal/engine"
	"github.com/nutricoach/nutricoach/internal/model"
)

func baseStats() model.DailyStats {
	return model.DailyStats{
		Calories:       1500,
		Protein:        120,
		TargetCalories: 2000,
		TargetProtein:  150,
		WaterIntake:    2000,
		WaterTarget:    2500,
	}
}

func TestAlertCalorieOvershootWinsRegardlessOfHour(t *testing.T) {
	t.Parallel()

	stats := baseStats()
	stats.Calories = 2200 // 110% of target, above the 105% threshold

	for _, hour := range []int{6, 12, 23} {
		alert := engine.EvaluateAlert(stats, hour, false)
		if alert == nil {
			t.Fatalf("hour %d: expected calorie alert, got nil", hour)
		}
		if alert.Severity != engine.SeverityWarning || alert.Code != "calories_exceeded" {
			t.Fatalf("hour %d: unexpected alert %+v", hour, alert)
		}
	}
}

func TestAlertJustUnderThresholdStaysQuiet(t *testing.T) {
	t.Parallel()

	stats := baseStats()
	stats.Calories = 2100 // exactly 105%, rule requires strictly greater

	if alert := engine.EvaluateAlert(stats, 12, false); alert != nil {
		t.Fatalf("expected nil at exactly 105%%, got %+v", alert)
	}
}

func TestAlertLowProteinEveningTip(t *testing.T) {
	t.Parallel()

	stats := baseStats()
	stats.Protein = 80 // below 0.6 * 150

	if alert := engine.EvaluateAlert(stats, 17, false); alert != nil {
		t.Fatalf("protein rule should not fire before 18:00, got %+v", alert)
	}
	alert := engine.EvaluateAlert(stats, 18, false)
	if alert == nil || alert.Code != "protein_low" || alert.Severity != engine.SeverityTip {
		t.Fatalf("expected protein tip at 18:00, got %+v", alert)
	}
}

func TestAlertWaterBehindNightTip(t *testing.T) {
	t.Parallel()

	stats := baseStats()
	stats.WaterIntake = 1000 // below 0.5 * 2500

	if alert := engine.EvaluateAlert(stats, 19, false); alert != nil {
		t.Fatalf("water rule should not fire before 20:00, got %+v", alert)
	}
	alert := engine.EvaluateAlert(stats, 20, false)
	if alert == nil || alert.Code != "water_behind" {
		t.Fatalf("expected water tip at 20:00, got %+v", alert)
	}
}

func TestAlertPriorityOrder(t *testing.T) {
	t.Parallel()

	// All three rules match; the calorie warning must win.
	stats := baseStats()
	stats.Calories = 2500
	stats.Protein = 10
	stats.WaterIntake = 0

	alert := engine.EvaluateAlert(stats, 22, false)
	if alert == nil || alert.Code != "calories_exceeded" {
		t.Fatalf("expected calorie warning to take priority, got %+v", alert)
	}
}

func TestAlertDismissedSuppressesEverything(t *testing.T) {
	t.Parallel()

	stats := baseStats()
	stats.Calories = 2500
	stats.Protein = 10
	stats.WaterIntake = 0

	if alert := engine.EvaluateAlert(stats, 22, true); alert != nil {
		t.Fatalf("expected nil when dismissed, got %+v", alert)
	}
}

func TestAlertNoRuleMatches(t *testing.T) {
	t.Parallel()

	if alert := engine.EvaluateAlert(baseStats(), 12, false); alert != nil {
		t.Fatalf("expected nil, got %+v", alert)
	}
}
