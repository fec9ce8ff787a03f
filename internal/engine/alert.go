package engine

import "github.com/nutricoach/nutricoach/internal/model"

type AlertSeverity string

const (
	SeverityWarning AlertSeverity = "warning"
	SeverityTip     AlertSeverity = "tip"
)

type Alert struct {
	Severity AlertSeverity
	Code     string
	Message  string
}

// EvaluateAlert runs the smart-alert rules in priority order and returns the
// first match, or nil. dismissed suppresses every rule for the current
// render cycle only; it is never persisted, so changed stats after a
// dismissal are free to raise a fresh alert.
func EvaluateAlert(stats model.DailyStats, currentHour int, dismissed bool) *Alert {
	if dismissed {
		return nil
	}
	if stats.Calories > float64(stats.TargetCalories)*1.05 {
		return &Alert{
			Severity: SeverityWarning,
			Code:     "calories_exceeded",
			Message:  "You've exceeded your calorie goal. Try a light activity or drink water!",
		}
	}
	if currentHour >= 18 && stats.Protein < float64(stats.TargetProtein)*0.6 {
		return &Alert{
			Severity: SeverityTip,
			Code:     "protein_low",
			Message:  "Protein is low today. Consider a high-protein dinner like chicken or tofu.",
		}
	}
	if currentHour >= 20 && float64(stats.WaterIntake) < float64(stats.WaterTarget)*0.5 {
		return &Alert{
			Severity: SeverityTip,
			Code:     "water_behind",
			Message:  "Don't forget to hydrate! You're behind on your water goal.",
		}
	}
	return nil
}
