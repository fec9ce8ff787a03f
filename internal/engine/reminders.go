package engine

import (
	"time"

	"github.com/nutricoach/nutricoach/internal/model"
)

type ReminderKind string

const (
	ReminderBreakfast ReminderKind = "breakfast"
	ReminderLunch     ReminderKind = "lunch"
	ReminderDinner    ReminderKind = "dinner"
	ReminderWorkout   ReminderKind = "workout"
	ReminderSleep     ReminderKind = "sleep"
	ReminderWater     ReminderKind = "water"
)

type Reminder struct {
	Kind  ReminderKind
	Title string
	Body  string
}

// DueReminders returns the reminders whose scheduled time matches now to the
// minute. Delivery is the caller's concern; this is only the scheduling
// rule. Water reminders fire when minutes-since-midnight is an exact
// multiple of the configured interval.
func DueReminders(settings *model.NotificationSettings, now time.Time) []Reminder {
	if settings == nil || !settings.Enabled {
		return nil
	}
	current := now.Format("15:04")

	var due []Reminder
	add := func(kind ReminderKind, title, body string) {
		due = append(due, Reminder{Kind: kind, Title: title, Body: body})
	}
	if current == settings.BreakfastTime {
		add(ReminderBreakfast, "Breakfast Time!", "Start your day with a healthy meal.")
	}
	if current == settings.LunchTime {
		add(ReminderLunch, "Lunch Time!", "Fuel up for the afternoon.")
	}
	if current == settings.DinnerTime {
		add(ReminderDinner, "Dinner Time!", "Time for a balanced dinner.")
	}
	if current == settings.WorkoutTime {
		add(ReminderWorkout, "Workout Reminder", "Time to get moving!")
	}
	if current == settings.SleepTime {
		add(ReminderSleep, "Sleep Time", "Time to wind down for better recovery.")
	}
	if settings.WaterIntervalMin > 0 {
		minutesToday := now.Hour()*60 + now.Minute()
		if minutesToday%settings.WaterIntervalMin == 0 {
			add(ReminderWater, "Hydration Check", "Time to drink some water!")
		}
	}
	return due
}
