package tracker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/nutricoach/nutricoach/internal/engine"
	"github.com/nutricoach/nutricoach/internal/model"
	"github.com/nutricoach/nutricoach/internal/store"
)

// State is the in-memory working set for one session. The gateway is the
// durable source; State is hydrated once by Load and kept in step by every
// mutator so command handlers never re-read mid-operation.
type State struct {
	Profile     model.UserProfile
	Targets     model.NutritionTargets
	HasProfile  bool
	FoodLog     []model.FoodItem
	ExerciseLog []model.ExerciseItem
	Plans       []model.DayPlan
	MoodLog     []model.MoodEntry
	WaterIntake int
}

// Tracker owns the session state and routes every mutation through the
// persistence gateway.
type Tracker struct {
	gw     *store.Gateway
	logger *log.Logger
	state  State

	now   func() time.Time
	newID func() string
}

func New(gw *store.Gateway, logger *log.Logger) *Tracker {
	return &Tracker{
		gw:     gw,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (t *Tracker) State() State { return t.state }

func (t *Tracker) Gateway() *store.Gateway { return t.gw }

// Load hydrates the full working set. Remote reachability is handled inside
// the gateway; Load only fails on local storage errors.
func (t *Tracker) Load(ctx context.Context) error {
	snap, found, err := t.gw.LoadProfile(ctx)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	t.state.Profile = snap.Profile
	t.state.Targets = snap.Targets
	t.state.HasProfile = found

	if t.state.FoodLog, err = t.gw.LoadFoodLog(ctx); err != nil {
		return fmt.Errorf("load food log: %w", err)
	}
	if t.state.ExerciseLog, err = t.gw.LoadExerciseLog(ctx); err != nil {
		return fmt.Errorf("load exercise log: %w", err)
	}
	if t.state.Plans, err = t.gw.LoadPlans(ctx); err != nil {
		return fmt.Errorf("load plans: %w", err)
	}
	if t.state.MoodLog, err = t.gw.LoadMoodLog(); err != nil {
		return fmt.Errorf("load mood log: %w", err)
	}
	if t.state.WaterIntake, err = t.gw.LoadWaterIntake(); err != nil {
		return fmt.Errorf("load water intake: %w", err)
	}
	return nil
}

func defaultNotifications() *model.NotificationSettings {
	return &model.NotificationSettings{
		Enabled:          false,
		BreakfastTime:    "08:00",
		LunchTime:        "13:00",
		DinnerTime:       "19:00",
		WorkoutTime:      "17:00",
		SleepTime:        "23:00",
		WaterIntervalMin: 120,
	}
}

// SaveProfile recomputes targets from the profile and persists both
// atomically as one snapshot. On first save a disabled default notification
// schedule is attached so reminder settings always have a baseline.
func (t *Tracker) SaveProfile(ctx context.Context, p model.UserProfile) (model.NutritionTargets, error) {
	targets, err := engine.ComputeTargets(p)
	if err != nil {
		return model.NutritionTargets{}, err
	}
	if p.Notifications == nil {
		if t.state.HasProfile && t.state.Profile.Notifications != nil {
			p.Notifications = t.state.Profile.Notifications
		} else {
			p.Notifications = defaultNotifications()
		}
	}
	if _, err := t.gw.SaveProfile(ctx, store.ProfileSnapshot{Profile: p, Targets: targets}); err != nil {
		return model.NutritionTargets{}, err
	}
	t.state.Profile = p
	t.state.Targets = targets
	t.state.HasProfile = true
	return targets, nil
}

// SetTargets overrides the derived targets manually. The override becomes
// authoritative until the next profile save recomputes.
func (t *Tracker) SetTargets(ctx context.Context, targets model.NutritionTargets) error {
	if targets.Calories <= 0 {
		return &engine.InvalidTargetError{Calories: targets.Calories}
	}
	if !t.state.HasProfile {
		return fmt.Errorf("no profile saved yet")
	}
	if _, err := t.gw.SaveProfile(ctx, store.ProfileSnapshot{Profile: t.state.Profile, Targets: targets}); err != nil {
		return err
	}
	t.state.Targets = targets
	return nil
}

// AddFood assigns identity and timestamp when the caller left them blank,
// then commits the entry. The returned item carries the final id.
func (t *Tracker) AddFood(ctx context.Context, item model.FoodItem) (model.FoodItem, error) {
	if item.ID == "" {
		item.ID = t.newID()
	}
	if item.Timestamp == 0 {
		item.Timestamp = t.now().UnixMilli()
	}
	if _, err := t.gw.AddFood(ctx, item); err != nil {
		return model.FoodItem{}, err
	}
	t.state.FoodLog = append(t.state.FoodLog, item)
	return item, nil
}

func (t *Tracker) RemoveFood(ctx context.Context, id string) error {
	if _, err := t.gw.RemoveFood(ctx, id); err != nil {
		return err
	}
	kept := t.state.FoodLog[:0]
	for _, item := range t.state.FoodLog {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	t.state.FoodLog = kept
	return nil
}

func (t *Tracker) AddExercise(ctx context.Context, item model.ExerciseItem) (model.ExerciseItem, error) {
	if item.ID == "" {
		item.ID = t.newID()
	}
	if item.Timestamp == 0 {
		item.Timestamp = t.now().UnixMilli()
	}
	if _, err := t.gw.AddExercise(ctx, item); err != nil {
		return model.ExerciseItem{}, err
	}
	t.state.ExerciseLog = append(t.state.ExerciseLog, item)
	return item, nil
}

func (t *Tracker) RemoveExercise(ctx context.Context, id string) error {
	if _, err := t.gw.RemoveExercise(ctx, id); err != nil {
		return err
	}
	kept := t.state.ExerciseLog[:0]
	for _, item := range t.state.ExerciseLog {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	t.state.ExerciseLog = kept
	return nil
}

// AddWater adjusts today's running total by delta ml, clamped at zero so an
// over-correction can never leave a negative total.
func (t *Tracker) AddWater(delta int) (int, error) {
	total := t.state.WaterIntake + delta
	if total < 0 {
		total = 0
	}
	if _, err := t.gw.SaveWaterIntake(total); err != nil {
		return t.state.WaterIntake, err
	}
	t.state.WaterIntake = total
	return total, nil
}

func (t *Tracker) LogMood(mood model.Mood) (model.MoodEntry, error) {
	entry := model.MoodEntry{
		ID:        t.newID(),
		Timestamp: t.now().UnixMilli(),
		Mood:      mood,
	}
	entries := append(append([]model.MoodEntry(nil), t.state.MoodLog...), entry)
	if _, err := t.gw.SaveMoodLog(entries); err != nil {
		return model.MoodEntry{}, err
	}
	t.state.MoodLog = entries
	return entry, nil
}

func (t *Tracker) SetPlans(ctx context.Context, plans []model.DayPlan) error {
	if _, err := t.gw.SavePlans(ctx, plans); err != nil {
		return err
	}
	t.state.Plans = plans
	return nil
}

// LogPlannedMeal flips the meal's logged flag and appends the derived food
// entry. Logging an already-logged meal is a no-op that reports already=true
// rather than double-counting.
func (t *Tracker) LogPlannedMeal(ctx context.Context, mealID string) (model.FoodItem, bool, error) {
	plans, derived, found, already := engine.MarkMealLogged(t.state.Plans, mealID)
	if !found {
		return model.FoodItem{}, false, fmt.Errorf("no planned meal with id %q", mealID)
	}
	if already {
		return model.FoodItem{}, true, nil
	}
	if err := t.SetPlans(ctx, plans); err != nil {
		return model.FoodItem{}, false, err
	}
	item, err := t.AddFood(ctx, derived)
	if err != nil {
		return model.FoodItem{}, false, err
	}
	return item, false, nil
}

// CompletePlannedWorkout is the exercise-side twin of LogPlannedMeal.
func (t *Tracker) CompletePlannedWorkout(ctx context.Context, workoutID string) (model.ExerciseItem, bool, error) {
	plans, derived, found, already := engine.MarkWorkoutCompleted(t.state.Plans, workoutID)
	if !found {
		return model.ExerciseItem{}, false, fmt.Errorf("no planned workout with id %q", workoutID)
	}
	if already {
		return model.ExerciseItem{}, true, nil
	}
	if err := t.SetPlans(ctx, plans); err != nil {
		return model.ExerciseItem{}, false, err
	}
	item, err := t.AddExercise(ctx, derived)
	if err != nil {
		return model.ExerciseItem{}, false, err
	}
	return item, false, nil
}

func (t *Tracker) SwapPlannedRecipe(ctx context.Context, dayIndex int, mealID string, recipe model.Recipe) error {
	plans, err := engine.SwapRecipe(t.state.Plans, dayIndex, mealID, recipe)
	if err != nil {
		return err
	}
	return t.SetPlans(ctx, plans)
}

// Stats folds today's entries into the daily scorecard. Entries from other
// days are excluded by calendar date in local time.
func (t *Tracker) Stats() (model.DailyStats, error) {
	now := t.now()
	var food []model.FoodItem
	for _, item := range t.state.FoodLog {
		if sameDay(item.Timestamp, now) {
			food = append(food, item)
		}
	}
	var exercise []model.ExerciseItem
	for _, item := range t.state.ExerciseLog {
		if sameDay(item.Timestamp, now) {
			exercise = append(exercise, item)
		}
	}
	return engine.ComputeDailyStats(food, exercise, t.state.Targets, t.state.WaterIntake)
}

// ActiveAlert evaluates the smart-alert rules against the current stats and
// wall clock.
func (t *Tracker) ActiveAlert(dismissed bool) (*engine.Alert, error) {
	stats, err := t.Stats()
	if err != nil {
		return nil, err
	}
	return engine.EvaluateAlert(stats, t.now().Hour(), dismissed), nil
}

// DueReminders reports which scheduled reminders fire at the current minute.
func (t *Tracker) DueReminders() []engine.Reminder {
	return engine.DueReminders(t.state.Profile.Notifications, t.now())
}

func sameDay(epochMs int64, now time.Time) bool {
	ts := time.UnixMilli(epochMs).In(now.Location())
	y1, m1, d1 := ts.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
