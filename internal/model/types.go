package model

// Gender selects the BMR formula branch. Other deliberately shares the
// non-male branch so results stay stable for every profile.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "Sedentary"
	ActivityLight      ActivityLevel = "Lightly Active"
	ActivityModerate   ActivityLevel = "Moderately Active"
	ActivityVeryActive ActivityLevel = "Very Active"
)

type Goal string

const (
	GoalWeightLoss  Goal = "Weight Loss"
	GoalMaintenance Goal = "Maintenance"
	GoalMuscleGain  Goal = "Muscle Gain"
)

type DietaryPreference string

const (
	DietNone        DietaryPreference = "None"
	DietVegetarian  DietaryPreference = "Vegetarian"
	DietVegan       DietaryPreference = "Vegan"
	DietKeto        DietaryPreference = "Keto"
	DietPaleo       DietaryPreference = "Paleo"
	DietPescatarian DietaryPreference = "Pescatarian"
)

type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
	MealSnack     MealType = "Snack"
)

// NotificationSettings holds the reminder schedule. Times are local "HH:MM"
// strings; WaterIntervalMin of 0 disables hydration reminders.
type NotificationSettings struct {
	Enabled          bool   `json:"enabled"`
	BreakfastTime    string `json:"breakfastTime"`
	LunchTime        string `json:"lunchTime"`
	DinnerTime       string `json:"dinnerTime"`
	WorkoutTime      string `json:"workoutTime"`
	SleepTime        string `json:"sleepTime"`
	WaterIntervalMin int    `json:"waterInterval"`
}

// UserProfile is mutated only through explicit profile saves; the single
// exception is the first-save assignment of default notification settings.
type UserProfile struct {
	Age               int                   `json:"age,omitempty"`
	Gender            Gender                `json:"gender,omitempty"`
	WeightKg          float64               `json:"weight,omitempty"`
	HeightCm          float64               `json:"height,omitempty"`
	ActivityLevel     ActivityLevel         `json:"activityLevel,omitempty"`
	Goal              Goal                  `json:"goal,omitempty"`
	DietaryPreference DietaryPreference     `json:"dietaryPreference,omitempty"`
	Allergies         string                `json:"allergies,omitempty"`
	MedicalConditions string                `json:"medicalConditions,omitempty"`
	Notifications     *NotificationSettings `json:"notifications,omitempty"`
}

// NutritionTargets is authoritative once saved, whether derived or manually
// overridden. Calories must stay > 0: it is a score denominator.
type NutritionTargets struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein"`
	CarbsG   int `json:"carbs"`
	FatG     int `json:"fat"`
	WaterML  int `json:"water"`
}

type FoodItem struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Timestamp    int64    `json:"timestamp"` // epoch ms
	Calories     float64  `json:"calories"`
	Protein      float64  `json:"protein"`
	Carbs        float64  `json:"carbs"`
	Fat          float64  `json:"fat"`
	MealType     MealType `json:"mealType"`
	SugarG       float64  `json:"sugar,omitempty"`
	FiberG       float64  `json:"fiber,omitempty"`
	SodiumMg     float64  `json:"sodium,omitempty"`
	ServingSize  string   `json:"servingSize,omitempty"`
	ServingUnit  string   `json:"servingUnit,omitempty"`
	Quantity     float64  `json:"quantity,omitempty"`
	HealthScore  int      `json:"healthScore,omitempty"`
	HealthReason string   `json:"healthReason,omitempty"`
	Warnings     []string `json:"warnings,omitempty"`
	Allergens    []string `json:"allergens,omitempty"`
}

type ExerciseItem struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	CaloriesBurned  float64 `json:"caloriesBurned"`
	DurationMinutes int     `json:"durationMinutes"`
	Timestamp       int64   `json:"timestamp"`
}

// DailyStats is a derived value object. It is recomputed from the logs on
// every read and never stored.
type DailyStats struct {
	Calories       float64
	Protein        float64
	Carbs          float64
	Fat            float64
	CaloriesBurned float64
	NetCalories    float64
	TargetCalories int
	TargetProtein  int
	TargetCarbs    int
	TargetFat      int
	WaterIntake    int
	WaterTarget    int
	CalorieScore   float64
	ProteinScore   float64
	WaterScore     float64
	DailyScore     int
}

type Ingredient struct {
	Item   string `json:"item"`
	Amount string `json:"amount"`
}

type Recipe struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Calories     float64      `json:"calories"`
	Protein      float64      `json:"protein"`
	Carbs        float64      `json:"carbs"`
	Fat          float64      `json:"fat"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	PrepTime     string       `json:"prepTime"`
}

type Intensity string

const (
	IntensityLow    Intensity = "Low"
	IntensityMedium Intensity = "Medium"
	IntensityHigh   Intensity = "High"
)

type Workout struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Duration         string    `json:"duration"` // e.g. "30 mins"
	DurationMinutes  int       `json:"durationMinutes,omitempty"`
	Intensity        Intensity `json:"intensity"`
	CaloriesEstimate float64   `json:"caloriesEstimate"`
	Instructions     []string  `json:"instructions,omitempty"`
	IsCompleted      bool      `json:"isCompleted"`
}

type PlannedMeal struct {
	ID       string   `json:"id"`
	Type     MealType `json:"type"`
	Recipe   Recipe   `json:"recipe"`
	IsLogged bool     `json:"isLogged"`
}

// DayPlan keeps a stable date and id set after generation; only leaf flags
// and recipes change in place.
type DayPlan struct {
	Date     string        `json:"date"` // YYYY-MM-DD
	Meals    []PlannedMeal `json:"meals"`
	Workouts []Workout     `json:"workouts"`
}

type Mood string

const (
	MoodStressed  Mood = "Stressed"
	MoodTired     Mood = "Tired"
	MoodSore      Mood = "Sore"
	MoodCravings  Mood = "Cravings"
	MoodHappy     Mood = "Happy"
	MoodEnergetic Mood = "Energetic"
)

type MoodEntry struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Mood      Mood   `json:"mood"`
}

// FoodAnalysis is the AI nutrition-analysis record, validated at the
// boundary before it becomes a FoodItem.
type FoodAnalysis struct {
	Name         string   `json:"foodName"`
	Calories     float64  `json:"calories"`
	Protein      float64  `json:"protein"`
	Carbs        float64  `json:"carbs"`
	Fat          float64  `json:"fat"`
	SugarG       float64  `json:"sugar,omitempty"`
	FiberG       float64  `json:"fiber,omitempty"`
	SodiumMg     float64  `json:"sodium,omitempty"`
	ServingSize  string   `json:"servingSize,omitempty"`
	ServingUnit  string   `json:"servingUnit,omitempty"`
	HealthScore  int      `json:"healthScore,omitempty"`
	HealthReason string   `json:"healthReason,omitempty"`
	Warnings     []string `json:"warnings,omitempty"`
	Allergens    []string `json:"allergens,omitempty"`
}

type ExerciseEstimate struct {
	Name            string  `json:"name"`
	CaloriesBurned  float64 `json:"caloriesBurned"`
	DurationMinutes int     `json:"durationMinutes"`
}

type HabitInsight struct {
	Score             int    `json:"score"`
	Streak            int    `json:"streak"`
	TrendTitle        string `json:"trendTitle"`
	TrendDescription  string `json:"trendDescription"`
	Advice            string `json:"advice"`
	EatingWindowStart string `json:"eatingWindowStart,omitempty"`
	EatingWindowEnd   string `json:"eatingWindowEnd,omitempty"`
	LateNightSnacks   int    `json:"lateNightSnacks"`
}
