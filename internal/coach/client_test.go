package coach

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nutricoach/nutricoach/internal/model"
)

// completionServer wraps payload the way the model API does: a candidate
// whose single text part holds the structured JSON answer.
func completionServer(t *testing.T, payload string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		body := map[string]any{
			"candidates": []any{
				map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": payload}}}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}))
}

func testClient(ts *httptest.Server) *Client {
	return &Client{BaseURL: ts.URL, APIKey: "test-key", HTTPClient: ts.Client()}
}

func TestAnalyzeFood(t *testing.T) {
	t.Parallel()

	ts := completionServer(t, `{"foodName": "Grilled Chicken Salad", "calories": 420,
"protein": 38, "carbs": 18, "fat": 22, "healthScore": 82, "servingSize": "1 bowl"}`)
	defer ts.Close()

	analysis, err := testClient(ts).AnalyzeFood(context.Background(), "grilled chicken salad", "")
	if err != nil {
		t.Fatalf("analyze food: %v", err)
	}
	if analysis.Name != "Grilled Chicken Salad" || analysis.Calories != 420 || analysis.HealthScore != 82 {
		t.Fatalf("unexpected analysis: %+v", analysis)
	}
}

func TestAnalyzeFoodRejectsInvalidRecords(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		payload string
	}{
		{"missing name", `{"foodName": "", "calories": 420}`},
		{"negative calories", `{"foodName": "Mystery", "calories": -10}`},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ts := completionServer(t, tc.payload)
			defer ts.Close()

			_, err := testClient(ts).AnalyzeFood(context.Background(), "something", "")
			var reqErr *RequestError
			if !errors.As(err, &reqErr) {
				t.Fatalf("expected RequestError, got %v", err)
			}
		})
	}
}

func TestRequestErrorCarriesStatus(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer ts.Close()

	_, err := testClient(ts).AnalyzeFood(context.Background(), "toast", "")
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if reqErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", reqErr.StatusCode)
	}
}

func TestEstimateExercise(t *testing.T) {
	t.Parallel()

	ts := completionServer(t, `{"name": "Running", "caloriesBurned": 320, "durationMinutes": 30}`)
	defer ts.Close()

	est, err := testClient(ts).EstimateExercise(context.Background(), "30 minute run", 70)
	if err != nil {
		t.Fatalf("estimate exercise: %v", err)
	}
	if est.Name != "Running" || est.CaloriesBurned != 320 || est.DurationMinutes != 30 {
		t.Fatalf("unexpected estimate: %+v", est)
	}
}

func TestSearchFoodsDropsInvalidEntries(t *testing.T) {
	t.Parallel()

	ts := completionServer(t, `[
{"foodName": "Apple", "calories": 95},
{"foodName": "", "calories": 100},
{"foodName": "Banana", "calories": 105}
]`)
	defer ts.Close()

	results, err := testClient(ts).SearchFoods(context.Background(), "fruit")
	if err != nil {
		t.Fatalf("search foods: %v", err)
	}
	if len(results) != 2 || results[0].Name != "Apple" || results[1].Name != "Banana" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestGenerateMealPlanAssignsIdentity(t *testing.T) {
	t.Parallel()

	ts := completionServer(t, `[
{"meals": [{"type": "Breakfast", "recipe": {"name": "Overnight Oats", "calories": 380, "protein": 18, "carbs": 55, "fat": 10}}],
 "workouts": [{"name": "Morning Walk", "duration": "30 mins", "intensity": "Low", "caloriesEstimate": 120}]},
{"meals": [{"type": "Lunch", "recipe": {"name": "Quinoa Bowl", "calories": 520, "protein": 24, "carbs": 70, "fat": 14}}],
 "workouts": []}
]`)
	defer ts.Close()

	start := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	plan, err := testClient(ts).GenerateMealPlan(context.Background(), model.UserProfile{}, model.NutritionTargets{Calories: 2000, ProteinG: 150}, 2, start)
	if err != nil {
		t.Fatalf("generate meal plan: %v", err)
	}
	if len(plan) != 2 {
		t.Fatalf("expected 2 days, got %d", len(plan))
	}
	if plan[0].Date != "2026-08-28" || plan[1].Date != "2026-08-29" {
		t.Fatalf("expected consecutive dates from start, got %q and %q", plan[0].Date, plan[1].Date)
	}
	meal := plan[0].Meals[0]
	if meal.ID == "" || meal.IsLogged {
		t.Fatalf("expected fresh unlogged meal with id, got %+v", meal)
	}
	workout := plan[0].Workouts[0]
	if workout.ID == "" || workout.IsCompleted {
		t.Fatalf("expected fresh incomplete workout with id, got %+v", workout)
	}
}

func TestSuggestSwap(t *testing.T) {
	t.Parallel()

	ts := completionServer(t, `{"name": "Tofu Stir Fry", "calories": 510, "protein": 26, "carbs": 60, "fat": 16}`)
	defer ts.Close()

	recipe, err := testClient(ts).SuggestSwap(context.Background(), model.UserProfile{DietaryPreference: model.DietVegan}, model.Recipe{Name: "Quinoa Bowl", Calories: 520, Protein: 24})
	if err != nil {
		t.Fatalf("suggest swap: %v", err)
	}
	if recipe.Name != "Tofu Stir Fry" {
		t.Fatalf("unexpected recipe: %+v", recipe)
	}
}

func TestAnalyzeHabitsDegradesGracefully(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	food := []model.FoodItem{{ID: "f1", Name: "Oats", Calories: 350}}
	insight := testClient(ts).AnalyzeHabits(context.Background(), food, nil)
	if insight.TrendTitle != "Gathering Data" || insight.Score != 75 {
		t.Fatalf("expected fallback insight, got %+v", insight)
	}

	// Empty history never hits the network at all.
	closed := testClient(ts)
	closed.BaseURL = "http://127.0.0.1:0"
	insight = closed.AnalyzeHabits(context.Background(), nil, nil)
	if insight.TrendTitle != "Gathering Data" {
		t.Fatalf("expected fallback for empty history, got %+v", insight)
	}
}

func TestAnalyzeHabitsParsesInsight(t *testing.T) {
	t.Parallel()

	ts := completionServer(t, `{"score": 88, "streak": 5, "trendTitle": "Consistent Mornings",
"trendDescription": "You log breakfast daily.", "advice": "Keep it up.",
"eatingWindowStart": "08:00", "eatingWindowEnd": "20:00", "lateNightSnacks": 1}`)
	defer ts.Close()

	food := []model.FoodItem{{ID: "f1", Name: "Oats", Calories: 350}}
	insight := testClient(ts).AnalyzeHabits(context.Background(), food, nil)
	if insight.Score != 88 || insight.Streak != 5 || insight.TrendTitle != "Consistent Mornings" {
		t.Fatalf("unexpected insight: %+v", insight)
	}
}
