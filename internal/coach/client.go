package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nutricoach/nutricoach/internal/model"
)

const defaultModel = "gemini-2.5-flash"

// Client calls a generateContent-style text model and maps its structured
// JSON answers onto domain records. Every record is validated at this
// boundary; nothing unchecked crosses into the logs.
type Client struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

// RequestError marks a failed model call.
type RequestError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("coach %s failed with status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("coach %s failed: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 60 * time.Second}
}

func (c *Client) model() string {
	if c.Model != "" {
		return c.Model
	}
	return defaultModel
}

type contentPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generateRequest struct {
	Contents []struct {
		Parts []contentPart `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		ResponseMimeType string `json:"responseMimeType"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate runs one structured-output completion and decodes the answer
// into out.
func (c *Client) generate(ctx context.Context, op string, parts []contentPart, out any) error {
	var req generateRequest
	req.Contents = make([]struct {
		Parts []contentPart `json:"parts"`
	}, 1)
	req.Contents[0].Parts = parts
	req.GenerationConfig.ResponseMimeType = "application/json"

	payload, err := json.Marshal(req)
	if err != nil {
		return &RequestError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
	}
	url := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/") +
		"/v1beta/models/" + c.model() + ":generateContent?key=" + c.APIKey
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return &RequestError{Op: op, StatusCode: resp.StatusCode}
	}

	var gen generateResponse
	if err := json.Unmarshal(body, &gen); err != nil {
		return &RequestError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(gen.Candidates) == 0 || len(gen.Candidates[0].Content.Parts) == 0 {
		return &RequestError{Op: op, Err: fmt.Errorf("empty completion")}
	}
	text := gen.Candidates[0].Content.Parts[0].Text
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return &RequestError{Op: op, Err: fmt.Errorf("decode completion payload: %w", err)}
	}
	return nil
}

// AnalyzeFood turns a free-text meal description, optionally with a photo,
// into a validated nutrition record. imageBase64 may be empty.
func (c *Client) AnalyzeFood(ctx context.Context, description, imageBase64 string) (model.FoodAnalysis, error) {
	prompt := fmt.Sprintf(`Analyze this food and return a JSON object with keys
foodName, calories, protein, carbs, fat, sugar, fiber, sodium, servingSize,
servingUnit, healthScore (0-100), healthReason, warnings, allergens.
Numbers are per serving. Food: %q`, description)
	parts := []contentPart{{Text: prompt}}
	if imageBase64 != "" {
		parts = append(parts, contentPart{InlineData: &inlineData{MimeType: "image/jpeg", Data: imageBase64}})
	}

	var analysis model.FoodAnalysis
	if err := c.generate(ctx, "analyze food", parts, &analysis); err != nil {
		return model.FoodAnalysis{}, err
	}
	if err := validateAnalysis(analysis); err != nil {
		return model.FoodAnalysis{}, &RequestError{Op: "analyze food", Err: err}
	}
	return analysis, nil
}

func validateAnalysis(a model.FoodAnalysis) error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("analysis is missing a food name")
	}
	if a.Calories < 0 || a.Protein < 0 || a.Carbs < 0 || a.Fat < 0 {
		return fmt.Errorf("analysis for %q has negative macros", a.Name)
	}
	return nil
}

// EstimateExercise estimates calories burned for a described activity,
// scaled to the person's weight.
func (c *Client) EstimateExercise(ctx context.Context, description string, weightKg float64) (model.ExerciseEstimate, error) {
	prompt := fmt.Sprintf(`Estimate calories burned for this activity by a person
weighing %.0f kg. Return a JSON object with keys name, caloriesBurned,
durationMinutes. Activity: %q`, weightKg, description)

	var est model.ExerciseEstimate
	if err := c.generate(ctx, "estimate exercise", []contentPart{{Text: prompt}}, &est); err != nil {
		return model.ExerciseEstimate{}, err
	}
	if strings.TrimSpace(est.Name) == "" || est.CaloriesBurned < 0 {
		return model.ExerciseEstimate{}, &RequestError{Op: "estimate exercise", Err: fmt.Errorf("implausible estimate %+v", est)}
	}
	return est, nil
}

// SearchFoods returns candidate nutrition records for a query string.
func (c *Client) SearchFoods(ctx context.Context, query string) ([]model.FoodAnalysis, error) {
	prompt := fmt.Sprintf(`List up to 5 common foods matching %q as a JSON array of
objects with keys foodName, calories, protein, carbs, fat, servingSize,
servingUnit. Numbers are per serving.`, query)

	var results []model.FoodAnalysis
	if err := c.generate(ctx, "search foods", []contentPart{{Text: prompt}}, &results); err != nil {
		return nil, err
	}
	valid := results[:0]
	for _, r := range results {
		if validateAnalysis(r) == nil {
			valid = append(valid, r)
		}
	}
	return valid, nil
}

// planDay is the model's answer shape for one plan day. Dates, ids, and
// progress flags are assigned locally so the plan is stable regardless of
// what the model invents.
type planDay struct {
	Meals []struct {
		Type   model.MealType `json:"type"`
		Recipe model.Recipe   `json:"recipe"`
	} `json:"meals"`
	Workouts []struct {
		Name             string          `json:"name"`
		Duration         string          `json:"duration"`
		DurationMinutes  int             `json:"durationMinutes"`
		Intensity        model.Intensity `json:"intensity"`
		CaloriesEstimate float64         `json:"caloriesEstimate"`
		Instructions     []string        `json:"instructions"`
	} `json:"workouts"`
}

// GenerateMealPlan builds a plan of the given length starting at start.
func (c *Client) GenerateMealPlan(ctx context.Context, profile model.UserProfile, targets model.NutritionTargets, days int, start time.Time) ([]model.DayPlan, error) {
	if days <= 0 {
		days = 7
	}
	prompt := fmt.Sprintf(`Create a %d-day meal and workout plan as a JSON array of
days. Each day has meals (array of {type, recipe}) and workouts (array of
{name, duration, durationMinutes, intensity, caloriesEstimate, instructions}).
Each recipe has name, description, calories, protein, carbs, fat, ingredients
(array of {item, amount}), instructions, prepTime. Daily totals should land
near %d kcal with %dg protein. Dietary preference: %s. Allergies: %s. Goal: %s.`,
		days, targets.Calories, targets.ProteinG,
		orNone(string(profile.DietaryPreference)), orNone(profile.Allergies), orNone(string(profile.Goal)))

	var raw []planDay
	if err := c.generate(ctx, "generate meal plan", []contentPart{{Text: prompt}}, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, &RequestError{Op: "generate meal plan", Err: fmt.Errorf("empty plan")}
	}
	if len(raw) > days {
		raw = raw[:days]
	}

	plan := make([]model.DayPlan, 0, len(raw))
	for i, day := range raw {
		out := model.DayPlan{Date: start.AddDate(0, 0, i).Format("2006-01-02")}
		for _, m := range day.Meals {
			out.Meals = append(out.Meals, model.PlannedMeal{
				ID:     uuid.NewString(),
				Type:   m.Type,
				Recipe: m.Recipe,
			})
		}
		for _, w := range day.Workouts {
			out.Workouts = append(out.Workouts, model.Workout{
				ID:               uuid.NewString(),
				Name:             w.Name,
				Duration:         w.Duration,
				DurationMinutes:  w.DurationMinutes,
				Intensity:        w.Intensity,
				CaloriesEstimate: w.CaloriesEstimate,
				Instructions:     w.Instructions,
			})
		}
		plan = append(plan, out)
	}
	return plan, nil
}

// SuggestSwap proposes a replacement recipe with a similar macro profile.
func (c *Client) SuggestSwap(ctx context.Context, profile model.UserProfile, current model.Recipe) (model.Recipe, error) {
	prompt := fmt.Sprintf(`Suggest one alternative recipe to replace %q
(%.0f kcal, %.0fg protein) with a similar macro profile. Dietary preference:
%s. Allergies: %s. Return a JSON object with keys name, description, calories,
protein, carbs, fat, ingredients (array of {item, amount}), instructions,
prepTime.`, current.Name, current.Calories, current.Protein,
		orNone(string(profile.DietaryPreference)), orNone(profile.Allergies))

	var recipe model.Recipe
	if err := c.generate(ctx, "suggest swap", []contentPart{{Text: prompt}}, &recipe); err != nil {
		return model.Recipe{}, err
	}
	if strings.TrimSpace(recipe.Name) == "" || recipe.Calories < 0 {
		return model.Recipe{}, &RequestError{Op: "suggest swap", Err: fmt.Errorf("implausible recipe %+v", recipe)}
	}
	return recipe, nil
}

// fallbackInsight is shown until enough history exists or when the model is
// unreachable; habit analysis is decoration, never a blocker.
func fallbackInsight() model.HabitInsight {
	return model.HabitInsight{
		Score:            75,
		Streak:           1,
		TrendTitle:       "Gathering Data",
		TrendDescription: "Log more meals to unlock deep insights.",
		Advice:           "Keep logging consistently!",
	}
}

// AnalyzeHabits summarizes recent logging behavior. It degrades to a
// neutral insight instead of failing.
func (c *Client) AnalyzeHabits(ctx context.Context, foodLog []model.FoodItem, moodLog []model.MoodEntry) model.HabitInsight {
	if len(foodLog) == 0 {
		return fallbackInsight()
	}
	summary, err := json.Marshal(struct {
		Food []model.FoodItem  `json:"food"`
		Mood []model.MoodEntry `json:"mood"`
	}{foodLog, moodLog})
	if err != nil {
		return fallbackInsight()
	}
	prompt := fmt.Sprintf(`Analyze these food and mood logs and return a JSON
object with keys score (0-100), streak, trendTitle, trendDescription, advice,
eatingWindowStart, eatingWindowEnd, lateNightSnacks. Logs: %s`, summary)

	var insight model.HabitInsight
	if err := c.generate(ctx, "analyze habits", []contentPart{{Text: prompt}}, &insight); err != nil {
		return fallbackInsight()
	}
	if insight.Score < 0 || insight.Score > 100 || insight.TrendTitle == "" {
		return fallbackInsight()
	}
	return insight
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}
