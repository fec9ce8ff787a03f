package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nutricoach/nutricoach/internal/model"
)

// Remote talks to a PostgREST-style document store. Rows carry the full
// entity as a JSON document in a data column; addressing is
// (user_id, entity_id) for log entries, (user_id) for the profile
// singleton, and (user_id, date) for plan days.
type Remote struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// RemoteError marks a failed remote operation. It never reaches callers of
// the gateway: every path falls back to the local cache.
type RemoteError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("remote %s failed with status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("remote %s failed: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

func (r *Remote) httpClient() *http.Client {
	if r.HTTPClient != nil {
		return r.HTTPClient
	}
	return &http.Client{Timeout: 10 * time.Second}
}

func (r *Remote) endpoint(table string) string {
	return strings.TrimRight(strings.TrimSpace(r.BaseURL), "/") + "/rest/v1/" + table
}

func (r *Remote) do(ctx context.Context, op, method, rawURL string, body any, prefer string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &RemoteError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, &RemoteError{Op: op, Err: err}
	}
	req.Header.Set("apikey", r.APIKey)
	req.Header.Set("Authorization", "Bearer "+r.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := r.httpClient().Do(req)
	if err != nil {
		return nil, &RemoteError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RemoteError{Op: op, StatusCode: resp.StatusCode}
	}
	return out, nil
}

// selectData fetches the data column of every row matching the filters.
// A 2xx with zero rows is a valid empty state, not an error.
func (r *Remote) selectData(ctx context.Context, op, table string, filters url.Values) ([]json.RawMessage, error) {
	filters.Set("select", "data")
	body, err := r.do(ctx, op, http.MethodGet, r.endpoint(table)+"?"+filters.Encode(), nil, "")
	if err != nil {
		return nil, err
	}
	var rows []struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, &RemoteError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	docs := make([]json.RawMessage, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, row.Data)
	}
	return docs, nil
}

func (r *Remote) UpsertProfile(ctx context.Context, userID string, snap ProfileSnapshot) error {
	row := map[string]any{
		"user_id":    userID,
		"updated_at": time.Now().UnixMilli(),
		"data":       snap,
	}
	_, err := r.do(ctx, "upsert profile", http.MethodPost, r.endpoint("profiles"), []any{row}, "resolution=merge-duplicates")
	return err
}

// FetchProfile returns found=false on zero rows; that is the legitimate
// never-saved state and must not trigger a local fallback.
func (r *Remote) FetchProfile(ctx context.Context, userID string) (ProfileSnapshot, bool, error) {
	filters := url.Values{}
	filters.Set("user_id", "eq."+userID)
	docs, err := r.selectData(ctx, "fetch profile", "profiles", filters)
	if err != nil {
		return ProfileSnapshot{}, false, err
	}
	if len(docs) == 0 {
		return ProfileSnapshot{}, false, nil
	}
	var snap ProfileSnapshot
	if err := json.Unmarshal(docs[0], &snap); err != nil {
		return ProfileSnapshot{}, false, &RemoteError{Op: "fetch profile", Err: fmt.Errorf("decode document: %w", err)}
	}
	return snap, true, nil
}

func (r *Remote) InsertFood(ctx context.Context, userID string, item model.FoodItem) error {
	row := map[string]any{
		"id":        item.ID,
		"user_id":   userID,
		"timestamp": item.Timestamp,
		"data":      item,
	}
	_, err := r.do(ctx, "insert food", http.MethodPost, r.endpoint("food_logs"), []any{row}, "")
	return err
}

func (r *Remote) DeleteFood(ctx context.Context, userID, id string) error {
	filters := url.Values{}
	filters.Set("id", "eq."+id)
	filters.Set("user_id", "eq."+userID)
	_, err := r.do(ctx, "delete food", http.MethodDelete, r.endpoint("food_logs")+"?"+filters.Encode(), nil, "")
	return err
}

func (r *Remote) ListFood(ctx context.Context, userID string) ([]model.FoodItem, error) {
	filters := url.Values{}
	filters.Set("user_id", "eq."+userID)
	docs, err := r.selectData(ctx, "list food", "food_logs", filters)
	if err != nil {
		return nil, err
	}
	items := make([]model.FoodItem, 0, len(docs))
	for _, doc := range docs {
		var item model.FoodItem
		if err := json.Unmarshal(doc, &item); err != nil {
			return nil, &RemoteError{Op: "list food", Err: fmt.Errorf("decode document: %w", err)}
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Remote) InsertExercise(ctx context.Context, userID string, item model.ExerciseItem) error {
	row := map[string]any{
		"id":        item.ID,
		"user_id":   userID,
		"timestamp": item.Timestamp,
		"data":      item,
	}
	_, err := r.do(ctx, "insert exercise", http.MethodPost, r.endpoint("exercise_logs"), []any{row}, "")
	return err
}

func (r *Remote) DeleteExercise(ctx context.Context, userID, id string) error {
	filters := url.Values{}
	filters.Set("id", "eq."+id)
	filters.Set("user_id", "eq."+userID)
	_, err := r.do(ctx, "delete exercise", http.MethodDelete, r.endpoint("exercise_logs")+"?"+filters.Encode(), nil, "")
	return err
}

func (r *Remote) ListExercise(ctx context.Context, userID string) ([]model.ExerciseItem, error) {
	filters := url.Values{}
	filters.Set("user_id", "eq."+userID)
	docs, err := r.selectData(ctx, "list exercise", "exercise_logs", filters)
	if err != nil {
		return nil, err
	}
	items := make([]model.ExerciseItem, 0, len(docs))
	for _, doc := range docs {
		var item model.ExerciseItem
		if err := json.Unmarshal(doc, &item); err != nil {
			return nil, &RemoteError{Op: "list exercise", Err: fmt.Errorf("decode document: %w", err)}
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Remote) UpsertPlans(ctx context.Context, userID string, plans []model.DayPlan) error {
	rows := make([]any, 0, len(plans))
	for _, day := range plans {
		rows = append(rows, map[string]any{
			"user_id": userID,
			"date":    day.Date,
			"data":    day,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	_, err := r.do(ctx, "upsert plans", http.MethodPost, r.endpoint("meal_plans"), rows, "resolution=merge-duplicates")
	return err
}

func (r *Remote) ListPlans(ctx context.Context, userID string) ([]model.DayPlan, error) {
	filters := url.Values{}
	filters.Set("user_id", "eq."+userID)
	filters.Set("order", "date.asc")
	docs, err := r.selectData(ctx, "list plans", "meal_plans", filters)
	if err != nil {
		return nil, err
	}
	plans := make([]model.DayPlan, 0, len(docs))
	for _, doc := range docs {
		var day model.DayPlan
		if err := json.Unmarshal(doc, &day); err != nil {
			return nil, &RemoteError{Op: "list plans", Err: fmt.Errorf("decode document: %w", err)}
		}
		plans = append(plans, day)
	}
	return plans, nil
}

// Ping is the lightweight reachability probe behind the sync-status
// indicator. Failure here blocks nothing: every read/write path falls back
// on its own.
func (r *Remote) Ping(ctx context.Context) error {
	filters := url.Values{}
	filters.Set("select", "user_id")
	filters.Set("limit", "1")
	_, err := r.do(ctx, "ping", http.MethodGet, r.endpoint("profiles")+"?"+filters.Encode(), nil, "count=exact")
	return err
}
