package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/nutricoach/nutricoach/internal/model"
)

// Snapshot keys. Each collection is stored as one serialized document, the
// way the app reads it: whole log in, whole log out.
const (
	keyProfile     = "profile"
	keyFoodLog     = "food_log"
	keyExerciseLog = "exercise_log"
	keyMealPlans   = "meal_plans"
	keyWaterIntake = "water_intake"
	keyMoodLog     = "mood_log"
)

// ProfileSnapshot bundles the profile with its authoritative targets; the
// two are always saved together.
type ProfileSnapshot struct {
	Profile model.UserProfile      `json:"profile"`
	Targets model.NutritionTargets `json:"targets"`
}

// Local is the durable snapshot cache backed by the sqlite file. All reads
// and writes are synchronous.
type Local struct {
	db *sql.DB
}

func NewLocal(db *sql.DB) *Local {
	return &Local{db: db}
}

// UserID returns the per-install opaque identifier, generating and
// persisting a uuid on first use. Local and remote copies of every entity
// share this identity, so no server round-trip is needed before a write.
func (l *Local) UserID() (string, error) {
	var id string
	err := l.db.QueryRow(`SELECT user_id FROM app_identity WHERE id = 1`).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("read install identity: %w", err)
	}
	id = uuid.NewString()
	if _, err := l.db.Exec(`INSERT INTO app_identity(id, user_id) VALUES(1, ?)`, id); err != nil {
		return "", fmt.Errorf("persist install identity: %w", err)
	}
	return id, nil
}

func (l *Local) put(key string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s snapshot: %w", key, err)
	}
	_, err = l.db.Exec(`
INSERT INTO snapshots(key, value, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
`, key, string(value))
	if err != nil {
		return fmt.Errorf("write %s snapshot: %w", key, err)
	}
	return nil
}

func (l *Local) get(key string, v any) (bool, error) {
	var raw string
	err := l.db.QueryRow(`SELECT value FROM snapshots WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s snapshot: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode %s snapshot: %w", key, err)
	}
	return true, nil
}

func (l *Local) SaveProfile(snap ProfileSnapshot) error {
	return l.put(keyProfile, snap)
}

func (l *Local) LoadProfile() (ProfileSnapshot, bool, error) {
	var snap ProfileSnapshot
	ok, err := l.get(keyProfile, &snap)
	return snap, ok, err
}

func (l *Local) SaveFoodLog(items []model.FoodItem) error {
	return l.put(keyFoodLog, items)
}

func (l *Local) LoadFoodLog() ([]model.FoodItem, error) {
	var items []model.FoodItem
	if _, err := l.get(keyFoodLog, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (l *Local) SaveExerciseLog(items []model.ExerciseItem) error {
	return l.put(keyExerciseLog, items)
}

func (l *Local) LoadExerciseLog() ([]model.ExerciseItem, error) {
	var items []model.ExerciseItem
	if _, err := l.get(keyExerciseLog, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (l *Local) SavePlans(plans []model.DayPlan) error {
	return l.put(keyMealPlans, plans)
}

func (l *Local) LoadPlans() ([]model.DayPlan, error) {
	var plans []model.DayPlan
	if _, err := l.get(keyMealPlans, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (l *Local) SaveWaterIntake(ml int) error {
	return l.put(keyWaterIntake, ml)
}

func (l *Local) LoadWaterIntake() (int, error) {
	var ml int
	if _, err := l.get(keyWaterIntake, &ml); err != nil {
		return 0, err
	}
	return ml, nil
}

func (l *Local) SaveMoodLog(entries []model.MoodEntry) error {
	return l.put(keyMoodLog, entries)
}

func (l *Local) LoadMoodLog() ([]model.MoodEntry, error) {
	var entries []model.MoodEntry
	if _, err := l.get(keyMoodLog, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// JournalEntry is one recorded write outcome, newest first from
// RecentJournal.
type JournalEntry struct {
	Collection string
	Op         string
	RemoteOK   bool
	OccurredAt string
}

func (l *Local) appendJournal(collection, op string, remoteOK bool) error {
	remote := 0
	if remoteOK {
		remote = 1
	}
	if _, err := l.db.Exec(`INSERT INTO sync_journal(collection, op, remote_ok) VALUES(?, ?, ?)`, collection, op, remote); err != nil {
		return fmt.Errorf("append sync journal: %w", err)
	}
	return nil
}

func (l *Local) RecentJournal(limit int) ([]JournalEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := l.db.Query(`
SELECT collection, op, remote_ok, occurred_at
FROM sync_journal
ORDER BY id DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sync journal: %w", err)
	}
	defer rows.Close()

	entries := make([]JournalEntry, 0)
	for rows.Next() {
		var e JournalEntry
		var remote int
		if err := rows.Scan(&e.Collection, &e.Op, &remote, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan sync journal: %w", err)
		}
		e.RemoteOK = remote == 1
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sync journal: %w", err)
	}
	return entries, nil
}
