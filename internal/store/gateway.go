package store

import (
	"context"
	"fmt"
	"log"

	"github.com/nutricoach/nutricoach/internal/model"
)

// WriteResult reports both phases of a dual write so callers and tests can
// assert on each. LocalOK is the success criterion; RemoteOK is best-effort.
type WriteResult struct {
	LocalOK  bool
	RemoteOK bool
}

// Gateway coordinates the offline-first dual write. Writes commit to the
// local cache first and then try the remote store, swallowing remote
// failures; reads prefer the remote store and fall back to the cache.
// remote may be nil when no remote store is configured.
type Gateway struct {
	local  *Local
	remote *Remote
	userID string
	logger *log.Logger
}

func NewGateway(local *Local, remote *Remote, logger *log.Logger) (*Gateway, error) {
	userID, err := local.UserID()
	if err != nil {
		return nil, fmt.Errorf("resolve install identity: %w", err)
	}
	return &Gateway{local: local, remote: remote, userID: userID, logger: logger}, nil
}

func (g *Gateway) UserID() string { return g.userID }

func (g *Gateway) logf(format string, args ...any) {
	if g.logger != nil {
		g.logger.Printf(format, args...)
	}
}

// journal records the outcome of a write for the sync-status view. Journal
// failures are as non-fatal as remote ones.
func (g *Gateway) journal(collection, op string, remoteOK bool) {
	if err := g.local.appendJournal(collection, op, remoteOK); err != nil {
		g.logf("sync journal: %v", err)
	}
}

// tryRemote runs the best-effort phase and reports whether it succeeded.
func (g *Gateway) tryRemote(op string, fn func() error) bool {
	if g.remote == nil {
		return false
	}
	if err := fn(); err != nil {
		g.logf("%s (kept local copy): %v", op, err)
		return false
	}
	return true
}

func (g *Gateway) SaveProfile(ctx context.Context, snap ProfileSnapshot) (WriteResult, error) {
	var res WriteResult
	if err := g.local.SaveProfile(snap); err != nil {
		return res, fmt.Errorf("save profile locally: %w", err)
	}
	res.LocalOK = true
	res.RemoteOK = g.tryRemote("save profile remotely", func() error {
		return g.remote.UpsertProfile(ctx, g.userID, snap)
	})
	g.journal("profile", "save", res.RemoteOK)
	return res, nil
}

// LoadProfile prefers the remote copy and refreshes the cache from it.
// found=false means the profile has never been saved anywhere.
func (g *Gateway) LoadProfile(ctx context.Context) (ProfileSnapshot, bool, error) {
	if g.remote != nil {
		snap, found, err := g.remote.FetchProfile(ctx, g.userID)
		if err == nil {
			if found {
				if err := g.local.SaveProfile(snap); err != nil {
					g.logf("refresh local profile cache: %v", err)
				}
			}
			return snap, found, nil
		}
		g.logf("fetch profile remotely (falling back to cache): %v", err)
	}
	return g.local.LoadProfile()
}

func (g *Gateway) AddFood(ctx context.Context, item model.FoodItem) (WriteResult, error) {
	var res WriteResult
	items, err := g.local.LoadFoodLog()
	if err != nil {
		return res, fmt.Errorf("load food log locally: %w", err)
	}
	if err := g.local.SaveFoodLog(append(items, item)); err != nil {
		return res, fmt.Errorf("save food log locally: %w", err)
	}
	res.LocalOK = true
	res.RemoteOK = g.tryRemote("save food entry remotely", func() error {
		return g.remote.InsertFood(ctx, g.userID, item)
	})
	g.journal("food_log", "save", res.RemoteOK)
	return res, nil
}

func (g *Gateway) RemoveFood(ctx context.Context, id string) (WriteResult, error) {
	var res WriteResult
	items, err := g.local.LoadFoodLog()
	if err != nil {
		return res, fmt.Errorf("load food log locally: %w", err)
	}
	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if err := g.local.SaveFoodLog(kept); err != nil {
		return res, fmt.Errorf("save food log locally: %w", err)
	}
	res.LocalOK = true
	res.RemoteOK = g.tryRemote("delete food entry remotely", func() error {
		return g.remote.DeleteFood(ctx, g.userID, id)
	})
	g.journal("food_log", "remove", res.RemoteOK)
	return res, nil
}

func (g *Gateway) LoadFoodLog(ctx context.Context) ([]model.FoodItem, error) {
	if g.remote != nil {
		items, err := g.remote.ListFood(ctx, g.userID)
		if err == nil {
			if err := g.local.SaveFoodLog(items); err != nil {
				g.logf("refresh local food cache: %v", err)
			}
			return items, nil
		}
		g.logf("list food remotely (falling back to cache): %v", err)
	}
	return g.local.LoadFoodLog()
}

func (g *Gateway) AddExercise(ctx context.Context, item model.ExerciseItem) (WriteResult, error) {
	var res WriteResult
	items, err := g.local.LoadExerciseLog()
	if err != nil {
		return res, fmt.Errorf("load exercise log locally: %w", err)
	}
	if err := g.local.SaveExerciseLog(append(items, item)); err != nil {
		return res, fmt.Errorf("save exercise log locally: %w", err)
	}
	res.LocalOK = true
	res.RemoteOK = g.tryRemote("save exercise entry remotely", func() error {
		return g.remote.InsertExercise(ctx, g.userID, item)
	})
	g.journal("exercise_log", "save", res.RemoteOK)
	return res, nil
}

func (g *Gateway) RemoveExercise(ctx context.Context, id string) (WriteResult, error) {
	var res WriteResult
	items, err := g.local.LoadExerciseLog()
	if err != nil {
		return res, fmt.Errorf("load exercise log locally: %w", err)
	}
	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if err := g.local.SaveExerciseLog(kept); err != nil {
		return res, fmt.Errorf("save exercise log locally: %w", err)
	}
	res.LocalOK = true
	res.RemoteOK = g.tryRemote("delete exercise entry remotely", func() error {
		return g.remote.DeleteExercise(ctx, g.userID, id)
	})
	g.journal("exercise_log", "remove", res.RemoteOK)
	return res, nil
}

func (g *Gateway) LoadExerciseLog(ctx context.Context) ([]model.ExerciseItem, error) {
	if g.remote != nil {
		items, err := g.remote.ListExercise(ctx, g.userID)
		if err == nil {
			if err := g.local.SaveExerciseLog(items); err != nil {
				g.logf("refresh local exercise cache: %v", err)
			}
			return items, nil
		}
		g.logf("list exercise remotely (falling back to cache): %v", err)
	}
	return g.local.LoadExerciseLog()
}

func (g *Gateway) SavePlans(ctx context.Context, plans []model.DayPlan) (WriteResult, error) {
	var res WriteResult
	if err := g.local.SavePlans(plans); err != nil {
		return res, fmt.Errorf("save plans locally: %w", err)
	}
	res.LocalOK = true
	res.RemoteOK = g.tryRemote("save plans remotely", func() error {
		return g.remote.UpsertPlans(ctx, g.userID, plans)
	})
	g.journal("meal_plans", "save", res.RemoteOK)
	return res, nil
}

func (g *Gateway) LoadPlans(ctx context.Context) ([]model.DayPlan, error) {
	if g.remote != nil {
		plans, err := g.remote.ListPlans(ctx, g.userID)
		if err == nil {
			if err := g.local.SavePlans(plans); err != nil {
				g.logf("refresh local plan cache: %v", err)
			}
			return plans, nil
		}
		g.logf("list plans remotely (falling back to cache): %v", err)
	}
	return g.local.LoadPlans()
}

// Water and mood stay local-only; the remote schema has no collections for
// them, matching the auxiliary role they play.
func (g *Gateway) SaveWaterIntake(ml int) (WriteResult, error) {
	if err := g.local.SaveWaterIntake(ml); err != nil {
		return WriteResult{}, fmt.Errorf("save water intake locally: %w", err)
	}
	return WriteResult{LocalOK: true}, nil
}

func (g *Gateway) LoadWaterIntake() (int, error) {
	return g.local.LoadWaterIntake()
}

func (g *Gateway) SaveMoodLog(entries []model.MoodEntry) (WriteResult, error) {
	if err := g.local.SaveMoodLog(entries); err != nil {
		return WriteResult{}, fmt.Errorf("save mood log locally: %w", err)
	}
	return WriteResult{LocalOK: true}, nil
}

func (g *Gateway) LoadMoodLog() ([]model.MoodEntry, error) {
	return g.local.LoadMoodLog()
}

// CheckConnection drives the sync-status indicator only.
func (g *Gateway) CheckConnection(ctx context.Context) bool {
	if g.remote == nil {
		return false
	}
	return g.remote.Ping(ctx) == nil
}

func (g *Gateway) RecentJournal(limit int) ([]JournalEntry, error) {
	return g.local.RecentJournal(limit)
}
