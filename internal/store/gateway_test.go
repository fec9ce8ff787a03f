package store_test

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nutricoach/nutricoach/internal/model"
	"github.com/nutricoach/nutricoach/internal/store"
)

func newTestGateway(t *testing.T, remote *store.Remote) *store.Gateway {
	t.Helper()
	gw, err := store.NewGateway(newTestLocal(t), remote, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("new gateway: %v", err)
	}
	return gw
}

// unreachableRemote points at a closed server so every call fails with a
// transport error.
func unreachableRemote(t *testing.T) *store.Remote {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()
	return &store.Remote{BaseURL: url, APIKey: "test-key"}
}

func TestGatewaySaveThenLoadWithRemoteUnreachable(t *testing.T) {
	t.Parallel()
	gw := newTestGateway(t, unreachableRemote(t))
	ctx := context.Background()

	item := model.FoodItem{ID: "f1", Name: "Oatmeal", Calories: 350, MealType: model.MealBreakfast, Timestamp: 1756300000000}
	res, err := gw.AddFood(ctx, item)
	if err != nil {
		t.Fatalf("add food: %v", err)
	}
	if !res.LocalOK || res.RemoteOK {
		t.Fatalf("expected local-only success, got %+v", res)
	}

	items, err := gw.LoadFoodLog(ctx)
	if err != nil {
		t.Fatalf("load food log: %v", err)
	}
	if len(items) != 1 || items[0].ID != "f1" {
		t.Fatalf("expected cached entry back, got %+v", items)
	}
}

func TestGatewayRemoveSurvivesRemoteFailure(t *testing.T) {
	t.Parallel()
	gw := newTestGateway(t, unreachableRemote(t))
	ctx := context.Background()

	for _, id := range []string{"f1", "f2"} {
		if _, err := gw.AddFood(ctx, model.FoodItem{ID: id, Name: id}); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}
	res, err := gw.RemoveFood(ctx, "f1")
	if err != nil {
		t.Fatalf("remove food: %v", err)
	}
	if !res.LocalOK || res.RemoteOK {
		t.Fatalf("expected local removal with failed remote, got %+v", res)
	}

	items, err := gw.LoadFoodLog(ctx)
	if err != nil {
		t.Fatalf("load food log: %v", err)
	}
	for _, item := range items {
		if item.ID == "f1" {
			t.Fatalf("removed id must never come back from loadAll: %+v", items)
		}
	}
	if len(items) != 1 || items[0].ID != "f2" {
		t.Fatalf("expected only f2 to remain, got %+v", items)
	}
}

func TestGatewayRemoteWinsOnRead(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"data": {"id": "remote-1", "name": "Remote Bowl", "calories": 600, "mealType": "Lunch"}}]`))
		default:
			w.WriteHeader(http.StatusCreated)
		}
	}))
	defer ts.Close()

	gw := newTestGateway(t, &store.Remote{BaseURL: ts.URL, APIKey: "test-key", HTTPClient: ts.Client()})
	ctx := context.Background()

	// Seed the cache with a stale local-only entry, then read.
	if _, err := gw.AddFood(ctx, model.FoodItem{ID: "local-1", Name: "Stale"}); err != nil {
		t.Fatalf("seed local: %v", err)
	}
	items, err := gw.LoadFoodLog(ctx)
	if err != nil {
		t.Fatalf("load food log: %v", err)
	}
	if len(items) != 1 || items[0].ID != "remote-1" {
		t.Fatalf("remote is authoritative when reachable, got %+v", items)
	}
}

func TestGatewayDualWriteBothPhases(t *testing.T) {
	t.Parallel()

	var remoteWrites int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			remoteWrites++
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	gw := newTestGateway(t, &store.Remote{BaseURL: ts.URL, APIKey: "test-key", HTTPClient: ts.Client()})
	res, err := gw.AddExercise(context.Background(), model.ExerciseItem{ID: "e1", Name: "Run", CaloriesBurned: 300})
	if err != nil {
		t.Fatalf("add exercise: %v", err)
	}
	if !res.LocalOK || !res.RemoteOK {
		t.Fatalf("expected both phases to succeed, got %+v", res)
	}
	if remoteWrites != 1 {
		t.Fatalf("expected one remote write, got %d", remoteWrites)
	}
}

func TestGatewayOfflineModeWithoutRemote(t *testing.T) {
	t.Parallel()
	gw := newTestGateway(t, nil)
	ctx := context.Background()

	snap := store.ProfileSnapshot{Targets: model.NutritionTargets{Calories: 2000, ProteinG: 150, CarbsG: 200, FatG: 65, WaterML: 2500}}
	res, err := gw.SaveProfile(ctx, snap)
	if err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if !res.LocalOK || res.RemoteOK {
		t.Fatalf("expected local-only result, got %+v", res)
	}
	loaded, found, err := gw.LoadProfile(ctx)
	if err != nil || !found {
		t.Fatalf("load profile: found=%v err=%v", found, err)
	}
	if loaded.Targets.Calories != 2000 {
		t.Fatalf("unexpected targets: %+v", loaded.Targets)
	}
	if gw.CheckConnection(ctx) {
		t.Fatalf("no remote configured, connection check must be false")
	}
}

func TestGatewayJournalRecordsWrites(t *testing.T) {
	t.Parallel()
	gw := newTestGateway(t, unreachableRemote(t))
	ctx := context.Background()

	if _, err := gw.AddFood(ctx, model.FoodItem{ID: "f1", Name: "Oats"}); err != nil {
		t.Fatalf("add food: %v", err)
	}
	if _, err := gw.RemoveFood(ctx, "f1"); err != nil {
		t.Fatalf("remove food: %v", err)
	}

	entries, err := gw.RecentJournal(10)
	if err != nil {
		t.Fatalf("recent journal: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 journal entries, got %d", len(entries))
	}
	if entries[0].Op != "remove" || entries[1].Op != "save" {
		t.Fatalf("expected newest-first ordering, got %+v", entries)
	}
	for _, e := range entries {
		if e.RemoteOK {
			t.Fatalf("remote was unreachable, journal must record remote_ok=false: %+v", e)
		}
	}
}
