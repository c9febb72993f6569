// ABOUTME: Tests for the Tracker recompute service over a real SQLite store.
// ABOUTME: Covers logging, deletion, burn input, zero state, nudges, and trends.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/harperreed/nutrients/internal/models"
	"github.com/harperreed/nutrients/internal/storage"
)

var testNow = time.Date(2025, 7, 20, 14, 0, 0, 0, time.Local)

func setupTracker(t *testing.T) (*Tracker, *storage.DB) {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), storage.DBFileName))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return New(db, true, WithClock(func() time.Time { return testNow })), db
}

func mustFind(t *testing.T, snap *models.DailySnapshot, id models.NutrientID) models.NutrientStatus {
	t.Helper()
	st, ok := snap.Find(id)
	if !ok {
		t.Fatalf("snapshot missing %s", id)
	}
	return st
}

func TestLogFoodRecomputesDay(t *testing.T) {
	tr, db := setupTracker(t)
	ctx := context.Background()

	item := models.NewFoodLogItem("Steak", models.MealDinner, models.Macros{Calories: 600, Protein: 56, Fat: 30}).
		WithLoggedAt(testNow)

	snap, err := tr.LogFood(ctx, item)
	if err != nil {
		t.Fatalf("LogFood failed: %v", err)
	}
	if len(snap.Statuses) != models.NutrientCount {
		t.Fatalf("expected %d statuses, got %d", models.NutrientCount, len(snap.Statuses))
	}

	stored, err := db.GetSnapshot(testNow)
	if err != nil || stored == nil {
		t.Fatalf("expected stored snapshot, got %v, %v", stored, err)
	}
	protein := mustFind(t, stored, models.Protein)
	if protein.RawIntake != 56 {
		t.Errorf("protein raw = %v, want 56", protein.RawIntake)
	}
	if protein.SourceHint != "1 item(s)" {
		t.Errorf("source hint = %q", protein.SourceHint)
	}
}

func TestLogFoodRejectsInvalid(t *testing.T) {
	tr, db := setupTracker(t)

	_, err := tr.LogFood(context.Background(), models.NewFoodLogItem(" ", models.MealSnack, models.Macros{Calories: -1}))
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	foods, _ := db.ListFoods(0)
	if len(foods) != 0 {
		t.Errorf("invalid food was stored")
	}
}

func TestDeleteFoodRecomputes(t *testing.T) {
	tr, db := setupTracker(t)
	ctx := context.Background()

	keep := models.NewFoodLogItem("Rice", models.MealLunch, models.Macros{Calories: 200, Carbs: 45}).WithLoggedAt(testNow)
	drop := models.NewFoodLogItem("Chicken", models.MealLunch, models.Macros{Calories: 250, Protein: 40}).WithLoggedAt(testNow)
	for _, f := range []*models.FoodLogItem{keep, drop} {
		if _, err := tr.LogFood(ctx, f); err != nil {
			t.Fatalf("LogFood failed: %v", err)
		}
	}

	deleted, err := tr.DeleteFood(ctx, drop.ID.String()[:8])
	if err != nil {
		t.Fatalf("DeleteFood failed: %v", err)
	}
	if deleted.ID != drop.ID {
		t.Errorf("deleted %v, want %v", deleted.ID, drop.ID)
	}

	snap, _ := db.GetSnapshot(testNow)
	if got := mustFind(t, snap, models.Protein).RawIntake; got != 0 {
		t.Errorf("protein after delete = %v, want 0", got)
	}
	if got := mustFind(t, snap, models.Protein).SourceHint; got != "1 item(s)" {
		t.Errorf("source hint after delete = %q", got)
	}
}

func TestDeleteFoodNotFound(t *testing.T) {
	tr, _ := setupTracker(t)

	_, err := tr.DeleteFood(context.Background(), "ffffffff")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordMetricRaisesTargets(t *testing.T) {
	tr, _ := setupTracker(t)
	ctx := context.Background()

	before, err := tr.Recompute(ctx, testNow)
	if err != nil {
		t.Fatalf("Recompute failed: %v", err)
	}

	after, err := tr.RecordMetric(ctx, models.NewMetric(models.MetricActiveCalories, 700).WithRecordedAt(testNow))
	if err != nil {
		t.Fatalf("RecordMetric failed: %v", err)
	}
	after, err = tr.RecordMetric(ctx, models.NewMetric(models.MetricSleepHours, 5).WithRecordedAt(testNow.Add(-6*time.Hour)))
	if err != nil {
		t.Fatalf("RecordMetric failed: %v", err)
	}

	vitC0, vitC1 := mustFind(t, before, models.VitC), mustFind(t, after, models.VitC)
	if diff := vitC1.AdjustedTarget - vitC0.AdjustedTarget*1.2; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("vit C target = %v, want %v", vitC1.AdjustedTarget, vitC0.AdjustedTarget*1.2)
	}
	b12 := mustFind(t, after, models.VitB12)
	if diff := b12.AdjustedTarget - 2.4*1.2*1.15; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("B12 target = %v, want %v", b12.AdjustedTarget, 2.4*1.38)
	}
}

func TestDeleteMetricRestoresTargets(t *testing.T) {
	tr, _ := setupTracker(t)
	ctx := context.Background()

	m := models.NewMetric(models.MetricActiveCalories, 400).WithRecordedAt(testNow)
	if _, err := tr.RecordMetric(ctx, m); err != nil {
		t.Fatalf("RecordMetric failed: %v", err)
	}
	if _, err := tr.DeleteMetric(ctx, m.ID.String()); err != nil {
		t.Fatalf("DeleteMetric failed: %v", err)
	}

	snap, err := tr.Status(ctx, testNow)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if got := mustFind(t, snap, models.Iron).AdjustedTarget; got != 8 {
		t.Errorf("iron target = %v, want 8", got)
	}
}

func TestRecordMetricRejectsInvalid(t *testing.T) {
	tr, _ := setupTracker(t)

	_, err := tr.RecordMetric(context.Background(), models.NewMetric(models.MetricSleepHours, 30))
	if err == nil {
		t.Error("expected validation error for 30 hours of sleep")
	}
}

func TestStatusZeroState(t *testing.T) {
	tr, _ := setupTracker(t)

	snap, err := tr.Status(context.Background(), testNow)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if len(snap.Statuses) != models.NutrientCount {
		t.Fatalf("expected %d statuses, got %d", models.NutrientCount, len(snap.Statuses))
	}
	for _, st := range snap.Statuses {
		if st.Tier != models.TierCritical {
			t.Errorf("%s tier = %s, want critical", st.Nutrient, st.Tier)
		}
	}
}

func TestRecomputeCancelledKeepsSnapshot(t *testing.T) {
	tr, db := setupTracker(t)

	item := models.NewFoodLogItem("Beans", models.MealLunch, models.Macros{Calories: 300, Protein: 20, Carbs: 50}).WithLoggedAt(testNow)
	if _, err := tr.LogFood(context.Background(), item); err != nil {
		t.Fatalf("LogFood failed: %v", err)
	}
	if err := db.DeleteFood(item.ID.String()); err != nil {
		t.Fatalf("DeleteFood failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := tr.Recompute(ctx, testNow); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	snap, _ := db.GetSnapshot(testNow)
	if got := mustFind(t, snap, models.Protein).RawIntake; got != 20 {
		t.Errorf("stale snapshot should remain, protein = %v", got)
	}
}

func TestConcurrentLogsSameDay(t *testing.T) {
	tr, db := setupTracker(t)
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			item := models.NewFoodLogItem(fmt.Sprintf("Snack %d", i), models.MealSnack, models.Macros{Calories: 100, Protein: 7}).
				WithLoggedAt(testNow.Add(time.Duration(i) * time.Minute))
			if _, err := tr.LogFood(ctx, item); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("LogFood failed: %v", err)
	}

	// The last recompute to finish saw every committed food.
	snap, err := tr.Recompute(ctx, testNow)
	if err != nil {
		t.Fatalf("Recompute failed: %v", err)
	}
	stored, _ := db.GetSnapshot(testNow)
	if len(stored.Statuses) != models.NutrientCount {
		t.Fatalf("expected exactly %d rows, got %d", models.NutrientCount, len(stored.Statuses))
	}
	if got := mustFind(t, snap, models.Protein).RawIntake; got != 7*n {
		t.Errorf("protein = %v, want %v", got, 7*n)
	}
}

func TestNudgeFromHistory(t *testing.T) {
	tr, _ := setupTracker(t)
	ctx := context.Background()

	if n, err := tr.Nudge(ctx, testNow); err != nil || n != nil {
		t.Fatalf("expected no nudge without history, got %v, %v", n, err)
	}

	// Two days of a protein-only diet leaves carb-derived nutrients at zero.
	for _, daysAgo := range []int{0, 1} {
		at := testNow.AddDate(0, 0, -daysAgo)
		item := models.NewFoodLogItem("Egg whites", models.MealBreakfast, models.Macros{Protein: 56}).WithLoggedAt(at)
		if _, err := tr.LogFood(ctx, item); err != nil {
			t.Fatalf("LogFood failed: %v", err)
		}
	}

	n, err := tr.Nudge(ctx, testNow)
	if err != nil {
		t.Fatalf("Nudge failed: %v", err)
	}
	if n == nil {
		t.Fatal("expected a nudge")
	}
	if n.HighestRisk != models.VitA {
		t.Errorf("highest risk = %s, want vit_a (first zero nutrient)", n.HighestRisk)
	}
	if n.PredictionPercent != 0 {
		t.Errorf("prediction = %d, want 0", n.PredictionPercent)
	}
}

func TestTrends(t *testing.T) {
	tr, _ := setupTracker(t)
	ctx := context.Background()

	item := models.NewFoodLogItem("Chicken", models.MealDinner, models.Macros{Protein: 56}).WithLoggedAt(testNow.AddDate(0, 0, -2))
	if _, err := tr.LogFood(ctx, item); err != nil {
		t.Fatalf("LogFood failed: %v", err)
	}

	series, err := tr.Trends(ctx, testNow, 0)
	if err != nil {
		t.Fatalf("Trends failed: %v", err)
	}
	if len(series) != models.NutrientCount {
		t.Fatalf("expected %d series, got %d", models.NutrientCount, len(series))
	}
	protein := series[models.Protein]
	if len(protein.Points) != 7 {
		t.Fatalf("expected 7 points, got %d", len(protein.Points))
	}
	if protein.Points[4].Percent != 1 {
		t.Errorf("two days ago protein = %v, want 1", protein.Points[4].Percent)
	}
	if protein.Latest() != 0 {
		t.Errorf("today protein = %v, want 0", protein.Latest())
	}
}

func TestToday(t *testing.T) {
	tr, _ := setupTracker(t)
	if models.DateKey(tr.Today()) != "2025-07-20" {
		t.Errorf("Today() = %s", models.DateKey(tr.Today()))
	}
}
