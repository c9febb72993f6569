// ABOUTME: Unit tests for Charm-based food storage helpers.
// ABOUTME: Covers key format and day filtering of decoded foods.
package charm

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/harperreed/nutrients/internal/models"
)

func TestFoodsOnDay(t *testing.T) {
	day := time.Date(2025, 2, 3, 0, 0, 0, 0, time.Local)
	dinner := models.NewFoodLogItem("Pasta", models.MealDinner, models.Macros{Calories: 600}).WithLoggedAt(day.Add(19 * time.Hour))
	lunch := models.NewFoodLogItem("Salad", models.MealLunch, models.Macros{Calories: 250}).WithLoggedAt(day.Add(12 * time.Hour))
	next := models.NewFoodLogItem("Toast", models.MealBreakfast, models.Macros{Calories: 200}).WithLoggedAt(day.AddDate(0, 0, 1))

	got := foodsOnDay([]*models.FoodLogItem{dinner, next, lunch}, day.Add(8*time.Hour))
	if len(got) != 2 {
		t.Fatalf("expected 2 foods, got %d", len(got))
	}
	if got[0].Name != "Salad" || got[1].Name != "Pasta" {
		t.Errorf("expected eaten order, got %s, %s", got[0].Name, got[1].Name)
	}
}

func TestDecodeAllSkipsInvalid(t *testing.T) {
	good, err := json.Marshal(models.NewFoodLogItem("Egg", models.MealBreakfast, models.Macros{Protein: 6}))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	foods := decodeAll[models.FoodLogItem]([][]byte{good, []byte("{broken")})
	if len(foods) != 1 || foods[0].Name != "Egg" {
		t.Errorf("expected only the valid food, got %d", len(foods))
	}
}
