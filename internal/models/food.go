// ABOUTME: FoodLogItem model, meal categories, and ingestion validation.
// ABOUTME: Items are immutable once logged for a day and deleted by id.
package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MealCategory is the meal context of a logged food.
type MealCategory string

const (
	MealBreakfast MealCategory = "breakfast"
	MealLunch     MealCategory = "lunch"
	MealDinner    MealCategory = "dinner"
	MealSnack     MealCategory = "snack"
	MealOther     MealCategory = "other"
)

// AllMealCategories returns all valid meal categories.
var AllMealCategories = []MealCategory{MealBreakfast, MealLunch, MealDinner, MealSnack, MealOther}

// IsValidMealCategory checks if a string is a valid meal category.
func IsValidMealCategory(s string) bool {
	for _, m := range AllMealCategories {
		if string(m) == s {
			return true
		}
	}
	return false
}

// ConfirmationCalories is the calorie count above which an item is flagged
// for confirmation before it is trusted.
const ConfirmationCalories = 2000

// Macros holds the macronutrient values parsed for one food.
type Macros struct {
	Calories float64 `json:"calories" yaml:"calories" validate:"gte=0,lte=5000"`
	Protein  float64 `json:"protein" yaml:"protein" validate:"gte=0,lte=1000"`
	Carbs    float64 `json:"carbs" yaml:"carbs" validate:"gte=0,lte=1000"`
	Fat      float64 `json:"fat" yaml:"fat" validate:"gte=0,lte=1000"`
}

// FoodLogItem is a single logged food entry.
type FoodLogItem struct {
	ID                uuid.UUID    `json:"id"`
	Date              time.Time    `json:"date"`
	Name              string       `json:"name" validate:"required,max=200"`
	Macros            Macros       `json:"macros"`
	Meal              MealCategory `json:"meal" validate:"required,oneof=breakfast lunch dinner snack other"`
	SourceNote        string       `json:"source_note,omitempty"`
	NeedsConfirmation bool         `json:"needs_confirmation"`
	LoggedAt          time.Time    `json:"logged_at"`
	CreatedAt         time.Time    `json:"created_at"`
}

// NewFoodLogItem creates a food entry for today. Macros are required so that
// a zero value is always the caller's choice.
func NewFoodLogItem(name string, meal MealCategory, macros Macros) *FoodLogItem {
	now := time.Now()
	return &FoodLogItem{
		ID:                uuid.New(),
		Date:              Day(now),
		Name:              strings.TrimSpace(name),
		Macros:            macros,
		Meal:              meal,
		NeedsConfirmation: macros.Calories > ConfirmationCalories,
		LoggedAt:          now,
		CreatedAt:         now,
	}
}

// WithDate assigns the item to a calendar day.
func (f *FoodLogItem) WithDate(t time.Time) *FoodLogItem {
	f.Date = Day(t)
	return f
}

// WithLoggedAt sets the time the food was eaten; the day follows it in local time.
func (f *FoodLogItem) WithLoggedAt(t time.Time) *FoodLogItem {
	f.LoggedAt = t.In(time.Local)
	f.Date = Day(f.LoggedAt)
	return f
}

// WithSourceNote records where the entry came from (manual, voice, camera, ...).
func (f *FoodLogItem) WithSourceNote(note string) *FoodLogItem {
	f.SourceNote = note
	return f
}

// ValidationError lists every field that failed ingestion checks.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Problems, "; ")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate applies the ingestion rules. The nutrient engine assumes items
// have passed this check.
func (f *FoodLogItem) Validate() error {
	var problems []string
	fields := []struct {
		name  string
		value float64
	}{
		{"calories", f.Macros.Calories},
		{"protein", f.Macros.Protein},
		{"carbs", f.Macros.Carbs},
		{"fat", f.Macros.Fat},
	}
	for _, fv := range fields {
		if math.IsNaN(fv.value) || math.IsInf(fv.value, 0) {
			problems = append(problems, fmt.Sprintf("%s is not a number", fv.name))
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return structErrors(validate.Struct(f))
}

// structErrors converts validator output into a ValidationError.
func structErrors(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			problems = append(problems, fmt.Sprintf("%s must not be blank", field))
		case "gte", "lte":
			problems = append(problems, fmt.Sprintf("%s out of range: %v", field, fe.Value()))
		case "oneof":
			problems = append(problems, fmt.Sprintf("%s must be one of %s", field, fe.Param()))
		default:
			problems = append(problems, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return &ValidationError{Problems: problems}
}

// Day truncates t to midnight of its local calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// DateKey formats t's local calendar day as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.In(time.Local).Format("2006-01-02")
}
