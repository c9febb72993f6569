// ABOUTME: CLI commands for logging, listing, and deleting foods.
// ABOUTME: Every write goes through the tracker so the day's snapshot is recomputed.
package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/nutrients/internal/models"
	"github.com/spf13/cobra"
)

var (
	foodCalories float64
	foodProtein  float64
	foodCarbs    float64
	foodFat      float64
	foodMeal     string
	foodDate     string
	foodAt       string
	foodNote     string

	foodListDate  string
	foodListLimit int
)

var foodCmd = &cobra.Command{
	Use:     "food",
	Aliases: []string{"f"},
	Short:   "Log and manage foods",
	Long: `Log foods by their macros. Micronutrients are estimated from the macros,
so calories, protein, carbs and fat are all that is needed.

COMMANDS:

  add       Log a food (recomputes the day's status)
  list      List foods for a day, or the most recent foods
  delete    Delete a food by ID prefix`,
}

var foodAddCmd = &cobra.Command{
	Use:     "add <name>",
	Aliases: []string{"log"},
	Short:   "Log a food",
	Long: `Log a food and recompute that day's nutrient status.

Calories are limited to 5000 and each macro to 1000 g. Entries over
2000 kcal are stored but flagged for confirmation.

MEALS:

  breakfast, lunch, dinner, snack, other (default)

EXAMPLES:

  nutrients food add "Steak" --calories 600 --protein 56 --fat 30 --meal dinner
  nutrients food add "Orange juice" --calories 110 --carbs 26
  nutrients food log "Rice and beans" --calories 520 --carbs 90 --protein 18 --date 2025-07-19
  nutrients food add "Salmon" --calories 400 --protein 40 --fat 22 --at "2025-07-20 19:30"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !models.IsValidMealCategory(foodMeal) {
			return fmt.Errorf("unknown meal: %s\nValid meals: breakfast, lunch, dinner, snack, other", foodMeal)
		}

		item := models.NewFoodLogItem(args[0], models.MealCategory(foodMeal), models.Macros{
			Calories: foodCalories,
			Protein:  foodProtein,
			Carbs:    foodCarbs,
			Fat:      foodFat,
		}).WithSourceNote("cli")

		if foodDate != "" {
			day, err := parseDay(foodDate)
			if err != nil {
				return err
			}
			item.WithDate(day)
		}
		if foodAt != "" {
			at, err := parseTime(foodAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", foodAt)
			}
			item.WithLoggedAt(at)
		}
		if foodNote != "" {
			item.WithSourceNote(foodNote)
		}

		snap, err := tr.LogFood(context.Background(), item)
		if err != nil {
			return fmt.Errorf("failed to log food: %w", err)
		}

		color.Green("✓ Logged %s", item.Name)
		fmt.Printf("  %s %s %.0f kcal  P %.1f g  C %.1f g  F %.1f g\n",
			faint.Sprint(shortID(item.ID)),
			faint.Sprint(models.DateKey(item.Date)),
			item.Macros.Calories, item.Macros.Protein, item.Macros.Carbs, item.Macros.Fat)

		if item.NeedsConfirmation {
			color.Yellow("⚠ %.0f kcal is unusually high. Delete with 'nutrients food delete %s' if that was a typo.",
				item.Macros.Calories, shortID(item.ID))
		}

		flagged := 0
		for _, st := range snap.Statuses {
			if st.Tier.NeedsBadge() {
				flagged++
			}
		}
		if flagged > 0 {
			fmt.Printf("  %s\n", faint.Sprintf("%d nutrients still low today; run 'nutrients status'", flagged))
		}
		return nil
	},
}

var foodListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List logged foods",
	Long: `List logged foods.

OUTPUT FORMAT:

  Each line shows: ID  DATE TIME  MEAL  NAME  KCAL  P/C/F

  The ID is an 8-character prefix you can use with 'food delete'.

EXAMPLES:

  nutrients food list                    # Last 20 foods
  nutrients food list --date 2025-07-20  # One day
  nutrients food list -n 50              # Last 50 foods`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			foods []*models.FoodLogItem
			err   error
		)
		if foodListDate != "" {
			day, perr := parseDay(foodListDate)
			if perr != nil {
				return perr
			}
			foods, err = repo.ListFoodsByDate(day)
		} else {
			foods, err = repo.ListFoods(foodListLimit)
		}
		if err != nil {
			return fmt.Errorf("failed to list foods: %w", err)
		}

		if len(foods) == 0 {
			fmt.Println("No foods found.")
			return nil
		}

		for _, f := range foods {
			flag := ""
			if f.NeedsConfirmation {
				flag = color.YellowString(" ⚠")
			}
			fmt.Printf("%s %s %s %s %6.0f kcal  %s%s\n",
				faint.Sprint(shortID(f.ID)),
				faint.Sprint(f.LoggedAt.Format("2006-01-02 15:04")),
				padRight(string(f.Meal), 9),
				padRight(truncate(f.Name, 24), 24),
				f.Macros.Calories,
				faint.Sprintf("P %.0f C %.0f F %.0f", f.Macros.Protein, f.Macros.Carbs, f.Macros.Fat),
				flag)
		}
		return nil
	},
}

var foodDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a logged food",
	Long: `Delete a logged food by its ID or ID prefix and recompute its day.

If the prefix matches multiple foods, an error is returned.

EXAMPLES:

  nutrients food delete abc12345
  nutrients food rm abc1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := tr.DeleteFood(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to delete food: %w", err)
		}

		color.Yellow("✗ Deleted %s", item.Name)
		fmt.Printf("  %s %s %.0f kcal\n",
			faint.Sprint(shortID(item.ID)),
			faint.Sprint(models.DateKey(item.Date)),
			item.Macros.Calories)
		return nil
	},
}

func init() {
	foodAddCmd.Flags().Float64Var(&foodCalories, "calories", 0, "calories (kcal)")
	foodAddCmd.Flags().Float64Var(&foodProtein, "protein", 0, "protein (g)")
	foodAddCmd.Flags().Float64Var(&foodCarbs, "carbs", 0, "carbohydrates (g)")
	foodAddCmd.Flags().Float64Var(&foodFat, "fat", 0, "fat (g)")
	foodAddCmd.Flags().StringVarP(&foodMeal, "meal", "m", string(models.MealOther), "meal category")
	foodAddCmd.Flags().StringVar(&foodDate, "date", "", "day to log against (YYYY-MM-DD)")
	foodAddCmd.Flags().StringVar(&foodAt, "at", "", "time eaten (YYYY-MM-DD HH:MM)")
	foodAddCmd.Flags().StringVar(&foodNote, "note", "", "source note")
	_ = foodAddCmd.MarkFlagRequired("calories")

	foodListCmd.Flags().StringVar(&foodListDate, "date", "", "only this day (YYYY-MM-DD)")
	foodListCmd.Flags().IntVarP(&foodListLimit, "limit", "n", 20, "max number of results")

	foodCmd.AddCommand(foodAddCmd)
	foodCmd.AddCommand(foodListCmd)
	foodCmd.AddCommand(foodDeleteCmd)
	rootCmd.AddCommand(foodCmd)
}
