// ABOUTME: CLI command listing the nutrient reference table.
// ABOUTME: Shows RDA for the configured sex, upper limits, and food sources.
package main

import (
	"fmt"

	"github.com/harperreed/nutrients/internal/models"
	"github.com/spf13/cobra"
)

var referenceCmd = &cobra.Command{
	Use:         "nutrients",
	Aliases:     []string{"ref"},
	Short:       "List tracked nutrients and their targets",
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		isMale := cfg.IsMale()
		sex := "male"
		if !isMale {
			sex = "female"
		}
		fmt.Printf("Daily targets (%s)\n\n", sex)

		for _, id := range models.AllNutrients {
			ref := id.Reference()
			ul := faint.Sprint("-")
			if ref.UpperLimit != nil {
				ul = fmt.Sprintf("%g", *ref.UpperLimit)
			}
			fmt.Printf("%s %s %8g %s  UL %s  %s\n",
				padRight(id.String(), 10),
				padRight(ref.Name, 12),
				id.RDA(isMale),
				padRight(ref.Unit, 8),
				padRight(ul, 5),
				faint.Sprint(ref.FoodSource))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(referenceCmd)
}
