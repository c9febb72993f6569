// ABOUTME: Macro-proxy estimator mapping one food's macros to nutrient amounts.
// ABOUTME: Rules are fixed heuristics applied independently and additively.
package nutrition

import "github.com/harperreed/nutrients/internal/models"

// Contributions maps a nutrient to the amount one food (or a day) supplies,
// in the nutrient's reference unit. Missing keys mean zero.
type Contributions map[models.NutrientID]float64

// Reference denominators for the proxy rules.
const (
	proteinBasis = 56.0   // g protein per day
	calorieBasis = 2000.0 // kcal per day
	fatBasis     = 80.0   // g fat per day
	carbBasis    = 300.0  // g carbs per day

	fatSolubleMinFat = 20.0 // g fat before fat-soluble vitamins register
)

// Estimate returns the nutrient contributions of a single food item.
func Estimate(item *models.FoodLogItem) Contributions {
	out := make(Contributions)
	m := item.Macros

	if m.Protein > 0 {
		out[models.VitB12] += m.Protein / proteinBasis * 2.4
		out[models.Iron] += m.Protein / proteinBasis * 8
		out[models.Protein] += m.Protein
	}

	if m.Calories > 0 {
		out[models.VitC] += m.Calories / calorieBasis * 90
		out[models.VitB1] += m.Calories / calorieBasis * 1.2
		out[models.VitB3] += m.Calories / calorieBasis * 16
	}

	if m.Fat > fatSolubleMinFat {
		out[models.VitA] += m.Fat / fatBasis * 900
		out[models.VitD] += m.Fat / fatBasis * 15
		out[models.VitE] += m.Fat / fatBasis * 15
		out[models.VitK] += m.Fat / fatBasis * 120
	}

	if m.Carbs > 0 {
		out[models.Magnesium] += m.Carbs / carbBasis * 420
		out[models.VitB9] += m.Carbs / carbBasis * 400
	}

	return out
}

// Has reports whether c carries a positive amount of id.
func (c Contributions) Has(id models.NutrientID) bool {
	return c[id] > 0
}
