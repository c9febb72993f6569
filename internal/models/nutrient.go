// ABOUTME: NutrientID enum and the fixed 19-row nutrient reference table.
// ABOUTME: Every id resolves to exactly one row; RDA is selected by a sex flag.
package models

import (
	"fmt"
	"strings"
)

// NutrientID identifies one of the tracked nutrients.
type NutrientID int

const (
	// Vitamins
	VitA NutrientID = iota
	VitB1
	VitB2
	VitB3
	VitB5
	VitB6
	VitB7
	VitB9
	VitB12
	VitC
	VitD
	VitE
	VitK

	// Minerals and macros
	Iron
	Calcium
	Magnesium
	Zinc
	Protein
	Collagen

	nutrientCount
)

// NutrientReference is the immutable reference row for a nutrient.
type NutrientReference struct {
	Key        string
	Name       string
	ShortName  string
	Unit       string
	RDAMale    float64
	RDAFemale  float64
	UpperLimit *float64
	FoodSource string
}

func limit(v float64) *float64 { return &v }

// nutrientTable is indexed by NutrientID. Its length is pinned to nutrientCount,
// so adding an id without a row is a compile error.
var nutrientTable = [nutrientCount]NutrientReference{
	VitA:      {"vit_a", "Vitamin A", "Vit A", "mcg RAE", 900, 700, limit(3000), "carrots or spinach"},
	VitB1:     {"vit_b1", "Thiamine", "B1", "mg", 1.2, 1.1, nil, "pork or sunflower seeds"},
	VitB2:     {"vit_b2", "Riboflavin", "B2", "mg", 1.3, 1.1, nil, "eggs or almonds"},
	VitB3:     {"vit_b3", "Niacin", "B3", "mg NE", 16, 14, limit(35), "chicken or tuna"},
	VitB5:     {"vit_b5", "Pantothenic", "B5", "mg", 5, 5, nil, "mushrooms or avocado"},
	VitB6:     {"vit_b6", "Pyridoxine", "B6", "mg", 1.3, 1.3, limit(100), "bananas or chickpeas"},
	VitB7:     {"vit_b7", "Biotin", "B7", "mcg", 30, 30, nil, "eggs or sweet potatoes"},
	VitB9:     {"vit_b9", "Folate", "B9", "mcg DFE", 400, 400, limit(1000), "lentils or leafy greens"},
	VitB12:    {"vit_b12", "Cobalamin", "B12", "mcg", 2.4, 2.4, nil, "beef or nutritional yeast"},
	VitC:      {"vit_c", "Vitamin C", "Vit C", "mg", 90, 75, limit(2000), "citrus fruits or peppers"},
	VitD:      {"vit_d", "Vitamin D", "Vit D", "mcg", 15, 15, limit(100), "fatty fish or sun exposure"},
	VitE:      {"vit_e", "Vitamin E", "Vit E", "mg AT", 15, 15, limit(1000), "almonds or sunflower oil"},
	VitK:      {"vit_k", "Vitamin K", "Vit K", "mcg", 120, 90, nil, "kale or broccoli"},
	Iron:      {"iron", "Iron", "Fe", "mg", 8, 18, limit(45), "red meat or spinach"},
	Calcium:   {"calcium", "Calcium", "Ca", "mg", 1000, 1000, limit(2500), "yogurt or sardines"},
	Magnesium: {"magnesium", "Magnesium", "Mg", "mg", 420, 320, limit(350), "pumpkin seeds or dark chocolate"},
	Zinc:      {"zinc", "Zinc", "Zn", "mg", 11, 8, limit(40), "oysters or beef"},
	Protein:   {"protein", "Protein", "Prot", "g", 56, 46, nil, "chicken or Greek yogurt"},
	Collagen:  {"collagen", "Collagen", "Coll", "mg", 2500, 2500, nil, "bone broth or chicken skin"},
}

// AllNutrients lists every nutrient in enumeration order.
var AllNutrients = func() []NutrientID {
	ids := make([]NutrientID, nutrientCount)
	for i := range ids {
		ids[i] = NutrientID(i)
	}
	return ids
}()

// NutrientCount is the number of tracked nutrients.
const NutrientCount = int(nutrientCount)

// Valid reports whether id is one of the tracked nutrients.
func (id NutrientID) Valid() bool {
	return id >= 0 && id < nutrientCount
}

// Reference returns the reference row for id. Out-of-range ids panic; they
// can only be produced by an unchecked conversion.
func (id NutrientID) Reference() NutrientReference {
	return nutrientTable[id]
}

// RDA returns the recommended daily allowance for the given sex.
func (id NutrientID) RDA(isMale bool) float64 {
	ref := nutrientTable[id]
	if isMale {
		return ref.RDAMale
	}
	return ref.RDAFemale
}

// Name returns the display name.
func (id NutrientID) Name() string { return nutrientTable[id].Name }

// Unit returns the display unit.
func (id NutrientID) Unit() string { return nutrientTable[id].Unit }

// FoodSource returns a short food suggestion rich in this nutrient.
func (id NutrientID) FoodSource() string { return nutrientTable[id].FoodSource }

// String returns the stable key used for storage and the CLI.
func (id NutrientID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("nutrient(%d)", int(id))
	}
	return nutrientTable[id].Key
}

// IsBVitamin reports whether id is one of the eight B vitamins.
func (id NutrientID) IsBVitamin() bool {
	switch id {
	case VitB1, VitB2, VitB3, VitB5, VitB6, VitB7, VitB9, VitB12:
		return true
	default:
		return false
	}
}

// ParseNutrientID resolves a storage key, display name, or short name.
func ParseNutrientID(s string) (NutrientID, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, id := range AllNutrients {
		ref := nutrientTable[id]
		if needle == ref.Key || needle == strings.ToLower(ref.Name) || needle == strings.ToLower(ref.ShortName) {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown nutrient: %s", s)
}

// MarshalText encodes the id as its storage key.
func (id NutrientID) MarshalText() ([]byte, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("invalid nutrient id %d", int(id))
	}
	return []byte(id.String()), nil
}

// UnmarshalText decodes a storage key.
func (id *NutrientID) UnmarshalText(text []byte) error {
	parsed, err := ParseNutrientID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
