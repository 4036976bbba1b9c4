package place

import (
	"fmt"

	"github.com/guidebot/planner-core/pkg/utils"
)

// Category classifies a venue candidate
type Category string

const (
	CategoryMeal      Category = "meal"
	CategoryNightlife Category = "nightlife"
	CategoryLodging   Category = "lodging"
)

// Categories lists all valid categories in a fixed order
var Categories = []Category{CategoryMeal, CategoryNightlife, CategoryLodging}

// Valid reports whether the category is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryMeal, CategoryNightlife, CategoryLodging:
		return true
	}
	return false
}

// ParseCategory parses a category string
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category: %s (must be meal, nightlife, or lodging)", s)
	}
	return c, nil
}

// Candidate is a venue a schedule slot can be assigned to. Immutable
// after construction except for LastSampledCost, which remembers the
// most recent draw for display purposes only; search and scoring never
// read it.
type Candidate struct {
	Name        string
	City        string
	Category    Category
	Cost        *StochasticCost
	Rating      float64 // 1-10
	Description string

	LastSampledCost float64
}

// SampleCost draws a fresh price and records it in LastSampledCost.
func (c *Candidate) SampleCost(rng *utils.RandSource) float64 {
	v := c.Cost.Sample(rng)
	c.LastSampledCost = v
	return v
}
