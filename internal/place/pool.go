package place

import (
	"context"
	"fmt"
)

// Pools holds the category-partitioned candidate collections for one
// destination. Pools are read-only once built: optimization runs share
// them by reference and never mutate them.
type Pools struct {
	Meals     []*Candidate
	Nightlife []*Candidate
	Lodging   []*Candidate
}

// ForCategory returns the pool backing a category.
func (p *Pools) ForCategory(cat Category) []*Candidate {
	switch cat {
	case CategoryMeal:
		return p.Meals
	case CategoryNightlife:
		return p.Nightlife
	case CategoryLodging:
		return p.Lodging
	}
	return nil
}

// Validate checks that every category has at least one candidate.
// Seeding draws uniformly from each pool, so an empty pool must be
// rejected before any sampling happens.
func (p *Pools) Validate() error {
	if len(p.Meals) == 0 {
		return fmt.Errorf("meal candidate pool is empty")
	}
	if len(p.Nightlife) == 0 {
		return fmt.Errorf("nightlife candidate pool is empty")
	}
	if len(p.Lodging) == 0 {
		return fmt.Errorf("lodging candidate pool is empty")
	}
	return nil
}

// RawCandidate is the record shape external recommenders deliver:
// a venue name with a point price estimate, a quality rating, and a
// short description.
type RawCandidate struct {
	Name        string  `json:"name" yaml:"name"`
	BaseCost    float64 `json:"base_cost" yaml:"base_cost"`
	Rating      float64 `json:"rating" yaml:"rating"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// Recommender supplies raw candidates for a destination and category.
// It is an external collaborator; implementations live outside this
// module.
type Recommender interface {
	GetCandidates(ctx context.Context, destination string, cat Category) ([]RawCandidate, error)
}

// BuildPool converts raw recommender records into candidates, wrapping
// each point price estimate in a stochastic cost model. Malformed
// records fail the whole pool: defaulting bad input is the
// recommender's policy, not ours.
func BuildPool(city string, cat Category, raw []RawCandidate) ([]*Candidate, error) {
	if !cat.Valid() {
		return nil, fmt.Errorf("unknown category: %s", cat)
	}
	out := make([]*Candidate, 0, len(raw))
	for i, r := range raw {
		if r.Name == "" {
			return nil, fmt.Errorf("%s candidate %d: name cannot be empty", cat, i)
		}
		if r.Rating < 1 || r.Rating > 10 {
			return nil, fmt.Errorf("%s candidate %q: rating must be in [1, 10], got %f", cat, r.Name, r.Rating)
		}
		cost, err := NewStochasticCost(r.BaseCost)
		if err != nil {
			return nil, fmt.Errorf("%s candidate %q: %w", cat, r.Name, err)
		}
		out = append(out, &Candidate{
			Name:        r.Name,
			City:        city,
			Category:    cat,
			Cost:        cost,
			Rating:      r.Rating,
			Description: r.Description,
		})
	}
	return out, nil
}

// BuildPools builds all three category pools from raw records.
func BuildPools(city string, meals, nightlife, lodging []RawCandidate) (*Pools, error) {
	mealPool, err := BuildPool(city, CategoryMeal, meals)
	if err != nil {
		return nil, err
	}
	nightPool, err := BuildPool(city, CategoryNightlife, nightlife)
	if err != nil {
		return nil, err
	}
	lodgingPool, err := BuildPool(city, CategoryLodging, lodging)
	if err != nil {
		return nil, err
	}
	return &Pools{Meals: mealPool, Nightlife: nightPool, Lodging: lodgingPool}, nil
}

// FetchPools pulls raw candidates from a recommender for every category
// and builds the pools.
func FetchPools(ctx context.Context, rec Recommender, destination string) (*Pools, error) {
	byCat := make(map[Category][]RawCandidate, len(Categories))
	for _, cat := range Categories {
		raw, err := rec.GetCandidates(ctx, destination, cat)
		if err != nil {
			return nil, fmt.Errorf("fetching %s candidates for %s: %w", cat, destination, err)
		}
		byCat[cat] = raw
	}
	return BuildPools(destination, byCat[CategoryMeal], byCat[CategoryNightlife], byCat[CategoryLodging])
}
