package place

import (
	"fmt"

	"github.com/guidebot/planner-core/pkg/utils"
)

// CostFloor is the smallest value a cost sample may take. Venue prices
// are never zero or negative regardless of how wide the distribution is.
const CostFloor = 0.01

// Default spread for a cost model built from a bare base price: the
// standard deviation is 20% of the base price and samples are truncated
// to [50%, 200%] of it.
const (
	defaultStdDevRatio = 0.20
	defaultLowerRatio  = 0.50
	defaultUpperRatio  = 2.00
)

// StochasticCost models a venue's per-visit price as a truncated normal
// random variable. Truncation bounds are stored as standard-normal
// z-bounds around the base price.
type StochasticCost struct {
	BasePrice float64
	StdDev    float64
	ZLower    float64
	ZUpper    float64
}

// NewStochasticCost builds a cost model from a bare base price, deriving
// the default spread and truncation bounds from it.
func NewStochasticCost(basePrice float64) (*StochasticCost, error) {
	return NewStochasticCostWithSpread(basePrice,
		basePrice*defaultStdDevRatio,
		basePrice*defaultLowerRatio,
		basePrice*defaultUpperRatio)
}

// NewStochasticCostWithSpread builds a cost model with an explicit
// standard deviation and absolute truncation bounds.
func NewStochasticCostWithSpread(basePrice, stdDev, lowerBound, upperBound float64) (*StochasticCost, error) {
	if basePrice <= 0 {
		return nil, fmt.Errorf("base price must be positive, got %f", basePrice)
	}
	if stdDev <= 0 {
		return nil, fmt.Errorf("std dev must be positive, got %f", stdDev)
	}
	if lowerBound >= upperBound {
		return nil, fmt.Errorf("lower bound %f must be below upper bound %f", lowerBound, upperBound)
	}
	return &StochasticCost{
		BasePrice: basePrice,
		StdDev:    stdDev,
		ZLower:    (lowerBound - basePrice) / stdDev,
		ZUpper:    (upperBound - basePrice) / stdDev,
	}, nil
}

// Sample draws one price from the truncated distribution. Every call
// draws fresh; nothing is memoized. The result is always within the
// truncation bounds and at least CostFloor.
func (c *StochasticCost) Sample(rng *utils.RandSource) float64 {
	v := rng.TruncNormFloat64(c.BasePrice, c.StdDev, c.ZLower, c.ZUpper)
	if v < CostFloor {
		v = CostFloor
	}
	return v
}

// LowerBound returns the absolute lower truncation bound.
func (c *StochasticCost) LowerBound() float64 {
	return c.BasePrice + c.ZLower*c.StdDev
}

// UpperBound returns the absolute upper truncation bound.
func (c *StochasticCost) UpperBound() float64 {
	return c.BasePrice + c.ZUpper*c.StdDev
}
