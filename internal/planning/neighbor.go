package planning

import (
	"github.com/guidebot/planner-core/internal/itinerary"
	"github.com/guidebot/planner-core/internal/place"
	"github.com/guidebot/planner-core/pkg/utils"
)

// NeighborStrategy generates a perturbed copy of a solution for the
// annealing loop to consider.
type NeighborStrategy interface {
	// Neighbor returns a new itinerary derived from base. base is never
	// mutated.
	Neighbor(base *itinerary.Itinerary, pools *place.Pools, rng *utils.RandSource) *itinerary.Itinerary
	// Name returns the name of the strategy.
	Name() string
}

// randomCandidate draws uniformly from the pool backing a slot.
func randomCandidate(slot itinerary.Slot, pools *place.Pools, rng *utils.RandSource) *place.Candidate {
	pool := pools.ForCategory(itinerary.SlotCategory(slot))
	return pool[rng.Intn(len(pool))]
}

// SingleSlotStrategy replaces one random slot of one random day with a
// uniformly-drawn candidate from the same category. This is the default
// move; drawing the incumbent candidate again is allowed and simply
// yields a no-op neighbor.
type SingleSlotStrategy struct{}

// NewSingleSlotStrategy creates the default neighbor strategy.
func NewSingleSlotStrategy() *SingleSlotStrategy {
	return &SingleSlotStrategy{}
}

func (s *SingleSlotStrategy) Name() string {
	return "single_slot"
}

func (s *SingleSlotStrategy) Neighbor(base *itinerary.Itinerary, pools *place.Pools, rng *utils.RandSource) *itinerary.Itinerary {
	next := base.Clone()
	day := rng.Intn(len(next.Days))
	slot := itinerary.Slots[rng.Intn(len(itinerary.Slots))]
	next.Days[day][slot] = randomCandidate(slot, pools, rng)
	return next
}

// DayRebuildStrategy re-randomizes every slot of one random day. A much
// larger move than SingleSlotStrategy, useful early in a search over
// big pools where single-slot steps explore too slowly.
type DayRebuildStrategy struct{}

// NewDayRebuildStrategy creates the aggressive day-level strategy.
func NewDayRebuildStrategy() *DayRebuildStrategy {
	return &DayRebuildStrategy{}
}

func (s *DayRebuildStrategy) Name() string {
	return "day_rebuild"
}

func (s *DayRebuildStrategy) Neighbor(base *itinerary.Itinerary, pools *place.Pools, rng *utils.RandSource) *itinerary.Itinerary {
	next := base.Clone()
	next.Days[rng.Intn(len(next.Days))] = randomDay(pools, rng)
	return next
}

// randomDay assigns every slot of one day uniformly from its pool.
func randomDay(pools *place.Pools, rng *utils.RandSource) itinerary.DaySchedule {
	day := make(itinerary.DaySchedule, len(itinerary.Slots))
	for _, slot := range itinerary.Slots {
		day[slot] = randomCandidate(slot, pools, rng)
	}
	return day
}

// randomItinerary builds a uniformly-random fully-assigned itinerary.
func randomItinerary(destination string, days int, pools *place.Pools, rng *utils.RandSource) *itinerary.Itinerary {
	it := &itinerary.Itinerary{
		Destination: destination,
		Days:        make([]itinerary.DaySchedule, days),
	}
	for i := range it.Days {
		it.Days[i] = randomDay(pools, rng)
	}
	return it
}
