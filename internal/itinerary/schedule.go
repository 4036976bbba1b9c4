package itinerary

import (
	"fmt"

	"github.com/guidebot/planner-core/internal/place"
)

// Slot names one assignment position within a day.
type Slot string

const (
	SlotBreakfast     Slot = "breakfast"
	SlotLunch         Slot = "lunch"
	SlotDinner        Slot = "dinner"
	SlotNightActivity Slot = "night_activity"
	SlotLodging       Slot = "lodging"
)

// Slots is the fixed slot order of a day.
var Slots = []Slot{SlotBreakfast, SlotLunch, SlotDinner, SlotNightActivity, SlotLodging}

// slotCategories maps each slot to the candidate category it draws from.
var slotCategories = map[Slot]place.Category{
	SlotBreakfast:     place.CategoryMeal,
	SlotLunch:         place.CategoryMeal,
	SlotDinner:        place.CategoryMeal,
	SlotNightActivity: place.CategoryNightlife,
	SlotLodging:       place.CategoryLodging,
}

// SlotCategory returns the candidate category a slot draws from.
func SlotCategory(s Slot) place.Category {
	return slotCategories[s]
}

// DaySchedule assigns one candidate to every slot of a day. Candidates
// are shared by reference with the read-only pools; a schedule owns
// only the assignment, never the venues.
type DaySchedule map[Slot]*place.Candidate

// Clone returns a copy of the day's assignment. Candidate pointers are
// shared; only the mapping is copied.
func (d DaySchedule) Clone() DaySchedule {
	out := make(DaySchedule, len(d))
	for slot, cand := range d {
		out[slot] = cand
	}
	return out
}

// RatingSum returns the sum of the day's slot ratings. Summation
// follows the fixed slot order so the float result is reproducible.
func (d DaySchedule) RatingSum() float64 {
	sum := 0.0
	for _, slot := range Slots {
		sum += d[slot].Rating
	}
	return sum
}

// Validate checks that the day is fully assigned with candidates of the
// right categories. Partially filled days are never valid.
func (d DaySchedule) Validate() error {
	for _, slot := range Slots {
		cand, ok := d[slot]
		if !ok || cand == nil {
			return fmt.Errorf("slot %s is unassigned", slot)
		}
		if want := slotCategories[slot]; cand.Category != want {
			return fmt.Errorf("slot %s holds a %s candidate, want %s", slot, cand.Category, want)
		}
	}
	if len(d) != len(Slots) {
		return fmt.Errorf("day has %d assignments, want %d", len(d), len(Slots))
	}
	return nil
}

// Itinerary is an ordered sequence of fully-assigned days.
type Itinerary struct {
	Destination string
	Days        []DaySchedule
}

// Clone deep-copies the itinerary's assignments.
func (it *Itinerary) Clone() *Itinerary {
	if it == nil {
		return nil
	}
	days := make([]DaySchedule, len(it.Days))
	for i, d := range it.Days {
		days[i] = d.Clone()
	}
	return &Itinerary{Destination: it.Destination, Days: days}
}

// Validate checks that every day is fully and consistently assigned.
func (it *Itinerary) Validate() error {
	if len(it.Days) == 0 {
		return fmt.Errorf("itinerary has no days")
	}
	for i, d := range it.Days {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("day %d: %w", i+1, err)
		}
	}
	return nil
}
