package itinerary

import (
	"github.com/guidebot/planner-core/pkg/utils"
)

// SlotView is the serializable representation of one slot assignment,
// shaped for a downstream narrative formatter.
type SlotView struct {
	Slot        string  `json:"slot" yaml:"slot"`
	Name        string  `json:"name" yaml:"name"`
	Category    string  `json:"category" yaml:"category"`
	SampledCost float64 `json:"sampled_cost" yaml:"sampled_cost"`
	Rating      float64 `json:"rating" yaml:"rating"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// DayView is the serializable representation of one day.
type DayView struct {
	Day       int        `json:"day" yaml:"day"`
	Slots     []SlotView `json:"slots" yaml:"slots"`
	TotalCost float64    `json:"total_cost" yaml:"total_cost"`
}

// Snapshot is the pure, serializable representation of an itinerary.
type Snapshot struct {
	Destination string    `json:"destination" yaml:"destination"`
	Days        []DayView `json:"days" yaml:"days"`
}

// Snapshot renders the itinerary with display prices resampled once.
// Display sampling is separate from the sampling the search does for
// feasibility and scoring; it exists so a formatter can show concrete
// prices without re-running the optimizer.
func (it *Itinerary) Snapshot(rng *utils.RandSource) *Snapshot {
	snap := &Snapshot{
		Destination: it.Destination,
		Days:        make([]DayView, 0, len(it.Days)),
	}
	for i, day := range it.Days {
		view := DayView{Day: i + 1, Slots: make([]SlotView, 0, len(Slots))}
		for _, slot := range Slots {
			cand := day[slot]
			cost := cand.SampleCost(rng)
			view.Slots = append(view.Slots, SlotView{
				Slot:        string(slot),
				Name:        cand.Name,
				Category:    string(cand.Category),
				SampledCost: utils.Round2(cost),
				Rating:      cand.Rating,
				Description: cand.Description,
			})
			view.TotalCost += cost
		}
		view.TotalCost = utils.Round2(view.TotalCost)
		snap.Days = append(snap.Days, view)
	}
	return snap
}
