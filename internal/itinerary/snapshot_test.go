package itinerary

import (
	"testing"

	"github.com/guidebot/planner-core/pkg/utils"
)

func TestSnapshot(t *testing.T) {
	it := &Itinerary{
		Destination: "Havana",
		Days:        []DaySchedule{testDay(t), testDay(t)},
	}

	snap := it.Snapshot(utils.NewRandSource(42))
	if snap.Destination != "Havana" {
		t.Fatalf("expected destination Havana, got %s", snap.Destination)
	}
	if len(snap.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(snap.Days))
	}

	for _, day := range snap.Days {
		if len(day.Slots) != len(Slots) {
			t.Fatalf("day %d: expected %d slots, got %d", day.Day, len(Slots), len(day.Slots))
		}
		// Slots come out in the fixed day order.
		for i, view := range day.Slots {
			if view.Slot != string(Slots[i]) {
				t.Fatalf("day %d slot %d: expected %s, got %s", day.Day, i, Slots[i], view.Slot)
			}
			if view.SampledCost <= 0 {
				t.Fatalf("day %d slot %s: non-positive sampled cost %f", day.Day, view.Slot, view.SampledCost)
			}
		}
		if day.TotalCost <= 0 {
			t.Fatalf("day %d: non-positive total cost %f", day.Day, day.TotalCost)
		}
	}
	if snap.Days[0].Day != 1 || snap.Days[1].Day != 2 {
		t.Fatalf("days are not numbered from 1: %+v", snap.Days)
	}
}

func TestSnapshotRecordsLastSampledCost(t *testing.T) {
	it := &Itinerary{Destination: "Havana", Days: []DaySchedule{testDay(t)}}

	it.Snapshot(utils.NewRandSource(7))
	for slot, cand := range it.Days[0] {
		if cand.LastSampledCost <= 0 {
			t.Fatalf("slot %s: last sampled cost not recorded", slot)
		}
	}
}
