package plannerd

import (
	"strings"
	"testing"

	"github.com/guidebot/planner-core/internal/place"
)

func testInput() *PlanInput {
	return &PlanInput{
		Destination:  "Varadero",
		Days:         2,
		BudgetPerDay: 200,
		Meals: []place.RawCandidate{
			{Name: "Casa Juana", BaseCost: 10, Rating: 6},
			{Name: "Salsa Suarez", BaseCost: 20, Rating: 8.5},
		},
		Nightlife: []place.RawCandidate{
			{Name: "Calle 62", BaseCost: 15, Rating: 5},
		},
		Lodging: []place.RawCandidate{
			{Name: "Casa Mary", BaseCost: 20, Rating: 7},
		},
		Seed: 42,
	}
}

func TestPlanStoreCreate(t *testing.T) {
	store := NewPlanStore()

	rec, err := store.Create("plan-1", testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != "plan-1" {
		t.Fatalf("expected ID plan-1, got %s", rec.ID)
	}
	if rec.Status != PlanStatusPending {
		t.Fatalf("expected pending status, got %s", rec.Status)
	}
	if rec.CreatedAtUnixMs == 0 {
		t.Fatalf("expected creation timestamp")
	}

	if _, err := store.Create("plan-1", testInput()); err == nil {
		t.Fatalf("expected error for duplicate ID")
	}
}

func TestPlanStoreCreateGeneratesID(t *testing.T) {
	store := NewPlanStore()
	rec, err := store.Create("", testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(rec.ID, "plan-") {
		t.Fatalf("expected generated ID with plan- prefix, got %s", rec.ID)
	}
}

func TestPlanStoreGet(t *testing.T) {
	store := NewPlanStore()
	store.Create("plan-1", testInput())

	rec, ok := store.Get("plan-1")
	if !ok || rec.ID != "plan-1" {
		t.Fatalf("expected to find plan-1")
	}
	if _, ok := store.Get("missing"); ok {
		t.Fatalf("expected missing plan to not be found")
	}
}

func TestPlanStoreSetStatusStampsTimes(t *testing.T) {
	store := NewPlanStore()
	store.Create("plan-1", testInput())

	rec, err := store.SetStatus("plan-1", PlanStatusRunning, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.StartedAtUnixMs == 0 {
		t.Fatalf("expected start timestamp on running")
	}
	if rec.EndedAtUnixMs != 0 {
		t.Fatalf("unexpected end timestamp on running")
	}

	rec, err = store.SetStatus("plan-1", PlanStatusFailed, "boom")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.EndedAtUnixMs == 0 {
		t.Fatalf("expected end timestamp on failure")
	}
	if rec.Error != "boom" {
		t.Fatalf("expected error message to be recorded, got %q", rec.Error)
	}

	if _, err := store.SetStatus("missing", PlanStatusRunning, ""); err == nil {
		t.Fatalf("expected error for missing plan")
	}
}

func TestPlanStoreTerminalStatusIsFinal(t *testing.T) {
	store := NewPlanStore()
	store.Create("plan-1", testInput())
	store.SetStatus("plan-1", PlanStatusRunning, "")

	if _, err := store.SetStatus("plan-1", PlanStatusCompleted, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A late stop must not flip a finished run.
	if _, err := store.SetStatus("plan-1", PlanStatusCancelled, ""); err == nil {
		t.Fatalf("expected error transitioning out of completed")
	}
	rec, _ := store.Get("plan-1")
	if rec.Status != PlanStatusCompleted {
		t.Fatalf("expected status to stay completed, got %s", rec.Status)
	}
}

func TestPlanStoreGetReturnsCopy(t *testing.T) {
	store := NewPlanStore()
	store.Create("plan-1", testInput())

	rec, _ := store.Get("plan-1")
	rec.Status = PlanStatusFailed
	rec.Error = "scribbled"

	fresh, _ := store.Get("plan-1")
	if fresh.Status != PlanStatusPending || fresh.Error != "" {
		t.Fatalf("mutating a returned record leaked into the store: %+v", fresh)
	}

	listed := store.List(50, 0, "")
	listed[0].Status = PlanStatusFailed
	fresh, _ = store.Get("plan-1")
	if fresh.Status != PlanStatusPending {
		t.Fatalf("mutating a listed record leaked into the store")
	}
}

func TestPlanStoreSetProgress(t *testing.T) {
	store := NewPlanStore()
	store.Create("plan-1", testInput())

	if err := store.SetProgress("plan-1", PlanProgress{Iterations: 10, Temperature: 50, BestScore: 1.2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec, _ := store.Get("plan-1")
	if rec.Progress == nil || rec.Progress.Iterations != 10 {
		t.Fatalf("progress not recorded: %+v", rec.Progress)
	}

	if err := store.SetProgress("missing", PlanProgress{}); err == nil {
		t.Fatalf("expected error for missing plan")
	}
}

func TestPlanStoreList(t *testing.T) {
	store := NewPlanStore()
	for _, id := range []string{"plan-a", "plan-b", "plan-c"} {
		if _, err := store.Create(id, testInput()); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	store.SetStatus("plan-b", PlanStatusRunning, "")

	all := store.List(50, 0, "")
	if len(all) != 3 {
		t.Fatalf("expected 3 plans, got %d", len(all))
	}

	running := store.List(50, 0, PlanStatusRunning)
	if len(running) != 1 || running[0].ID != "plan-b" {
		t.Fatalf("status filter failed: %+v", running)
	}

	if got := store.List(2, 0, ""); len(got) != 2 {
		t.Fatalf("limit failed, got %d", len(got))
	}
	if got := store.List(50, 2, ""); len(got) != 1 {
		t.Fatalf("offset failed, got %d", len(got))
	}
	if got := store.List(50, 10, ""); got != nil {
		t.Fatalf("expected nil past the end, got %v", got)
	}
}

func TestParsePlanStatus(t *testing.T) {
	if got := ParsePlanStatus("running"); got != PlanStatusRunning {
		t.Fatalf("expected running, got %s", got)
	}
	if got := ParsePlanStatus("bogus"); got != "" {
		t.Fatalf("expected empty status for unknown value, got %s", got)
	}
}

func TestPlanStatusTerminal(t *testing.T) {
	for _, s := range []PlanStatus{PlanStatusCompleted, PlanStatusFailed, PlanStatusCancelled} {
		if !s.Terminal() {
			t.Fatalf("expected %s to be terminal", s)
		}
	}
	for _, s := range []PlanStatus{PlanStatusPending, PlanStatusRunning} {
		if s.Terminal() {
			t.Fatalf("expected %s to not be terminal", s)
		}
	}
}
