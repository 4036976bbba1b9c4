package planning

import (
	"fmt"
	"time"

	"github.com/guidebot/planner-core/internal/place"
)

// PlanRequest is the immutable input of one optimization run. Pools are
// shared by reference and never mutated during the run.
type PlanRequest struct {
	Destination  string
	Days         int
	BudgetPerDay float64
	Pools        *place.Pools
}

// Validate rejects structurally invalid requests before any search or
// sampling begins.
func (r *PlanRequest) Validate() error {
	if r.Destination == "" {
		return &InvalidRequestError{Reason: "destination cannot be empty"}
	}
	if r.Days <= 0 {
		return &InvalidRequestError{Reason: fmt.Sprintf("days must be positive, got %d", r.Days)}
	}
	if r.BudgetPerDay <= 0 {
		return &InvalidRequestError{Reason: fmt.Sprintf("budget per day must be positive, got %f", r.BudgetPerDay)}
	}
	if r.Pools == nil {
		return &InvalidRequestError{Reason: "candidate pools are required"}
	}
	if err := r.Pools.Validate(); err != nil {
		return &InvalidRequestError{Reason: err.Error()}
	}
	return nil
}

// InvalidRequestError indicates a request that fails precondition
// checks (non-positive days or budget, an empty candidate pool). It is
// surfaced before the search starts.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return "invalid plan request: " + e.Reason
}

// NoFeasibleSeedError indicates the seeding phase exhausted its time
// budget without finding a single random itinerary within budget. This
// is an expected outcome for tight budgets, not an internal fault.
type NoFeasibleSeedError struct {
	SeedBudget time.Duration
	Attempts   int
}

func (e *NoFeasibleSeedError) Error() string {
	return fmt.Sprintf("no itinerary could be constructed under the given constraints (%d seeding attempts in %s)",
		e.Attempts, e.SeedBudget)
}
