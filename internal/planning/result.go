package planning

import (
	"time"

	"github.com/guidebot/planner-core/internal/itinerary"
)

// StopReason records why the annealing loop ended. Every reason is a
// success path; the best solution found so far is always returned.
type StopReason string

const (
	// StopMinTemperature: the cooling schedule ran to completion.
	StopMinTemperature StopReason = "min_temperature"
	// StopDeadline: the wall-clock search deadline was reached.
	StopDeadline StopReason = "deadline"
	// StopCancelled: the caller cancelled the run's context.
	StopCancelled StopReason = "cancelled"
)

// Diagnostics describes how a search run went. A deadline stop is as
// much a success as a full cooldown; diagnostics exist for reporting,
// not for distinguishing outcomes.
type Diagnostics struct {
	SeedScore        float64       `json:"seed_score"`
	SeedAttempts     int           `json:"seed_attempts"`
	Iterations       int           `json:"iterations"`
	Accepted         int           `json:"accepted"`
	CoolingSteps     int           `json:"cooling_steps"`
	FinalTemperature float64       `json:"final_temperature"`
	Elapsed          time.Duration `json:"elapsed"`
	StopReason       StopReason    `json:"stop_reason"`
	SamplesDrawn     int64         `json:"samples_drawn"`
	Restart          int           `json:"restart,omitempty"`
}

// PlanResult is the successful outcome of an optimization run: the best
// itinerary found together with its score and run diagnostics.
type PlanResult struct {
	Itinerary   *itinerary.Itinerary
	Score       float64
	Diagnostics Diagnostics
}
