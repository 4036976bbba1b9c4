package planning

import (
	"context"
	"math"
	"time"

	"github.com/guidebot/planner-core/internal/itinerary"
	"github.com/guidebot/planner-core/pkg/config"
	"github.com/guidebot/planner-core/pkg/logger"
	"github.com/guidebot/planner-core/pkg/utils"
)

// Params are the resolved annealing search parameters.
type Params struct {
	InitialTemperature       float64
	CoolingRate              float64
	MinTemperature           float64
	IterationsPerTemperature int
	Deadline                 time.Duration
	SeedBudget               time.Duration
	MonteCarloSamples        int
}

// DefaultParams returns the standard search parameters.
func DefaultParams() Params {
	return Params{
		InitialTemperature:       config.DefaultInitialTemperature,
		CoolingRate:              config.DefaultCoolingRate,
		MinTemperature:           config.DefaultMinTemperature,
		IterationsPerTemperature: config.DefaultIterationsPerTemperature,
		Deadline:                 config.DefaultDeadline,
		SeedBudget:               config.DefaultSeedBudget,
		MonteCarloSamples:        config.DefaultMonteCarloSamples,
	}
}

// ParamsFromConfig resolves an OptimizerConfig into Params.
func ParamsFromConfig(c *config.OptimizerConfig) (Params, error) {
	deadline, err := c.GetDeadline()
	if err != nil {
		return Params{}, err
	}
	seedBudget, err := c.GetSeedBudget()
	if err != nil {
		return Params{}, err
	}
	return Params{
		InitialTemperature:       c.InitialTemperature,
		CoolingRate:              c.CoolingRate,
		MinTemperature:           c.MinTemperature,
		IterationsPerTemperature: c.IterationsPerTemperature,
		Deadline:                 deadline,
		SeedBudget:               seedBudget,
		MonteCarloSamples:        c.MonteCarloSamples,
	}, nil
}

// ProgressFunc receives search progress after every cooling step.
type ProgressFunc func(iterations int, temperature, bestScore float64)

// Annealer runs a simulated-annealing search over slot assignments.
//
// The run moves through three phases: seeding (uniformly-random
// itineraries until one fits the budget), annealing (single-slot
// perturbations under a geometric cooling schedule with Metropolis
// acceptance), and done. Seeding that exhausts its own time budget
// fails the run; once a seed exists the run always succeeds, returning
// the best solution seen even when the wall-clock deadline cuts the
// search short.
//
// An Annealer is single-use per Optimize call but holds no state
// between calls; it owns its RandSource, so concurrent runs must each
// build their own Annealer.
type Annealer struct {
	params   Params
	strategy NeighborStrategy
	rng      *utils.RandSource
	progress ProgressFunc
}

// NewAnnealer creates an annealer with the given parameters and random
// source. The random source is required: the search is reproducible
// only because all randomness flows through it.
func NewAnnealer(params Params, rng *utils.RandSource) *Annealer {
	if rng == nil {
		rng = utils.NewRandSource(0)
	}
	return &Annealer{
		params:   params,
		strategy: NewSingleSlotStrategy(),
		rng:      rng,
	}
}

// WithNeighborStrategy sets a custom neighbor generation strategy.
func (a *Annealer) WithNeighborStrategy(s NeighborStrategy) *Annealer {
	a.strategy = s
	return a
}

// WithProgressReporter sets a callback invoked after every cooling step.
func (a *Annealer) WithProgressReporter(fn ProgressFunc) *Annealer {
	a.progress = fn
	return a
}

// Optimize runs the full search for one request. It validates the
// request, seeds, anneals, and returns the best itinerary found with
// its score. Typed failures: *InvalidRequestError before any sampling,
// *NoFeasibleSeedError when seeding times out. Deadline or context
// expiry during annealing is not a failure; the best-so-far is
// returned.
func (a *Annealer) Optimize(ctx context.Context, req *PlanRequest) (*PlanResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	eval := NewEvaluator(req.BudgetPerDay, a.params.MonteCarloSamples, a.rng)
	started := time.Now()

	seed, attempts, err := a.findSeed(ctx, req, eval)
	if err != nil {
		return nil, err
	}
	seedScore := eval.Score(seed)
	logger.Debug("feasible seed found",
		"destination", req.Destination,
		"attempts", attempts,
		"seed_score", seedScore)

	result := a.anneal(ctx, req, eval, seed, seedScore)
	result.Diagnostics.SeedScore = seedScore
	result.Diagnostics.SeedAttempts = attempts
	result.Diagnostics.Elapsed = time.Since(started)
	result.Diagnostics.SamplesDrawn = eval.SamplesDrawn()

	logger.Debug("annealing finished",
		"destination", req.Destination,
		"score", result.Score,
		"iterations", result.Diagnostics.Iterations,
		"stop_reason", result.Diagnostics.StopReason)
	return result, nil
}

// findSeed builds a feasible starting itinerary within the seeding
// budget. Feasibility factorizes per day: every day is checked against
// the budget on its own samples, independent of the other days. Days
// are therefore seeded one at a time, drawing uniformly-random days
// and keeping the first whose single-sample total fits. The resulting
// seed has the same distribution as rejection-sampling whole
// itineraries, but the rejection cost stays linear in days instead of
// exponential, which matters for tight budgets.
func (a *Annealer) findSeed(ctx context.Context, req *PlanRequest, eval *Evaluator) (*itinerary.Itinerary, int, error) {
	deadline := time.Now().Add(a.params.SeedBudget)
	it := &itinerary.Itinerary{
		Destination: req.Destination,
		Days:        make([]itinerary.DaySchedule, req.Days),
	}
	attempts := 0
	for i := range it.Days {
		for {
			if ctx.Err() != nil || time.Now().After(deadline) {
				return nil, attempts, &NoFeasibleSeedError{SeedBudget: a.params.SeedBudget, Attempts: attempts}
			}
			attempts++
			day := randomDay(req.Pools, a.rng)
			if ok, _ := eval.DayFeasible(day); ok {
				it.Days[i] = day
				break
			}
		}
	}
	return it, attempts, nil
}

// anneal runs the cooling loop from a feasible seed and returns the
// best solution seen.
func (a *Annealer) anneal(ctx context.Context, req *PlanRequest, eval *Evaluator, seed *itinerary.Itinerary, seedScore float64) *PlanResult {
	current := seed
	best := seed.Clone()
	bestScore := seedScore

	deadline := time.Now().Add(a.params.Deadline)
	temperature := a.params.InitialTemperature
	iterations := 0
	accepted := 0
	coolingSteps := 0
	reason := StopMinTemperature

cooling:
	for temperature > a.params.MinTemperature {
		for i := 0; i < a.params.IterationsPerTemperature; i++ {
			if ctx.Err() != nil {
				reason = StopCancelled
				break cooling
			}
			if time.Now().After(deadline) {
				reason = StopDeadline
				break cooling
			}
			iterations++

			neighbor := a.strategy.Neighbor(current, req.Pools, a.rng)
			if !eval.Feasible(neighbor) {
				// Infeasible moves are discarded but still count
				// toward this temperature's iteration bound.
				continue
			}

			// Both solutions are rescored with fresh samples each
			// iteration. Scores are noisy across calls; the
			// Monte-Carlo mean keeps the ranking stable enough.
			currentScore := eval.Score(current)
			neighborScore := eval.Score(neighbor)
			delta := neighborScore - currentScore

			// Best tracks any strictly better evaluation, accepted
			// or not, so it never decreases.
			if currentScore > bestScore {
				bestScore = currentScore
				best = current.Clone()
			}
			if neighborScore > bestScore {
				bestScore = neighborScore
				best = neighbor.Clone()
			}

			if delta > 0 || a.rng.Float64() < math.Exp(delta/temperature) {
				current = neighbor
				accepted++
			}
		}

		temperature *= a.params.CoolingRate
		coolingSteps++
		if a.progress != nil {
			a.progress(iterations, temperature, bestScore)
		}
	}

	return &PlanResult{
		Itinerary: best,
		Score:     bestScore,
		Diagnostics: Diagnostics{
			Iterations:       iterations,
			Accepted:         accepted,
			CoolingSteps:     coolingSteps,
			FinalTemperature: temperature,
			StopReason:       reason,
		},
	}
}
