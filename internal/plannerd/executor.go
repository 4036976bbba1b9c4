package plannerd

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/guidebot/planner-core/internal/metrics"
	"github.com/guidebot/planner-core/internal/place"
	"github.com/guidebot/planner-core/internal/planning"
	"github.com/guidebot/planner-core/pkg/config"
	"github.com/guidebot/planner-core/pkg/logger"
	"github.com/guidebot/planner-core/pkg/utils"
)

var (
	ErrPlanNotFound  = errors.New("plan not found")
	ErrPlanTerminal  = errors.New("plan is terminal")
	ErrPlanIDMissing = errors.New("plan_id is required")
)

// PlanExecutor runs plan optimizations asynchronously with per-run
// cancellation. Each run gets its own random source and annealer;
// nothing is shared between concurrent runs except the store.
type PlanExecutor struct {
	store *PlanStore
	cfg   *config.OptimizerConfig

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

// NewPlanExecutor creates an executor using the given optimizer
// configuration for every run. A nil config falls back to defaults.
func NewPlanExecutor(store *PlanStore, cfg *config.OptimizerConfig) *PlanExecutor {
	if cfg == nil {
		cfg = config.DefaultOptimizerConfig()
	}
	return &PlanExecutor{
		store:   store,
		cfg:     cfg,
		cancels: make(map[string]context.CancelFunc),
	}
}

// Start begins executing a plan run asynchronously.
// Returns the updated record (running) or an error.
func (e *PlanExecutor) Start(planID string) (*PlanRecord, error) {
	if planID == "" {
		return nil, ErrPlanIDMissing
	}

	rec, ok := e.store.Get(planID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, planID)
	}

	if rec.Status == PlanStatusRunning {
		return rec, nil
	}
	if rec.Status.Terminal() {
		return nil, fmt.Errorf("%w: %s", ErrPlanTerminal, planID)
	}

	updated, err := e.store.SetStatus(planID, PlanStatusRunning, "")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.mu.Lock()
	if old, exists := e.cancels[planID]; exists {
		old()
	}
	e.cancels[planID] = cancel
	e.mu.Unlock()

	go e.runPlan(ctx, planID)
	return updated, nil
}

// Stop requests cancellation for a running plan and marks it cancelled.
// The best solution found before cancellation stays available on the
// record.
func (e *PlanExecutor) Stop(planID string) (*PlanRecord, error) {
	if planID == "" {
		return nil, ErrPlanIDMissing
	}

	rec, ok := e.store.Get(planID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, planID)
	}
	if rec.Status.Terminal() {
		return nil, fmt.Errorf("%w: %s", ErrPlanTerminal, planID)
	}

	e.mu.Lock()
	cancel, found := e.cancels[planID]
	e.mu.Unlock()

	if found {
		cancel()
	}

	updated, err := e.store.SetStatus(planID, PlanStatusCancelled, "")
	if err != nil {
		// The run reached a terminal state between the check and the
		// transition; that state wins.
		return nil, fmt.Errorf("%w: %s", ErrPlanTerminal, planID)
	}
	return updated, nil
}

func (e *PlanExecutor) cleanup(planID string) {
	e.mu.Lock()
	if cancel, ok := e.cancels[planID]; ok {
		cancel()
		delete(e.cancels, planID)
	}
	e.mu.Unlock()
}

func (e *PlanExecutor) runPlan(ctx context.Context, planID string) {
	defer e.cleanup(planID)

	rec, ok := e.store.Get(planID)
	if !ok {
		logger.Error("plan not found", "plan_id", planID)
		return
	}
	input := rec.Input

	pools, err := place.BuildPools(input.Destination, input.Meals, input.Nightlife, input.Lodging)
	if err != nil {
		e.fail(planID, fmt.Sprintf("invalid candidates: %v", err))
		return
	}

	req := &planning.PlanRequest{
		Destination:  input.Destination,
		Days:         input.Days,
		BudgetPerDay: input.BudgetPerDay,
		Pools:        pools,
	}

	params, err := planning.ParamsFromConfig(e.cfg)
	if err != nil {
		e.fail(planID, fmt.Sprintf("invalid optimizer config: %v", err))
		return
	}

	seed := input.Seed
	if seed == 0 {
		seed = e.cfg.Seed
	}
	rng := utils.NewRandSource(seed)

	metrics.PlansStarted.Inc()
	metrics.ActivePlans.Inc()
	defer metrics.ActivePlans.Dec()
	started := time.Now()

	log := logger.WithPlan(planID)
	log.Info("optimization started",
		"destination", input.Destination, "days", input.Days,
		"budget_per_day", input.BudgetPerDay)

	var result *planning.PlanResult
	if e.cfg.Restarts > 1 {
		result, err = planning.Search(ctx, req, params, e.cfg.Restarts, rng)
	} else {
		annealer := planning.NewAnnealer(params, rng).
			WithProgressReporter(func(iterations int, temperature, bestScore float64) {
				if setErr := e.store.SetProgress(planID, PlanProgress{
					Iterations:  iterations,
					Temperature: temperature,
					BestScore:   bestScore,
				}); setErr != nil {
					logger.Warn("failed to record progress", "plan_id", planID, "error", setErr)
				}
			})
		result, err = annealer.Optimize(ctx, req)
	}
	metrics.OptimizeDuration.Observe(time.Since(started).Seconds())

	if err != nil {
		e.fail(planID, err.Error())
		return
	}

	// One display-time resample, separate from the search sampling.
	snapshot := result.Itinerary.Snapshot(rng)
	if err := e.store.SetResult(planID, result, snapshot); err != nil {
		log.Error("failed to store result", "error", err)
	}

	// A cancelled run keeps its best-so-far result but stays cancelled.
	rec, ok = e.store.Get(planID)
	if ok && rec.Status == PlanStatusRunning {
		if _, err := e.store.SetStatus(planID, PlanStatusCompleted, ""); err != nil {
			log.Error("failed to set completed status", "error", err)
			return
		}
		metrics.PlansFinished.WithLabelValues(string(PlanStatusCompleted)).Inc()
		log.Info("optimization completed",
			"score", result.Score,
			"iterations", result.Diagnostics.Iterations,
			"stop_reason", result.Diagnostics.StopReason)
	} else {
		metrics.PlansFinished.WithLabelValues(string(PlanStatusCancelled)).Inc()
		log.Info("optimization cancelled, best-so-far kept", "score", result.Score)
	}
}

func (e *PlanExecutor) fail(planID, msg string) {
	logger.Error("optimization failed", "plan_id", planID, "error", msg)
	if _, err := e.store.SetStatus(planID, PlanStatusFailed, msg); err != nil {
		// A concurrent Stop may have already cancelled the run; the
		// earlier terminal state stands.
		logger.Warn("failed status not recorded", "plan_id", planID, "error", err)
		return
	}
	metrics.PlansFinished.WithLabelValues(string(PlanStatusFailed)).Inc()
}
