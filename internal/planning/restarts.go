package planning

import (
	"context"
	"errors"
	"sync"

	"github.com/guidebot/planner-core/pkg/logger"
	"github.com/guidebot/planner-core/pkg/utils"
)

// Search runs `restarts` independent annealing runs and returns the
// best result. Each restart owns its own Annealer and RandSource with a
// seed derived from rng, so runs share nothing mutable beyond the
// read-only pools and remain reproducible for a fixed root seed.
//
// A single restart degenerates to one Annealer.Optimize call. With
// several restarts the search succeeds if any restart does; only when
// every restart fails to seed is NoFeasibleSeedError returned.
func Search(ctx context.Context, req *PlanRequest, params Params, restarts int, rng *utils.RandSource) (*PlanResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if restarts <= 1 {
		return NewAnnealer(params, rng).Optimize(ctx, req)
	}

	results := make([]*PlanResult, restarts)
	errs := make([]error, restarts)
	seeds := make([]int64, restarts)
	for i := range seeds {
		seeds[i] = rng.DeriveSeed()
	}

	var wg sync.WaitGroup
	for i := 0; i < restarts; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			annealer := NewAnnealer(params, utils.NewRandSource(seeds[idx]))
			res, err := annealer.Optimize(ctx, req)
			if err != nil {
				errs[idx] = err
				return
			}
			res.Diagnostics.Restart = idx + 1
			results[idx] = res
		}(i)
	}
	wg.Wait()

	var best *PlanResult
	for _, res := range results {
		if res == nil {
			continue
		}
		if best == nil || res.Score > best.Score {
			best = res
		}
	}
	if best != nil {
		logger.Debug("restart search finished",
			"destination", req.Destination,
			"restarts", restarts,
			"best_restart", best.Diagnostics.Restart,
			"best_score", best.Score)
		return best, nil
	}

	// All restarts failed. Invalid requests are caught above, so the
	// only reachable failure here is seed exhaustion.
	for _, err := range errs {
		var seedErr *NoFeasibleSeedError
		if errors.As(err, &seedErr) {
			return nil, seedErr
		}
	}
	return nil, errs[0]
}
