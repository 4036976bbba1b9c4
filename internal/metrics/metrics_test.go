package metrics

import "testing"

func TestRegisterDefaultIsIdempotent(t *testing.T) {
	// MustRegister panics on duplicates; repeated calls must not.
	RegisterDefault()
	RegisterDefault()

	families, err := Registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) == 0 {
		t.Fatalf("expected registered collectors to gather")
	}
}

func TestCountersMove(t *testing.T) {
	RegisterDefault()

	PlansStarted.Inc()
	ActivePlans.Inc()
	ActivePlans.Dec()
	HTTPRequests.WithLabelValues("GET", "/healthz", "200").Inc()
	PlansFinished.WithLabelValues("completed").Inc()
	OptimizeDuration.Observe(1.5)

	families, err := Registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := map[string]bool{}
	for _, f := range families {
		found[f.GetName()] = true
	}
	for _, name := range []string{
		"plans_started_total",
		"plans_finished_total",
		"plans_active",
		"http_requests_total",
		"optimize_duration_seconds",
	} {
		if !found[name] {
			t.Fatalf("metric %s not gathered", name)
		}
	}
}
