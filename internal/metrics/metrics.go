package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the planner daemon
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)

	// PlansStarted counts optimization runs started
	PlansStarted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "plans_started_total", Help: "Optimization runs started."},
	)

	// PlansFinished counts optimization run outcomes by status
	PlansFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "plans_finished_total", Help: "Optimization runs finished by terminal status."},
		[]string{"status"},
	)

	// ActivePlans tracks currently-running optimization runs
	ActivePlans = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "plans_active", Help: "Optimization runs currently executing."},
	)

	// OptimizeDuration records end-to-end search durations in seconds
	OptimizeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "optimize_duration_seconds",
			Help:    "End-to-end optimization duration in seconds.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 180, 300},
		},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on the planner registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(PlansStarted)
		Registry.MustRegister(PlansFinished)
		Registry.MustRegister(ActivePlans)
		Registry.MustRegister(OptimizeDuration)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
