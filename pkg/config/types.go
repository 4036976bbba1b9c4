package config

import "time"

// Config represents the planner daemon configuration
type Config struct {
	LogLevel  string           `yaml:"log_level"`
	LogFormat string           `yaml:"log_format,omitempty"` // json or text
	HTTPAddr  string           `yaml:"http_addr,omitempty"`
	Optimizer *OptimizerConfig `yaml:"optimizer,omitempty"`
}

// OptimizerConfig holds the annealing search parameters. Zero values
// are replaced with defaults by ApplyDefaults.
type OptimizerConfig struct {
	InitialTemperature       float64 `yaml:"initial_temperature"`
	CoolingRate              float64 `yaml:"cooling_rate"`
	MinTemperature           float64 `yaml:"min_temperature"`
	IterationsPerTemperature int     `yaml:"iterations_per_temperature"`
	Deadline                 string  `yaml:"deadline"`    // e.g. "150s"
	SeedBudget               string  `yaml:"seed_budget"` // e.g. "300s"
	MonteCarloSamples        int     `yaml:"monte_carlo_samples"`
	Restarts                 int     `yaml:"restarts"`
	Seed                     int64   `yaml:"seed,omitempty"` // 0 means time-based
}

// Defaults per the search design: T0=100, alpha=0.99, Tmin=0.1,
// 1000 iterations per temperature, 150s search deadline, 300s seeding
// budget, 30 Monte-Carlo samples, a single restart.
const (
	DefaultInitialTemperature       = 100.0
	DefaultCoolingRate              = 0.99
	DefaultMinTemperature           = 0.1
	DefaultIterationsPerTemperature = 1000
	DefaultDeadline                 = 150 * time.Second
	DefaultSeedBudget               = 300 * time.Second
	DefaultMonteCarloSamples        = 30
	DefaultRestarts                 = 1
)

// DefaultOptimizerConfig returns an OptimizerConfig with all defaults applied.
func DefaultOptimizerConfig() *OptimizerConfig {
	c := &OptimizerConfig{}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills zero-valued fields with defaults.
func (c *OptimizerConfig) ApplyDefaults() {
	if c.InitialTemperature == 0 {
		c.InitialTemperature = DefaultInitialTemperature
	}
	if c.CoolingRate == 0 {
		c.CoolingRate = DefaultCoolingRate
	}
	if c.MinTemperature == 0 {
		c.MinTemperature = DefaultMinTemperature
	}
	if c.IterationsPerTemperature == 0 {
		c.IterationsPerTemperature = DefaultIterationsPerTemperature
	}
	if c.Deadline == "" {
		c.Deadline = DefaultDeadline.String()
	}
	if c.SeedBudget == "" {
		c.SeedBudget = DefaultSeedBudget.String()
	}
	if c.MonteCarloSamples == 0 {
		c.MonteCarloSamples = DefaultMonteCarloSamples
	}
	if c.Restarts == 0 {
		c.Restarts = DefaultRestarts
	}
}

// GetDeadline parses the deadline string to time.Duration
func (c *OptimizerConfig) GetDeadline() (time.Duration, error) {
	return time.ParseDuration(c.Deadline)
}

// GetSeedBudget parses the seed budget string to time.Duration
func (c *OptimizerConfig) GetSeedBudget() (time.Duration, error) {
	return time.ParseDuration(c.SeedBudget)
}
