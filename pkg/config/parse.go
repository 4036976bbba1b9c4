package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseConfigYAML parses a Config from YAML bytes, applies defaults,
// and validates it. Used both for config files and for APIs where the
// config is provided as payload.
func ParseConfigYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config yaml: %w", err)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.Optimizer == nil {
		cfg.Optimizer = &OptimizerConfig{}
	}
	cfg.Optimizer.ApplyDefaults()

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// ParseConfigYAMLString parses a Config from a YAML string.
func ParseConfigYAMLString(yamlText string) (*Config, error) {
	return ParseConfigYAML([]byte(yamlText))
}

// validateConfig performs validation on the configuration
func validateConfig(cfg *Config) error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", cfg.LogLevel)
	}

	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return fmt.Errorf("invalid log_format: %s (must be json or text)", cfg.LogFormat)
	}

	if cfg.Optimizer != nil {
		if err := validateOptimizer(cfg.Optimizer); err != nil {
			return fmt.Errorf("optimizer validation failed: %w", err)
		}
	}

	return nil
}

// validateOptimizer validates the annealing parameters
func validateOptimizer(o *OptimizerConfig) error {
	if o.InitialTemperature <= 0 {
		return fmt.Errorf("initial_temperature must be positive, got %f", o.InitialTemperature)
	}
	if o.CoolingRate <= 0 || o.CoolingRate >= 1 {
		return fmt.Errorf("cooling_rate must be in (0, 1), got %f", o.CoolingRate)
	}
	if o.MinTemperature <= 0 {
		return fmt.Errorf("min_temperature must be positive, got %f", o.MinTemperature)
	}
	if o.MinTemperature >= o.InitialTemperature {
		return fmt.Errorf("min_temperature %f must be below initial_temperature %f", o.MinTemperature, o.InitialTemperature)
	}
	if o.IterationsPerTemperature <= 0 {
		return fmt.Errorf("iterations_per_temperature must be positive, got %d", o.IterationsPerTemperature)
	}
	if o.MonteCarloSamples <= 0 {
		return fmt.Errorf("monte_carlo_samples must be positive, got %d", o.MonteCarloSamples)
	}
	if o.Restarts <= 0 {
		return fmt.Errorf("restarts must be positive, got %d", o.Restarts)
	}

	if _, err := o.GetDeadline(); err != nil {
		return fmt.Errorf("invalid deadline %s: %w", o.Deadline, err)
	}
	if _, err := o.GetSeedBudget(); err != nil {
		return fmt.Errorf("invalid seed_budget %s: %w", o.SeedBudget, err)
	}

	return nil
}
