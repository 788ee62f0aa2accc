// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the sweep driver's defaults. CLI flags override every field;
// the environment only supplies baseline values so batch runs can be
// configured without long command lines.
type Config struct {
	Rates      []float64 // ordered error rates to sweep
	Trials     int       // trials per rate
	Seed       uint64    // base seed; 0 means derive from the clock
	Workers    int       // 0 means size from the CPU count
	Confidence float64   // confidence level for the binomial interval
	LogLevel   string
	Pretty     bool
}

// Load reads configuration from environment variables, loading a .env file
// first if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Trials:     getEnvAsInt("FIVEQUBIT_TRIALS", 1000),
		Seed:       getEnvAsUint("FIVEQUBIT_SEED", 0),
		Workers:    getEnvAsInt("FIVEQUBIT_WORKERS", 0),
		Confidence: getEnvAsFloat("FIVEQUBIT_CONFIDENCE", 0.95),
		LogLevel:   getEnv("FIVEQUBIT_LOG_LEVEL", "info"),
		Pretty:     getEnvAsBool("FIVEQUBIT_PRETTY", true),
	}

	rates, err := ParseRates(getEnv("FIVEQUBIT_RATES", "0.01,0.05,0.1"))
	if err != nil {
		return nil, err
	}
	cfg.Rates = rates

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges that the engine would reject anyway, so bad
// environments fail at startup rather than mid-sweep.
func (c *Config) Validate() error {
	if c.Trials < 0 {
		return fmt.Errorf("FIVEQUBIT_TRIALS must be non-negative, got %d", c.Trials)
	}
	if c.Confidence <= 0 || c.Confidence >= 1 {
		return fmt.Errorf("FIVEQUBIT_CONFIDENCE must be in (0,1), got %v", c.Confidence)
	}
	for _, r := range c.Rates {
		if r < 0 || r > 1 {
			return fmt.Errorf("FIVEQUBIT_RATES entry %v outside [0,1]", r)
		}
	}
	return nil
}

// ParseRates reads a comma-separated list of error rates, preserving order.
func ParseRates(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	rates := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		rate, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid error rate %q: %w", part, err)
		}
		rates = append(rates, rate)
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("no error rates given")
	}
	return rates, nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsUint(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if uintVal, err := strconv.ParseUint(value, 10, 64); err == nil {
			return uintVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
