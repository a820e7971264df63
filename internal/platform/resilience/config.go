package resilience

import (
	"fmt"
	"time"
)

const (
	defaultFailureThreshold = 5
	defaultOpenTimeout      = 30 * time.Second
	defaultHalfOpenMaxReq   = 1
)

// CircuitBreakerConfig mirrors the GOALSERVE_CIRCUIT_* settings. Zero values
// fall back to 5 failures, a 30s open window and a single half-open probe.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func (cfg CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaultFailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaultOpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaultHalfOpenMaxReq
	}
	return cfg
}

// String renders the effective settings for startup logs.
func (cfg CircuitBreakerConfig) String() string {
	if !cfg.Enabled {
		return "disabled"
	}
	cfg = cfg.withDefaults()
	return fmt.Sprintf("failures=%d open=%s half_open=%d", cfg.FailureThreshold, cfg.OpenTimeout, cfg.HalfOpenMaxReq)
}

// BreakerFromConfig returns nil when the breaker is disabled; a nil breaker allows every call.
func BreakerFromConfig(cfg CircuitBreakerConfig) *CircuitBreaker {
	if !cfg.Enabled {
		return nil
	}
	return NewCircuitBreaker(cfg)
}
