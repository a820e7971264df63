package observability

import (
	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/goalserve-heatmap/internal/config"
	"github.com/riskibarqy/goalserve-heatmap/internal/platform/logging"
)

// Block and mutex profiles are left off.
var feedProfileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
}

// InitPyroscope starts continuous profiling when enabled. The returned stop
// function is always non-nil on success.
func InitPyroscope(cfg config.Config, logger *logging.Logger) (func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if !cfg.PyroscopeEnabled {
		logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
		return func() error { return nil }, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags:              profilerTags(cfg),
		ProfileTypes:      feedProfileTypes,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("pyroscope enabled", "application", cfg.PyroscopeAppName, "profiles", len(feedProfileTypes))
	return profiler.Stop, nil
}

func profilerTags(cfg config.Config) map[string]string {
	tags := map[string]string{
		"env":     cfg.AppEnv,
		"service": cfg.ServiceName,
	}
	if cfg.ServiceVersion != "" {
		tags["version"] = cfg.ServiceVersion
	}
	if cfg.HeatmapScorePrecedence != "" {
		tags["score_precedence"] = cfg.HeatmapScorePrecedence
	}
	return tags
}
