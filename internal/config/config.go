package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/goalserve-heatmap/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                       string
	ServiceName                  string
	ServiceVersion               string
	HTTPAddr                     string
	ReadTimeout                  time.Duration
	WriteTimeout                 time.Duration
	ShutdownTimeout              time.Duration
	LogLevel                     logging.Level
	LogFormat                    logging.Format
	CORSAllowedOrigins           []string
	SwaggerEnabled               bool
	RateLimitRequests            int
	RateLimitWindow              time.Duration
	DefaultLeagueID              string
	DefaultMatchID               string
	GoalserveAPIKey              string
	GoalserveBaseURL             string
	GoalserveTimeout             time.Duration
	GoalserveLiveTimeout         time.Duration
	GoalserveCircuitEnabled      bool
	GoalserveCircuitFailureCount int
	GoalserveCircuitOpenTimeout  time.Duration
	GoalserveCircuitHalfOpenMax  int
	RosterCacheTTL               time.Duration
	FixturesCurrentTTL           time.Duration
	FixturesHistoryTTL           time.Duration
	HeatmapScorePrecedence       string
	WarmupLeagues                []WarmupLeague
	WarmupWorkers                int
	PprofEnabled                 bool
	PprofAddr                    string
	UptraceEnabled               bool
	UptraceDSN                   string
	UptraceLogsEnabled           bool
	PyroscopeEnabled             bool
	PyroscopeServerAddress       string
	PyroscopeAppName             string
	PyroscopeAuthToken           string
	PyroscopeBasicAuthUser       string
	PyroscopeBasicAuthPassword   string
	PyroscopeUploadRate          time.Duration
}

// WarmupLeague is one league, optionally pinned to a past season, to preload at startup.
type WarmupLeague struct {
	LeagueID string
	Season   string
}

var seasonPattern = regexp.MustCompile(`^\d{4}(-\d{4})?$`)

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}

	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	logFormat, err := parseLogFormat(getEnv("APP_LOG_FORMAT", string(logging.FormatJSON)))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := getEnvAsDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsDuration("APP_WRITE_TIMEOUT", "45s")
	if err != nil {
		return Config{}, err
	}
	shutdownTimeout, err := getEnvAsDuration("APP_SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}

	rateLimitRequests, err := getEnvAsInt("RATE_LIMIT_REQUESTS", 120)
	if err != nil {
		return Config{}, fmt.Errorf("parse RATE_LIMIT_REQUESTS: %w", err)
	}
	if rateLimitRequests < 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_REQUESTS must be >= 0")
	}
	rateLimitWindow, err := getEnvAsDuration("RATE_LIMIT_WINDOW", "1m")
	if err != nil {
		return Config{}, err
	}

	goalserveAPIKey := strings.TrimSpace(getEnv("GOALSERVE_API_KEY", ""))
	if goalserveAPIKey == "" && appEnv != EnvDev {
		return Config{}, fmt.Errorf("GOALSERVE_API_KEY is required when APP_ENV=%s", appEnv)
	}
	goalserveBaseURL := strings.TrimRight(strings.TrimSpace(getEnv("GOALSERVE_BASE_URL", "https://www.goalserve.com/getfeed")), "/")
	if goalserveBaseURL == "" {
		return Config{}, fmt.Errorf("GOALSERVE_BASE_URL cannot be empty")
	}
	goalserveTimeout, err := getEnvAsDuration("GOALSERVE_TIMEOUT", "30s")
	if err != nil {
		return Config{}, err
	}
	goalserveLiveTimeout, err := getEnvAsDuration("GOALSERVE_LIVE_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}

	goalserveCircuitEnabled, err := strconv.ParseBool(getEnv("GOALSERVE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GOALSERVE_CIRCUIT_ENABLED: %w", err)
	}
	goalserveCircuitFailureCount, err := getEnvAsInt("GOALSERVE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse GOALSERVE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if goalserveCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("GOALSERVE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	goalserveCircuitOpenTimeout, err := getEnvAsDuration("GOALSERVE_CIRCUIT_OPEN_TIMEOUT", "30s")
	if err != nil {
		return Config{}, err
	}
	goalserveCircuitHalfOpenMax, err := getEnvAsInt("GOALSERVE_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse GOALSERVE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if goalserveCircuitHalfOpenMax < 1 {
		return Config{}, fmt.Errorf("GOALSERVE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	rosterCacheTTL, err := getEnvAsTTL("ROSTER_CACHE_TTL", "0")
	if err != nil {
		return Config{}, err
	}
	fixturesCurrentTTL, err := getEnvAsTTL("FIXTURES_CURRENT_TTL", "10m")
	if err != nil {
		return Config{}, err
	}
	fixturesHistoryTTL, err := getEnvAsTTL("FIXTURES_HISTORY_TTL", "0")
	if err != nil {
		return Config{}, err
	}

	scorePrecedence := strings.ToLower(strings.TrimSpace(getEnv("HEATMAP_SCORE_PRECEDENCE", "live-first")))
	switch scorePrecedence {
	case "live-first", "fixture-first":
	default:
		return Config{}, fmt.Errorf("invalid HEATMAP_SCORE_PRECEDENCE %q: valid values are live-first, fixture-first", scorePrecedence)
	}

	warmupLeagues, err := parseWarmupLeagues(getEnv("WARMUP_LEAGUES", ""))
	if err != nil {
		return Config{}, fmt.Errorf("parse WARMUP_LEAGUES: %w", err)
	}
	warmupWorkers, err := getEnvAsInt("WARMUP_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse WARMUP_WORKERS: %w", err)
	}
	if warmupWorkers < 1 {
		return Config{}, fmt.Errorf("WARMUP_WORKERS must be >= 1")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                       appEnv,
		ServiceName:                  getEnv("APP_SERVICE_NAME", "goalserve-heatmap-api"),
		ServiceVersion:               getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                     getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                  readTimeout,
		WriteTimeout:                 writeTimeout,
		ShutdownTimeout:              shutdownTimeout,
		LogLevel:                     parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFormat:                    logFormat,
		CORSAllowedOrigins:           splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:               swaggerEnabled,
		RateLimitRequests:            rateLimitRequests,
		RateLimitWindow:              rateLimitWindow,
		DefaultLeagueID:              strings.TrimSpace(getEnv("DEFAULT_LEAGUE_ID", "1204")),
		DefaultMatchID:               strings.TrimSpace(getEnv("DEFAULT_MATCH_ID", "")),
		GoalserveAPIKey:              goalserveAPIKey,
		GoalserveBaseURL:             goalserveBaseURL,
		GoalserveTimeout:             goalserveTimeout,
		GoalserveLiveTimeout:         goalserveLiveTimeout,
		GoalserveCircuitEnabled:      goalserveCircuitEnabled,
		GoalserveCircuitFailureCount: goalserveCircuitFailureCount,
		GoalserveCircuitOpenTimeout:  goalserveCircuitOpenTimeout,
		GoalserveCircuitHalfOpenMax:  goalserveCircuitHalfOpenMax,
		RosterCacheTTL:               rosterCacheTTL,
		FixturesCurrentTTL:           fixturesCurrentTTL,
		FixturesHistoryTTL:           fixturesHistoryTTL,
		HeatmapScorePrecedence:       scorePrecedence,
		WarmupLeagues:                warmupLeagues,
		WarmupWorkers:                warmupWorkers,
		PprofEnabled:                 pprofEnabled,
		PprofAddr:                    pprofAddr,
		UptraceEnabled:               uptraceEnabled,
		UptraceDSN:                   uptraceDSN,
		UptraceLogsEnabled:           uptraceLogsEnabled,
		PyroscopeEnabled:             pyroscopeEnabled,
		PyroscopeServerAddress:       pyroscopeServerAddress,
		PyroscopeAuthToken:           strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:       strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:   strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:          pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	level, err := logging.ParseLevel(v)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}

func parseLogFormat(v string) (logging.Format, error) {
	switch value := logging.Format(strings.ToLower(strings.TrimSpace(v))); value {
	case logging.FormatJSON, logging.FormatConsole:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_LOG_FORMAT %q: valid values are %s, %s", v, logging.FormatJSON, logging.FormatConsole)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

// getEnvAsDuration parses a strictly positive duration.
func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

// getEnvAsTTL parses a cache lifetime where 0 means entries never expire.
func getEnvAsTTL(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out < 0 {
		return 0, fmt.Errorf("%s must be >= 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

// parseWarmupLeagues reads "1204,1205:2023-2024" style lists.
func parseWarmupLeagues(raw string) ([]WarmupLeague, error) {
	out := make([]WarmupLeague, 0)
	for _, item := range splitCSV(raw) {
		leagueID, season, _ := strings.Cut(item, ":")
		leagueID = strings.TrimSpace(leagueID)
		season = strings.TrimSpace(season)
		if leagueID == "" {
			return nil, fmt.Errorf("empty league id in item %q", item)
		}
		if _, err := strconv.ParseUint(leagueID, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid league id in item %q", item)
		}
		if season != "" && !seasonPattern.MatchString(season) {
			return nil, fmt.Errorf("invalid season in item %q, expected YYYY-YYYY or YYYY", item)
		}
		out = append(out, WarmupLeague{LeagueID: leagueID, Season: season})
	}
	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
