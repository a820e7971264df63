package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/goalserve-heatmap/external/goalserve"
	"github.com/riskibarqy/goalserve-heatmap/internal/config"
	"github.com/riskibarqy/goalserve-heatmap/internal/domain/fixture"
	"github.com/riskibarqy/goalserve-heatmap/internal/domain/match"
	"github.com/riskibarqy/goalserve-heatmap/internal/domain/roster"
	"github.com/riskibarqy/goalserve-heatmap/internal/interfaces/httpapi"
	"github.com/riskibarqy/goalserve-heatmap/internal/platform/cache"
	"github.com/riskibarqy/goalserve-heatmap/internal/platform/logging"
	"github.com/riskibarqy/goalserve-heatmap/internal/platform/resilience"
	"github.com/riskibarqy/goalserve-heatmap/internal/usecase"
)

// Services is the usecase graph shared by the API server and the feedctl CLI.
type Services struct {
	Client    *goalserve.Client
	Rosters   *usecase.RosterService
	Fixtures  *usecase.FixtureService
	Heatmaps  *usecase.HeatmapService
	LiveFeed  *usecase.MatchFeedService
	TodayFeed *usecase.MatchFeedService
	Warmup    *usecase.WarmupService
}

func NewServices(cfg config.Config, logger *logging.Logger) (*Services, error) {
	if logger == nil {
		logger = logging.Default()
	}

	precedence, err := usecase.ParseScorePrecedence(cfg.HeatmapScorePrecedence)
	if err != nil {
		return nil, fmt.Errorf("heatmap score precedence: %w", err)
	}

	breaker := resilience.CircuitBreakerConfig{
		Enabled:          cfg.GoalserveCircuitEnabled,
		FailureThreshold: cfg.GoalserveCircuitFailureCount,
		OpenTimeout:      cfg.GoalserveCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.GoalserveCircuitHalfOpenMax,
	}
	client := goalserve.NewClient(goalserve.ClientConfig{
		BaseURL:        cfg.GoalserveBaseURL,
		APIKey:         cfg.GoalserveAPIKey,
		Timeout:        cfg.GoalserveTimeout,
		LiveTimeout:    cfg.GoalserveLiveTimeout,
		Logger:         logger,
		CircuitBreaker: breaker,
	})
	logger.Debug("goalserve client configured",
		"base_url", cfg.GoalserveBaseURL,
		"circuit", breaker.String(),
		"score_precedence", string(precedence),
	)

	rosters := usecase.NewRosterService(client, cache.NewStore[roster.Roster](cache.FixedTTL(cfg.RosterCacheTTL)))
	fixtures := usecase.NewFixtureService(client, cache.NewStore[fixture.List](fixtureTTLPolicy(cfg.FixturesCurrentTTL, cfg.FixturesHistoryTTL)))

	return &Services{
		Client:   client,
		Rosters:  rosters,
		Fixtures: fixtures,
		Heatmaps: usecase.NewHeatmapService(rosters, fixtures, client, usecase.HeatmapServiceConfig{
			ScorePrecedence: precedence,
			Logger:          logger.Named("heatmap"),
		}),
		LiveFeed:  usecase.NewMatchFeedService(client, match.FeedLive),
		TodayFeed: usecase.NewMatchFeedService(client, match.FeedToday),
		Warmup:    usecase.NewWarmupService(rosters, fixtures, cfg.WarmupWorkers, logger.Named("warmup")),
	}, nil
}

func NewHTTPServer(cfg config.Config, services *Services, logger *logging.Logger) (*http.Server, error) {
	if services == nil {
		return nil, fmt.Errorf("services cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}

	handler := httpapi.NewHandler(httpapi.HandlerConfig{
		Fixtures:    services.Fixtures,
		Rosters:     services.Rosters,
		Heatmaps:    services.Heatmaps,
		LiveFeed:    services.LiveFeed,
		TodayFeed:   services.TodayFeed,
		Upstream:    services.Client.Breaker,
		Defaults:    httpapi.Defaults{LeagueID: cfg.DefaultLeagueID, MatchID: cfg.DefaultMatchID},
		ServiceName: cfg.ServiceName,
		Logger:      logger.Named("httpapi"),
	})
	router := httpapi.NewRouter(handler, logger.Named("http"), httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRequests:  cfg.RateLimitRequests,
		RateLimitWindow:    cfg.RateLimitWindow,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// WarmupTargets converts the configured warmup leagues.
func WarmupTargets(cfg config.Config) []usecase.WarmupTarget {
	out := make([]usecase.WarmupTarget, 0, len(cfg.WarmupLeagues))
	for _, item := range cfg.WarmupLeagues {
		out = append(out, usecase.WarmupTarget{LeagueID: item.LeagueID, Season: item.Season})
	}
	return out
}

// fixtureTTLPolicy expires current season lists after current and past
// seasons after history. Zero keeps an entry for the life of the process.
func fixtureTTLPolicy(current, history time.Duration) cache.TTLPolicy {
	return func(key string) time.Duration {
		if usecase.IsHistoryKey(key) {
			return history
		}
		return current
	}
}
