package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/goalserve-heatmap/internal/platform/id"
	"github.com/riskibarqy/goalserve-heatmap/internal/platform/logging"
)

const defaultWarmupWorkers = 4

// WarmupTarget names a league, and optionally a past season, whose roster and
// fixtures should be loaded into the caches ahead of traffic.
type WarmupTarget struct {
	LeagueID string `yaml:"league_id" json:"league_id"`
	Season   string `yaml:"season" json:"season,omitempty"`
}

type WarmupTaskResult struct {
	LeagueID   string `json:"league_id"`
	Season     string `json:"season,omitempty"`
	Players    int    `json:"players"`
	Fixtures   int    `json:"fixtures"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

type WarmupResult struct {
	RunID        string             `json:"run_id"`
	Tasks        []WarmupTaskResult `json:"tasks"`
	SuccessCount int                `json:"success_count"`
	FailedCount  int                `json:"failed_count"`
}

const (
	warmupStatusSuccess = "success"
	warmupStatusFailed  = "failed"
)

type WarmupService struct {
	rosters  *RosterService
	fixtures *FixtureService
	workers  int
	ids      id.Generator
	logger   *logging.Logger
}

func NewWarmupService(rosters *RosterService, fixtures *FixtureService, workers int, logger *logging.Logger) *WarmupService {
	if workers < 1 {
		workers = defaultWarmupWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &WarmupService{
		rosters:  rosters,
		fixtures: fixtures,
		workers:  workers,
		ids:      id.NewRandomGenerator("warm"),
		logger:   logger,
	}
}

// Warm loads every target on a bounded worker pool. A failing target is
// reported in the result and does not stop the others.
func (s *WarmupService) Warm(ctx context.Context, targets []WarmupTarget) (WarmupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WarmupService.Warm")
	defer span.End()

	runID, err := s.ids.NewID()
	if err != nil {
		return WarmupResult{}, fmt.Errorf("generate warmup run id: %w", err)
	}
	logger := s.logger.With("run_id", runID)

	result := WarmupResult{RunID: runID, Tasks: make([]WarmupTaskResult, 0, len(targets))}
	if len(targets) == 0 {
		return result, nil
	}

	workerCount := s.workers
	if workerCount > len(targets) {
		workerCount = len(targets)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return WarmupResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan WarmupTaskResult, len(targets))
	var successCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, target := range targets {
		target := target
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row := s.warmOne(ctx, logger, target)
			if row.Status == warmupStatusSuccess {
				successCount.Add(1)
			} else {
				failedCount.Add(1)
			}
			results <- row
		}); err != nil {
			workers.Done()
			return WarmupResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}
	sort.SliceStable(result.Tasks, func(i, j int) bool {
		if result.Tasks[i].LeagueID != result.Tasks[j].LeagueID {
			return result.Tasks[i].LeagueID < result.Tasks[j].LeagueID
		}
		return result.Tasks[i].Season < result.Tasks[j].Season
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())

	logger.InfoContext(ctx, "cache warmup finished",
		"targets", len(targets),
		"success", result.SuccessCount,
		"failed", result.FailedCount,
	)

	return result, nil
}

func (s *WarmupService) warmOne(ctx context.Context, logger *logging.Logger, target WarmupTarget) WarmupTaskResult {
	start := time.Now()
	row := WarmupTaskResult{
		LeagueID: target.LeagueID,
		Season:   target.Season,
		Status:   warmupStatusSuccess,
	}

	leagueRoster, err := s.rosters.Get(ctx, target.LeagueID)
	if err != nil {
		logger.WarnContext(ctx, "warm roster failed", "league_id", target.LeagueID, "error", err)
		row.Status = warmupStatusFailed
		row.Message = err.Error()
		row.DurationMs = time.Since(start).Milliseconds()
		return row
	}
	row.Players = len(leagueRoster.Players)

	list, err := s.fixtures.Get(ctx, target.LeagueID, target.Season)
	if err != nil {
		logger.WarnContext(ctx, "warm fixtures failed", "league_id", target.LeagueID, "season", target.Season, "error", err)
		row.Status = warmupStatusFailed
		row.Message = err.Error()
		row.DurationMs = time.Since(start).Milliseconds()
		return row
	}
	row.Fixtures = len(list.Fixtures)
	row.DurationMs = time.Since(start).Milliseconds()

	return row
}
