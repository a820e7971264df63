package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/goalserve-heatmap/internal/domain/fixture"
	"github.com/riskibarqy/goalserve-heatmap/internal/domain/heatmap"
	"github.com/riskibarqy/goalserve-heatmap/internal/domain/roster"
	"github.com/riskibarqy/goalserve-heatmap/internal/platform/logging"
	"github.com/sourcegraph/conc"
	"go.opentelemetry.io/otel/attribute"
)

// ScorePrecedence decides which source wins when both the heatmap feed and the
// fixture carry a score.
type ScorePrecedence string

const (
	ScoreLiveFirst    ScorePrecedence = "live-first"
	ScoreFixtureFirst ScorePrecedence = "fixture-first"
)

func ParseScorePrecedence(raw string) (ScorePrecedence, error) {
	switch ScorePrecedence(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ScoreLiveFirst:
		return ScoreLiveFirst, nil
	case ScoreFixtureFirst:
		return ScoreFixtureFirst, nil
	default:
		return "", fmt.Errorf("%w: unknown score precedence %q", ErrInvalidInput, raw)
	}
}

type HeatmapServiceConfig struct {
	ScorePrecedence ScorePrecedence
	Logger          *logging.Logger
}

// HeatmapService stitches roster names, fixture metadata and the heatmap
// commentary feed into one response per match.
type HeatmapService struct {
	rosters    *RosterService
	fixtures   *FixtureService
	source     heatmap.Source
	precedence ScorePrecedence
	logger     *logging.Logger
}

func NewHeatmapService(rosters *RosterService, fixtures *FixtureService, source heatmap.Source, cfg HeatmapServiceConfig) *HeatmapService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	precedence := cfg.ScorePrecedence
	if precedence == "" {
		precedence = ScoreLiveFirst
	}
	return &HeatmapService{
		rosters:    rosters,
		fixtures:   fixtures,
		source:     source,
		precedence: precedence,
		logger:     logger,
	}
}

func (s *HeatmapService) Get(ctx context.Context, matchID, leagueID, season string) (out heatmap.Response, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HeatmapService.Get",
		attribute.String("match_id", matchID),
		attribute.String("league_id", leagueID),
		attribute.String("season", season),
	)
	defer func() { endUsecaseSpan(span, err) }()

	matchID = strings.TrimSpace(matchID)
	leagueID = strings.TrimSpace(leagueID)
	if matchID == "" || leagueID == "" {
		return heatmap.Response{}, fmt.Errorf("%w: match id and league id are required", ErrInvalidInput)
	}

	var (
		leagueRoster roster.Roster
		rosterErr    error
		fixtures     fixture.List
		fixturesErr  error
		wg           conc.WaitGroup
	)
	wg.Go(func() {
		leagueRoster, rosterErr = s.rosters.Get(ctx, leagueID)
	})
	wg.Go(func() {
		fixtures, fixturesErr = s.fixtures.Get(ctx, leagueID, season)
	})
	wg.Wait()

	if rosterErr != nil {
		return heatmap.Response{}, rosterErr
	}
	if fixturesErr != nil {
		return heatmap.Response{}, fixturesErr
	}

	target, ok := fixtures.Find(matchID)
	if !ok {
		return heatmap.Response{}, matchNotFoundError(matchID, leagueID)
	}

	entry, found, err := s.source.FetchMatchHeatmap(ctx, leagueID, matchID)
	if err != nil {
		return heatmap.Response{}, fmt.Errorf("fetch heatmap feed league=%s: %w", leagueID, err)
	}
	if !found {
		return heatmap.Response{}, heatmapNotAvailableError(matchID)
	}

	out = heatmap.Response{
		MatchID:            matchID,
		MatchDate:          target.Date,
		LeagueName:         leagueRoster.LeagueName,
		LocalteamName:      target.LocalteamName,
		VisitorteamName:    target.VisitorteamName,
		FinalScore:         s.resolveScore(entry, target),
		LiveMinute:         entry.Minute,
		MatchStatus:        entry.Status,
		LocalteamPlayers:   buildPlayers(entry.HomePlayers, leagueRoster),
		VisitorteamPlayers: buildPlayers(entry.AwayPlayers, leagueRoster),
	}
	if out.LiveMinute == "" {
		out.LiveMinute = fixture.NotAvailable
	}
	if out.MatchStatus == "" {
		out.MatchStatus = target.Status
	}

	s.logger.DebugContext(ctx, "assembled heatmap",
		"match_id", matchID,
		"league_id", leagueID,
		"home_players", len(out.LocalteamPlayers),
		"away_players", len(out.VisitorteamPlayers),
	)

	return out, nil
}

func (s *HeatmapService) resolveScore(entry heatmap.MatchHeatmap, target fixture.Fixture) string {
	live := strings.ReplaceAll(entry.Score, " - ", "-")
	fromFixture := target.LocalteamScore + "-" + target.VisitorteamScore
	hasFixtureScore := target.LocalteamScore != "" && target.VisitorteamScore != ""

	if s.precedence == ScoreFixtureFirst && hasFixtureScore {
		return fromFixture
	}
	if live != "" {
		return live
	}
	return fromFixture
}

func buildPlayers(samples []heatmap.PlayerSamples, leagueRoster roster.Roster) map[string]heatmap.PlayerHeatmap {
	out := make(map[string]heatmap.PlayerHeatmap, len(samples))
	for _, item := range samples {
		if item.PlayerID == "" || item.Raw == "" {
			continue
		}
		out[item.PlayerID] = heatmap.PlayerHeatmap{
			Name:        leagueRoster.PlayerName(item.PlayerID),
			HeatmapData: heatmap.Aggregate(item.Raw),
		}
	}
	return out
}
