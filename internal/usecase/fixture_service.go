package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/goalserve-heatmap/internal/domain/fixture"
	"github.com/riskibarqy/goalserve-heatmap/internal/platform/cache"
	"go.opentelemetry.io/otel/attribute"
)

type FixtureService struct {
	source fixture.Source
	cache  *cache.Store[fixture.List]
}

func NewFixtureService(source fixture.Source, store *cache.Store[fixture.List]) *FixtureService {
	if store == nil {
		store = cache.NewStore[fixture.List](nil)
	}
	return &FixtureService{
		source: source,
		cache:  store,
	}
}

// FixtureCacheKey is "league" for the current season and "league|season" otherwise.
func FixtureCacheKey(leagueID, season string) string {
	if season == "" {
		return leagueID
	}
	return leagueID + "|" + season
}

// IsHistoryKey reports whether a fixture cache key names a past season.
func IsHistoryKey(key string) bool {
	return strings.Contains(key, "|")
}

// Get returns the league's fixtures sorted by date. An empty season reads the
// current season feed.
func (s *FixtureService) Get(ctx context.Context, leagueID, season string) (out fixture.List, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Get",
		attribute.String("league_id", leagueID),
		attribute.String("season", season),
	)
	defer func() { endUsecaseSpan(span, err) }()

	leagueID = strings.TrimSpace(leagueID)
	season = strings.TrimSpace(season)
	if leagueID == "" {
		return fixture.List{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	key := FixtureCacheKey(leagueID, season)
	out, err = s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (fixture.List, error) {
		list, fetchErr := s.source.FetchFixtures(ctx, leagueID, season)
		if fetchErr != nil {
			return fixture.List{}, fetchErr
		}
		items := make([]fixture.Fixture, len(list.Fixtures))
		copy(items, list.Fixtures)
		fixture.SortByDate(items)
		list.Fixtures = items
		return list, nil
	})
	if err != nil {
		return fixture.List{}, fmt.Errorf("load fixtures key=%s: %w", key, err)
	}

	return out, nil
}
