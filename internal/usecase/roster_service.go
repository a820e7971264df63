package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/goalserve-heatmap/internal/domain/roster"
	"github.com/riskibarqy/goalserve-heatmap/internal/platform/cache"
	"go.opentelemetry.io/otel/attribute"
)

// RosterService resolves league rosters, fetching each league at most once
// per cache lifetime.
type RosterService struct {
	source roster.Source
	cache  *cache.Store[roster.Roster]
}

func NewRosterService(source roster.Source, store *cache.Store[roster.Roster]) *RosterService {
	if store == nil {
		store = cache.NewStore[roster.Roster](nil)
	}
	return &RosterService{
		source: source,
		cache:  store,
	}
}

func (s *RosterService) Get(ctx context.Context, leagueID string) (out roster.Roster, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Get", attribute.String("league_id", leagueID))
	defer func() { endUsecaseSpan(span, err) }()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return roster.Roster{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	out, err = s.cache.GetOrLoad(ctx, leagueID, func(ctx context.Context) (roster.Roster, error) {
		return s.source.FetchRoster(ctx, leagueID)
	})
	if err != nil {
		return roster.Roster{}, fmt.Errorf("load roster league=%s: %w", leagueID, err)
	}

	return out, nil
}

// Cached reports how many league rosters are held in memory.
func (s *RosterService) Cached() int {
	return s.cache.Len()
}
