package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/goalserve-heatmap/internal/domain/match"
	"go.opentelemetry.io/otel/attribute"
)

// MatchFeedView is the response shape of the live and today endpoints.
type MatchFeedView struct {
	Updated      string         `json:"updated,omitempty"`
	LeagueID     string         `json:"league_id,omitempty"`
	TotalMatches int            `json:"total_matches"`
	Matches      []match.Record `json:"matches"`
}

// MatchFeedService reads one scoreboard feed. Results are not cached; every
// call reflects the upstream at request time.
type MatchFeedService struct {
	source match.Source
	kind   match.FeedKind
}

func NewMatchFeedService(source match.Source, kind match.FeedKind) *MatchFeedService {
	return &MatchFeedService{
		source: source,
		kind:   kind,
	}
}

func (s *MatchFeedService) Kind() match.FeedKind {
	return s.kind
}

// Get returns every match in the feed. On failure the view carries an empty match list.
func (s *MatchFeedService) Get(ctx context.Context) (out MatchFeedView, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchFeedService.Get", attribute.String("feed", string(s.kind)))
	defer func() { endUsecaseSpan(span, err) }()

	feed, err := s.source.FetchMatchFeed(ctx, s.kind)
	if err != nil {
		return MatchFeedView{Matches: []match.Record{}}, fmt.Errorf("fetch %s feed: %w", s.kind, err)
	}

	matches := feed.Matches
	if matches == nil {
		matches = []match.Record{}
	}
	return MatchFeedView{
		Updated:      feed.Updated,
		TotalMatches: len(matches),
		Matches:      matches,
	}, nil
}

// GetByLeague returns the feed's matches whose league id equals leagueID.
// An unmatched league yields an empty list without the updated timestamp.
func (s *MatchFeedService) GetByLeague(ctx context.Context, leagueID string) (out MatchFeedView, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchFeedService.GetByLeague",
		attribute.String("feed", string(s.kind)),
		attribute.String("league_id", leagueID),
	)
	defer func() { endUsecaseSpan(span, err) }()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return MatchFeedView{Matches: []match.Record{}}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	feed, err := s.source.FetchMatchFeed(ctx, s.kind)
	if err != nil {
		return MatchFeedView{LeagueID: leagueID, Matches: []match.Record{}}, fmt.Errorf("fetch %s feed: %w", s.kind, err)
	}

	filtered := feed.FilterByLeague(leagueID)
	if len(filtered) == 0 {
		return MatchFeedView{LeagueID: leagueID, Matches: filtered}, nil
	}
	return MatchFeedView{
		Updated:      feed.Updated,
		LeagueID:     leagueID,
		TotalMatches: len(filtered),
		Matches:      filtered,
	}, nil
}
