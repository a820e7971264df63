package goalserve

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/goalserve-heatmap/internal/domain/fixture"
	"github.com/riskibarqy/goalserve-heatmap/internal/domain/roster"
	"github.com/riskibarqy/goalserve-heatmap/internal/platform/shape"
	"github.com/riskibarqy/goalserve-heatmap/internal/usecase"
)

// FetchFixtures reads the current season fixtures feed, or the history feed
// when season is set. Fixtures keep feed order; sorting is left to the caller.
func (c *Client) FetchFixtures(ctx context.Context, leagueID, season string) (fixture.List, error) {
	path := feedPath("soccerfixtures", "leagueid", leagueID)
	if season != "" {
		path = feedPath("soccerhistory", "leagueid", leagueID+"-"+season)
	}

	payload, err := c.fetchJSON(ctx, path, c.timeout)
	if err != nil {
		return fixture.List{}, fmt.Errorf("fetch fixtures league=%s season=%s: %w", leagueID, season, err)
	}

	out, err := parseFixtures(payload)
	if err != nil {
		return fixture.List{}, fmt.Errorf("parse fixtures league=%s season=%s: %w", leagueID, season, err)
	}

	c.logger.InfoContext(ctx, "loaded league fixtures",
		"league_id", leagueID,
		"season", season,
		"fixtures", len(out.Fixtures),
	)
	return out, nil
}

func parseFixtures(payload map[string]any) (fixture.List, error) {
	results := shape.Child(payload, "results")
	if results == nil {
		return fixture.List{}, crerr.Mark(fmt.Errorf("results node missing"), usecase.ErrDecodeFailure)
	}

	out := fixture.List{
		LeagueName: roster.UnknownLeague,
		Fixtures:   make([]fixture.Fixture, 0),
	}
	for i, tournament := range shape.Children(results, "tournament") {
		if i == 0 {
			out.LeagueName = shape.StringOr(tournament, "@league", roster.UnknownLeague)
		}
		for _, week := range tournamentWeeks(tournament) {
			for _, item := range shape.Children(week, "match") {
				parsed, ok := parseFixture(item)
				if !ok {
					continue
				}
				out.Fixtures = append(out.Fixtures, parsed)
			}
		}
	}

	return out, nil
}

// tournamentWeeks returns the week nodes, or the tournament itself when it
// lists matches directly.
func tournamentWeeks(tournament map[string]any) []map[string]any {
	weeks := shape.Children(tournament, "week")
	if len(weeks) == 0 && shape.Has(tournament, "match") {
		return []map[string]any{tournament}
	}
	return weeks
}

func parseFixture(item map[string]any) (fixture.Fixture, bool) {
	matchID := shape.String(item, "@id")
	if matchID == "" {
		return fixture.Fixture{}, false
	}

	home := shape.Child(item, "localteam")
	away := shape.Child(item, "visitorteam")

	out := fixture.Fixture{
		MatchID:          matchID,
		Date:             shape.StringOr(item, "@date", fixture.NotAvailable),
		Time:             shape.StringOr(item, "@time", fixture.NotAvailable),
		Status:           shape.StringOr(item, "@status", fixture.NotAvailable),
		LocalteamName:    shape.StringOr(home, "@name", fixture.NotAvailable),
		VisitorteamName:  shape.StringOr(away, "@name", fixture.NotAvailable),
		LocalteamScore:   teamScore(home),
		VisitorteamScore: teamScore(away),
	}
	out.Display = fixture.BuildDisplay(out)
	return out, true
}

// teamScore prefers the full time score and falls back to the running score.
func teamScore(team map[string]any) string {
	if score := shape.String(team, "@ft_score"); score != "" {
		return score
	}
	return shape.String(team, "@score")
}
