package fixture

import "context"

// Source reads a league's fixtures from the upstream feed. An empty season
// selects the current season feed.
type Source interface {
	FetchFixtures(ctx context.Context, leagueID, season string) (List, error)
}
