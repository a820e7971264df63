package roster

import "context"

// Source reads a league's teams and squads from the upstream feed.
type Source interface {
	FetchRoster(ctx context.Context, leagueID string) (Roster, error)
}
