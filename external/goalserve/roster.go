package goalserve

import (
	"context"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/goalserve-heatmap/internal/domain/roster"
	"github.com/riskibarqy/goalserve-heatmap/internal/platform/shape"
	"github.com/riskibarqy/goalserve-heatmap/internal/usecase"
)

// FetchRoster reads soccerleague/{league} and maps every squad player id to a name.
func (c *Client) FetchRoster(ctx context.Context, leagueID string) (roster.Roster, error) {
	path := feedPath("soccerleague", leagueID)
	payload, err := c.fetchJSON(ctx, path, c.timeout)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("fetch roster league=%s: %w", leagueID, err)
	}

	out, err := parseRoster(payload)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("parse roster league=%s: %w", leagueID, err)
	}

	c.logger.InfoContext(ctx, "loaded league roster", "league_id", leagueID, "players", len(out.Players))
	return out, nil
}

func parseRoster(payload map[string]any) (roster.Roster, error) {
	league := shape.Child(payload, "league")
	if league == nil {
		return roster.Roster{}, crerr.Mark(fmt.Errorf("league node missing"), usecase.ErrDecodeFailure)
	}

	out := roster.Roster{
		LeagueName: shape.StringOr(league, "@name", roster.UnknownLeague),
		Players:    make(map[string]string),
	}
	for _, team := range shape.Children(league, "team") {
		squad := shape.Child(team, "squad")
		for _, player := range shape.Children(squad, "player") {
			playerID := shape.String(player, "@id")
			if playerID == "" {
				continue
			}
			name := shape.String(player, "@name")
			if strings.TrimSpace(name) == "" {
				name = roster.Placeholder(playerID)
			}
			out.Players[playerID] = name
		}
	}

	return out, nil
}
