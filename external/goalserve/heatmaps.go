package goalserve

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/goalserve-heatmap/internal/domain/heatmap"
	"github.com/riskibarqy/goalserve-heatmap/internal/platform/shape"
	"github.com/riskibarqy/goalserve-heatmap/internal/usecase"
)

// FetchMatchHeatmap reads commentaries/{league}_heatmap.xml and returns the
// entry for matchID. found is false when the feed does not list the match.
func (c *Client) FetchMatchHeatmap(ctx context.Context, leagueID, matchID string) (heatmap.MatchHeatmap, bool, error) {
	path := feedPath("commentaries", leagueID+"_heatmap.xml")
	payload, err := c.fetchJSON(ctx, path, c.timeout)
	if err != nil {
		return heatmap.MatchHeatmap{}, false, fmt.Errorf("fetch heatmap feed league=%s: %w", leagueID, err)
	}

	out, found, err := findMatchHeatmap(payload, matchID)
	if err != nil {
		return heatmap.MatchHeatmap{}, false, fmt.Errorf("parse heatmap feed league=%s: %w", leagueID, err)
	}
	return out, found, nil
}

func findMatchHeatmap(payload map[string]any, matchID string) (heatmap.MatchHeatmap, bool, error) {
	commentaries := shape.Child(payload, "commentaries")
	if commentaries == nil {
		return heatmap.MatchHeatmap{}, false, crerr.Mark(fmt.Errorf("commentaries node missing"), usecase.ErrDecodeFailure)
	}

	for _, tournament := range shape.Children(commentaries, "tournament") {
		for _, item := range shape.Children(tournament, "match") {
			if shape.String(item, "@id") != matchID {
				continue
			}
			heatmaps := shape.Child(item, "heatmaps")
			return heatmap.MatchHeatmap{
				MatchID:     matchID,
				Status:      shape.String(item, "@status"),
				Score:       shape.String(item, "@score"),
				Minute:      shape.String(item, "@minute"),
				HomePlayers: playerSamples(shape.Child(heatmaps, "localteam")),
				AwayPlayers: playerSamples(shape.Child(heatmaps, "visitorteam")),
			}, true, nil
		}
	}

	return heatmap.MatchHeatmap{}, false, nil
}

func playerSamples(side map[string]any) []heatmap.PlayerSamples {
	players := shape.Children(side, "player")
	out := make([]heatmap.PlayerSamples, 0, len(players))
	for _, player := range players {
		out = append(out, heatmap.PlayerSamples{
			PlayerID: shape.String(player, "@id"),
			Raw:      shape.String(player, "@heatmap"),
		})
	}
	return out
}
