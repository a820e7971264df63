package goalserve

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/goalserve-heatmap/internal/domain/livestats"
	"github.com/riskibarqy/goalserve-heatmap/internal/domain/match"
	"github.com/riskibarqy/goalserve-heatmap/internal/platform/shape"
	"github.com/riskibarqy/goalserve-heatmap/internal/usecase"
)

// FetchMatchFeed reads soccernew/live or soccernew/home. Malformed matches are
// skipped and logged; the rest of the feed is still returned.
func (c *Client) FetchMatchFeed(ctx context.Context, kind match.FeedKind) (match.Feed, error) {
	path := feedPath("soccernew", string(kind))
	payload, err := c.fetchJSON(ctx, path, c.liveTimeout)
	if err != nil {
		return match.Feed{}, fmt.Errorf("fetch match feed %s: %w", kind, err)
	}

	out, skipped, err := parseMatchFeed(payload)
	if err != nil {
		return match.Feed{}, fmt.Errorf("parse match feed %s: %w", kind, err)
	}
	for _, item := range skipped {
		c.logger.WarnContext(ctx, "skip malformed match", "feed", string(kind), "match_id", item.matchID, "error", item.err)
	}

	return out, nil
}

type skippedMatch struct {
	matchID string
	err     error
}

func parseMatchFeed(payload map[string]any) (match.Feed, []skippedMatch, error) {
	scores := shape.Child(payload, "scores")
	if scores == nil {
		return match.Feed{}, nil, crerr.Mark(fmt.Errorf("scores node missing"), usecase.ErrDecodeFailure)
	}

	out := match.Feed{
		Updated: shape.String(scores, "@updated"),
		Matches: make([]match.Record, 0),
	}
	var skipped []skippedMatch

	for _, category := range shape.Children(scores, "category") {
		league := match.League{
			Name:      shape.String(category, "@name"),
			ID:        shape.String(category, "@id"),
			FileGroup: shape.String(category, "@file_group"),
			IsCup:     shape.String(category, "@iscup") == "True",
		}
		for _, item := range shape.Children(shape.Child(category, "matches"), "match") {
			record, err := buildMatchRecord(item, league)
			if err != nil {
				skipped = append(skipped, skippedMatch{matchID: shape.String(item, "@id"), err: err})
				continue
			}
			out.Matches = append(out.Matches, record)
		}
	}

	return out, skipped, nil
}

func buildMatchRecord(item map[string]any, league match.League) (match.Record, error) {
	home := shape.Child(item, "localteam")
	if home == nil {
		return match.Record{}, fmt.Errorf("localteam node missing")
	}
	away := shape.Child(item, "visitorteam")
	if away == nil {
		return match.Record{}, fmt.Errorf("visitorteam node missing")
	}

	rawStats := shape.String(shape.Child(item, "live_stats"), "@value")

	return match.Record{
		MatchID:       shape.String(item, "@id"),
		StaticID:      shape.String(item, "@static_id"),
		FixID:         shape.String(item, "@fix_id"),
		Status:        shape.String(item, "@status"),
		Timer:         shape.String(item, "@timer"),
		Date:          shape.String(item, "@formatted_date"),
		Time:          shape.String(item, "@time"),
		League:        league,
		HomeTeam:      buildTeam(home),
		AwayTeam:      buildTeam(away),
		HalftimeScore: shape.String(shape.Child(item, "ht"), "@score"),
		Stats:         match.StatsFrom(livestats.Decode(rawStats)),
		Events:        buildEvents(shape.Children(shape.Child(item, "events"), "event")),
	}, nil
}

func buildTeam(node map[string]any) match.Team {
	return match.Team{
		Name:  shape.String(node, "@name"),
		ID:    shape.String(node, "@id"),
		Goals: shape.Int(node["@goals"]),
	}
}

func buildEvents(items []map[string]any) []match.Event {
	out := make([]match.Event, 0, len(items))
	for _, item := range items {
		out = append(out, match.Event{
			Type:      shape.String(item, "@type"),
			Minute:    shape.String(item, "@minute"),
			ExtraMin:  shape.String(item, "@extra_min"),
			Team:      match.SideFromRaw(shape.String(item, "@team")),
			Player:    shape.String(item, "@player"),
			Result:    shape.String(item, "@result"),
			PlayerID:  shape.String(item, "@playerId"),
			Assist:    shape.String(item, "@assist"),
			AssistID:  shape.String(item, "@assistid"),
			Timestamp: shape.String(item, "@ts"),
		})
	}
	return out
}
