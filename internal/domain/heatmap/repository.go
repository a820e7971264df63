package heatmap

import "context"

// Source reads the per league heatmap commentary feed.
type Source interface {
	// FetchMatchHeatmap returns the heatmap entry for matchID; found is false
	// when the feed has no entry for it yet.
	FetchMatchHeatmap(ctx context.Context, leagueID, matchID string) (MatchHeatmap, bool, error)
}
