package match

import "context"

// FeedKind selects which scoreboard feed to read.
type FeedKind string

const (
	FeedLive  FeedKind = "live"
	FeedToday FeedKind = "home"
)

// Source reads the live and today scoreboard feeds.
type Source interface {
	FetchMatchFeed(ctx context.Context, kind FeedKind) (Feed, error)
}
