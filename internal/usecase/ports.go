package usecase

import (
	"context"

	"github.com/newnonsick/Football-APP-Backend/internal/domain/feed"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/match"
)

// MatchFeed is one fixtures snapshot: the normalized document and the typed
// view of each match in it, in document order.
type MatchFeed struct {
	Document feed.Document
	Matches  []match.Match
}

// FeedProvider fetches the current snapshot of each upstream resource.
type FeedProvider interface {
	FetchMatches(ctx context.Context) (MatchFeed, error)
	FetchStandings(ctx context.Context) (feed.Document, error)
	FetchScorers(ctx context.Context) (feed.Document, error)
	FetchTeams(ctx context.Context) (feed.Document, error)
}

// PlayerSearcher looks up extra profile data for a player by display name.
// A nil document with a nil error means no player matched.
type PlayerSearcher interface {
	SearchPlayer(ctx context.Context, name string) (feed.Document, error)
}

// Publisher pushes a payload to every realtime subscriber of topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// PushSender delivers one push notification to one device token.
type PushSender interface {
	Send(ctx context.Context, token, title, body string) error
}
