package usecase

import (
	"github.com/newnonsick/Football-APP-Backend/internal/domain/feed"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/match"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/snapshot"
)

// FixtureState is the accepted fixtures snapshot with the lists derived from it.
type FixtureState struct {
	Document feed.Document
	Matches  []match.Match
	Live     []match.Match
	Upcoming []match.Match
}

func (s FixtureState) SnapshotKey() any {
	return s.Document
}

// ScorerState keeps the normalized scorers document for comparison next to
// the enriched one that is served and published.
type ScorerState struct {
	Check    feed.Document
	Enriched feed.Document
}

func (s ScorerState) SnapshotKey() any {
	return s.Check
}

// State is the in-process cache of every polled resource, one store each.
type State struct {
	Fixtures  *snapshot.Store[FixtureState]
	Standings *snapshot.Store[feed.Document]
	Scorers   *snapshot.Store[ScorerState]
	Teams     *snapshot.Store[feed.Document]
}

func NewState() *State {
	return &State{
		Fixtures: snapshot.NewStore(FixtureState{
			Document: feed.Document{},
			Matches:  []match.Match{},
			Live:     []match.Match{},
			Upcoming: []match.Match{},
		}),
		Standings: snapshot.NewStore(feed.Document{}),
		Scorers:   snapshot.NewStore(ScorerState{Check: feed.Document{}, Enriched: feed.Document{}}),
		Teams:     snapshot.NewStore(feed.Document{}),
	}
}
