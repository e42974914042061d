package usecase

import (
	"errors"
	"testing"

	"github.com/newnonsick/Football-APP-Backend/internal/domain/feed"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/logging"
)

func TestDocumentSync_PublishesOnlyOnChange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		build func(FeedProvider, *State, Publisher) *DocumentSync
		set   func(*stubProvider, feed.Document)
		topic string
	}{
		{
			name:  "standings",
			build: func(p FeedProvider, s *State, pub Publisher) *DocumentSync { return NewStandingsSync(p, s, pub, logging.NewNop()) },
			set:   func(p *stubProvider, d feed.Document) { p.standings = d },
			topic: feed.TopicTable,
		},
		{
			name:  "teams",
			build: func(p FeedProvider, s *State, pub Publisher) *DocumentSync { return NewTeamsSync(p, s, pub, logging.NewNop()) },
			set:   func(p *stubProvider, d feed.Document) { p.teams = d },
			topic: feed.TopicAllTeams,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &stubProvider{}
			publisher := &recordingPublisher{}
			sync := tc.build(provider, NewState(), publisher)

			docs := []feed.Document{
				{"season": map[string]any{"id": 1}, "rows": []any{"a", "b"}},
				{"rows": []any{"a", "b"}, "season": map[string]any{"id": 1}},
				{"season": map[string]any{"id": 1}, "rows": []any{"b", "a"}},
			}
			for i, doc := range docs {
				tc.set(provider, doc)
				if err := sync.Cycle(t.Context()); err != nil {
					t.Fatalf("cycle %d: %v", i, err)
				}
			}

			if got := publisher.byTopic(tc.topic); len(got) != 2 {
				t.Fatalf("expected 2 broadcasts on %s, got %d", tc.topic, len(got))
			}
		})
	}
}

func TestDocumentSync_PublishFailureDoesNotFailCycle(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{standings: feed.Document{"a": 1}}
	publisher := &recordingPublisher{err: errors.New("broker down")}
	state := NewState()
	sync := NewStandingsSync(provider, state, publisher, logging.NewNop())

	if err := sync.Cycle(t.Context()); err != nil {
		t.Fatalf("expected publish failure to be logged only, got %v", err)
	}
	if state.Standings.Entry().Version != 1 {
		t.Fatalf("expected snapshot to be accepted")
	}
}
