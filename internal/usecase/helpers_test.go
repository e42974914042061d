package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/newnonsick/Football-APP-Backend/internal/domain/feed"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/match"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/subscription"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/user"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/wager"
	"github.com/newnonsick/Football-APP-Backend/internal/infrastructure/repository/memory"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/logging"
)

type published struct {
	Topic   string
	Payload any
}

type recordingPublisher struct {
	mu    sync.Mutex
	items []published
	err   error
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = append(p.items, published{Topic: topic, Payload: payload})
	return p.err
}

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.items))
	for _, item := range p.items {
		out = append(out, item.Topic)
	}
	return out
}

func (p *recordingPublisher) byTopic(topic string) []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []any
	for _, item := range p.items {
		if item.Topic == topic {
			out = append(out, item.Payload)
		}
	}
	return out
}

type sentPush struct {
	Token string
	Title string
	Body  string
}

type recordingSender struct {
	mu     sync.Mutex
	sent   []sentPush
	failOn map[string]bool
}

func (s *recordingSender) Send(_ context.Context, token, title, body string) error {
	if s.failOn[token] {
		return errors.New("unregistered token")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentPush{Token: token, Title: title, Body: body})
	return nil
}

func (s *recordingSender) all() []sentPush {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sentPush(nil), s.sent...)
}

// stubProvider serves the queued fixtures feeds one per call, repeating the last.
type stubProvider struct {
	mu        sync.Mutex
	feeds     []MatchFeed
	calls     int
	scorers   feed.Document
	standings feed.Document
	teams     feed.Document
	err       error
}

func (p *stubProvider) FetchMatches(context.Context) (MatchFeed, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return MatchFeed{}, p.err
	}
	idx := min(p.calls, len(p.feeds)-1)
	p.calls++
	return p.feeds[idx], nil
}

func (p *stubProvider) FetchStandings(context.Context) (feed.Document, error) {
	return p.standings, p.err
}

func (p *stubProvider) FetchScorers(context.Context) (feed.Document, error) {
	return p.scorers, p.err
}

func (p *stubProvider) FetchTeams(context.Context) (feed.Document, error) {
	return p.teams, p.err
}

type sequenceIDs struct {
	mu sync.Mutex
	n  int
}

func (g *sequenceIDs) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("follow-%d", g.n), nil
}

var kickoff = time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

func testMatch(id int64, status string, home, away int) match.Match {
	m := match.Match{
		ID:       id,
		UTCDate:  kickoff,
		Status:   status,
		HomeTeam: match.Team{ID: 57, Name: "Arsenal FC", ShortName: "Arsenal"},
		AwayTeam: match.Team{ID: 61, Name: "Chelsea FC", ShortName: "Chelsea"},
		Score:    match.Score{Home: home, Away: away},
	}
	m.Raw = map[string]any{
		"id":      id,
		"utcDate": kickoff.Format(time.RFC3339),
		"status":  status,
		"score": map[string]any{
			"fullTime": map[string]any{"home": home, "away": away},
		},
	}
	return m
}

func feedOf(matches ...match.Match) MatchFeed {
	raw := make([]any, 0, len(matches))
	for _, m := range matches {
		raw = append(raw, m.Raw)
	}
	return MatchFeed{
		Document: feed.Document{"matches": raw},
		Matches:  matches,
	}
}

// engine wires the poll pipeline over in-memory repositories.
type engine struct {
	matches   *memory.MatchRepository
	followed  *memory.SubscriptionRepository
	favorites *memory.FavoriteRepository
	users     *memory.UserRepository
	wagers    *memory.WagerRepository
	publisher *recordingPublisher
	sender    *recordingSender
	notifier  *Notifier
	state     *State
	provider  *stubProvider
	sync      *FixtureSync
}

func newEngine(t *testing.T, users []user.User, favorites []subscription.FavoriteTeam, guesses []wager.Guess) *engine {
	t.Helper()

	e := &engine{
		matches:   memory.NewMatchRepository(),
		followed:  memory.NewSubscriptionRepository(nil),
		favorites: memory.NewFavoriteRepository(favorites),
		users:     memory.NewUserRepository(users),
		publisher: &recordingPublisher{},
		sender:    &recordingSender{},
		state:     NewState(),
		provider:  &stubProvider{},
	}
	e.wagers = memory.NewWagerRepository(guesses, e.users)

	logger := logging.NewNop()
	notifier, err := NewNotifier(e.followed, e.users, e.sender, 4, logger)
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}
	t.Cleanup(notifier.Close)
	e.notifier = notifier

	settlement := NewSettlementService(e.wagers, e.publisher, logger)
	dispatcher := NewEventDispatcher(e.publisher, notifier, settlement, logger)
	tracker := NewMatchTracker(e.matches, e.followed, e.favorites, &sequenceIDs{}, dispatcher, logger)
	e.sync = NewFixtureSync(e.provider, e.state, tracker, e.publisher, FixtureSyncConfig{}, logger)
	e.sync.now = func() time.Time { return kickoff }
	return e
}

// poll runs one fixtures cycle over f and waits for notifications to go out.
func (e *engine) poll(t *testing.T, f MatchFeed) {
	t.Helper()
	e.provider.mu.Lock()
	e.provider.feeds = []MatchFeed{f}
	e.provider.calls = 0
	e.provider.mu.Unlock()

	if err := e.sync.Cycle(t.Context()); err != nil {
		t.Fatalf("fixture cycle: %v", err)
	}
	e.notifier.Drain()
}
