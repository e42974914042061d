package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/newnonsick/Football-APP-Backend/internal/domain/feed"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/match"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/logging"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/snapshot"
)

type FixtureSyncConfig struct {
	WindowDays   int
	FallbackSize int
}

// FixtureSync runs one fixtures poll cycle: fetch, gate on change, derive the
// live and upcoming lists, then track and broadcast whichever list changed.
type FixtureSync struct {
	provider  FeedProvider
	state     *State
	tracker   *MatchTracker
	publisher Publisher
	cfg       FixtureSyncConfig
	now       func() time.Time
	logger    *logging.Logger
}

func NewFixtureSync(
	provider FeedProvider,
	state *State,
	tracker *MatchTracker,
	publisher Publisher,
	cfg FixtureSyncConfig,
	logger *logging.Logger,
) *FixtureSync {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = match.DefaultWindowDays
	}
	if cfg.FallbackSize <= 0 {
		cfg.FallbackSize = match.DefaultFallbackSize
	}
	return &FixtureSync{
		provider:  provider,
		state:     state,
		tracker:   tracker,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
		logger:    logger.With("component", "fixture-sync"),
	}
}

func (s *FixtureSync) Cycle(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureSync.Cycle")
	defer span.End()

	current, err := s.provider.FetchMatches(ctx)
	if err != nil {
		return fmt.Errorf("fetch matches: %w", err)
	}

	live, upcoming := match.Partition(current.Matches, match.WindowAt(s.now(), s.cfg.WindowDays), s.cfg.FallbackSize)
	prev := s.state.Fixtures.Get()

	changed, err := s.state.Fixtures.ReplaceIfChanged(FixtureState{
		Document: current.Document,
		Matches:  current.Matches,
		Live:     live,
		Upcoming: upcoming,
	})
	if err != nil {
		return fmt.Errorf("compare fixtures snapshot: %w", err)
	}
	if !changed {
		return nil
	}

	s.logger.DebugContext(ctx, "fixtures snapshot accepted",
		"matches", len(current.Matches),
		"live", len(live),
		"upcoming", len(upcoming),
	)

	if err := s.syncList(ctx, prev.Live, live, feed.TopicLiveMatches); err != nil {
		return err
	}
	return s.syncList(ctx, prev.Upcoming, upcoming, feed.TopicUpcomingMatches)
}

// syncList tracks every match of a changed list, then broadcasts the whole list.
func (s *FixtureSync) syncList(ctx context.Context, prev, next []match.Match, topic string) error {
	same, err := snapshot.Equal(prev, next)
	if err != nil {
		return fmt.Errorf("compare %s: %w", topic, err)
	}
	if same {
		return nil
	}

	for _, m := range next {
		if err := s.tracker.Track(ctx, m); err != nil {
			s.logger.WarnContext(ctx, "track match failed", "match_id", m.ID, "error", err)
		}
	}

	if err := s.publisher.Publish(ctx, topic, next); err != nil {
		s.logger.WarnContext(ctx, "publish match list failed", "topic", topic, "error", err)
	}
	return nil
}
