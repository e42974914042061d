package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/newnonsick/Football-APP-Backend/internal/domain/match"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/subscription"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/id"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/logging"
)

// MatchTracker reconciles one match from an accepted snapshot with its
// persisted record and dispatches the transitions between them.
type MatchTracker struct {
	matches    match.Repository
	followed   subscription.Repository
	favorites  subscription.FavoriteRepository
	ids        id.Generator
	dispatcher *EventDispatcher
	now        func() time.Time
	logger     *logging.Logger
}

func NewMatchTracker(
	matches match.Repository,
	followed subscription.Repository,
	favorites subscription.FavoriteRepository,
	ids id.Generator,
	dispatcher *EventDispatcher,
	logger *logging.Logger,
) *MatchTracker {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchTracker{
		matches:    matches,
		followed:   followed,
		favorites:  favorites,
		ids:        ids,
		dispatcher: dispatcher,
		now:        time.Now,
		logger:     logger.With("component", "match-tracker"),
	}
}

// Track records a first sighting or classifies the change since the record.
// The record is written before any event is dispatched; when the write fails
// nothing is dispatched and the same transition is found again next time.
func (t *MatchTracker) Track(ctx context.Context, m match.Match) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchTracker.Track")
	defer span.End()

	record, exists, err := t.matches.GetRecord(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("get match record %d: %w", m.ID, err)
	}
	if !exists {
		return t.observe(ctx, m)
	}

	if record.Status == m.Status && record.Score() == m.Score {
		return nil
	}

	events := match.Classify(record, m)
	next := record.Advance(m)
	next.UpdatedAt = t.now().UTC()
	if err := t.matches.UpdateRecord(ctx, next); err != nil {
		return fmt.Errorf("update match record %d: %w", m.ID, err)
	}

	t.dispatcher.Dispatch(ctx, events)
	return nil
}

func (t *MatchTracker) observe(ctx context.Context, m match.Match) error {
	record := match.NewRecord(m)
	record.CreatedAt = t.now().UTC()
	record.UpdatedAt = record.CreatedAt

	created, err := t.matches.CreateRecord(ctx, record)
	if err != nil {
		return fmt.Errorf("create match record %d: %w", m.ID, err)
	}
	if !created {
		return nil
	}

	t.logger.InfoContext(ctx, "match first observed", "match_id", m.ID, "status", m.Status)
	t.autoFollow(ctx, m)
	return nil
}

// autoFollow subscribes every user whose favourite team plays in m.
func (t *MatchTracker) autoFollow(ctx context.Context, m match.Match) {
	for _, teamID := range []int64{m.HomeTeam.ID, m.AwayTeam.ID} {
		if teamID == 0 {
			continue
		}
		uids, err := t.favorites.ListUIDsByTeam(ctx, teamID)
		if err != nil {
			t.logger.WarnContext(ctx, "list team followers failed", "match_id", m.ID, "team_id", teamID, "error", err)
			continue
		}
		for _, uid := range uids {
			t.follow(ctx, m, uid)
		}
	}
}

func (t *MatchTracker) follow(ctx context.Context, m match.Match, uid string) {
	followID, err := t.ids.NewID()
	if err != nil {
		t.logger.WarnContext(ctx, "generate follow id failed", "match_id", m.ID, "uid", uid, "error", err)
		return
	}

	created, err := t.followed.CreateIfAbsent(ctx, subscription.FollowedMatch{
		ID:         followID,
		UID:        uid,
		MatchID:    m.ID,
		ByUser:     false,
		HomeTeamID: m.HomeTeam.ID,
		AwayTeamID: m.AwayTeam.ID,
		CreatedAt:  t.now().UTC(),
	})
	if err != nil {
		t.logger.WarnContext(ctx, "auto follow failed", "match_id", m.ID, "uid", uid, "error", err)
		return
	}
	if created {
		t.logger.DebugContext(ctx, "auto followed match", "match_id", m.ID, "uid", uid)
	}
}
