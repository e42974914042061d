package usecase

import (
	"context"

	"github.com/newnonsick/Football-APP-Backend/internal/domain/feed"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/match"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/wager"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/logging"
)

// EventDispatcher performs the side effects of classified match events.
// Every side effect is best-effort: failures are logged and the rest still run.
type EventDispatcher struct {
	publisher  Publisher
	notifier   *Notifier
	settlement *SettlementService
	logger     *logging.Logger
}

func NewEventDispatcher(publisher Publisher, notifier *Notifier, settlement *SettlementService, logger *logging.Logger) *EventDispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	return &EventDispatcher{
		publisher:  publisher,
		notifier:   notifier,
		settlement: settlement,
		logger:     logger.With("component", "dispatcher"),
	}
}

func (d *EventDispatcher) Dispatch(ctx context.Context, events []match.Event) {
	for _, event := range events {
		d.dispatchOne(ctx, event)
	}
}

func (d *EventDispatcher) dispatchOne(ctx context.Context, event match.Event) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventDispatcher.Dispatch."+string(event.Kind))
	defer span.End()

	m := event.Match
	d.logger.InfoContext(ctx, "match event",
		"kind", string(event.Kind),
		"match_id", m.ID,
		"status", m.Status,
		"home_score", m.Score.Home,
		"away_score", m.Score.Away,
	)

	switch event.Kind {
	case match.EventMatchStarted:
		d.publishMatch(ctx, m)
		d.notifier.NotifyFollowers(ctx, m.ID, titleMatchStarted, fixtureText(m))
	case match.EventGoalScored:
		d.publishMatch(ctx, m)
		d.notifier.NotifyFollowers(ctx, m.ID, titleGoal, scoreText(m))
	case match.EventMatchFinished:
		d.publishMatch(ctx, m)
		d.notifier.NotifyFollowers(ctx, m.ID, titleMatchFinished, scoreText(m))
		d.settle(ctx, m.ID, wager.CheckpointFullTime, event.Winner())
	case match.EventHalfTimeReached:
		d.settle(ctx, m.ID, wager.CheckpointHalfTime, event.Winner())
	}
}

func (d *EventDispatcher) publishMatch(ctx context.Context, m match.Match) {
	if err := d.publisher.Publish(ctx, feed.MatchTopic(m.ID), m.UpdatePayload()); err != nil {
		d.logger.WarnContext(ctx, "publish match update failed", "match_id", m.ID, "error", err)
	}
}

func (d *EventDispatcher) settle(ctx context.Context, matchID int64, checkpoint wager.Checkpoint, winner match.Outcome) {
	if _, err := d.settlement.SettleCheckpoint(ctx, matchID, checkpoint, winner); err != nil {
		d.logger.WarnContext(ctx, "settle checkpoint failed",
			"match_id", matchID,
			"checkpoint", string(checkpoint),
			"error", err,
		)
	}
}
