package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/newnonsick/Football-APP-Backend/internal/domain/subscription"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/user"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/logging"
	"github.com/panjf2000/ants/v2"
)

const (
	defaultNotifyWorkers = 64
	sendTimeout          = 10 * time.Second
)

// Notifier pushes match notifications to every device of every follower.
// Sends run on a shared worker pool and never block the caller on delivery.
type Notifier struct {
	followers subscription.Repository
	users     user.Repository
	sender    PushSender
	logger    *logging.Logger

	pool     *ants.Pool
	inflight sync.WaitGroup
}

func NewNotifier(
	followers subscription.Repository,
	users user.Repository,
	sender PushSender,
	workers int,
	logger *logging.Logger,
) (*Notifier, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultNotifyWorkers
	}
	logger = logger.With("component", "notifier")

	pool, err := ants.NewPool(workers, ants.WithPanicHandler(func(rec any) {
		logger.Error("notification task panic", "panic", fmt.Sprint(rec))
	}))
	if err != nil {
		return nil, fmt.Errorf("create notification pool: %w", err)
	}

	return &Notifier{
		followers: followers,
		users:     users,
		sender:    sender,
		logger:    logger,
		pool:      pool,
	}, nil
}

// NotifyFollowers resolves the followers of matchID and queues one send per
// device token. Lookup failures are logged per user.
func (n *Notifier) NotifyFollowers(ctx context.Context, matchID int64, title, body string) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Notifier.NotifyFollowers")
	defer span.End()

	uids, err := n.followers.ListFollowerUIDs(ctx, matchID)
	if err != nil {
		n.logger.WarnContext(ctx, "list match followers failed", "match_id", matchID, "error", err)
		return
	}

	sendCtx := context.WithoutCancel(ctx)
	for _, uid := range uids {
		tokens, err := n.users.ListFCMTokens(ctx, uid)
		if err != nil {
			n.logger.WarnContext(ctx, "list fcm tokens failed", "match_id", matchID, "uid", uid, "error", err)
			continue
		}
		for _, token := range tokens {
			n.submit(sendCtx, matchID, token, title, body)
		}
	}
}

func (n *Notifier) submit(ctx context.Context, matchID int64, token, title, body string) {
	n.inflight.Add(1)
	err := n.pool.Submit(func() {
		defer n.inflight.Done()

		sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
		defer cancel()
		if err := n.sender.Send(sendCtx, token, title, body); err != nil {
			n.logger.WarnContext(ctx, "send notification failed", "match_id", matchID, "title", title, "error", err)
		}
	})
	if err != nil {
		n.inflight.Done()
		n.logger.WarnContext(ctx, "submit notification failed", "match_id", matchID, "error", err)
	}
}

// Drain waits until every queued send has finished.
func (n *Notifier) Drain() {
	n.inflight.Wait()
}

// Close drains pending sends and releases the pool.
func (n *Notifier) Close() {
	n.Drain()
	n.pool.Release()
}
