package usecase

import (
	"context"
	"fmt"

	"github.com/newnonsick/Football-APP-Backend/internal/domain/feed"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/match"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/wager"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/logging"
)

type SettlementSummary struct {
	Settled int
	Correct int
	Skipped int
	Failed  int
}

type SettlementService struct {
	wagers    wager.Repository
	publisher Publisher
	logger    *logging.Logger
}

func NewSettlementService(wagers wager.Repository, publisher Publisher, logger *logging.Logger) *SettlementService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SettlementService{
		wagers:    wagers,
		publisher: publisher,
		logger:    logger.With("component", "settlement"),
	}
}

// SettleCheckpoint closes every active guess on matchID for checkpoint against winner.
// A guess that was already closed by someone else is skipped without touching the balance.
func (s *SettlementService) SettleCheckpoint(ctx context.Context, matchID int64, checkpoint wager.Checkpoint, winner match.Outcome) (SettlementSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.SettleCheckpoint")
	defer span.End()

	guesses, err := s.wagers.ListActive(ctx, matchID, checkpoint)
	if err != nil {
		return SettlementSummary{}, fmt.Errorf("list active guesses: %w", err)
	}

	var summary SettlementSummary
	for _, guess := range guesses {
		settlement := wager.Decide(guess, winner)

		applied, err := s.wagers.Settle(ctx, settlement)
		if err != nil {
			summary.Failed++
			s.logger.WarnContext(ctx, "settle guess failed",
				"match_id", matchID,
				"guess_id", guess.ID,
				"uid", guess.UID,
				"error", err,
			)
			continue
		}
		if !applied {
			summary.Skipped++
			continue
		}

		summary.Settled++
		if !settlement.Correct {
			continue
		}
		summary.Correct++

		update := feed.CoinUpdate{UID: settlement.UID, Amount: settlement.Payout()}
		if err := s.publisher.Publish(ctx, feed.TopicCoin, update); err != nil {
			s.logger.WarnContext(ctx, "publish coin update failed", "uid", settlement.UID, "error", err)
		}
	}

	s.logger.InfoContext(ctx, "checkpoint settled",
		"match_id", matchID,
		"checkpoint", string(checkpoint),
		"winner", string(winner),
		"settled", summary.Settled,
		"correct", summary.Correct,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
	return summary, nil
}
