package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/match"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/wager"
	qb "github.com/newnonsick/Football-APP-Backend/internal/platform/querybuilder"
)

type WagerRepository struct {
	db *sqlx.DB
}

func NewWagerRepository(db *sqlx.DB) *WagerRepository {
	return &WagerRepository{db: db}
}

func (r *WagerRepository) ListActive(ctx context.Context, matchID int64, checkpoint wager.Checkpoint) ([]wager.Guess, error) {
	query, args, err := qb.Select("id", "uid", "match_id", "choice", "result", "amount", "status").
		From("guesses").
		Where(
			qb.Eq("match_id", matchID),
			qb.Eq("choice", string(checkpoint)),
			qb.Eq("status", string(wager.StatusActive)),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list active guesses query: %w", err)
	}

	var rows []guessTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list active guesses: %w", err)
	}

	out := make([]wager.Guess, 0, len(rows))
	for _, row := range rows {
		out = append(out, guessFromRow(row))
	}
	return out, nil
}

// Settle locks the guess row, and only while it is still active flips it to
// finished and applies the user counters, all in one transaction.
func (r *WagerRepository) Settle(ctx context.Context, settlement wager.Settlement) (applied bool, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin settle transaction: %w", err)
	}
	defer func() {
		if !applied || err != nil {
			_ = tx.Rollback()
		}
	}()

	lockQuery, lockArgs, err := lockActiveGuessQuery(settlement.GuessID)
	if err != nil {
		return false, fmt.Errorf("build lock guess query: %w", err)
	}
	var row guessTableModel
	if err := tx.GetContext(ctx, &row, lockQuery, lockArgs...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("lock guess: %w", err)
	}

	finishQuery, finishArgs, err := qb.Update("guesses").
		Set("status", string(wager.StatusFinished)).
		Where(qb.Eq("id", row.ID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build finish guess query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, finishQuery, finishArgs...); err != nil {
		return false, fmt.Errorf("finish guess: %w", err)
	}

	userQuery, userArgs, err := settleUserQuery(row.UID, settlement.Correct, row.Amount)
	if err != nil {
		return false, fmt.Errorf("build settle user query: %w", err)
	}
	res, err := tx.ExecContext(ctx, userQuery, userArgs...)
	if err != nil {
		return false, fmt.Errorf("settle user: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return false, fmt.Errorf("settle user rows affected: %w", err)
	}
	if n == 0 {
		return false, fmt.Errorf("settle user: user %s not found", row.UID)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit settle transaction: %w", err)
	}
	return true, nil
}

func lockActiveGuessQuery(guessID string) (string, []any, error) {
	return qb.Select("id", "uid", "match_id", "choice", "result", "amount", "status").
		From("guesses").
		Where(qb.Eq("id", guessID), qb.Eq("status", string(wager.StatusActive))).
		ForUpdate().
		ToSQL()
}

func settleUserQuery(uid string, correct bool, stake int64) (string, []any, error) {
	b := qb.Update("users")
	if correct {
		b = b.SetExpr("coin", "coin + ?", stake*2).
			SetExpr("guessed_correct", "guessed_correct + 1").
			SetExpr("correct_streak", "correct_streak + 1")
	} else {
		b = b.SetExpr("guessed_wrong", "guessed_wrong + 1").
			Set("correct_streak", 0)
	}
	return b.Where(qb.Eq("uid", uid)).ToSQL()
}

func guessFromRow(row guessTableModel) wager.Guess {
	checkpoint, _ := wager.ParseCheckpoint(row.Choice)
	return wager.Guess{
		ID:         row.ID,
		UID:        row.UID,
		MatchID:    row.MatchID,
		Checkpoint: checkpoint,
		Predicted:  match.Outcome(row.Result),
		Amount:     row.Amount,
		Status:     wager.Status(row.Status),
	}
}
