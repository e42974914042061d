package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/user"
	qb "github.com/newnonsick/Football-APP-Backend/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByUID(ctx context.Context, uid string) (user.User, bool, error) {
	query, args, err := qb.Select("uid", "fcm_tokens", "coin", "guessed_correct", "guessed_wrong", "correct_streak").
		From("users").
		Where(qb.Eq("uid", uid)).
		Limit(1).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user: %w", err)
	}
	return userFromRow(row), true, nil
}

func (r *UserRepository) ListFCMTokens(ctx context.Context, uid string) ([]string, error) {
	query, args, err := qb.Select("fcm_tokens").
		From("users").
		Where(qb.Eq("uid", uid)).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fcm tokens query: %w", err)
	}

	var tokens pq.StringArray
	if err := r.db.GetContext(ctx, &tokens, query, args...); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list fcm tokens: %w", err)
	}
	return []string(tokens), nil
}

func userFromRow(row userTableModel) user.User {
	return user.User{
		UID:            row.UID,
		FCMTokens:      []string(row.FCMTokens),
		Coin:           row.Coin,
		GuessedCorrect: row.GuessedCorrect,
		GuessedWrong:   row.GuessedWrong,
		CorrectStreak:  row.CorrectStreak,
	}
}
