package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/subscription"
	qb "github.com/newnonsick/Football-APP-Backend/internal/platform/querybuilder"
)

type SubscriptionRepository struct {
	db *sqlx.DB
}

func NewSubscriptionRepository(db *sqlx.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) ListFollowerUIDs(ctx context.Context, matchID int64) ([]string, error) {
	query, args, err := qb.Select("uid").
		From("followed_matches").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("uid").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list followers query: %w", err)
	}

	uids := make([]string, 0)
	if err := r.db.SelectContext(ctx, &uids, query, args...); err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return uids, nil
}

func (r *SubscriptionRepository) CreateIfAbsent(ctx context.Context, followed subscription.FollowedMatch) (bool, error) {
	insertModel := followedMatchInsertModel{
		ID:         followed.ID,
		UID:        followed.UID,
		MatchID:    followed.MatchID,
		ByUser:     followed.ByUser,
		HomeTeamID: followed.HomeTeamID,
		AwayTeamID: followed.AwayTeamID,
	}

	query, args, err := qb.InsertModel("followed_matches", insertModel, "ON CONFLICT (uid, match_id) DO NOTHING")
	if err != nil {
		return false, fmt.Errorf("build insert followed match query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert followed match: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return false, fmt.Errorf("insert followed match rows affected: %w", err)
	}
	return n > 0, nil
}

type FavoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) ListUIDsByTeam(ctx context.Context, teamID int64) ([]string, error) {
	query, args, err := qb.Select("uid").
		From("favorited_teams").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("uid").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list favorite team users query: %w", err)
	}

	uids := make([]string, 0)
	if err := r.db.SelectContext(ctx, &uids, query, args...); err != nil {
		return nil, fmt.Errorf("list favorite team users: %w", err)
	}
	return uids, nil
}
