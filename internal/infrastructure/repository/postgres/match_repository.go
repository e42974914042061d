package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/match"
	qb "github.com/newnonsick/Football-APP-Backend/internal/platform/querybuilder"
)

var matchColumns = []string{"id", "status", "home_score", "away_score", "home_team_id", "away_team_id", "created_at", "updated_at"}

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetRecord(ctx context.Context, id int64) (match.Record, bool, error) {
	query, args, err := qb.Select(matchColumns...).
		From("matches").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Record{}, false, fmt.Errorf("build get match record query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Record{}, false, nil
		}
		return match.Record{}, false, fmt.Errorf("get match record: %w", err)
	}

	return matchRecordFromRow(row), true, nil
}

func (r *MatchRepository) CreateRecord(ctx context.Context, record match.Record) (bool, error) {
	insertModel := matchInsertModel{
		ID:         record.ID,
		Status:     record.Status,
		HomeScore:  record.HomeScore,
		AwayScore:  record.AwayScore,
		HomeTeamID: record.HomeTeamID,
		AwayTeamID: record.AwayTeamID,
	}

	query, args, err := qb.InsertModel("matches", insertModel, "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		return false, fmt.Errorf("build insert match record query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("insert match record: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return false, fmt.Errorf("insert match record rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *MatchRepository) UpdateRecord(ctx context.Context, record match.Record) error {
	query, args, err := updateMatchRecordQuery(record)
	if err != nil {
		return fmt.Errorf("build update match record query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update match record: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return fmt.Errorf("update match record rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update match record: match %d not found", record.ID)
	}
	return nil
}

func updateMatchRecordQuery(record match.Record) (string, []any, error) {
	return qb.Update("matches").
		Set("status", record.Status).
		Set("home_score", record.HomeScore).
		Set("away_score", record.AwayScore).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", record.ID)).
		ToSQL()
}

func matchRecordFromRow(row matchTableModel) match.Record {
	return match.Record{
		ID:         row.ID,
		Status:     row.Status,
		HomeScore:  row.HomeScore,
		AwayScore:  row.AwayScore,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
