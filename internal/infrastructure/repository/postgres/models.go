package postgres

import (
	"time"

	"github.com/lib/pq"
)

type matchTableModel struct {
	ID         int64     `db:"id"`
	Status     string    `db:"status"`
	HomeScore  int       `db:"home_score"`
	AwayScore  int       `db:"away_score"`
	HomeTeamID int64     `db:"home_team_id"`
	AwayTeamID int64     `db:"away_team_id"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type matchInsertModel struct {
	ID         int64  `db:"id"`
	Status     string `db:"status"`
	HomeScore  int    `db:"home_score"`
	AwayScore  int    `db:"away_score"`
	HomeTeamID int64  `db:"home_team_id"`
	AwayTeamID int64  `db:"away_team_id"`
}

type followedMatchInsertModel struct {
	ID         string `db:"id"`
	UID        string `db:"uid"`
	MatchID    int64  `db:"match_id"`
	ByUser     bool   `db:"by_user"`
	HomeTeamID int64  `db:"home_team_id"`
	AwayTeamID int64  `db:"away_team_id"`
}

type guessTableModel struct {
	ID      string `db:"id"`
	UID     string `db:"uid"`
	MatchID int64  `db:"match_id"`
	Choice  string `db:"choice"`
	Result  string `db:"result"`
	Amount  int64  `db:"amount"`
	Status  string `db:"status"`
}

type userTableModel struct {
	UID            string         `db:"uid"`
	FCMTokens      pq.StringArray `db:"fcm_tokens"`
	Coin           int64          `db:"coin"`
	GuessedCorrect int64          `db:"guessed_correct"`
	GuessedWrong   int64          `db:"guessed_wrong"`
	CorrectStreak  int64          `db:"correct_streak"`
}
