package subscription

import "time"

// FollowedMatch links a user to a match they receive updates for.
type FollowedMatch struct {
	ID         string
	UID        string
	MatchID    int64
	ByUser     bool
	HomeTeamID int64
	AwayTeamID int64
	CreatedAt  time.Time
}

// FavoriteTeam marks a team whose matches a user follows automatically.
type FavoriteTeam struct {
	UID    string
	TeamID int64
}
