package subscription

import "context"

type Repository interface {
	ListFollowerUIDs(ctx context.Context, matchID int64) ([]string, error)
	// CreateIfAbsent keeps at most one subscription per (uid, match) and
	// reports whether a new one was stored.
	CreateIfAbsent(ctx context.Context, followed FollowedMatch) (bool, error)
}

type FavoriteRepository interface {
	ListUIDsByTeam(ctx context.Context, teamID int64) ([]string, error)
}
