package wager

import "context"

type Repository interface {
	ListActive(ctx context.Context, matchID int64, checkpoint Checkpoint) ([]Guess, error)
	// Settle marks the guess finished and applies the user counters in one
	// unit. It returns false without changing anything when the guess is no
	// longer active.
	Settle(ctx context.Context, settlement Settlement) (bool, error)
}
