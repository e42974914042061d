package wager

import (
	"github.com/newnonsick/Football-APP-Backend/internal/domain/match"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/user"
)

// Checkpoint is the point in a match at which a guess is settled.
type Checkpoint string

const (
	CheckpointHalfTime Checkpoint = "halftime"
	CheckpointFullTime Checkpoint = "fulltime"

	// legacyHalfTime is the half-time spelling written by earlier clients.
	legacyHalfTime = "hafttime"
)

// ParseCheckpoint maps a stored choice to a Checkpoint, folding the legacy
// half-time spelling into CheckpointHalfTime.
func ParseCheckpoint(raw string) (Checkpoint, bool) {
	switch raw {
	case string(CheckpointHalfTime), legacyHalfTime:
		return CheckpointHalfTime, true
	case string(CheckpointFullTime):
		return CheckpointFullTime, true
	default:
		return Checkpoint(raw), false
	}
}

type Status string

const (
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// Guess is a staked prediction for a match at a checkpoint.
type Guess struct {
	ID         string
	UID        string
	MatchID    int64
	Checkpoint Checkpoint
	Predicted  match.Outcome
	Amount     int64
	Status     Status
}

// Settlement is the verdict for one guess.
type Settlement struct {
	GuessID string
	UID     string
	MatchID int64
	Correct bool
	Stake   int64
}

func Decide(g Guess, winner match.Outcome) Settlement {
	return Settlement{
		GuessID: g.ID,
		UID:     g.UID,
		MatchID: g.MatchID,
		Correct: g.Predicted == winner,
		Stake:   g.Amount,
	}
}

// Payout is double the stake for a correct guess, zero otherwise.
func (s Settlement) Payout() int64 {
	if !s.Correct {
		return 0
	}
	return s.Stake * 2
}

// Apply updates the user's balance and counters.
func (s Settlement) Apply(u *user.User) {
	if s.Correct {
		u.Coin += s.Payout()
		u.GuessedCorrect++
		u.CorrectStreak++
		return
	}
	u.GuessedWrong++
	u.CorrectStreak = 0
}
