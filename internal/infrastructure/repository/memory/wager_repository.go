package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/newnonsick/Football-APP-Backend/internal/domain/user"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/wager"
)

type WagerRepository struct {
	mu      sync.Mutex
	guesses map[string]wager.Guess
	users   *UserRepository
}

func NewWagerRepository(items []wager.Guess, users *UserRepository) *WagerRepository {
	guesses := make(map[string]wager.Guess, len(items))
	for _, item := range items {
		guesses[item.ID] = item
	}
	return &WagerRepository{guesses: guesses, users: users}
}

func (r *WagerRepository) ListActive(_ context.Context, matchID int64, checkpoint wager.Checkpoint) ([]wager.Guess, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]wager.Guess, 0)
	for _, item := range r.guesses {
		if item.MatchID == matchID && item.Checkpoint == checkpoint && item.Status == wager.StatusActive {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *WagerRepository) Settle(_ context.Context, settlement wager.Settlement) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.guesses[settlement.GuessID]
	if !ok {
		return false, errRecordNotFound("guess", settlement.GuessID)
	}
	if item.Status != wager.StatusActive {
		return false, nil
	}

	if err := r.users.update(settlement.UID, func(u *user.User) { settlement.Apply(u) }); err != nil {
		return false, err
	}
	item.Status = wager.StatusFinished
	r.guesses[item.ID] = item
	return true, nil
}

// Get returns a guess by id.
func (r *WagerRepository) Get(id string) (wager.Guess, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.guesses[id]
	return item, ok
}
