package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/newnonsick/Football-APP-Backend/internal/domain/subscription"
)

type followKey struct {
	uid     string
	matchID int64
}

type SubscriptionRepository struct {
	mu       sync.RWMutex
	followed map[followKey]subscription.FollowedMatch
	now      func() time.Time
}

func NewSubscriptionRepository(items []subscription.FollowedMatch) *SubscriptionRepository {
	followed := make(map[followKey]subscription.FollowedMatch, len(items))
	for _, item := range items {
		followed[followKey{uid: item.UID, matchID: item.MatchID}] = item
	}
	return &SubscriptionRepository{followed: followed, now: time.Now}
}

func (r *SubscriptionRepository) ListFollowerUIDs(_ context.Context, matchID int64) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0)
	for key := range r.followed {
		if key.matchID == matchID {
			out = append(out, key.uid)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *SubscriptionRepository) CreateIfAbsent(_ context.Context, followed subscription.FollowedMatch) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := followKey{uid: followed.UID, matchID: followed.MatchID}
	if _, exists := r.followed[key]; exists {
		return false, nil
	}
	if followed.CreatedAt.IsZero() {
		followed.CreatedAt = r.now().UTC()
	}
	r.followed[key] = followed
	return true, nil
}

// List returns every stored subscription ordered by match and user.
func (r *SubscriptionRepository) List() []subscription.FollowedMatch {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]subscription.FollowedMatch, 0, len(r.followed))
	for _, item := range r.followed {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MatchID != out[j].MatchID {
			return out[i].MatchID < out[j].MatchID
		}
		return out[i].UID < out[j].UID
	})
	return out
}

type FavoriteRepository struct {
	mu     sync.RWMutex
	byTeam map[int64][]string
}

func NewFavoriteRepository(items []subscription.FavoriteTeam) *FavoriteRepository {
	r := &FavoriteRepository{byTeam: make(map[int64][]string)}
	for _, item := range items {
		r.Add(item)
	}
	return r
}

func (r *FavoriteRepository) Add(item subscription.FavoriteTeam) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, uid := range r.byTeam[item.TeamID] {
		if uid == item.UID {
			return
		}
	}
	r.byTeam[item.TeamID] = append(r.byTeam[item.TeamID], item.UID)
}

func (r *FavoriteRepository) ListUIDsByTeam(_ context.Context, teamID int64) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byTeam[teamID]
	out := make([]string, 0, len(items))
	out = append(out, items...)
	return out, nil
}
