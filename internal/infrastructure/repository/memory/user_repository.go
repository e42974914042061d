package memory

import (
	"context"
	"sync"

	"github.com/newnonsick/Football-APP-Backend/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]user.User
}

func NewUserRepository(items []user.User) *UserRepository {
	users := make(map[string]user.User, len(items))
	for _, item := range items {
		users[item.UID] = cloneUser(item)
	}
	return &UserRepository{users: users}
}

func (r *UserRepository) GetByUID(_ context.Context, uid string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.users[uid]
	if !ok {
		return user.User{}, false, nil
	}
	return cloneUser(item), true, nil
}

func (r *UserRepository) ListFCMTokens(_ context.Context, uid string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.users[uid]
	if !ok {
		return nil, nil
	}
	return append([]string(nil), item.FCMTokens...), nil
}

// Put inserts or replaces a user.
func (r *UserRepository) Put(item user.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[item.UID] = cloneUser(item)
}

func (r *UserRepository) update(uid string, fn func(*user.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.users[uid]
	if !ok {
		return errRecordNotFound("user", uid)
	}
	fn(&item)
	r.users[uid] = item
	return nil
}

func cloneUser(item user.User) user.User {
	item.FCMTokens = append([]string(nil), item.FCMTokens...)
	return item
}
