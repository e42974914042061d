package cache

import (
	"context"

	"github.com/newnonsick/Football-APP-Backend/internal/domain/user"
	basecache "github.com/newnonsick/Football-APP-Backend/internal/platform/cache"
)

// UserRepository caches FCM token lookups, which run once per follower on
// every notified event.
type UserRepository struct {
	next   user.Repository
	tokens *basecache.Store[[]string]
}

func NewUserRepository(next user.Repository, tokens *basecache.Store[[]string]) *UserRepository {
	return &UserRepository{next: next, tokens: tokens}
}

func (r *UserRepository) GetByUID(ctx context.Context, uid string) (user.User, bool, error) {
	return r.next.GetByUID(ctx, uid)
}

func (r *UserRepository) ListFCMTokens(ctx context.Context, uid string) ([]string, error) {
	tokens, err := r.tokens.GetOrLoad(ctx, "user:tokens:"+uid, func(ctx context.Context) ([]string, error) {
		items, err := r.next.ListFCMTokens(ctx, uid)
		if err != nil {
			return nil, err
		}
		return append([]string(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]string(nil), tokens...), nil
}
