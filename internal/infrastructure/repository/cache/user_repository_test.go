package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	usermock "github.com/newnonsick/Football-APP-Backend/internal/mocks/domain/user"
	basecache "github.com/newnonsick/Football-APP-Backend/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

func TestUserRepository_ListFCMTokensIsCached(t *testing.T) {
	t.Parallel()

	next := usermock.NewRepository(t)
	next.On("ListFCMTokens", mock.Anything, "u1").Return([]string{"tok-1", "tok-2"}, nil).Once()

	repo := NewUserRepository(next, basecache.NewStore[[]string](time.Minute))

	for i := 0; i < 3; i++ {
		tokens, err := repo.ListFCMTokens(context.Background(), "u1")
		if err != nil {
			t.Fatalf("list tokens: %v", err)
		}
		if len(tokens) != 2 || tokens[0] != "tok-1" {
			t.Fatalf("unexpected tokens %v", tokens)
		}
		tokens[0] = "mutated"
	}
}

func TestUserRepository_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	next := usermock.NewRepository(t)
	next.On("ListFCMTokens", mock.Anything, "u1").Return(nil, errors.New("db down")).Once()
	next.On("ListFCMTokens", mock.Anything, "u1").Return([]string{"tok"}, nil).Once()

	repo := NewUserRepository(next, basecache.NewStore[[]string](time.Minute))

	if _, err := repo.ListFCMTokens(context.Background(), "u1"); err == nil {
		t.Fatalf("expected first lookup to fail")
	}
	tokens, err := repo.ListFCMTokens(context.Background(), "u1")
	if err != nil || len(tokens) != 1 {
		t.Fatalf("unexpected second lookup tokens=%v err=%v", tokens, err)
	}
}
