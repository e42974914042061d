package user

import "context"

type Repository interface {
	GetByUID(ctx context.Context, uid string) (User, bool, error)
	ListFCMTokens(ctx context.Context, uid string) ([]string, error)
}
