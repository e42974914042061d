package matchmock_test

import (
	"github.com/newnonsick/Football-APP-Backend/internal/domain/match"
	matchmock "github.com/newnonsick/Football-APP-Backend/internal/mocks/domain/match"
)

var _ match.Repository = (*matchmock.Repository)(nil)
