package usermock_test

import (
	"github.com/newnonsick/Football-APP-Backend/internal/domain/user"
	usermock "github.com/newnonsick/Football-APP-Backend/internal/mocks/domain/user"
)

var _ user.Repository = (*usermock.Repository)(nil)
