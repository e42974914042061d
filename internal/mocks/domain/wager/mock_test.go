package wagermock_test

import (
	"github.com/newnonsick/Football-APP-Backend/internal/domain/wager"
	wagermock "github.com/newnonsick/Football-APP-Backend/internal/mocks/domain/wager"
)

var _ wager.Repository = (*wagermock.Repository)(nil)
