package app

import (
	"context"
	"fmt"

	"github.com/newnonsick/Football-APP-Backend/internal/config"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/match"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/subscription"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/user"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/wager"
	cacherepo "github.com/newnonsick/Football-APP-Backend/internal/infrastructure/repository/cache"
	memoryrepo "github.com/newnonsick/Football-APP-Backend/internal/infrastructure/repository/memory"
	postgresrepo "github.com/newnonsick/Football-APP-Backend/internal/infrastructure/repository/postgres"
	basecache "github.com/newnonsick/Football-APP-Backend/internal/platform/cache"
)

type repositories struct {
	matches   match.Repository
	followed  subscription.Repository
	favorites subscription.FavoriteRepository
	users     user.Repository
	wagers    wager.Repository
}

func (a *App) openRepositories(ctx context.Context) (repositories, error) {
	var repos repositories

	switch a.cfg.StoreDriver {
	case config.StoreDriverMemory:
		users := memoryrepo.NewUserRepository(nil)
		repos = repositories{
			matches:   memoryrepo.NewMatchRepository(),
			followed:  memoryrepo.NewSubscriptionRepository(nil),
			favorites: memoryrepo.NewFavoriteRepository(nil),
			users:     users,
			wagers:    memoryrepo.NewWagerRepository(nil, users),
		}
		a.logger.Info("using in-memory store")
	case config.StoreDriverPostgres:
		db, err := openPostgres(ctx, a.cfg)
		if err != nil {
			return repositories{}, err
		}
		a.addCloser("postgres", db.Close)
		repos = repositories{
			matches:   postgresrepo.NewMatchRepository(db),
			followed:  postgresrepo.NewSubscriptionRepository(db),
			favorites: postgresrepo.NewFavoriteRepository(db),
			users:     postgresrepo.NewUserRepository(db),
			wagers:    postgresrepo.NewWagerRepository(db),
		}
		a.logger.Info("using postgres store", "db_name", dbNameFromURL(a.cfg.DBURL))
	default:
		return repositories{}, fmt.Errorf("unsupported store driver %q", a.cfg.StoreDriver)
	}

	if a.cfg.CacheEnabled {
		repos.users = cacherepo.NewUserRepository(repos.users, basecache.NewStore[[]string](a.cfg.CacheTTL))
	}

	return repos, nil
}
