package usecase

import (
	"context"
	"fmt"

	"github.com/newnonsick/Football-APP-Backend/internal/domain/feed"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/logging"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/snapshot"
)

// DocumentFetcher fetches one upstream resource as a document.
type DocumentFetcher func(ctx context.Context) (feed.Document, error)

// DocumentSync polls a resource that is cached and broadcast as-is.
type DocumentSync struct {
	resource  feed.Resource
	fetch     DocumentFetcher
	store     *snapshot.Store[feed.Document]
	publisher Publisher
	topic     string
	logger    *logging.Logger
}

func NewDocumentSync(
	resource feed.Resource,
	fetch DocumentFetcher,
	store *snapshot.Store[feed.Document],
	publisher Publisher,
	topic string,
	logger *logging.Logger,
) *DocumentSync {
	if logger == nil {
		logger = logging.Default()
	}
	return &DocumentSync{
		resource:  resource,
		fetch:     fetch,
		store:     store,
		publisher: publisher,
		topic:     topic,
		logger:    logger.With("component", "document-sync", "resource", string(resource)),
	}
}

// NewStandingsSync caches and broadcasts the league table.
func NewStandingsSync(provider FeedProvider, state *State, publisher Publisher, logger *logging.Logger) *DocumentSync {
	return NewDocumentSync(feed.ResourceStandings, provider.FetchStandings, state.Standings, publisher, feed.TopicTable, logger)
}

// NewTeamsSync caches and broadcasts the competition's teams.
func NewTeamsSync(provider FeedProvider, state *State, publisher Publisher, logger *logging.Logger) *DocumentSync {
	return NewDocumentSync(feed.ResourceTeams, provider.FetchTeams, state.Teams, publisher, feed.TopicAllTeams, logger)
}

func (s *DocumentSync) Cycle(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DocumentSync.Cycle."+string(s.resource))
	defer span.End()

	doc, err := s.fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", s.resource, err)
	}

	changed, err := s.store.ReplaceIfChanged(doc)
	if err != nil {
		return fmt.Errorf("compare %s snapshot: %w", s.resource, err)
	}
	if !changed {
		return nil
	}

	if err := s.publisher.Publish(ctx, s.topic, doc); err != nil {
		s.logger.WarnContext(ctx, "publish snapshot failed", "topic", s.topic, "error", err)
	}
	return nil
}
