package usecase

import (
	"context"
	"fmt"

	"github.com/newnonsick/Football-APP-Backend/internal/domain/feed"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const defaultEnrichConcurrency = 4

// ScorerSync polls the top scorers and, for a changed list, attaches each
// player's profile under "moreInfo" before caching and broadcasting it.
type ScorerSync struct {
	provider    FeedProvider
	players     PlayerSearcher
	state       *State
	publisher   Publisher
	concurrency int
	logger      *logging.Logger
}

// NewScorerSync builds the scorers cycle. players may be nil to skip enrichment.
func NewScorerSync(
	provider FeedProvider,
	players PlayerSearcher,
	state *State,
	publisher Publisher,
	concurrency int,
	logger *logging.Logger,
) *ScorerSync {
	if logger == nil {
		logger = logging.Default()
	}
	if concurrency <= 0 {
		concurrency = defaultEnrichConcurrency
	}
	return &ScorerSync{
		provider:    provider,
		players:     players,
		state:       state,
		publisher:   publisher,
		concurrency: concurrency,
		logger:      logger.With("component", "scorer-sync"),
	}
}

func (s *ScorerSync) Cycle(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScorerSync.Cycle")
	defer span.End()

	doc, err := s.provider.FetchScorers(ctx)
	if err != nil {
		return fmt.Errorf("fetch scorers: %w", err)
	}

	// Enrichment is slow; skip it when the comparison key has not moved.
	differs, err := s.state.Scorers.Differs(ScorerState{Check: doc})
	if err != nil {
		return fmt.Errorf("compare scorers snapshot: %w", err)
	}
	if !differs {
		return nil
	}

	enriched := s.enrich(ctx, doc)
	changed, err := s.state.Scorers.ReplaceIfChanged(ScorerState{Check: doc, Enriched: enriched})
	if err != nil {
		return fmt.Errorf("compare scorers snapshot: %w", err)
	}
	if !changed {
		return nil
	}

	if err := s.publisher.Publish(ctx, feed.TopicTopScorers, enriched); err != nil {
		s.logger.WarnContext(ctx, "publish top scorers failed", "error", err)
	}
	return nil
}

// enrich returns a copy of doc whose scorers carry "moreInfo". doc itself and
// the nested objects it shares with the copy are left untouched.
func (s *ScorerSync) enrich(ctx context.Context, doc feed.Document) feed.Document {
	out := make(feed.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}

	scorers, ok := doc["scorers"].([]any)
	if !ok || s.players == nil {
		return out
	}

	enriched := make([]any, len(scorers))
	p := pool.New().WithMaxGoroutines(s.concurrency)
	for i, item := range scorers {
		scorer, ok := item.(map[string]any)
		if !ok {
			enriched[i] = item
			continue
		}

		copied := make(map[string]any, len(scorer)+1)
		for k, v := range scorer {
			copied[k] = v
		}
		enriched[i] = copied

		p.Go(func() {
			copied["moreInfo"] = s.lookup(ctx, playerName(scorer))
		})
	}
	p.Wait()

	out["scorers"] = enriched
	return out
}

func (s *ScorerSync) lookup(ctx context.Context, name string) any {
	if name == "" {
		return nil
	}
	info, err := s.players.SearchPlayer(ctx, name)
	if err != nil {
		s.logger.WarnContext(ctx, "player lookup failed", "player", name, "error", err)
		return nil
	}
	if info == nil {
		return nil
	}
	return info
}

func playerName(scorer map[string]any) string {
	player, _ := scorer["player"].(map[string]any)
	name, _ := player["name"].(string)
	return name
}
