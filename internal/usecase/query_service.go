package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/newnonsick/Football-APP-Backend/internal/domain/feed"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/match"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/snapshot"
)

// DefaultTimezone is used when a request carries no timezone at all.
const DefaultTimezone = "0:00:00"

const (
	dateLayout = "2006-1-2"

	msgInvalidTimezone = "Invalid timezone format. Please use HH:MM:SS."
	msgInvalidDate     = "Invalid date format. Please use YYYY-MM-DD."
)

// View is a read of one cached resource along with its store version.
type View[T any] struct {
	Value   T
	Version uint64
}

// QueryService serves the cached resources. It never touches the upstream
// or the persistent store.
type QueryService struct {
	state *State
}

func NewQueryService(state *State) *QueryService {
	return &QueryService{state: state}
}

func (s *QueryService) AllMatches(ctx context.Context) View[feed.Document] {
	entry := s.state.Fixtures.Entry()
	return View[feed.Document]{Value: nonNilDocument(entry.Value.Document), Version: entry.Version}
}

func (s *QueryService) LiveMatches(ctx context.Context) View[[]match.Match] {
	entry := s.state.Fixtures.Entry()
	return View[[]match.Match]{Value: nonNilMatches(entry.Value.Live), Version: entry.Version}
}

func (s *QueryService) UpcomingMatches(ctx context.Context) View[[]match.Match] {
	entry := s.state.Fixtures.Entry()
	return View[[]match.Match]{Value: nonNilMatches(entry.Value.Upcoming), Version: entry.Version}
}

// MatchesOnDate returns the fixtures whose kickoff, shifted by the timezone
// offset, falls on day. day is YYYY-MM-DD, month and day may be unpadded;
// timezone is [+-]H:MM:SS with any fractional part ignored.
func (s *QueryService) MatchesOnDate(ctx context.Context, day, timezone string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.MatchesOnDate")
	defer span.End()

	offset, err := ParseTimezoneOffset(timezone)
	if err != nil {
		return nil, err
	}
	date, err := time.Parse(dateLayout, strings.TrimSpace(day))
	if err != nil {
		return nil, invalidInput(msgInvalidDate)
	}

	out := make([]match.Match, 0)
	for _, m := range s.state.Fixtures.Get().Matches {
		if m.OnLocalDate(date, offset) {
			out = append(out, m)
		}
	}
	return out, nil
}

// MatchesByID returns the cached fixtures whose id is in ids, in snapshot order.
func (s *QueryService) MatchesByID(ctx context.Context, ids []int64) []match.Match {
	wanted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	out := make([]match.Match, 0, len(ids))
	for _, m := range s.state.Fixtures.Get().Matches {
		if _, ok := wanted[m.ID]; ok {
			out = append(out, m)
		}
	}
	return out
}

func (s *QueryService) Standings(ctx context.Context) View[feed.Document] {
	return documentView(s.state.Standings)
}

func (s *QueryService) Teams(ctx context.Context) View[feed.Document] {
	return documentView(s.state.Teams)
}

func (s *QueryService) TopScorers(ctx context.Context) View[feed.Document] {
	entry := s.state.Scorers.Entry()
	return View[feed.Document]{Value: nonNilDocument(entry.Value.Enriched), Version: entry.Version}
}

// ParseTimezoneOffset parses "H:MM:SS" (each part an optionally signed
// integer) into the sum of its parts. An empty value is invalid.
func ParseTimezoneOffset(raw string) (time.Duration, error) {
	if idx := strings.IndexByte(raw, '.'); idx >= 0 {
		raw = raw[:idx]
	}

	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return 0, invalidInput(msgInvalidTimezone)
	}

	var values [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 0, invalidInput(msgInvalidTimezone)
		}
		values[i] = n
	}

	return time.Duration(values[0])*time.Hour +
		time.Duration(values[1])*time.Minute +
		time.Duration(values[2])*time.Second, nil
}

func documentView(store *snapshot.Store[feed.Document]) View[feed.Document] {
	entry := store.Entry()
	return View[feed.Document]{Value: nonNilDocument(entry.Value), Version: entry.Version}
}

func nonNilDocument(doc feed.Document) feed.Document {
	if doc == nil {
		return feed.Document{}
	}
	return doc
}

func nonNilMatches(items []match.Match) []match.Match {
	if items == nil {
		return []match.Match{}
	}
	return items
}
