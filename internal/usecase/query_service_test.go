package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/newnonsick/Football-APP-Backend/internal/domain/feed"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/match"
)

func TestParseTimezoneOffset(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		raw     string
		want    time.Duration
		wantErr bool
	}{
		{name: "utc", raw: DefaultTimezone, want: 0},
		{name: "positive", raw: "02:00:00", want: 2 * time.Hour},
		{name: "minutes and seconds", raw: "5:30:15", want: 5*time.Hour + 30*time.Minute + 15*time.Second},
		{name: "negative hours", raw: "-07:00:00", want: -7 * time.Hour},
		{name: "fraction ignored", raw: "1:00:00.999", want: time.Hour},
		{name: "padded parts", raw: " 3: 00:00", want: 3 * time.Hour},
		{name: "two parts", raw: "02:00", wantErr: true},
		{name: "four parts", raw: "1:2:3:4", wantErr: true},
		{name: "letters", raw: "ab:00:00", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "empty part", raw: "1::00", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseTimezoneOffset(tc.raw)
			if tc.wantErr {
				var verr *ValidationError
				if !errors.As(err, &verr) || verr.Message != "Invalid timezone format. Please use HH:MM:SS." {
					t.Fatalf("expected timezone validation error, got %v", err)
				}
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse %q: %v", tc.raw, err)
			}
			if got != tc.want {
				t.Fatalf("parse %q: got %s want %s", tc.raw, got, tc.want)
			}
		})
	}
}

func seededQueryService(t *testing.T, matches ...match.Match) *QueryService {
	t.Helper()
	state := NewState()
	f := feedOf(matches...)
	if _, err := state.Fixtures.ReplaceIfChanged(FixtureState{Document: f.Document, Matches: f.Matches}); err != nil {
		t.Fatalf("seed fixtures: %v", err)
	}
	return NewQueryService(state)
}

func TestQueryService_MatchesOnDate(t *testing.T) {
	t.Parallel()

	late := testMatch(2, match.StatusTimed, 0, 0)
	late.UTCDate = time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)
	early := testMatch(3, match.StatusTimed, 0, 0)
	early.UTCDate = time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)
	service := seededQueryService(t, late, early)

	got, err := service.MatchesOnDate(t.Context(), "2024-03-10", "02:00:00")
	if err != nil {
		t.Fatalf("matches on date: %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected only the match shifted onto the day, got %+v", got)
	}

	got, err = service.MatchesOnDate(t.Context(), "2024-03-10", DefaultTimezone)
	if err != nil {
		t.Fatalf("matches on date utc: %v", err)
	}
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("expected the utc match, got %+v", got)
	}

	got, err = service.MatchesOnDate(t.Context(), "2024-3-10", DefaultTimezone)
	if err != nil {
		t.Fatalf("matches on unpadded date: %v", err)
	}
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("expected unpadded date to match, got %+v", got)
	}
}

func TestQueryService_MatchesOnDateRejectsBadInput(t *testing.T) {
	t.Parallel()

	service := seededQueryService(t)

	_, err := service.MatchesOnDate(t.Context(), "10-03-2024", "0:00:00")
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Message != "Invalid date format. Please use YYYY-MM-DD." {
		t.Fatalf("expected date validation error, got %v", err)
	}

	_, err = service.MatchesOnDate(t.Context(), "10-03-2024", "bad")
	if !errors.As(err, &verr) || verr.Message != "Invalid timezone format. Please use HH:MM:SS." {
		t.Fatalf("expected timezone to be validated first, got %v", err)
	}
}

func TestQueryService_MatchesByIDKeepsSnapshotOrder(t *testing.T) {
	t.Parallel()

	service := seededQueryService(t,
		testMatch(10, match.StatusTimed, 0, 0),
		testMatch(11, match.StatusTimed, 0, 0),
		testMatch(12, match.StatusTimed, 0, 0),
	)

	got := service.MatchesByID(t.Context(), []int64{12, 10, 99})
	if len(got) != 2 || got[0].ID != 10 || got[1].ID != 12 {
		t.Fatalf("unexpected matches: %+v", got)
	}
}

func TestQueryService_EmptyBeforeFirstPoll(t *testing.T) {
	t.Parallel()

	service := NewQueryService(NewState())
	ctx := t.Context()

	if v := service.AllMatches(ctx); v.Value == nil || len(v.Value) != 0 || v.Version != 0 {
		t.Fatalf("expected empty document, got %+v", v)
	}
	if v := service.LiveMatches(ctx); v.Value == nil || len(v.Value) != 0 {
		t.Fatalf("expected empty live list, got %+v", v)
	}
	if v := service.UpcomingMatches(ctx); v.Value == nil || len(v.Value) != 0 {
		t.Fatalf("expected empty upcoming list, got %+v", v)
	}
	for name, v := range map[string]View[feed.Document]{
		"standings": service.Standings(ctx),
		"scorers":   service.TopScorers(ctx),
		"teams":     service.Teams(ctx),
	} {
		if v.Value == nil || len(v.Value) != 0 {
			t.Fatalf("expected empty %s document, got %+v", name, v)
		}
	}
	if got := service.MatchesByID(ctx, []int64{1}); got == nil || len(got) != 0 {
		t.Fatalf("expected empty match list, got %+v", got)
	}
}
