package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/match"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/wager"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches pq unique violation", func(t *testing.T) {
		err := fmt.Errorf("insert followed match: %w", &pq.Error{Code: "23505"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for wrapped 23505")
		}
	})

	t.Run("ignores other pq errors", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "42P01"}) {
			t.Fatalf("expected false for undefined table")
		}
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		if isUniqueViolation(fakeErr("pq: duplicate key value")) {
			t.Fatalf("expected false for non pq error")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get user: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("boom")) {
		t.Fatalf("expected unrelated error to be found")
	}
}

func TestSettleUserQuery(t *testing.T) {
	tests := []struct {
		name      string
		correct   bool
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "correct guess pays double",
			correct:   true,
			wantQuery: "UPDATE users SET coin = coin + $1, guessed_correct = guessed_correct + 1, correct_streak = correct_streak + 1 WHERE uid = $2",
			wantArgs:  []any{int64(100), "u1"},
		},
		{
			name:      "wrong guess resets streak",
			correct:   false,
			wantQuery: "UPDATE users SET guessed_wrong = guessed_wrong + 1, correct_streak = $1 WHERE uid = $2",
			wantArgs:  []any{0, "u1"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			query, args, err := settleUserQuery("u1", tc.correct, 50)
			if err != nil {
				t.Fatalf("build query: %v", err)
			}
			if query != tc.wantQuery {
				t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", tc.wantQuery, query)
			}
			if len(args) != len(tc.wantArgs) {
				t.Fatalf("unexpected args: %+v", args)
			}
			for i := range args {
				if args[i] != tc.wantArgs[i] {
					t.Fatalf("arg %d: want %v got %v", i, tc.wantArgs[i], args[i])
				}
			}
		})
	}
}

func TestLockActiveGuessQuery(t *testing.T) {
	query, args, err := lockActiveGuessQuery("g1")
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	want := "SELECT id, uid, match_id, choice, result, amount, status FROM guesses WHERE id = $1 AND status = $2 FOR UPDATE"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 2 || args[0] != "g1" || args[1] != "active" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateMatchRecordQuery(t *testing.T) {
	query, args, err := updateMatchRecordQuery(match.Record{ID: 7, Status: match.StatusFinished, HomeScore: 2, AwayScore: 1})
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	want := "UPDATE matches SET status = $1, home_score = $2, away_score = $3, updated_at = NOW() WHERE id = $4"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 4 || args[0] != "FINISHED" || args[3] != int64(7) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestGuessFromRow(t *testing.T) {
	got := guessFromRow(guessTableModel{ID: "g1", UID: "u1", MatchID: 3, Choice: "halftime", Result: "draw", Amount: 10, Status: "active"})
	if got.Checkpoint != wager.CheckpointHalfTime || got.Predicted != match.OutcomeDraw || got.Status != wager.StatusActive {
		t.Fatalf("unexpected guess %+v", got)
	}
}

func TestGuessFromRow_LegacyHalfTimeChoice(t *testing.T) {
	got := guessFromRow(guessTableModel{ID: "g2", UID: "u1", MatchID: 3, Choice: "hafttime", Result: "home", Amount: 10, Status: "active"})
	if got.Checkpoint != wager.CheckpointHalfTime {
		t.Fatalf("legacy choice mapped to %q, want %q", got.Checkpoint, wager.CheckpointHalfTime)
	}
}

func TestUserFromRow(t *testing.T) {
	got := userFromRow(userTableModel{UID: "u1", FCMTokens: pq.StringArray{"a", "b"}, Coin: 5})
	if got.UID != "u1" || len(got.FCMTokens) != 2 || got.Coin != 5 {
		t.Fatalf("unexpected user %+v", got)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
