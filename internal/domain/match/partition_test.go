package match

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"
)

func dated(id int64, status string, at time.Time) Match {
	return Match{ID: id, Status: status, UTCDate: at}
}

func ids(matches []Match) []int64 {
	out := make([]int64, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.ID)
	}
	return out
}

func TestPartition_SplitsByStatusWithinWindow(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	w := WindowAt(now, DefaultWindowDays)

	matches := []Match{
		dated(1, StatusFinished, now.AddDate(0, 0, -3)),
		dated(2, StatusFinished, now.AddDate(0, 0, -1).Add(-14*time.Hour)),
		dated(3, StatusInPlay, now),
		dated(4, StatusPaused, now),
		dated(5, StatusTimed, now.AddDate(0, 0, 2)),
		dated(6, StatusScheduled, now.AddDate(0, 0, 7).Add(8*time.Hour)),
		dated(7, StatusTimed, now.AddDate(0, 0, 8)),
		dated(8, "POSTPONED", now),
	}

	live, upcoming := Partition(matches, w, DefaultFallbackSize)

	if got := ids(live); len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Fatalf("unexpected live ids %v", got)
	}
	if got := ids(upcoming); len(got) != 3 || got[0] != 2 || got[1] != 5 || got[2] != 6 {
		t.Fatalf("unexpected upcoming ids %v", got)
	}
}

func TestPartition_FallbackWhenWindowIsPast(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	start := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)

	matches := make([]Match, 0, 15)
	for i := range 15 {
		matches = append(matches, dated(int64(i+1), StatusFinished, start.AddDate(0, 0, i)))
	}

	_, upcoming := Partition(matches, WindowAt(now, DefaultWindowDays), DefaultFallbackSize)
	got := ids(upcoming)
	if len(got) != 10 || got[0] != 6 || got[9] != 15 {
		t.Fatalf("expected last 10 matches, got %v", got)
	}
}

func TestPartition_FallbackWhenWindowIsFuture(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	start := time.Date(2024, 8, 1, 15, 0, 0, 0, time.UTC)

	matches := make([]Match, 0, 15)
	for i := range 15 {
		matches = append(matches, dated(int64(i+1), StatusTimed, start.AddDate(0, 0, i)))
	}

	_, upcoming := Partition(matches, WindowAt(now, DefaultWindowDays), DefaultFallbackSize)
	got := ids(upcoming)
	if len(got) != 10 || got[0] != 1 || got[9] != 10 {
		t.Fatalf("expected first 10 matches, got %v", got)
	}
}

func TestPartition_EmptyInputYieldsEmptyLists(t *testing.T) {
	live, upcoming := Partition(nil, WindowAt(time.Now(), DefaultWindowDays), DefaultFallbackSize)
	if live == nil || upcoming == nil || len(live) != 0 || len(upcoming) != 0 {
		t.Fatalf("expected empty non-nil lists, got %v %v", live, upcoming)
	}
}

func TestMatch_OnLocalDate(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	late := Match{UTCDate: time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)}
	early := Match{UTCDate: time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC)}

	if !late.OnLocalDate(day, 2*time.Hour) {
		t.Fatalf("expected 23:00Z on the 9th to be the 10th at +2h")
	}
	if early.OnLocalDate(day, 2*time.Hour) {
		t.Fatalf("expected 23:00Z on the 10th to be the 11th at +2h")
	}
	if !early.OnLocalDate(day, 0) {
		t.Fatalf("expected 23:00Z on the 10th to be the 10th at UTC")
	}
}

func TestMatch_MarshalJSONUsesRawDocument(t *testing.T) {
	m := Match{ID: 1, Raw: map[string]any{"id": 1, "status": "TIMED", "venue": "Emirates"}}

	b, err := sonic.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"id":1,"status":"TIMED","venue":"Emirates"}` {
		t.Fatalf("unexpected body %s", b)
	}
}
