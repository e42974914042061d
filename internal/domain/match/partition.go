package match

import "time"

const (
	DefaultWindowDays   = 7
	DefaultFallbackSize = 10
)

// Window is the inclusive range of UTC calendar days considered for the
// live and upcoming lists.
type Window struct {
	From time.Time
	To   time.Time
}

// WindowAt spans from yesterday to days after now.
func WindowAt(now time.Time, days int) Window {
	today := truncateDay(now)
	return Window{
		From: today.AddDate(0, 0, -1),
		To:   today.AddDate(0, 0, days),
	}
}

func (w Window) Contains(t time.Time) bool {
	day := truncateDay(t)
	return !day.Before(w.From) && !day.After(w.To)
}

func (w Window) Before(t time.Time) bool {
	return truncateDay(t).Before(w.From)
}

// Partition splits matches in the window into live and upcoming lists. When no
// match qualifies as upcoming, the upcoming list falls back to the last
// fallbackSize matches if the first match precedes the window, otherwise to
// the first fallbackSize matches.
func Partition(matches []Match, w Window, fallbackSize int) (live, upcoming []Match) {
	live = make([]Match, 0)
	upcoming = make([]Match, 0)

	for _, m := range matches {
		if !w.Contains(m.UTCDate) {
			continue
		}
		switch {
		case IsUpcomingStatus(m.Status):
			upcoming = append(upcoming, m)
		case IsLiveStatus(m.Status):
			live = append(live, m)
		}
	}

	if len(upcoming) == 0 && len(matches) > 0 {
		upcoming = fallback(matches, w, fallbackSize)
	}
	return live, upcoming
}

func fallback(matches []Match, w Window, size int) []Match {
	if size <= 0 {
		size = DefaultFallbackSize
	}
	n := min(size, len(matches))
	out := make([]Match, n)
	if w.Before(matches[0].UTCDate) {
		copy(out, matches[len(matches)-n:])
	} else {
		copy(out, matches[:n])
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
