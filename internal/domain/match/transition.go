package match

type EventKind string

const (
	EventMatchStarted    EventKind = "MatchStarted"
	EventHalfTimeReached EventKind = "HalfTimeReached"
	EventMatchFinished   EventKind = "MatchFinished"
	EventGoalScored      EventKind = "GoalScored"
)

// Event is a classified transition of one match.
type Event struct {
	Kind  EventKind
	Match Match
}

// Winner is the outcome at the moment of the event.
func (e Event) Winner() Outcome {
	return Winner(e.Match.Score)
}

// Classify compares the persisted record with the current snapshot of the
// same match. Status events come before the goal event. Other status
// transitions (for example PAUSED to IN_PLAY) emit nothing.
func Classify(prev Record, cur Match) []Event {
	var events []Event

	if prev.Status != cur.Status {
		switch {
		case cur.Status == StatusFinished:
			events = append(events, Event{Kind: EventMatchFinished, Match: cur})
		case cur.Status == StatusInPlay && prev.Status == StatusTimed:
			events = append(events, Event{Kind: EventMatchStarted, Match: cur})
		case cur.Status == StatusPaused:
			events = append(events, Event{Kind: EventHalfTimeReached, Match: cur})
		}
	}

	if prev.Score() != cur.Score && !cur.Score.IsZero() {
		events = append(events, Event{Kind: EventGoalScored, Match: cur})
	}

	return events
}
