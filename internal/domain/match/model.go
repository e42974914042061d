package match

import (
	"maps"
	"time"

	"github.com/bytedance/sonic"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusTimed     = "TIMED"
	StatusLive      = "LIVE"
	StatusInPlay    = "IN_PLAY"
	StatusPaused    = "PAUSED"
	StatusFinished  = "FINISHED"
)

type Team struct {
	ID        int64
	Name      string
	ShortName string
}

// Score is the full-time score; absent upstream values are 0.
type Score struct {
	Home int
	Away int
}

func (s Score) IsZero() bool {
	return s.Home == 0 && s.Away == 0
}

// Match is one fixture as seen in the latest snapshot. Raw holds the upstream
// document and is what gets published and served.
type Match struct {
	ID       int64
	UTCDate  time.Time
	Status   string
	HomeTeam Team
	AwayTeam Team
	Score    Score
	Raw      map[string]any
}

func (m Match) MarshalJSON() ([]byte, error) {
	if m.Raw != nil {
		return sonic.ConfigStd.Marshal(m.Raw)
	}
	return sonic.ConfigStd.Marshal(m.document())
}

// UpdatePayload is the per-match realtime payload: the upstream document with
// score.fullTime replaced by Score, so null upstream values read as 0.
func (m Match) UpdatePayload() map[string]any {
	if m.Raw == nil {
		return m.document()
	}

	out := maps.Clone(m.Raw)
	score, _ := out["score"].(map[string]any)
	score = maps.Clone(score)
	if score == nil {
		score = make(map[string]any, 1)
	}
	fullTime, _ := score["fullTime"].(map[string]any)
	fullTime = maps.Clone(fullTime)
	if fullTime == nil {
		fullTime = make(map[string]any, 2)
	}

	fullTime["home"] = m.Score.Home
	fullTime["away"] = m.Score.Away
	score["fullTime"] = fullTime
	out["score"] = score
	return out
}

func (m Match) document() map[string]any {
	return map[string]any{
		"id":       m.ID,
		"utcDate":  m.UTCDate.UTC().Format(time.RFC3339),
		"status":   m.Status,
		"homeTeam": map[string]any{"id": m.HomeTeam.ID, "name": m.HomeTeam.Name, "shortName": m.HomeTeam.ShortName},
		"awayTeam": map[string]any{"id": m.AwayTeam.ID, "name": m.AwayTeam.Name, "shortName": m.AwayTeam.ShortName},
		"score": map[string]any{
			"fullTime": map[string]any{"home": m.Score.Home, "away": m.Score.Away},
		},
	}
}

func IsLiveStatus(status string) bool {
	switch status {
	case StatusLive, StatusInPlay, StatusPaused:
		return true
	default:
		return false
	}
}

func IsUpcomingStatus(status string) bool {
	switch status {
	case StatusScheduled, StatusTimed, StatusFinished:
		return true
	default:
		return false
	}
}

// OnLocalDate reports whether the kickoff, shifted by offset, falls on the calendar day of date.
func (m Match) OnLocalDate(date time.Time, offset time.Duration) bool {
	local := m.UTCDate.UTC().Add(offset)
	y1, m1, d1 := local.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Record is the persisted projection of a match used to detect transitions.
type Record struct {
	ID         int64
	Status     string
	HomeScore  int
	AwayScore  int
	HomeTeamID int64
	AwayTeamID int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func NewRecord(m Match) Record {
	return Record{
		ID:         m.ID,
		Status:     m.Status,
		HomeScore:  m.Score.Home,
		AwayScore:  m.Score.Away,
		HomeTeamID: m.HomeTeam.ID,
		AwayTeamID: m.AwayTeam.ID,
	}
}

func (r Record) Score() Score {
	return Score{Home: r.HomeScore, Away: r.AwayScore}
}

// Advance returns the record updated to the match's current status and score.
func (r Record) Advance(m Match) Record {
	r.Status = m.Status
	r.HomeScore = m.Score.Home
	r.AwayScore = m.Score.Away
	return r
}

type Outcome string

const (
	OutcomeHome Outcome = "home"
	OutcomeAway Outcome = "away"
	OutcomeDraw Outcome = "draw"
)

func Winner(s Score) Outcome {
	switch {
	case s.Home > s.Away:
		return OutcomeHome
	case s.Home < s.Away:
		return OutcomeAway
	default:
		return OutcomeDraw
	}
}
