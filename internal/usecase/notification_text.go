package usecase

import (
	"strconv"

	"github.com/newnonsick/Football-APP-Backend/internal/domain/match"
	"github.com/valyala/bytebufferpool"
)

const (
	titleMatchStarted  = "Match Started"
	titleMatchFinished = "Match Finished"
	titleGoal          = "Goal"
)

// fixtureText renders "ARS vs CHE".
func fixtureText(m match.Match) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(m.HomeTeam.ShortName)
	_, _ = buf.WriteString(" vs ")
	_, _ = buf.WriteString(m.AwayTeam.ShortName)
	return buf.String()
}

// scoreText renders "ARS 2 - 1 CHE".
func scoreText(m match.Match) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(m.HomeTeam.ShortName)
	_ = buf.WriteByte(' ')
	buf.B = strconv.AppendInt(buf.B, int64(m.Score.Home), 10)
	_, _ = buf.WriteString(" - ")
	buf.B = strconv.AppendInt(buf.B, int64(m.Score.Away), 10)
	_ = buf.WriteByte(' ')
	_, _ = buf.WriteString(m.AwayTeam.ShortName)
	return buf.String()
}
