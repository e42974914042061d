package feed

import "strconv"

// Resource identifies one polled upstream collection.
type Resource string

const (
	ResourceFixtures  Resource = "fixtures"
	ResourceStandings Resource = "standings"
	ResourceScorers   Resource = "scorers"
	ResourceTeams     Resource = "teams"
)

// Document is an upstream JSON object kept as-is.
type Document = map[string]any

// Realtime topics.
const (
	TopicLiveMatches     = "update_live_matches"
	TopicUpcomingMatches = "update_upcoming_matches"
	TopicTable           = "update_table"
	TopicTopScorers      = "update_top_scorers"
	TopicAllTeams        = "update_all_teams"
	TopicCoin            = "update_coin"
)

// MatchTopic is the per-match topic, the decimal match id.
func MatchTopic(matchID int64) string {
	return strconv.FormatInt(matchID, 10)
}

// CoinUpdate is published when a correct wager is paid out.
type CoinUpdate struct {
	UID    string `json:"uid"`
	Amount int64  `json:"amount"`
}
