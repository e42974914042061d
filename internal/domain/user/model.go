package user

// User holds the counters touched by wager settlement and the device tokens
// used for push notifications.
type User struct {
	UID            string
	FCMTokens      []string
	Coin           int64
	GuessedCorrect int64
	GuessedWrong   int64
	CorrectStreak  int64
}
