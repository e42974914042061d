package footballdata

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/newnonsick/Football-APP-Backend/internal/domain/feed"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/match"
)

// clearListField sets path to null on every object of doc[listKey]. Objects
// missing an intermediate key are left untouched.
func clearListField(doc feed.Document, listKey string, path ...string) {
	if len(path) == 0 {
		return
	}
	items, _ := doc[listKey].([]any)
	for _, item := range items {
		obj, ok := item.(map[string]any)
		for _, key := range path[:len(path)-1] {
			if !ok {
				break
			}
			obj, ok = obj[key].(map[string]any)
		}
		if ok {
			obj[path[len(path)-1]] = nil
		}
	}
}

func parseMatches(doc feed.Document) ([]match.Match, error) {
	items, ok := doc["matches"].([]any)
	if !ok {
		if _, present := doc["matches"]; present {
			return nil, fmt.Errorf("matches is %T, want array", doc["matches"])
		}
		return []match.Match{}, nil
	}

	out := make([]match.Match, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("match %d is %T, want object", i, item)
		}
		m, err := parseMatch(obj)
		if err != nil {
			return nil, fmt.Errorf("match %d: %w", i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

func parseMatch(obj map[string]any) (match.Match, error) {
	id := getInt64(obj, "id")
	if id <= 0 {
		return match.Match{}, fmt.Errorf("missing id")
	}

	utcDate, err := time.Parse(time.RFC3339, getString(obj, "utcDate"))
	if err != nil {
		return match.Match{}, fmt.Errorf("id=%d: parse utcDate: %w", id, err)
	}

	fullTime := getMap(getMap(obj, "score"), "fullTime")
	return match.Match{
		ID:       id,
		UTCDate:  utcDate.UTC(),
		Status:   getString(obj, "status"),
		HomeTeam: parseTeam(getMap(obj, "homeTeam")),
		AwayTeam: parseTeam(getMap(obj, "awayTeam")),
		Score: match.Score{
			Home: int(getInt64(fullTime, "home")),
			Away: int(getInt64(fullTime, "away")),
		},
		Raw: obj,
	}, nil
}

func parseTeam(obj map[string]any) match.Team {
	return match.Team{
		ID:        getInt64(obj, "id"),
		Name:      getString(obj, "name"),
		ShortName: getString(obj, "shortName"),
	}
}

func getMap(src map[string]any, key string) map[string]any {
	if src == nil {
		return nil
	}
	out, _ := src[key].(map[string]any)
	return out
}

func getString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	value, _ := src[key].(string)
	return strings.TrimSpace(value)
}

func getInt64(src map[string]any, key string) int64 {
	if src == nil {
		return 0
	}
	switch typed := src[key].(type) {
	case json.Number:
		v, err := typed.Int64()
		if err != nil {
			f, ferr := typed.Float64()
			if ferr != nil {
				return 0
			}
			return int64(f)
		}
		return v
	case float64:
		return int64(typed)
	case int:
		return int64(typed)
	case int64:
		return typed
	case string:
		v, err := strconv.ParseInt(strings.TrimSpace(typed), 10, 64)
		if err != nil {
			return 0
		}
		return v
	default:
		return 0
	}
}
