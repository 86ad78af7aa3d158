package progress

import (
	"github.com/saulo-duarte/habits-lambda/internal/completion"
	util "github.com/saulo-duarte/habits-lambda/internal/utils"
)

// MaxStreak bounds the backward walk; no streak is reported above it.
const MaxStreak = 365

// aheadDays is how many calendar days a completion recorded in the
// easternmost zone can be ahead of the reader's today (UTC+14 vs UTC-12).
const aheadDays = 2

// historyWindow is how many of the newest completions are enough to compute
// any streak: one per day for MaxStreak days plus today, plus the days that
// may be dated after today in the reader's zone.
const historyWindow = MaxStreak + 1 + aheadDays

type StreakResult struct {
	CurrentStreak  int  `json:"current_streak"`
	CompletedToday bool `json:"completed_today"`
}

// ComputeStreak counts consecutive completed days ending at asOf, or at the
// day before asOf when asOf itself has no completion yet.
func ComputeStreak(logs []*completion.Log, asOf util.Date) StreakResult {
	return StreakFromDays(logDays(logs), asOf)
}

func logDays(logs []*completion.Log) []util.Date {
	days := make([]util.Date, 0, len(logs))
	for _, l := range logs {
		days = append(days, l.Day)
	}
	return days
}

func StreakFromDays(days []util.Date, asOf util.Date) StreakResult {
	if len(days) == 0 {
		return StreakResult{}
	}
	return streakFromSet(daySet(days), asOf)
}

func daySet(days []util.Date) map[util.Date]struct{} {
	set := make(map[util.Date]struct{}, len(days))
	for _, d := range days {
		set[d] = struct{}{}
	}
	return set
}

func streakFromSet(set map[util.Date]struct{}, asOf util.Date) StreakResult {
	_, completedToday := set[asOf]

	cursor := asOf
	if !completedToday {
		cursor = asOf.AddDays(-1)
	}

	streak := 0
	for streak < MaxStreak {
		if _, ok := set[cursor]; !ok {
			break
		}
		streak++
		cursor = cursor.AddDays(-1)
	}

	return StreakResult{CurrentStreak: streak, CompletedToday: completedToday}
}
