package domain

import (
	"sort"
	"time"
)

// CurrentStreak counts the consecutive calendar days ending at now that have
// at least one entry in history. The walk starts at now's day and stops at the
// first missing day, so a set without today yields 0. History may be unordered
// and may contain several entries for the same day; duplicates collapse.
func CurrentStreak(history []time.Time, now time.Time) int {
	if len(history) == 0 {
		return 0
	}

	uniq := make(map[DayKey]struct{}, len(history))
	for _, ts := range history {
		uniq[DayOf(ts)] = struct{}{}
	}

	days := make([]DayKey, 0, len(uniq))
	for d := range uniq {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Time().After(days[j].Time())
	})

	today := DayOf(now)
	streak := 0
	for i, d := range days {
		if d != today.AddDays(-i) {
			break
		}
		streak++
	}
	return streak
}
