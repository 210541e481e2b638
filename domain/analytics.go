package domain

import "time"

// AnalyticsWindowDays is the length of the completed-count time series.
const AnalyticsWindowDays = 30

// DailyCount is one point of the analytics time series.
type DailyCount struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
}

// Analytics summarizes a user's habit set.
type Analytics struct {
	Last30Days       []DailyCount `json:"last_30_days"`
	TotalCompletions int          `json:"total_completions"`
	MaxStreak        int          `json:"max_streak"`
	TotalHabits      int          `json:"total_habits"`
}

// Aggregate computes the 30-day completed-count series (oldest first, covering
// now-29..now) and summary statistics over the given habit set. An empty set
// yields a series of thirty zero counts.
func Aggregate(habits []Habit, now time.Time) Analytics {
	today := DayOf(now)

	series := make([]DailyCount, AnalyticsWindowDays)
	for i := 0; i < AnalyticsWindowDays; i++ {
		day := today.AddDays(i - (AnalyticsWindowDays - 1))
		completed := 0
		for j := range habits {
			if habits[j].CompletedOn(day) {
				completed++
			}
		}
		series[i] = DailyCount{Date: day.String(), Completed: completed}
	}

	total := 0
	maxStreak := 0
	for i := range habits {
		total += len(habits[i].CompletionHistory)
		if s := CurrentStreak(habits[i].CompletionHistory, now); s > maxStreak {
			maxStreak = s
		}
	}

	return Analytics{
		Last30Days:       series,
		TotalCompletions: total,
		MaxStreak:        maxStreak,
		TotalHabits:      len(habits),
	}
}
