package domain

import (
	"testing"
	"time"
)

func TestCurrentStreak(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.Local)
	daysAgo := func(n int) time.Time { return now.AddDate(0, 0, -n) }

	tests := []struct {
		name    string
		history []time.Time
		want    int
	}{
		{
			name:    "empty history",
			history: nil,
			want:    0,
		},
		{
			name:    "three consecutive days ending today",
			history: []time.Time{daysAgo(2), daysAgo(1), daysAgo(0)},
			want:    3,
		},
		{
			name:    "gap two days back stops the walk",
			history: []time.Time{daysAgo(3), daysAgo(1), daysAgo(0)},
			want:    2,
		},
		{
			name:    "today only",
			history: []time.Time{daysAgo(0)},
			want:    1,
		},
		{
			name:    "yesterday but not today",
			history: []time.Time{daysAgo(1), daysAgo(2)},
			want:    0,
		},
		{
			name:    "unordered input",
			history: []time.Time{daysAgo(1), daysAgo(4), daysAgo(0), daysAgo(2)},
			want:    3,
		},
		{
			name: "duplicate entries on the same day collapse",
			history: []time.Time{
				daysAgo(0),
				daysAgo(0).Add(-2 * time.Hour),
				daysAgo(1),
			},
			want: 2,
		},
		{
			name:    "long run with an old gap",
			history: []time.Time{daysAgo(0), daysAgo(1), daysAgo(2), daysAgo(3), daysAgo(10)},
			want:    4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentStreak(tt.history, now); got != tt.want {
				t.Errorf("CurrentStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

// The contiguity property from first principles: streak k means days
// now..now-(k-1) are all present and now-k is absent.
func TestCurrentStreakContiguity(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.Local)

	history := []time.Time{
		now,
		now.AddDate(0, 0, -1),
		now.AddDate(0, 0, -2),
		now.AddDate(0, 0, -4),
		now.AddDate(0, 0, -5),
	}

	k := CurrentStreak(history, now)
	if k != 3 {
		t.Fatalf("CurrentStreak() = %d, want 3", k)
	}

	present := make(map[DayKey]struct{})
	for _, ts := range history {
		present[DayOf(ts)] = struct{}{}
	}
	today := DayOf(now)
	for i := 0; i < k; i++ {
		if _, ok := present[today.AddDays(-i)]; !ok {
			t.Errorf("day now-%d missing despite streak %d", i, k)
		}
	}
	if _, ok := present[today.AddDays(-k)]; ok {
		t.Errorf("day now-%d present, streak should have continued past %d", k, k)
	}
}

func TestCurrentStreakAcrossMonthBoundary(t *testing.T) {
	now := time.Date(2025, 3, 2, 8, 0, 0, 0, time.Local)
	history := []time.Time{
		time.Date(2025, 2, 27, 20, 0, 0, 0, time.Local),
		time.Date(2025, 2, 28, 20, 0, 0, 0, time.Local),
		time.Date(2025, 3, 1, 20, 0, 0, 0, time.Local),
		time.Date(2025, 3, 2, 7, 0, 0, 0, time.Local),
	}
	if got := CurrentStreak(history, now); got != 4 {
		t.Errorf("CurrentStreak() across month boundary = %d, want 4", got)
	}
}
