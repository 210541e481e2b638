package domain

import (
	"testing"
	"time"
)

func TestDayOfIgnoresTimeOfDay(t *testing.T) {
	tests := []struct {
		name string
		a    time.Time
		b    time.Time
		same bool
	}{
		{
			name: "midnight and last second of same day",
			a:    time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local),
			b:    time.Date(2025, 3, 14, 23, 59, 59, 0, time.Local),
			same: true,
		},
		{
			name: "morning and evening",
			a:    time.Date(2025, 3, 14, 7, 12, 0, 0, time.Local),
			b:    time.Date(2025, 3, 14, 21, 45, 33, 0, time.Local),
			same: true,
		},
		{
			name: "one second across midnight",
			a:    time.Date(2025, 3, 14, 23, 59, 59, 0, time.Local),
			b:    time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local),
			same: false,
		},
		{
			name: "same day of month, different month",
			a:    time.Date(2025, 3, 14, 12, 0, 0, 0, time.Local),
			b:    time.Date(2025, 4, 14, 12, 0, 0, 0, time.Local),
			same: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayOf(tt.a) == DayOf(tt.b); got != tt.same {
				t.Errorf("DayOf(%v) == DayOf(%v) = %v, want %v", tt.a, tt.b, got, tt.same)
			}
			if got := SameDay(tt.a, tt.b); got != tt.same {
				t.Errorf("SameDay(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.same)
			}
		})
	}
}

func TestAddDays(t *testing.T) {
	base := DayOf(time.Date(2025, 3, 1, 15, 30, 0, 0, time.Local))

	if got := base.AddDays(-1); got != (DayKey{2025, time.February, 28}) {
		t.Errorf("AddDays(-1) across month boundary = %v", got)
	}
	if got := base.AddDays(0); got != base {
		t.Errorf("AddDays(0) = %v, want %v", got, base)
	}
	if got := base.AddDays(31); got != (DayKey{2025, time.April, 1}) {
		t.Errorf("AddDays(31) = %v", got)
	}
}

func TestDayKeyString(t *testing.T) {
	k := DayKey{Year: 2025, Month: time.January, Day: 5}
	if got := k.String(); got != "2025-01-05" {
		t.Errorf("String() = %q, want %q", got, "2025-01-05")
	}
}
