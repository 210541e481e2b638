package repository

import (
	"context"
	"time"

	"github.com/habitly/backend/domain"
)

// HabitFilter narrows List results. Zero values mean "no constraint"; Limit 0
// returns every match.
type HabitFilter struct {
	OwnerID    string
	Category   string
	Search     string
	PublicOnly bool
	Limit      int
}

type HabitRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Habit, error)
	List(ctx context.Context, filter HabitFilter) ([]domain.Habit, error)
	Create(ctx context.Context, habit *domain.Habit) (*domain.Habit, error)
	Update(ctx context.Context, id string, patch domain.HabitPatch) error
	Delete(ctx context.Context, id string) error

	// Complete records completedAt for the habit iff no completion exists for
	// the same calendar day, and in the same statement stores the new streak
	// and bumps updated_at. The day check and the write are one conditional
	// statement, so the once-per-day invariant holds under concurrent
	// requests. Returns domain.ErrAlreadyCompleted when the day is taken.
	Complete(ctx context.Context, habitID string, completedAt time.Time, day domain.DayKey, streak int) error
}
