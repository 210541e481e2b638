package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/habitly/backend/domain"
	"github.com/habitly/backend/repository"
)

type listRepo struct {
	habits []domain.Habit
	err    error
	filter repository.HabitFilter
}

func (r *listRepo) List(_ context.Context, filter repository.HabitFilter) ([]domain.Habit, error) {
	r.filter = filter
	return r.habits, r.err
}

func (r *listRepo) GetByID(context.Context, string) (*domain.Habit, error) {
	return nil, domain.ErrHabitNotFound
}

func (r *listRepo) Create(context.Context, *domain.Habit) (*domain.Habit, error) {
	return nil, errors.New("not implemented")
}

func (r *listRepo) Update(context.Context, string, domain.HabitPatch) error {
	return errors.New("not implemented")
}

func (r *listRepo) Delete(context.Context, string) error {
	return errors.New("not implemented")
}

func (r *listRepo) Complete(context.Context, string, time.Time, domain.DayKey, int) error {
	return errors.New("not implemented")
}

func TestForUser(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)
	repo := &listRepo{habits: []domain.Habit{
		{ID: "a", OwnerID: "u1", CompletionHistory: []time.Time{
			now.AddDate(0, 0, -2), now.AddDate(0, 0, -1), now,
		}},
		{ID: "b", OwnerID: "u1"},
	}}

	uc := New(repo, nil)
	uc.now = func() time.Time { return now }

	got, err := uc.ForUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ForUser() error = %v", err)
	}

	if repo.filter.OwnerID != "u1" {
		t.Errorf("queried owner = %q, want u1", repo.filter.OwnerID)
	}
	if repo.filter.Limit != 0 {
		t.Errorf("analytics query limited to %d habits, want unlimited", repo.filter.Limit)
	}
	if got.TotalHabits != 2 || got.MaxStreak != 3 || got.TotalCompletions != 3 {
		t.Errorf("summary = %+v", got)
	}
	if len(got.Last30Days) != domain.AnalyticsWindowDays {
		t.Errorf("series length = %d, want %d", len(got.Last30Days), domain.AnalyticsWindowDays)
	}
}

func TestForUserEmptySet(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)
	uc := New(&listRepo{}, nil)
	uc.now = func() time.Time { return now }

	got, err := uc.ForUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ForUser() error = %v", err)
	}
	if len(got.Last30Days) != domain.AnalyticsWindowDays {
		t.Fatalf("series length = %d, want %d", len(got.Last30Days), domain.AnalyticsWindowDays)
	}
	for i, p := range got.Last30Days {
		if p.Completed != 0 {
			t.Errorf("entry %d: completed = %d, want 0", i, p.Completed)
		}
	}
}

func TestForUserPropagatesStoreErrors(t *testing.T) {
	uc := New(&listRepo{err: errors.New("connection refused")}, nil)
	if _, err := uc.ForUser(context.Background(), "u1"); err == nil {
		t.Fatal("ForUser() should propagate store errors")
	}
}
