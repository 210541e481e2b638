package habit

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/habitly/backend/domain"
	"github.com/habitly/backend/repository"
	"github.com/habitly/backend/usecase"
)

const (
	featuredCount       = 6
	defaultPublicLimit  = 100
	defaultReminderTime = "09:00"
	fallbackOwnerName   = "User"
)

type UseCase struct {
	habits repository.HabitRepository
	buffer usecase.OperationBuffer
	logger *zap.Logger
	now    func() time.Time
}

func New(habits repository.HabitRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		habits: habits,
		buffer: buffer,
		logger: logger,
		now:    time.Now,
	}
}

// Featured returns the latest public habits for the landing page.
func (uc *UseCase) Featured(ctx context.Context) ([]domain.Habit, error) {
	return uc.habits.List(ctx, repository.HabitFilter{
		PublicOnly: true,
		Limit:      featuredCount,
	})
}

// Public lists public habits with optional search and category filters.
func (uc *UseCase) Public(ctx context.Context, search, category string, limit int) ([]domain.Habit, error) {
	if limit <= 0 {
		limit = defaultPublicLimit
	}
	return uc.habits.List(ctx, repository.HabitFilter{
		Search:     search,
		Category:   category,
		PublicOnly: true,
		Limit:      limit,
	})
}

// Mine lists every habit owned by the caller.
func (uc *UseCase) Mine(ctx context.Context, ownerID string) ([]domain.Habit, error) {
	return uc.habits.List(ctx, repository.HabitFilter{OwnerID: ownerID})
}

// Get fetches a single habit. The id is validated before the store is touched
// so malformed ids surface as INVALID, not NOT_FOUND.
func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Habit, error) {
	if uuid.Validate(id) != nil {
		return nil, domain.ErrInvalidHabitID
	}
	return uc.habits.GetByID(ctx, id)
}

// Create validates required fields, applies the documented defaults and
// persists a fresh habit for the verified caller. Ownership comes from the
// identity, never from the payload.
func (uc *UseCase) Create(ctx context.Context, ident *domain.Identity, habit *domain.Habit) (*domain.Habit, error) {
	if habit == nil || !ident.Valid() {
		return nil, domain.ErrInvalidPayload
	}

	habit.Title = strings.TrimSpace(habit.Title)
	habit.Description = strings.TrimSpace(habit.Description)
	habit.Category = strings.TrimSpace(habit.Category)
	if habit.Title == "" || habit.Description == "" || habit.Category == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "missing required fields")
	}

	// The id is minted here, not in the store, so a buffered create keeps the
	// same id once it is replayed.
	habit.ID = uuid.NewString()
	habit.OwnerID = ident.UserID
	if habit.ReminderTime == "" {
		habit.ReminderTime = defaultReminderTime
	}
	if habit.OwnerName == "" {
		habit.OwnerName = ident.Name
	}
	if habit.OwnerName == "" {
		habit.OwnerName = fallbackOwnerName
	}
	if habit.OwnerEmail == "" {
		habit.OwnerEmail = ident.Email
	}
	habit.Streak = 0
	habit.CompletionHistory = []time.Time{}

	created, err := uc.habits.Create(ctx, habit)
	if err != nil {
		if uc.shouldBufferCreate(ctx, habit) {
			habit.CreatedAt = uc.now()
			habit.UpdatedAt = habit.CreatedAt
			return habit, nil
		}
		return nil, err
	}
	return created, nil
}

// Update applies a partial descriptive-field update after ownership checks.
func (uc *UseCase) Update(ctx context.Context, id, ownerID string, patch domain.HabitPatch) error {
	if uuid.Validate(id) != nil {
		return domain.ErrInvalidHabitID
	}

	habit, err := uc.habits.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if habit.OwnerID != ownerID {
		return domain.ErrNotOwner
	}

	normalizePatch(&patch)
	if patch.Empty() {
		return nil
	}

	if err := uc.habits.Update(ctx, id, patch); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return err
		}
		if uc.shouldBufferUpdate(ctx, id, patch) {
			return nil
		}
		return err
	}
	return nil
}

// Delete removes the habit and its completion history after ownership checks.
func (uc *UseCase) Delete(ctx context.Context, id, ownerID string) error {
	if uuid.Validate(id) != nil {
		return domain.ErrInvalidHabitID
	}

	habit, err := uc.habits.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if habit.OwnerID != ownerID {
		return domain.ErrNotOwner
	}

	if err := uc.habits.Delete(ctx, id); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return err
		}
		if uc.shouldBufferDelete(ctx, id) {
			return nil
		}
		return err
	}
	return nil
}

// Complete records one completion for today and recomputes the streak. The
// in-process duplicate check is a fast path only; the store's conditional
// write is what guarantees at most one completion per calendar day when
// requests race. Completions are never buffered.
func (uc *UseCase) Complete(ctx context.Context, id, ownerID string) ([]time.Time, int, error) {
	if uuid.Validate(id) != nil {
		return nil, 0, domain.ErrInvalidHabitID
	}

	habit, err := uc.habits.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	if habit.OwnerID != ownerID {
		return nil, 0, domain.ErrNotOwner
	}

	now := uc.now()
	day := domain.DayOf(now)
	if habit.CompletedOn(day) {
		return nil, 0, domain.ErrAlreadyCompleted
	}

	history := append(habit.CompletionHistory, now)
	streak := domain.CurrentStreak(history, now)

	if err := uc.habits.Complete(ctx, id, now, day, streak); err != nil {
		return nil, 0, err
	}
	return history, streak, nil
}

func normalizePatch(patch *domain.HabitPatch) {
	// Blank required fields count as "not provided"; a blank image clears it.
	patch.Title = trimmedOrNil(patch.Title)
	patch.Description = trimmedOrNil(patch.Description)
	patch.Category = trimmedOrNil(patch.Category)
	patch.ReminderTime = trimmedOrNil(patch.ReminderTime)
	if patch.Image != nil {
		trimmed := strings.TrimSpace(*patch.Image)
		patch.Image = &trimmed
	}
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (uc *UseCase) shouldBufferCreate(ctx context.Context, habit *domain.Habit) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferCreate(ctx, habit); err != nil {
		uc.logger.Error("failed to buffer habit create", zap.Error(err))
		return false
	}
	uc.logger.Warn("habit create buffered", zap.String("habit_id", habit.ID))
	return true
}

func (uc *UseCase) shouldBufferUpdate(ctx context.Context, id string, patch domain.HabitPatch) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferUpdate(ctx, id, patch); err != nil {
		uc.logger.Error("failed to buffer habit update", zap.Error(err))
		return false
	}
	uc.logger.Warn("habit update buffered", zap.String("habit_id", id))
	return true
}

func (uc *UseCase) shouldBufferDelete(ctx context.Context, id string) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferDelete(ctx, id); err != nil {
		uc.logger.Error("failed to buffer habit delete", zap.Error(err))
		return false
	}
	uc.logger.Warn("habit delete buffered", zap.String("habit_id", id))
	return true
}
