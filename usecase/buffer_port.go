package usecase

import (
	"context"

	"github.com/habitly/backend/domain"
)

// OperationBuffer abstracts the offline write buffer so use cases stay
// storage-agnostic. Only descriptive writes are buffered; completions never
// are, because the once-per-day invariant needs the primary store's unique
// index.
type OperationBuffer interface {
	BufferCreate(ctx context.Context, habit *domain.Habit) error
	BufferUpdate(ctx context.Context, habitID string, patch domain.HabitPatch) error
	BufferDelete(ctx context.Context, habitID string) error
}
