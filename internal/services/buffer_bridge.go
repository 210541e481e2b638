package services

import (
	"context"
	"encoding/json"

	"github.com/habitly/backend/domain"
	"github.com/habitly/backend/internal/infrastructure/buffer"
	"github.com/habitly/backend/usecase"
)

// BufferBridge adapts the processor to the usecase.OperationBuffer port.
type BufferBridge struct {
	processor *BufferProcessor
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferCreate(ctx context.Context, habit *domain.Habit) error {
	if b.processor == nil || habit == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(habit)
	if err != nil {
		return err
	}
	return b.processor.store.Enqueue(buffer.Item{
		HabitID:   habit.ID,
		Operation: buffer.OperationCreate,
		Data:      payload,
	})
}

func (b *BufferBridge) BufferUpdate(ctx context.Context, habitID string, patch domain.HabitPatch) error {
	if b.processor == nil || habitID == "" {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(patch)
	if err != nil {
		return err
	}
	return b.processor.store.Enqueue(buffer.Item{
		HabitID:   habitID,
		Operation: buffer.OperationUpdate,
		Data:      payload,
	})
}

func (b *BufferBridge) BufferDelete(ctx context.Context, habitID string) error {
	if b.processor == nil || habitID == "" {
		return domain.ErrInvalidPayload
	}
	return b.processor.store.Enqueue(buffer.Item{
		HabitID:   habitID,
		Operation: buffer.OperationDelete,
	})
}
