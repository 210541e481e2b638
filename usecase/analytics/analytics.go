package analytics

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/habitly/backend/domain"
	"github.com/habitly/backend/repository"
)

type UseCase struct {
	habits repository.HabitRepository
	logger *zap.Logger
	now    func() time.Time
}

func New(habits repository.HabitRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		habits: habits,
		logger: logger,
		now:    time.Now,
	}
}

// ForUser aggregates the caller's full habit set into the 30-day series and
// summary statistics.
func (uc *UseCase) ForUser(ctx context.Context, ownerID string) (domain.Analytics, error) {
	habits, err := uc.habits.List(ctx, repository.HabitFilter{OwnerID: ownerID})
	if err != nil {
		return domain.Analytics{}, err
	}
	return domain.Aggregate(habits, uc.now()), nil
}
