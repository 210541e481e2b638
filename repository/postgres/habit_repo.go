package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/habitly/backend/domain"
	"github.com/habitly/backend/repository"
)

type habitRepository struct {
	pool *pgxpool.Pool
}

// NewHabitRepository returns a Postgres-backed implementation of HabitRepository.
func NewHabitRepository(pool *pgxpool.Pool) repository.HabitRepository {
	return &habitRepository{pool: pool}
}

const habitColumns = `
	h.id, h.owner_id, h.owner_name, h.owner_email, h.title, h.description,
	h.category, h.reminder_time, h.image, h.public, h.streak, h.created_at, h.updated_at,
	COALESCE(
		array_agg(c.completed_at ORDER BY c.completed_at)
			FILTER (WHERE c.completed_at IS NOT NULL),
		'{}'
	) AS completion_history`

func (r *habitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	const query = `
	SELECT` + habitColumns + `
	FROM habits h
	LEFT JOIN habit_completions c ON c.habit_id = h.id
	WHERE h.id = $1
	GROUP BY h.id
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanHabit(row)
}

func (r *habitRepository) List(ctx context.Context, filter repository.HabitFilter) ([]domain.Habit, error) {
	const query = `
	SELECT` + habitColumns + `
	FROM habits h
	LEFT JOIN habit_completions c ON c.habit_id = h.id
	WHERE ($1 = '' OR h.owner_id = $1)
	  AND ($2 = '' OR h.category = $2)
	  AND ($3 = '' OR h.title ILIKE '%' || $3 || '%' OR h.description ILIKE '%' || $3 || '%')
	  AND (NOT $4 OR h.public)
	GROUP BY h.id
	ORDER BY h.created_at DESC
	LIMIT NULLIF($5, 0)
	`
	rows, err := r.pool.Query(ctx, query,
		filter.OwnerID,
		filter.Category,
		filter.Search,
		filter.PublicOnly,
		filter.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []domain.Habit
	for rows.Next() {
		habit, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, *habit)
	}
	return habits, rows.Err()
}

func (r *habitRepository) Create(ctx context.Context, habit *domain.Habit) (*domain.Habit, error) {
	if habit == nil {
		return nil, domain.ErrInvalidPayload
	}
	if habit.ID == "" {
		habit.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO habits (id, owner_id, owner_name, owner_email, title, description,
		category, reminder_time, image, public)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		habit.ID,
		habit.OwnerID,
		habit.OwnerName,
		habit.OwnerEmail,
		habit.Title,
		habit.Description,
		habit.Category,
		habit.ReminderTime,
		habit.Image,
		habit.Public,
	).Scan(&habit.CreatedAt, &habit.UpdatedAt); err != nil {
		return nil, err
	}

	habit.Streak = 0
	habit.CompletionHistory = []time.Time{}
	return habit, nil
}

func (r *habitRepository) Update(ctx context.Context, id string, patch domain.HabitPatch) error {
	const query = `
	UPDATE habits
	SET title = COALESCE($2, title),
		description = COALESCE($3, description),
		category = COALESCE($4, category),
		reminder_time = COALESCE($5, reminder_time),
		image = COALESCE($6, image),
		public = COALESCE($7, public),
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`

	var updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		patch.Title,
		patch.Description,
		patch.Category,
		patch.ReminderTime,
		patch.Image,
		patch.Public,
	).Scan(&updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrHabitNotFound
		}
		return err
	}
	return nil
}

func (r *habitRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM habits WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}

func (r *habitRepository) Complete(ctx context.Context, habitID string, completedAt time.Time, day domain.DayKey, streak int) error {
	// The unique key on (habit_id, completed_on) makes the duplicate check and
	// the append a single conditional insert; the streak update only lands
	// when the insert did. One statement, so both fields move together.
	const query = `
	WITH ins AS (
		INSERT INTO habit_completions (habit_id, completed_at, completed_on)
		VALUES ($1, $2, $3)
		ON CONFLICT (habit_id, completed_on) DO NOTHING
		RETURNING habit_id
	)
	UPDATE habits
	SET streak = $4, updated_at = NOW()
	WHERE id = $1 AND EXISTS (SELECT 1 FROM ins)
	`
	tag, err := r.pool.Exec(ctx, query, habitID, completedAt, day.String(), streak)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyCompleted
	}
	return nil
}

func scanHabit(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Habit, error) {
	var habit domain.Habit

	if err := row.Scan(
		&habit.ID,
		&habit.OwnerID,
		&habit.OwnerName,
		&habit.OwnerEmail,
		&habit.Title,
		&habit.Description,
		&habit.Category,
		&habit.ReminderTime,
		&habit.Image,
		&habit.Public,
		&habit.Streak,
		&habit.CreatedAt,
		&habit.UpdatedAt,
		&habit.CompletionHistory,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, err
	}

	if habit.CompletionHistory == nil {
		habit.CompletionHistory = []time.Time{}
	}
	return &habit, nil
}
