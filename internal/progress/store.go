package progress

import (
	"context"

	"github.com/google/uuid"
	"github.com/saulo-duarte/habits-lambda/internal/completion"
	"github.com/saulo-duarte/habits-lambda/internal/habit"
	util "github.com/saulo-duarte/habits-lambda/internal/utils"
)

// Store is everything the engine reads from or writes to persistence.
//
// Implementations report a missing habit with habit.ErrNotFound, a missing
// completion with completion.ErrNotFound, and must reject a second completion
// for the same (habit, day) with completion.ErrDuplicateDay atomically.
type Store interface {
	FindHabitByID(ctx context.Context, id uuid.UUID) (*habit.Habit, error)
	ListActiveHabitsByUser(ctx context.Context, userID uuid.UUID) ([]*habit.Habit, error)
	FindCompletionByHabitAndDay(ctx context.Context, habitID uuid.UUID, day util.Date) (*completion.Log, error)
	InsertCompletion(ctx context.Context, l *completion.Log) error
	ListCompletionsByHabit(ctx context.Context, habitID uuid.UUID, limit int) ([]*completion.Log, error)
	ListCompletionsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*completion.Log, error)
}

type repositoryStore struct {
	habits habit.Repository
	logs   completion.Repository
}

func NewRepositoryStore(habits habit.Repository, logs completion.Repository) Store {
	return &repositoryStore{habits: habits, logs: logs}
}

func (s *repositoryStore) FindHabitByID(ctx context.Context, id uuid.UUID) (*habit.Habit, error) {
	return s.habits.FindByID(ctx, id)
}

func (s *repositoryStore) ListActiveHabitsByUser(ctx context.Context, userID uuid.UUID) ([]*habit.Habit, error) {
	return s.habits.ListActiveByUser(ctx, userID)
}

func (s *repositoryStore) FindCompletionByHabitAndDay(ctx context.Context, habitID uuid.UUID, day util.Date) (*completion.Log, error) {
	return s.logs.FindByHabitAndDay(ctx, habitID, day)
}

func (s *repositoryStore) InsertCompletion(ctx context.Context, l *completion.Log) error {
	return s.logs.Create(ctx, l)
}

func (s *repositoryStore) ListCompletionsByHabit(ctx context.Context, habitID uuid.UUID, limit int) ([]*completion.Log, error) {
	return s.logs.ListByHabit(ctx, habitID, limit)
}

func (s *repositoryStore) ListCompletionsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*completion.Log, error) {
	return s.logs.ListByUser(ctx, userID, limit)
}
