package completion

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	util "github.com/saulo-duarte/habits-lambda/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateDay = errors.New("completion already exists for this habit and day")
)

const uniqueViolation = "23505"

type Repository interface {
	FindByHabitAndDay(ctx context.Context, habitID uuid.UUID, day util.Date) (*Log, error)
	Create(ctx context.Context, l *Log) error
	// ListByHabit returns newest day first; limit <= 0 means no limit.
	ListByHabit(ctx context.Context, habitID uuid.UUID, limit int) ([]*Log, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*Log, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (r *repository) FindByHabitAndDay(ctx context.Context, habitID uuid.UUID, day util.Date) (*Log, error) {
	var l Log
	if err := r.db.WithContext(ctx).
		Where("habit_id = ? AND day = ?", habitID, day).
		First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &l, nil
}

func (r *repository) Create(ctx context.Context, l *Log) error {
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateDay
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *repository) ListByHabit(ctx context.Context, habitID uuid.UUID, limit int) ([]*Log, error) {
	q := r.db.WithContext(ctx).
		Where("habit_id = ?", habitID).
		Order("day DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var logs []*Log
	if err := q.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return logs, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*Log, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day DESC").
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var logs []*Log
	if err := q.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return logs, nil
}
