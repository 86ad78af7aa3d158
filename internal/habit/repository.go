package habit

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type Repository interface {
	Create(ctx context.Context, h *Habit) error
	FindByID(ctx context.Context, id uuid.UUID) (*Habit, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*Habit, error)
	Update(ctx context.Context, h *Habit) error
	Archive(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, h *Habit) error {
	if err := r.db.WithContext(ctx).Create(h).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Habit, error) {
	var h Habit
	if err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &h, nil
}

func (r *repository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*Habit, error) {
	var habits []*Habit
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND archived = ?", userID, false).
		Order("created_at ASC").
		Find(&habits).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return habits, nil
}

// editableColumns are the only columns Update writes; archived, user_id and
// created_at stay as stored.
var editableColumns = []string{"name", "frequency", "goal", "reminder_at", "updated_at"}

func (r *repository) Update(ctx context.Context, h *Habit) error {
	res := r.db.WithContext(ctx).
		Model(&Habit{}).
		Where("id = ? AND user_id = ?", h.ID, h.UserID).
		Select(editableColumns).
		Updates(h)
	if res.Error != nil {
		return fmt.Errorf("db error: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Archive(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&Habit{}).Where("id = ?", id).Update("archived", true)
	if res.Error != nil {
		return fmt.Errorf("db error: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
