package habit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/habits-lambda/internal/config"
	"github.com/sirupsen/logrus"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrInvalidInput  = errors.New("invalid input")
)

const maxNameLength = 120

// OwnershipGuard resolves a habit only when it belongs to the caller.
type OwnershipGuard interface {
	VerifyOwnership(ctx context.Context, userID, habitID uuid.UUID) (*Habit, error)
}

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, dto CreateHabitDTO) (*Habit, error)
	Update(ctx context.Context, userID, habitID uuid.UUID, dto UpdateHabitDTO) (*Habit, error)
	Archive(ctx context.Context, userID, habitID uuid.UUID) error
}

type service struct {
	repo  Repository
	guard OwnershipGuard
}

func NewService(repo Repository, guard OwnershipGuard) Service {
	return &service{repo: repo, guard: guard}
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len([]rune(name)) > maxNameLength {
		return "", fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, maxNameLength)
	}
	return name, nil
}

func parseFrequency(raw string) (Frequency, error) {
	f, ok := ParseFrequency(raw)
	if !ok {
		return "", fmt.Errorf("%w: frequency must be one of daily, weekly, monthly", ErrInvalidInput)
	}
	return f, nil
}

func validateGoal(goal *int) error {
	if goal != nil && *goal < 0 {
		return fmt.Errorf("%w: goal must not be negative", ErrInvalidInput)
	}
	return nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, dto CreateHabitDTO) (*Habit, error) {
	log := config.WithContext(ctx)

	name, err := normalizeName(dto.Name)
	if err != nil {
		return nil, err
	}
	freq := FrequencyDaily
	if dto.Frequency != "" {
		if freq, err = parseFrequency(dto.Frequency); err != nil {
			return nil, err
		}
	}
	if err := validateGoal(dto.Goal); err != nil {
		return nil, err
	}

	h := &Habit{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       name,
		Frequency:  freq,
		Goal:       dto.Goal,
		ReminderAt: dto.ReminderAt,
	}
	if err := s.repo.Create(ctx, h); err != nil {
		log.WithError(err).Error("Failed to create habit")
		return nil, err
	}

	log.WithField("habit_id", h.ID).Info("Habit created successfully")
	return h, nil
}

func (s *service) Update(ctx context.Context, userID, habitID uuid.UUID, dto UpdateHabitDTO) (*Habit, error) {
	log := config.WithContext(ctx)

	existing, err := s.guard.VerifyOwnership(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		name, err := normalizeName(*dto.Name)
		if err != nil {
			return nil, err
		}
		existing.Name = name
	}
	if dto.Frequency != nil {
		freq, err := parseFrequency(*dto.Frequency)
		if err != nil {
			return nil, err
		}
		existing.Frequency = freq
	}
	if dto.Goal != nil {
		if err := validateGoal(dto.Goal); err != nil {
			return nil, err
		}
		existing.Goal = dto.Goal
	}
	if dto.ReminderAt != nil {
		existing.ReminderAt = dto.ReminderAt
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrHabitNotFound
		}
		log.WithError(err).Error("Failed to update habit")
		return nil, err
	}

	log.WithField("habit_id", existing.ID).Info("Habit updated successfully")
	return existing, nil
}

func (s *service) Archive(ctx context.Context, userID, habitID uuid.UUID) error {
	log := config.WithContext(ctx)

	if _, err := s.guard.VerifyOwnership(ctx, userID, habitID); err != nil {
		return err
	}

	if err := s.repo.Archive(ctx, habitID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrHabitNotFound
		}
		log.WithError(err).WithFields(logrus.Fields{
			"habit_id": habitID,
			"user_id":  userID,
		}).Error("Failed to archive habit")
		return err
	}

	log.WithField("habit_id", habitID).Info("Habit archived")
	return nil
}
