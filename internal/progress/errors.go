package progress

import (
	"errors"

	"github.com/saulo-duarte/habits-lambda/internal/habit"
)

// Outcomes surfaced to the API layer. None of them is retried.
var (
	// ErrNotFound covers both a missing habit and one owned by someone else.
	ErrNotFound     = habit.ErrHabitNotFound
	ErrConflict     = errors.New("a completion already exists for this day")
	ErrInvalidInput = habit.ErrInvalidInput
)
