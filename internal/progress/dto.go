package progress

import (
	"time"

	"github.com/saulo-duarte/habits-lambda/internal/completion"
	"github.com/saulo-duarte/habits-lambda/internal/habit"
)

// CompletionInput carries the optional attributes of a completion. Day is
// "YYYY-MM-DD" or RFC 3339; empty means today in Location.
type CompletionInput struct {
	Day         string
	Location    *time.Location
	Note        *string
	Mood        *string
	EnergyLevel *int
}

type HabitWithStreak struct {
	*habit.Habit
	Streak         int               `json:"streak"`
	CompletedToday bool              `json:"completed_today"`
	Logs           []*completion.Log `json:"logs,omitempty"`
}

type recordCompletionRequest struct {
	HabitID     string  `json:"habitId"`
	Date        string  `json:"date"`
	Note        *string `json:"note"`
	Mood        *string `json:"mood"`
	EnergyLevel *int    `json:"energyLevel"`
}
